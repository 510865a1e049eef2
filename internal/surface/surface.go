// Package surface provides the UI handles the search widget drives: a
// submittable form, a single-line text input and a results container.
package surface

import (
	"context"
	"strings"
	"sync"
)

// Stable element identifiers used by the search page.
const (
	FormID      = "search-form"
	InputID     = "search-input"
	ContainerID = "results-container"
)

// SubmitHandler reacts to one form submission.
type SubmitHandler func(ctx context.Context, ev *SubmitEvent)

// Form accepts submit handlers.
type Form interface {
	OnSubmit(handler SubmitHandler)
}

// Input exposes the current raw text of a text field.
type Input interface {
	Value() string
}

// Container is the output surface. Content is markup; callers are
// responsible for escaping anything externally sourced.
type Container interface {
	Replace(markup string)
	Clear()
	Append(markup string)
	HTML() string
}

// SubmitEvent is delivered to every submit handler of a form.
type SubmitEvent struct {
	mu        sync.Mutex
	prevented bool
}

// PreventDefault marks the submission as handled in place.
func (e *SubmitEvent) PreventDefault() {
	e.mu.Lock()
	e.prevented = true
	e.mu.Unlock()
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *SubmitEvent) DefaultPrevented() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prevented
}

// FormHandle is an in-process form. Submit runs the registered handlers
// in registration order on the calling goroutine.
type FormHandle struct {
	mu       sync.RWMutex
	handlers []SubmitHandler
}

// NewForm returns a form with no handlers.
func NewForm() *FormHandle {
	return &FormHandle{}
}

// OnSubmit registers handler for every later submission.
func (f *FormHandle) OnSubmit(handler SubmitHandler) {
	f.mu.Lock()
	f.handlers = append(f.handlers, handler)
	f.mu.Unlock()
}

// Submit fires a submission and returns the event after all handlers ran.
func (f *FormHandle) Submit(ctx context.Context) *SubmitEvent {
	f.mu.RLock()
	handlers := make([]SubmitHandler, len(f.handlers))
	copy(handlers, f.handlers)
	f.mu.RUnlock()

	ev := &SubmitEvent{}
	for _, h := range handlers {
		h(ctx, ev)
	}
	return ev
}

// TextInput is a goroutine-safe single-line text field.
type TextInput struct {
	mu    sync.RWMutex
	value string
}

// NewTextInput returns an input holding value.
func NewTextInput(value string) *TextInput {
	return &TextInput{value: value}
}

// Value returns the text exactly as entered, untrimmed.
func (i *TextInput) Value() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.value
}

// SetValue overwrites the field's text.
func (i *TextInput) SetValue(value string) {
	i.mu.Lock()
	i.value = value
	i.mu.Unlock()
}

// Buffer is a goroutine-safe Container that accumulates markup blocks.
type Buffer struct {
	mu     sync.RWMutex
	blocks []string
}

// NewBuffer returns an empty container.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Replace discards existing content and writes markup.
func (b *Buffer) Replace(markup string) {
	b.mu.Lock()
	b.blocks = []string{markup}
	b.mu.Unlock()
}

// Clear empties the container.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.blocks = nil
	b.mu.Unlock()
}

// Append adds markup after the existing content.
func (b *Buffer) Append(markup string) {
	b.mu.Lock()
	b.blocks = append(b.blocks, markup)
	b.mu.Unlock()
}

// HTML returns the current content.
func (b *Buffer) HTML() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.blocks, "")
}

// Page bundles the three handles of one rendered search page.
type Page struct {
	Form      *FormHandle
	Input     *TextInput
	Container *Buffer
}

// NewPage builds the handles for one page with the input prefilled.
func NewPage(query string) *Page {
	return &Page{
		Form:      NewForm(),
		Input:     NewTextInput(query),
		Container: NewBuffer(),
	}
}
