// Package searchui bridges a search form to the search backend and renders
// the backend's answer into a results container.
package searchui

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Ayash-Bera/ophelia/frontend/internal/escape"
	"github.com/Ayash-Bera/ophelia/frontend/internal/models"
	"github.com/Ayash-Bera/ophelia/frontend/internal/searchclient"
	"github.com/Ayash-Bera/ophelia/frontend/internal/surface"
	"github.com/sirupsen/logrus"
)

// Searcher issues one search request for a trimmed query.
type Searcher interface {
	Search(ctx context.Context, query string) (*models.SearchResponse, error)
}

// Phase tracks where the controller is in its submit cycle.
type Phase int

const (
	// PhaseIdle: no submission has started.
	PhaseIdle Phase = iota
	// PhaseSearching: a request is in flight.
	PhaseSearching
	// PhaseSettled: the last submission rendered a result or an error.
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseSettled:
		return "settled"
	default:
		return "idle"
	}
}

// Controller runs one search per non-blank submission and owns the
// results container.
type Controller struct {
	input     surface.Input
	container surface.Container
	searcher  Searcher
	escape    escape.Func
	logger    *logrus.Logger

	// mu serializes writes to the container so each render lands whole.
	mu    sync.Mutex
	phase Phase
}

// Option customizes a Controller.
type Option func(*Controller)

// WithEscaper sets the function applied to every backend string. A nil
// fn keeps the default Node escaper.
func WithEscaper(fn escape.Func) Option {
	return func(c *Controller) {
		if fn != nil {
			c.escape = fn
		}
	}
}

// New wires a controller to the given handles and registers it as a
// submit handler on form.
func New(form surface.Form, input surface.Input, container surface.Container, searcher Searcher, logger *logrus.Logger, opts ...Option) *Controller {
	c := &Controller{
		input:     input,
		container: container,
		searcher:  searcher,
		escape:    escape.Node,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	form.OnSubmit(c.HandleSubmit)
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// HandleSubmit runs one submission: read and trim the query, show the
// loading state, call the backend and render the outcome. Overlapping
// submissions are not coordinated; whichever settles last owns the container.
func (c *Controller) HandleSubmit(ctx context.Context, ev *surface.SubmitEvent) {
	ev.PreventDefault()

	query := strings.TrimSpace(c.input.Value())
	if query == "" {
		return
	}

	c.mu.Lock()
	c.container.Replace(searchingMarkup)
	c.phase = PhaseSearching
	c.mu.Unlock()

	data, err := c.searcher.Search(ctx, query)
	if err != nil {
		c.logFailure(query, err)

		c.mu.Lock()
		c.container.Replace(errorMarkup)
		c.phase = PhaseSettled
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	c.render(data)
	c.phase = PhaseSettled
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"query":         query,
		"has_summary":   data != nil && data.Summary != "",
		"results_count": resultsCount(data),
	}).Debug("Search results rendered")
}

func (c *Controller) logFailure(query string, err error) {
	entry := c.logger.WithError(err).WithField("query", query)

	var statusErr *searchclient.StatusError
	switch {
	case errors.As(err, &statusErr):
		entry = entry.WithField("status_code", statusErr.StatusCode)
	case errors.Is(err, searchclient.ErrMalformedResponse):
		entry = entry.WithField("kind", "malformed_response")
	case errors.Is(err, searchclient.ErrTransport):
		entry = entry.WithField("kind", "transport")
	}

	entry.Error("Error fetching search results")
}

func resultsCount(data *models.SearchResponse) int {
	if data == nil {
		return 0
	}
	return len(data.Sources)
}
