// Package escape turns arbitrary text into markup that is safe to place in
// HTML content and attribute values.
package escape

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Func escapes a piece of externally sourced text. It must be applied
// exactly once to every string before it is written into markup.
type Func func(string) string

const (
	NodeMode   = "node"
	EntityMode = "entity"
)

// Node escapes text by placing it in a text node under a <p> element and
// serializing the element's children.
func Node(text string) string {
	p := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.P,
		Data:     "p",
	}
	p.AppendChild(&html.Node{Type: html.TextNode, Data: text})

	var b strings.Builder
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		// Rendering into a strings.Builder cannot fail.
		_ = html.Render(&b, c)
	}
	return b.String()
}

var entities = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Entity replaces the five markup-significant characters in a single
// left-to-right pass.
func Entity(text string) string {
	return entities.Replace(text)
}

// ByName returns the escaper registered under name. An empty name selects Node.
func ByName(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NodeMode:
		return Node, nil
	case EntityMode:
		return Entity, nil
	default:
		return nil, fmt.Errorf("unknown escaper %q", name)
	}
}
