package searchui

import (
	"strings"

	"github.com/Ayash-Bera/ophelia/frontend/internal/models"
)

const (
	searchingMarkup = "<p>Searching...</p>"
	errorMarkup     = "<p>Error fetching results. Please try again.</p>"
	noResultsMarkup = "<p>No results found.</p>"
)

// Render replaces the container content with data. A nil or empty response
// renders the no-results message.
func (c *Controller) Render(data *models.SearchResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render(data)
}

func (c *Controller) render(data *models.SearchResponse) {
	c.container.Clear()

	if data.IsEmpty() {
		c.container.Append(noResultsMarkup)
		return
	}

	if data.Summary != "" {
		c.container.Append(c.summaryBlock(data.Summary))
	}

	for _, source := range data.Sources {
		c.container.Append(c.sourceBlock(source))
	}
}

func (c *Controller) summaryBlock(summary string) string {
	var b strings.Builder
	b.WriteString(`<div class="result-item"><h3>Summary</h3><p>`)
	b.WriteString(c.escape(summary))
	b.WriteString(`</p></div>`)
	return b.String()
}

func (c *Controller) sourceBlock(source models.SourceResult) string {
	var b strings.Builder
	b.WriteString(`<div class="result-item"><h3><a href="`)
	b.WriteString(c.escape(source.URL))
	b.WriteString(`" target="_blank">`)
	b.WriteString(c.escape(source.DisplayTitle()))
	b.WriteString(`</a></h3><p>`)
	b.WriteString(c.escape(source.Snippet))
	b.WriteString(`</p></div>`)
	return b.String()
}
