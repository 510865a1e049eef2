package models

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchResponse is the payload returned by the search backend. Both
// fields are optional.
type SearchResponse struct {
	Summary string         `json:"summary,omitempty"`
	Sources []SourceResult `json:"sources,omitempty"`
}

type SourceResult struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet"`
}

// IsEmpty reports whether there is nothing to show: no summary and no sources.
// A nil response is empty.
func (r *SearchResponse) IsEmpty() bool {
	return r == nil || (r.Summary == "" && len(r.Sources) == 0)
}

// DisplayTitle returns the title, falling back to the URL when the title is blank.
func (s SourceResult) DisplayTitle() string {
	if s.Title == "" {
		return s.URL
	}
	return s.Title
}
