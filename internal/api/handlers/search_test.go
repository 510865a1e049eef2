package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Ayash-Bera/ophelia/frontend/internal/escape"
	"github.com/Ayash-Bera/ophelia/frontend/internal/health"
	"github.com/Ayash-Bera/ophelia/frontend/internal/models"
	"github.com/Ayash-Bera/ophelia/frontend/internal/searchclient"
	"github.com/Ayash-Bera/ophelia/frontend/pkg/utils"
	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSearcher struct {
	queries []string
	resp    *models.SearchResponse
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	s.queries = append(s.queries, query)
	return s.resp, s.err
}

func newEngine(searcher *stubSearcher, checker *health.HealthChecker) *gin.Engine {
	logger, _ := logtest.NewNullLogger()
	r := gin.New()
	r.SetHTMLTemplate(PageTemplate)

	page := NewPageHandler(searcher, escape.Node, logger)
	search := NewSearchHandler(searcher, checker, logger)
	r.GET("/", page.HandleIndex)
	r.POST("/", page.HandleSubmit)
	r.POST("/search", search.HandleSearch)
	r.GET("/health", search.HandleHealth)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandleSearch_ForwardsTrimmedQuery(t *testing.T) {
	searcher := &stubSearcher{resp: &models.SearchResponse{
		Summary: "This is a mock answer from the expert.",
		Sources: []models.SourceResult{{URL: "http://gocolly.dev/", Title: "Mock Title", Snippet: "snippet"}},
	}}
	r := newEngine(searcher, nil)

	w := postJSON(r, "/search", `{"query": "  what is gocolly?  "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"what is gocolly?"}, searcher.queries)

	var got models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *searcher.resp, got)
}

func TestHandleSearch_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"query":`},
		{"missing query", `{}`},
		{"blank query", `{"query": "   "}`},
		{"too long", `{"query": "` + strings.Repeat("a", maxQueryLength+1) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &stubSearcher{}
			w := postJSON(newEngine(searcher, nil), "/search", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, searcher.queries)

			var body utils.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandleSearch_BackendFailure(t *testing.T) {
	searcher := &stubSearcher{err: &searchclient.StatusError{StatusCode: http.StatusInternalServerError}}
	w := postJSON(newEngine(searcher, nil), "/search", `{"query":"q"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body utils.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Search failed", body.Message)
	assert.Contains(t, body.Error, "500")
}

func TestHandleHealth(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer backend.Close()

	logger, _ := logtest.NewNullLogger()
	r := newEngine(&stubSearcher{}, health.NewHealthChecker(backend.URL, logger))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var got models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, health.StatusUnhealthy, got.Status)
}

func TestHandleIndex(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(&stubSearcher{}, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find("form#search-form input#search-input").Length())
	assert.Equal(t, 1, doc.Find("#results-container").Length())
	assert.Empty(t, strings.TrimSpace(doc.Find("#results-container").Text()))
}

func submitForm(r http.Handler, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	form := url.Values{"query": {query}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestHandleSubmit_RendersResults(t *testing.T) {
	searcher := &stubSearcher{resp: &models.SearchResponse{
		Summary: `<script>alert("x")</script>`,
		Sources: []models.SourceResult{{URL: "http://x", Snippet: "S"}},
	}}
	w := submitForm(newEngine(searcher, nil), " colly ")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"colly"}, searcher.queries)

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)

	items := doc.Find("#results-container .result-item")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, `<script>alert("x")</script>`, items.Eq(0).Find("p").Text())
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, "http://x", items.Eq(1).Find("a").Text())

	value, _ := doc.Find("#search-input").Attr("value")
	assert.Equal(t, " colly ", value)
}

func TestHandleSubmit_ErrorAndEmpty(t *testing.T) {
	failing := &stubSearcher{err: searchclient.ErrTransport}
	doc, err := goquery.NewDocumentFromReader(submitForm(newEngine(failing, nil), "q").Body)
	require.NoError(t, err)
	assert.Equal(t, "Error fetching results. Please try again.", doc.Find("#results-container").Text())

	blank := &stubSearcher{}
	doc, err = goquery.NewDocumentFromReader(submitForm(newEngine(blank, nil), "   ").Body)
	require.NoError(t, err)
	assert.Empty(t, blank.queries)
	assert.Empty(t, doc.Find("#results-container").Text())
}
