package handlers

import (
	"html/template"
	"net/http"

	"github.com/Ayash-Bera/ophelia/frontend/internal/escape"
	"github.com/Ayash-Bera/ophelia/frontend/internal/searchui"
	"github.com/Ayash-Bera/ophelia/frontend/internal/surface"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PageTemplateName is the name PageTemplate is registered under.
const PageTemplateName = "index"

// PageTemplate renders the search page. Results is markup produced by the
// search controller, which has already escaped every external string.
var PageTemplate = template.Must(template.New(PageTemplateName).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Search</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
.result-item { border-bottom: 1px solid #ddd; padding: 0.5rem 0; }
</style>
</head>
<body>
<form id="{{.FormID}}" method="post" action="/">
<input type="text" id="{{.InputID}}" name="query" value="{{.Query}}" placeholder="Search..." autocomplete="off">
<button type="submit">Search</button>
</form>
<div id="{{.ContainerID}}">{{.Results}}</div>
</body>
</html>
`))

type pageData struct {
	FormID      string
	InputID     string
	ContainerID string
	Query       string
	Results     template.HTML
}

func newPageData(query, results string) pageData {
	return pageData{
		FormID:      surface.FormID,
		InputID:     surface.InputID,
		ContainerID: surface.ContainerID,
		Query:       query,
		Results:     template.HTML(results),
	}
}

// PageHandler serves the search page and handles its form submissions
// without client-side scripting.
type PageHandler struct {
	searcher searchui.Searcher
	escape   escape.Func
	logger   *logrus.Logger
}

// NewPageHandler creates a page handler rendering with escaper.
func NewPageHandler(searcher searchui.Searcher, escaper escape.Func, logger *logrus.Logger) *PageHandler {
	return &PageHandler{
		searcher: searcher,
		escape:   escaper,
		logger:   logger,
	}
}

// HandleIndex renders the empty search page.
func (h *PageHandler) HandleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, PageTemplateName, newPageData("", ""))
}

// HandleSubmit runs the search widget against a page scoped to this
// request and renders the page with the resulting container content.
func (h *PageHandler) HandleSubmit(c *gin.Context) {
	page := surface.NewPage(c.PostForm("query"))
	searchui.New(page.Form, page.Input, page.Container, h.searcher, h.logger, searchui.WithEscaper(h.escape))

	page.Form.Submit(c.Request.Context())

	c.HTML(http.StatusOK, PageTemplateName, newPageData(page.Input.Value(), page.Container.HTML()))
}
