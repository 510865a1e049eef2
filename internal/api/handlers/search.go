package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Ayash-Bera/ophelia/frontend/internal/health"
	"github.com/Ayash-Bera/ophelia/frontend/internal/models"
	"github.com/Ayash-Bera/ophelia/frontend/internal/searchclient"
	"github.com/Ayash-Bera/ophelia/frontend/internal/searchui"
	"github.com/Ayash-Bera/ophelia/frontend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxQueryLength = 2000

// SearchHandler serves the JSON /search gateway and the health endpoint.
type SearchHandler struct {
	searcher searchui.Searcher
	checker  *health.HealthChecker
	logger   *logrus.Logger
}

// NewSearchHandler creates a handler. checker is only used by HandleHealth.
func NewSearchHandler(searcher searchui.Searcher, checker *health.HealthChecker, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		checker:  checker,
		logger:   logger,
	}
}

// HandleSearch forwards a search request to the backend and relays its
// response body unchanged.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	startTime := time.Now()

	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid search request")
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query cannot be empty", nil)
		return
	}
	if utf8.RuneCountInString(query) > maxQueryLength {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query too long (max 2000 characters)", nil)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"query":      query,
		"user_agent": c.GetHeader("User-Agent"),
		"ip_address": c.ClientIP(),
	}).Info("Processing search request")

	resp, err := h.searcher.Search(c.Request.Context(), query)
	if err != nil {
		entry := h.logger.WithError(err)
		var statusErr *searchclient.StatusError
		if errors.As(err, &statusErr) {
			entry = entry.WithField("status_code", statusErr.StatusCode)
		}
		entry.Error("Search backend failed")
		utils.ErrorResponse(c, http.StatusBadGateway, "Search failed", err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"results_count": resultsCount(resp),
		"response_time": time.Since(startTime).Milliseconds(),
	}).Info("Search completed successfully")

	c.JSON(http.StatusOK, resp)
}

// HandleHealth reports backend health, with 503 when it is unhealthy.
func (h *SearchHandler) HandleHealth(c *gin.Context) {
	result := h.checker.CheckAll(c.Request.Context())

	code := http.StatusOK
	if result.Status != health.StatusHealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, result)
}

func resultsCount(resp *models.SearchResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Sources)
}
