package health

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Ayash-Bera/ophelia/frontend/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker probes the services the search page depends on.
type HealthChecker struct {
	backendURL string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewHealthChecker(backendURL string, logger *logrus.Logger) *HealthChecker {
	return &HealthChecker{
		backendURL: strings.TrimRight(backendURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger,
	}
}

// CheckBackend issues GET {backend}/health. Any transport error or status
// of 400 and above marks the backend unhealthy.
func (h *HealthChecker) CheckBackend(ctx context.Context) models.ServiceHealth {
	start := time.Now()

	status := StatusHealthy
	errorMsg := ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.backendURL+"/health", nil)
	if err == nil {
		var resp *http.Response
		resp, err = h.httpClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode >= 400 {
				err = fmt.Errorf("HTTP %d", resp.StatusCode)
			}
		}
	}
	if err != nil {
		status = StatusUnhealthy
		errorMsg = err.Error()
		h.logger.WithError(err).Error("Search backend health check failed")
	}

	return models.ServiceHealth{
		Name:         "search-backend",
		Status:       status,
		ResponseTime: int(time.Since(start).Milliseconds()),
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

func (h *HealthChecker) CheckAll(ctx context.Context) models.HealthResponse {
	services := []models.ServiceHealth{
		h.CheckBackend(ctx),
	}

	overallStatus := StatusHealthy
	for _, service := range services {
		if service.Status != StatusHealthy {
			overallStatus = StatusUnhealthy
			break
		}
	}

	return models.HealthResponse{
		Status:    overallStatus,
		Service:   "search-frontend",
		Timestamp: time.Now().Format(time.RFC3339),
		Services:  services,
	}
}
