package api

import (
	"github.com/Ayash-Bera/ophelia/frontend/internal/api/handlers"
	"github.com/Ayash-Bera/ophelia/frontend/internal/escape"
	"github.com/Ayash-Bera/ophelia/frontend/internal/health"
	"github.com/Ayash-Bera/ophelia/frontend/internal/middleware"
	"github.com/Ayash-Bera/ophelia/frontend/internal/searchui"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dependencies are the collaborators NewRouter wires into the handlers.
type Dependencies struct {
	Searcher    searchui.Searcher
	Escape      escape.Func
	Health      *health.HealthChecker
	RateLimiter *middleware.RateLimiter // optional
	Logger      *logrus.Logger
}

// NewRouter wires the search page, the /search gateway and the health
// endpoint onto a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(handlers.PageTemplate)

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.SecurityHeaders(),
	)

	pageHandler := handlers.NewPageHandler(deps.Searcher, deps.Escape, deps.Logger)
	searchHandler := handlers.NewSearchHandler(deps.Searcher, deps.Health, deps.Logger)

	submissions := router.Group("/")
	if deps.RateLimiter != nil {
		submissions.Use(deps.RateLimiter.RateLimit())
	}
	submissions.POST("/", pageHandler.HandleSubmit)
	submissions.POST("/search", searchHandler.HandleSearch)

	router.GET("/", pageHandler.HandleIndex)
	router.GET("/health", searchHandler.HandleHealth)

	return router
}
