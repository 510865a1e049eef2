package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ayash-Bera/ophelia/frontend/internal/api"
	"github.com/Ayash-Bera/ophelia/frontend/internal/config"
	"github.com/Ayash-Bera/ophelia/frontend/internal/escape"
	"github.com/Ayash-Bera/ophelia/frontend/internal/health"
	"github.com/Ayash-Bera/ophelia/frontend/internal/middleware"
	"github.com/Ayash-Bera/ophelia/frontend/internal/searchclient"
	"github.com/Ayash-Bera/ophelia/frontend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var verbose = flag.Bool("verbose", false, "Enable verbose logging")

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Configuration validation failed")
	}

	escaper, err := escape.ByName(cfg.Render.Escaper)
	if err != nil {
		logger.WithError(err).Fatal("Invalid escaper")
	}

	client := searchclient.NewClient(cfg.Backend.URL, logger, searchclient.WithSearchPath(cfg.Backend.SearchPath))

	deps := api.Dependencies{
		Searcher: client,
		Escape:   escaper,
		Health:   health.NewHealthChecker(cfg.Backend.URL, logger),
		Logger:   logger,
	}
	if cfg.Server.RateLimit > 0 {
		deps.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit)
		defer deps.RateLimiter.Close()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":    cfg.Server.Port,
			"backend": cfg.Backend.URL,
			"escaper": cfg.Render.Escaper,
		}).Info("Search frontend listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
}
