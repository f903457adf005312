package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog_ui/config"
	"catalog_ui/internal/clients"
	"catalog_ui/internal/delivery"
	"catalog_ui/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid LOG_LEVEL %q, using info", cfg.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	if logLevel < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Catalog UI...")
	logger.Infof("Catalog API target: %s", cfg.APIBaseURL)

	// --- Dependency Injection ---
	var opts []clients.Option
	if cfg.APIInsecureTLS {
		opts = append(opts, clients.WithInsecureTLS())
	}
	api := clients.NewCatalogHTTPClient(cfg.APIBaseURL, cfg.APITimeout, logger, opts...)
	catalog := clients.NewFallbackCatalog(api, logger)
	logger.Info("Catalog client initialized.")

	categories := usecase.NewCategoryStore(catalog, logger)
	workspaces := delivery.NewWorkspaceStore(catalog, categories, cfg.SessionTTL, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workspaces.RunJanitor(ctx, time.Minute)

	router, err := delivery.NewRouter(workspaces, logger, cfg.SecureCookies)
	if err != nil {
		logger.Fatalf("Failed to build router: %v", err)
	}

	// --- Start Server ---
	logger.Infof("Catalog UI listening on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		logger.Errorf("Failed to start Catalog UI: %v", err)
		os.Exit(1)
	}
}
