package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/pricelens/backend/config"
	httpDelivery "github.com/pricelens/backend/internal/delivery/http"
	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/audit"
	"github.com/pricelens/backend/internal/infrastructure/cache"
	"github.com/pricelens/backend/internal/infrastructure/fetch"
	"github.com/pricelens/backend/internal/infrastructure/gemini"
	"github.com/pricelens/backend/internal/marketplace"
	"github.com/pricelens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := buildLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting PriceLens backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	// Initialize infrastructure dependencies
	registry := marketplace.NewRegistry()
	logger.Info("marketplace adapters registered", zap.Int("count", len(registry.All())))

	resultCache := cache.NewMemoryCache()

	var auditRepo domain.AuditRepository
	if cfg.Audit.Enabled {
		store, err := audit.NewStore(cfg.Audit.Path, logger)
		if err != nil {
			log.Fatalf("Failed to open audit store: %v", err)
		}
		defer store.Close()
		auditRepo = store
		logger.Info("audit trail enabled", zap.String("path", cfg.Audit.Path))
	}

	var fetcher domain.ContentFetcher
	if cfg.Fetch.Enabled {
		fetcher = fetch.NewClient(cfg.Fetch.RequestsPerSecond, cfg.Fetch.Timeout, logger)
	}

	// Signature enrichment chain: Gemini first when configured, then the
	// HTML metadata fallback.
	var extractors []domain.ProductExtractor
	if cfg.Gemini.APIKey != "" {
		extractor, err := gemini.NewExtractor(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			log.Fatalf("Failed to create Gemini extractor: %v", err)
		}
		defer extractor.Close()
		extractors = append(extractors, extractor)
		logger.Info("gemini extraction enabled", zap.String("model", cfg.Gemini.Model))
	} else {
		logger.Warn("gemini extraction disabled: no API key configured")
	}
	extractors = append(extractors, fetch.NewHTMLExtractor())

	// Initialize usecase layer
	compareService := usecase.NewCompareService(
		registry,
		usecase.NewNormalizer(),
		fetcher,
		extractors,
		auditRepo,
		resultCache,
		logger,
		usecase.CompareConfig{
			MinConfidence:  cfg.Compare.MinConfidence,
			AdapterTimeout: cfg.Compare.AdapterTimeout,
			CacheTTL:       cfg.Cache.TTL,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(compareService, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func buildLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
