package app

import (
	"context"
	"fmt"

	"github.com/clipsmith/clipsmith-go/internal/adapter"
	"github.com/clipsmith/clipsmith-go/internal/config"
	"github.com/clipsmith/clipsmith-go/internal/service"
	"github.com/clipsmith/clipsmith-go/internal/service/ai"
	"github.com/clipsmith/clipsmith-go/internal/service/cache"
	"github.com/clipsmith/clipsmith-go/internal/service/database"
	"go.uber.org/zap"
)

// Container bundles the assembled services for the server and CLI entrypoints.
// Cache, Postgres, History and Source stay nil when the matching backend is
// not configured; the analysis pipeline itself has no optional parts.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Analyzer  *service.AnalyzerService
	Formatter *adapter.ResultFormatter

	Cache    *cache.CacheService
	Postgres *database.PostgresService
	History  *service.RunRepository
	Source   *service.SourceService

	closers []func()
}

// Close releases backend connections in reverse acquisition order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// Build assembles all services from configuration. All heavy-weight
// initialization (AI client, Redis, Postgres) happens here so that the
// entrypoints stay focused on transport concerns.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	var generator ai.Generator
	switch cfg.AI.Provider {
	case config.ProviderGemini:
		generator, err = ai.NewGeminiGenerator(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini generator: %w", err)
		}
	case config.ProviderOpenAI:
		generator = ai.NewOpenAIGenerator(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.AI.Provider)
	}
	logger.Info("AI generator ready",
		zap.String("provider", generator.Provider()),
		zap.String("model", generator.Model()))

	guidance, err := config.LoadGuidance(cfg.Presets.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform presets: %w", err)
	}

	analyzer := service.NewAnalyzerService(generator, guidance, logger)

	var cacheSvc *cache.CacheService
	if cfg.Redis.Enabled() {
		cacheSvc, err = cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
	}

	var (
		postgresSvc *database.PostgresService
		history     *service.RunRepository
	)
	if cfg.Postgres.Enabled() {
		postgresSvc, err = database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", err)
		}
		closers = append(closers, func() {
			_ = postgresSvc.Close()
		})

		history, err = service.NewRunRepository(ctx, postgresSvc, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create run repository: %w", err)
		}
	}

	var sourceSvc *service.SourceService
	if cfg.YouTube.APIKey != "" {
		sourceSvc, err = service.NewSourceService(cfg.YouTube.APIKey, cacheSvc, logger)
		if err != nil {
			logger.Warn("Failed to initialize source lookup (optional feature)", zap.Error(err))
			err = nil
		} else {
			logger.Info("Source metadata lookup enabled")
		}
	}

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Analyzer:  analyzer,
		Formatter: adapter.NewResultFormatter(),
		Cache:     cacheSvc,
		Postgres:  postgresSvc,
		History:   history,
		Source:    sourceSvc,
		closers:   closers,
	}, nil
}
