// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Lalit-mahajan-1/NutriAi/internal/application/mealplan"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/bandit"
	"github.com/Lalit-mahajan-1/NutriAi/internal/domain/catalog"
	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/catalogcsv"
	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/config"
	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/http/apiserver"
	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/persistence/banditfile"
	gormRepo "github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/persistence/gorm"
	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/persistence/memory"
	redisRepo "github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/persistence/redis"
	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/persistence/sqlite"
	"github.com/Lalit-mahajan-1/NutriAi/internal/infrastructure/usda"
	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/inbound"
	"github.com/Lalit-mahajan-1/NutriAi/internal/ports/outbound"
	"github.com/Lalit-mahajan-1/NutriAi/pkg/errors"
	"github.com/Lalit-mahajan-1/NutriAi/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	CatalogModule,
	BanditModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the feedback event store
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		db, err := sqlite.SetupDatabase(cfg.Database.Path, sqlite.ParseLogLevel(cfg.Database.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ""),
		)

		return db, nil
	},
)

// CacheModule provides the plan cache backend
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.CacheRepository {
		if cfg.Cache.Driver == "redis" {
			log.Info("Using Redis plan cache", zap.String("addr", cfg.RedisAddr()))
			client := redisRepo.NewClient(cfg.Cache, cfg.RedisAddr())
			return redisRepo.NewCacheRepository(client, log)
		}

		log.Info("Using in-memory plan cache")
		return memory.NewCacheRepository()
	},
)

// CatalogModule loads the dish catalog from CSV at startup
var CatalogModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*catalog.Catalog, error) {
		loader := catalogcsv.NewLoader(cfg.Catalog.Path, log)
		dishes, err := loader.Load(context.Background())
		if err != nil {
			return nil, err
		}
		return catalog.New(dishes), nil
	},
)

// BanditModule restores learning state from disk, starting fresh when no
// snapshot exists yet.
var BanditModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*banditfile.Store, *bandit.Store, error) {
		fileStore := banditfile.NewStore(cfg.Bandit.StatePath, log)

		snap, err := fileStore.Load(context.Background())
		if err != nil {
			if !errors.Is(err, errors.CodeStateNotFound) {
				return nil, nil, err
			}
			log.Info("No saved learning state, starting fresh",
				zap.String("path", cfg.Bandit.StatePath),
			)
			return fileStore, bandit.NewStore(cfg.Bandit.Alpha), nil
		}

		store, err := bandit.FromSnapshot(snap)
		if err != nil {
			log.Warn("Saved learning state is unusable, starting fresh", zap.Error(err))
			return fileStore, bandit.NewStore(cfg.Bandit.Alpha), nil
		}

		log.Info("Restored learning state", zap.String("path", cfg.Bandit.StatePath))
		return fileStore, store, nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewFeedbackRepository,
	func(cfg *config.Config, log *zap.Logger) outbound.NutritionLookup {
		return usda.NewClient(cfg.USDA.BaseURL, cfg.USDA.APIKey, cfg.USDA.Timeout, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		cat *catalog.Catalog,
		store *bandit.Store,
		feedback outbound.FeedbackRepository,
		cache outbound.CacheRepository,
		lookup outbound.NutritionLookup,
		fileStore *banditfile.Store,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.MealPlanService {
		return mealplan.NewMealPlanService(
			cat, store, feedback, cache, lookup, fileStore,
			cfg.Bandit.MaxPerWeek, cfg.Cache.PlanTTL, log,
		)
	},
)

// HTTPModule provides the API server
var HTTPModule = fx.Provide(
	apiserver.New,
)

// LifecycleModule registers application lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts the HTTP server and persists learning
// state on shutdown.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	store *bandit.Store,
	fileStore *banditfile.Store,
	server *apiserver.APIServer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting NutriAi",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down NutriAi")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if err := fileStore.Save(ctx, store.Snapshot()); err != nil {
				log.Error("Failed to persist learning state", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()

			return nil
		},
	})
}
