package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"honeytrap-lab/internal/api"
	"honeytrap-lab/internal/api/handlers"
	"honeytrap-lab/internal/config"
	"honeytrap-lab/internal/domain/services"
	"honeytrap-lab/internal/infrastructure/cache"
	"honeytrap-lab/internal/infrastructure/database"
	"honeytrap-lab/internal/infrastructure/database/repository"
	"honeytrap-lab/internal/infrastructure/store"
	"honeytrap-lab/internal/notifier"
	"honeytrap-lab/pkg/logger"
)

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting Honeytrap Lab")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: it backs rate limiting and the redis session store
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer redisCache.Close()
	}

	// Postgres is optional: it archives dispatched intelligence reports
	var db *database.PostgresDB
	var archive services.ReportArchive
	if cfg.Database.Enabled {
		db, err = database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
		}
		defer db.Close()

		reports := repository.NewReportRepository(db.Pool())
		if err := reports.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare reports schema")
		}
		archive = reports
	}

	// Session store backend
	var sessions store.Store
	switch cfg.Store.Backend {
	case "redis":
		if redisCache == nil {
			log.Fatal().Msg("store.backend is redis but redis is not enabled")
		}
		sessions = store.NewRedis(redisCache, cfg.Store.SessionTTL)
		log.Info().Msg("using redis session store")
	default:
		sessions = store.NewMemory()
		log.Info().Msg("using in-memory session store")
	}

	// Core pipeline: catalog -> detector, extractor, reply agent
	catalog := services.NewCatalog(cfg.Detection.Keywords)
	detector := services.NewDetector(catalog)
	extractor := services.NewExtractor()
	agent := services.NewAgent(rand.New(rand.NewSource(time.Now().UnixNano())))

	var cb notifier.Notifier
	if cfg.Callback.Enabled {
		cb = notifier.NewHTTP(cfg.Callback, log)
		log.Info().Str("url", cfg.Callback.URL).Msg("callback notifier enabled")
	} else {
		log.Warn().Msg("callback delivery disabled")
	}

	engine := services.NewEngine(detector, extractor, agent, sessions, cb, archive, services.EngineConfig{
		MinCallbackTurns: cfg.Detection.MinCallbackTurns,
		CallbackEnabled:  cfg.Callback.Enabled,
	}, log)

	h := handlers.NewHandlers(handlers.Dependencies{
		Engine: engine,
		Cache:  redisCache,
		DB:     db,
		Logger: log,
	})

	router := api.NewRouter(cfg, h, redisCache, log)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("stopped")
}
