// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Shanhai atlas HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the catalog source (embedded, file, PostgreSQL or SQLite).
//  4. Load the catalog once into memory.
//  5. Open the session store (memory or Redis).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/shanhai/internal/api"
	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/bestiary"
	"github.com/taibuivan/shanhai/internal/layout"
	"github.com/taibuivan/shanhai/internal/platform/config"
	"github.com/taibuivan/shanhai/internal/platform/constants"
	"github.com/taibuivan/shanhai/internal/platform/migration"
	pgstore "github.com/taibuivan/shanhai/internal/platform/postgres"
	redisstore "github.com/taibuivan/shanhai/internal/platform/redis"
	"github.com/taibuivan/shanhai/internal/platform/sec"
	"github.com/taibuivan/shanhai/internal/session"
	"github.com/taibuivan/shanhai/internal/view"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[Shanhai] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("catalog_source", cfg.CatalogSource),
		slog.String("session_store", cfg.SessionStore),
	)

	// Root context for background workers; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.CatalogLoadTimeout)
	defer startupCancel()

	// ── 3. Catalog Source ─────────────────────────────────────────────────
	source, checkCatalog, closeSource, err := openSource(startupCtx, cfg, log)
	must(log, err, "open catalog source")
	defer closeSource()

	// ── 4. Catalog ────────────────────────────────────────────────────────
	catalog, err := atlas.Load(startupCtx, source, log)
	must(log, err, "load catalog")

	// ── 5. Session Store ──────────────────────────────────────────────────
	var (
		store      session.Store
		checkCache func() error
	)

	switch cfg.SessionStore {
	case config.SessionRedis:
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		store = session.NewRedisStore(rdb, catalog)
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	default:
		memory := session.NewMemoryStore()
		go memory.Run(rootCtx, constants.SessionSweepInterval)
		store = memory
	}

	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.SessionIssuer)
	must(log, err, "initialize session token service")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	engine := layout.NewEngine(cfg.LayoutRadius)
	projector := view.NewProjector(catalog, engine)

	catalogHandler := bestiary.NewHandler(bestiary.NewService(catalog, engine, log))
	sessionHandler := session.NewHandler(session.NewService(store, tokens, catalog, projector, cfg.SessionTTL, log))

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCatalog:       checkCatalog,
		CheckCache:         checkCache,
		CatalogSource:      source.Name(),
		CatalogFingerprint: catalog.Fingerprint(),
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, tokens, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalogHandler,
		Sessions:  sessionHandler,
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// openSource builds the configured catalog source. The returned checker feeds
// the readiness probe and is nil for sources without a backing store.
func openSource(ctx context.Context, cfg *config.Config, log *slog.Logger) (atlas.Source, func() error, func(), error) {
	noop := func() {}

	switch cfg.CatalogSource {
	case config.CatalogFile:
		return atlas.FileSource{Path: cfg.CatalogFile}, nil, noop, nil

	case config.CatalogPostgres:
		version, err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log)
		if err != nil {
			return nil, nil, noop, err
		}
		log.Info("catalog_schema_ready", slog.Uint64("version", uint64(version)))

		pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, noop, err
		}
		check := func() error { return pgstore.Ping(context.Background(), pool) }
		closePool := func() {
			log.Info("closing postgres pool")
			pool.Close()
		}
		return atlas.NewPostgresSource(pool), check, closePool, nil

	case config.CatalogSQLite:
		db, err := atlas.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, noop, err
		}
		check := func() error { return db.PingContext(context.Background()) }
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Error("sqlite close error", slog.Any("error", err))
			}
		}
		return atlas.NewSQLiteSource(db), check, closeDB, nil

	case config.CatalogEmbedded:
		return atlas.EmbeddedSource{}, nil, noop, nil

	default:
		return nil, nil, noop, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
	}
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
