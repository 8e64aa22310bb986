package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/sports-reconciler/internal/config"
	"github.com/riskibarqy/sports-reconciler/internal/domain/rawdata"
	cacherepo "github.com/riskibarqy/sports-reconciler/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/sports-reconciler/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/sports-reconciler/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/sports-reconciler/internal/interfaces/httpapi"
	"github.com/riskibarqy/sports-reconciler/internal/platform/cache"
	"github.com/riskibarqy/sports-reconciler/internal/platform/logging"
	"github.com/riskibarqy/sports-reconciler/internal/platform/resilience"
	"github.com/riskibarqy/sports-reconciler/internal/reconcile"
	"github.com/riskibarqy/sports-reconciler/internal/usecase"
)

const (
	dbMaxOpenConns    = 10
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// NewHTTPServer wires the reconcile stack. The returned cleanup stops the
// memo cache sweep and closes the database pool.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	rawRepo, closeRepo, err := newRawDataRepository(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanups = append(cleanups, closeRepo)

	normalizerOpts := []reconcile.Option{reconcile.WithLogger(logger)}
	var cacheStats usecase.CacheStatsSource
	if cfg.CacheEnabled {
		store := cache.NewStore(cache.Config{
			TTL:           cfg.CacheTTL,
			SweepInterval: cfg.CacheSweepInterval,
			MaxEntries:    cfg.CacheMaxEntries,
		})
		store.Start(ctx)
		cleanups = append(cleanups, store.Close)

		normalizerOpts = append(normalizerOpts, reconcile.WithMemo(store))
		cacheStats = store
		logger.Info("normalization memo cache enabled",
			"ttl", cfg.CacheTTL.String(),
			"sweep_interval", cfg.CacheSweepInterval.String(),
			"max_entries", cfg.CacheMaxEntries,
		)
	}

	reconcileSvc := usecase.NewReconcileService(
		rawRepo,
		reconcile.NewNormalizer(normalizerOpts...),
		reconcile.NewLiveClassifier(
			reconcile.WithGraceWindowMinutes(cfg.LiveGraceWindowMinutes),
			reconcile.WithLiveLogger(logger),
		),
		cacheStats,
		usecase.ReconcileConfig{
			MaxWorkers:      cfg.ReconcileMaxWorkers,
			StrictGameDates: cfg.StrictGameDates,
		},
		logger,
	)

	handler := httpapi.NewHandler(reconcileSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func newRawDataRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (rawdata.Repository, func(), error) {
	if !cfg.DBEnabled {
		logger.Info("stored rows served from in-memory seed")
		return memory.NewRawDataRepository(memory.SeedTeamRows(), memory.SeedGameRows()), func() {}, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", "error", err)
		}
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Enabled:          cfg.DBBreakerEnabled,
		FailureThreshold: cfg.DBBreakerFailures,
		OpenTimeout:      cfg.DBBreakerOpenTimeout,
	})
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("stored rows circuit breaker state changed", "from", string(from), "to", string(to))
	})

	var repo rawdata.Repository = postgres.NewRawDataRepository(db, breaker)
	logger.Info("stored rows served from postgres", "db_name", dbNameFromURL(cfg.DBURL))
	if !cfg.CacheEnabled {
		return repo, closeDB, nil
	}

	store := cache.NewStore(cache.Config{
		TTL:           cfg.CacheTTL,
		SweepInterval: cfg.CacheSweepInterval,
		MaxEntries:    cfg.CacheMaxEntries,
	})
	store.Start(ctx)

	return cacherepo.NewRawDataRepository(repo, store), func() {
		store.Close()
		closeDB()
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
