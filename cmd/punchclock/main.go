package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite driver for dev mode
	"github.com/prometheus/client_golang/prometheus"

	"github.com/punchclockhq/punchclock/pkg/accounts"
	"github.com/punchclockhq/punchclock/pkg/api"
	"github.com/punchclockhq/punchclock/pkg/config"
	"github.com/punchclockhq/punchclock/pkg/dashboard"
	"github.com/punchclockhq/punchclock/pkg/lifecycle"
	"github.com/punchclockhq/punchclock/pkg/observability"
	"github.com/punchclockhq/punchclock/pkg/quota"
	"github.com/punchclockhq/punchclock/pkg/store"
	"github.com/punchclockhq/punchclock/pkg/timesheet"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info("starting punchclock")

	ctx := context.Background()

	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("failed to initialize OpenTelemetry")
		os.Exit(1)
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		logger.WithError(err).Error("failed to open database")
		os.Exit(1)
	}
	if err := st.Migrate(ctx); err != nil {
		logger.WithError(err).Error("failed to run migrations")
		os.Exit(1)
	}
	logger.WithField("driver", cfg.Database.Driver).Info("database ready")

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("redis unreachable, dashboard cache runs local-only")
		}
	}

	cache, err := dashboard.NewCache(redisClient, cfg.Redis.CacheTTL)
	if err != nil {
		logger.WithError(err).Error("failed to initialize dashboard cache")
		os.Exit(1)
	}

	var metrics *observability.Metrics
	registry := prometheus.NewRegistry()
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
	}

	// Mirror request metrics onto the OTLP pipeline only when a collector is
	// configured; the global meter is a no-op otherwise.
	var otelMetrics *observability.OTelMetrics
	if providers != nil {
		otelMetrics, err = observability.NewOTelMetrics()
		if err != nil {
			logger.WithError(err).Error("failed to create telemetry instruments")
			os.Exit(1)
		}
	}

	server := api.NewServer(api.Options{
		Store:     st,
		Accounts:  accounts.NewService(st),
		Quota:     quota.NewChecker(st),
		Lifecycle: lifecycle.NewService(st),
		Timesheet: timesheet.NewService(st),
		Dashboard: dashboard.NewService(st, cache),
		Logger:    logger,
		Metrics:   metrics,
		OTel:      otelMetrics,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Health and metrics live on their own port so probes and scrapes stay
	// off the API listener.
	opsMux := http.NewServeMux()
	observability.RegisterHealthRoutes(opsMux, observability.NewHealthChecker(st.DB(), redisClient))
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(opsMux, registry)
	}
	opsServer := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.HealthPort,
		Handler: opsMux,
	}
	go func() {
		logger.WithField("addr", opsServer.Addr).Info("ops server listening")
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("ops server failed")
		}
	}()

	stopStats := make(chan struct{})
	if metrics != nil {
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					metrics.CollectDBStats(st.DB().Stats())
				case <-stopStats:
					return
				}
			}
		}()
	}

	go func() {
		logger.WithField("addr", httpServer.Addr).Info("api server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("api server failed")
			os.Exit(1)
		}
	}()

	sm := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		close(stopStats)
		return opsServer.Shutdown(ctx)
	})
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		if redisClient != nil {
			return redisClient.Close()
		}
		return nil
	})
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		return st.Close()
	})
	if providers != nil {
		sm.RegisterShutdownFunc(func(ctx context.Context) error {
			return observability.ShutdownOTel(ctx, providers, logger)
		})
	}

	if err := sm.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("shutdown finished with errors")
		os.Exit(1)
	}
}
