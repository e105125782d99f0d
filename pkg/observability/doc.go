// Package observability provides structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// # Overview
//
// This package centralizes observability infrastructure including JSON logging, metrics
// collection, health checks, and distributed tracing integration.
//
// # Structured Logging
//
// Create logger:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.Infof("Server started on port %d", 8080)
//
// Context-aware logging:
//
//	logger.WithField("request_id", reqID).WithError(err).Error("Request failed")
//
// # Prometheus Metrics
//
// Initialize metrics:
//
//	metrics := observability.NewMetrics(registry)
//	metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/customers", "200").Inc()
//	metrics.HTTPRequestDuration.WithLabelValues("GET", "/api/v1/customers").Observe(0.123)
//
// Business metrics:
//
//	metrics.SignupsTotal.Inc()
//	metrics.QuotaChecksTotal.WithLabelValues("customers", "denied").Inc()
//
// # Health Checks
//
// Configure health checker:
//
//	checker := observability.NewHealthChecker(db, redisClient)
//	status := checker.Check(ctx)
//	fmt.Printf("Status: %s\n", status.Status)
//
// # OpenTelemetry
//
// Initialize tracing:
//
//	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
//		Enabled:        true,
//		ServiceName:    "punchclock-api",
//		ServiceVersion: "v1.0.0",
//		Endpoint:       "otel-collector:4317",
//	}, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
//
// # Related Packages
//
//   - pkg/config: Observability configuration
//   - pkg/api: Request logging and metrics middleware
package observability
