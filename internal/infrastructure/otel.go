package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"payrolletl/internal/config"
	"payrolletl/pkg/contracts"
)

// TracerName identifies spans emitted by this module
const TracerName = "payrolletl"

// ShutdownFunc flushes and releases telemetry resources
type ShutdownFunc func(ctx context.Context) error

// InitTracing installs a global tracer provider that writes finished spans as
// JSON to cfg.TraceFile. With no trace file the global no-op provider is kept
// and the returned shutdown does nothing.
func InitTracing(cfg config.TelemetryConfig, logger *slog.Logger) (ShutdownFunc, error) {
	if cfg.TraceFile == "" {
		return func(context.Context) error { return nil }, nil
	}
	if logger == nil {
		logger = GetLogger()
	}

	file, err := openLogFile(cfg.TraceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", config.AppName),
		attribute.String("service.version", contracts.Version),
	)

	// Batch runs are short; export each span as it ends.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	logger.Info("Tracing initialized", slog.String("trace_file", cfg.TraceFile))

	return func(ctx context.Context) error {
		shutdownErr := tp.Shutdown(ctx)
		if closeErr := file.Close(); shutdownErr == nil {
			shutdownErr = closeErr
		}
		return shutdownErr
	}, nil
}

// Tracer returns the module tracer from the current global provider
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
