package telemetry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/Leyinc1/manuelbest/internal/config"
)

func newStdoutExporter(w io.Writer) (sdktrace.SpanExporter, error) {
	return stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithoutTimestamps(),
	)
}

func newCollectorExporter(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	endpoint = strings.TrimPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	return otlptracehttp.New(ctx,
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpoint(endpoint),
	)
}

func newResource(serviceName string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	)
}

// NewProvider installs the global tracer provider and returns its teardown.
// With telemetry disabled nothing is installed. With no collector endpoint
// spans go to w.
func NewProvider(ctx context.Context, cfg config.TelemetryConfig, w io.Writer, log *slog.Logger) (func(context.Context) error, error) {
	const op = "lib.telemetry.NewProvider"

	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return noop, nil
	}

	var (
		exp sdktrace.SpanExporter
		err error
	)
	if cfg.Endpoint != "" {
		log.Info("exporting traces to collector", slog.String("endpoint", cfg.Endpoint))
		exp, err = newCollectorExporter(ctx, cfg.Endpoint)
	} else {
		log.Info("exporting traces to stdout")
		exp, err = newStdoutExporter(w)
	}
	if err != nil {
		return noop, fmt.Errorf("%s: %w", op, err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(newResource(cfg.ServiceName)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
