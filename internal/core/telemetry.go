package core

import (
	"context"
	"net/http"
	"runtime"

	"overlayapi/internal/configuration"
	"overlayapi/internal/models"

	"github.com/grafana/pyroscope-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// StartTracing installs an OTLP tracer provider. The returned function flushes and
// stops it; it is a no-op when tracing is disabled.
func StartTracing(ctx context.Context, config models.TracingConfiguration) func(context.Context) error {
	if !config.Enabled {
		return func(context.Context) error { return nil }
	}

	options := []otlptracehttp.Option{otlptracehttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		options = append(options, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, options...)
	if err != nil {
		zap.L().Fatal("Failed to create trace exporter", zap.String("endpoint", config.Endpoint), zap.Error(err))
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", config.ServiceName))),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	zap.L().Info("Tracing enabled", zap.String("endpoint", config.Endpoint))
	return provider.Shutdown
}

func instrument(handler http.Handler, config models.TracingConfiguration) http.Handler {
	if !config.Enabled {
		return handler
	}
	return otelhttp.NewHandler(handler, configuration.AppName)
}

// StartProfiling streams profiles to a Pyroscope server. The returned function stops it.
func StartProfiling(config models.ProfilingConfiguration) func() {
	if !config.Enabled {
		return func() {}
	}

	runtime.SetMutexProfileFraction(5)
	runtime.SetBlockProfileRate(5)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: config.ApplicationName,
		ServerAddress:   config.ServerAddress,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileBlockCount,
		},
	})
	if err != nil {
		zap.L().Fatal("Failed to start profiler", zap.String("server", config.ServerAddress), zap.Error(err))
	}

	zap.L().Info("Profiling enabled", zap.String("server", config.ServerAddress))
	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			zap.L().Warn("Failed to stop profiler", zap.Error(stopErr))
		}
	}
}
