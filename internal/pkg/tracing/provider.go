package tracing

import (
	"context"
	"net/url"

	"github.com/Kargones/v8run/internal/pkg/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName - имя tracer-а для всех span-ов v8run.
const InstrumentationName = "github.com/Kargones/v8run"

// NewTracerProvider создаёт OTel TracerProvider с OTLP HTTP exporter-ом
// и регистрирует его глобально. Возвращает shutdown function.
// При выключенном трейсинге возвращается nop shutdown.
func NewTracerProvider(cfg Config, logger logging.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		logger.Debug("трейсинг выключен, используется nop provider")
		return NewNopTracerProvider(), nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	// otlptracehttp.WithEndpoint принимает только host:port.
	endpointHost := cfg.Endpoint
	if u, parseErr := url.Parse(cfg.Endpoint); parseErr == nil && u.Host != "" {
		endpointHost = u.Host
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpointHost),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SamplingRate)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("OpenTelemetry трейсинг инициализирован",
		"endpoint", cfg.Endpoint,
		"service_name", cfg.ServiceName,
		"environment", cfg.Environment,
		"sampling_rate", cfg.SamplingRate,
	)

	return tp.Shutdown, nil
}

// NewNopTracerProvider возвращает nop shutdown function.
func NewNopTracerProvider() func(context.Context) error {
	return func(_ context.Context) error { return nil }
}

// Tracer возвращает tracer v8run из глобального provider-а.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// ContextWithOTelTraceID кладёт в context remote span context с указанным trace ID,
// чтобы span-ы запуска разделяли trace_id с логами.
// При невалидном traceIDHex context возвращается без изменений.
func ContextWithOTelTraceID(ctx context.Context, traceIDHex string) context.Context {
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	return trace.ContextWithRemoteSpanContext(ctx, sc)
}

// newSampler: remote parent, выставленный ContextWithOTelTraceID, тоже
// проходит через TraceIDRatioBased, иначе SamplingRate бы игнорировался.
func newSampler(rate float64) sdktrace.Sampler {
	return sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(rate),
		sdktrace.WithRemoteParentSampled(sdktrace.TraceIDRatioBased(rate)),
	)
}
