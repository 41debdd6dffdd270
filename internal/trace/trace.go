package trace

import (
	"context"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const serviceName = "resume-screener"

// Config holds tracing configuration.
type Config struct {
	Endpoint string // host:port of the OTLP endpoint
	URLPath  string // path for the OTLP traces endpoint
	APIKey   string // API key sent as Authorization header
}

// zapErrorHandler routes OTel internal errors to the application logger.
type zapErrorHandler struct {
	logger *zap.Logger
}

func (h zapErrorHandler) Handle(err error) {
	h.logger.Warn("otel error", zap.Error(err))
}

// Init configures the global tracer provider with an OTLP HTTP exporter and
// returns its shutdown function.
func Init(ctx context.Context, cfg Config, logger *zap.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	otel.SetErrorHandler(zapErrorHandler{logger: logger})

	opts := []otlptracehttp.Option{
		otlptracehttp.WithInsecure(),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.URLPath != "" {
		opts = append(opts, otlptracehttp.WithURLPath(cfg.URLPath))
	}
	if cfg.APIKey != "" {
		opts = append(opts, otlptracehttp.WithHeaders(map[string]string{
			"Authorization": "Bearer " + cfg.APIKey,
		}))
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	logger.Debug("tracing enabled", zap.String("endpoint", cfg.Endpoint))

	return tp.Shutdown, nil
}

// HTTPClient returns an http.Client whose transport records client spans.
func HTTPClient(base *http.Client) *http.Client {
	if base == nil {
		base = &http.Client{}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	base.Transport = otelhttp.NewTransport(transport)
	return base
}

// Tracer returns the application tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(serviceName)
}
