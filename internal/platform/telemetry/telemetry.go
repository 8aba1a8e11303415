// Package telemetry wires up the OpenTelemetry SDK: a TracerProvider and a
// MeterProvider, each backed by either a stdout exporter (for local runs) or
// OTLP over HTTP (for a collector). NewMetrics registers the HTTP server
// instruments the middleware records into.
//
// Both providers are installed globally via the otel package, so downstream
// code can use otel.Tracer and otel.Meter without threading providers around.
// Callers own shutdown:
//
//	tp, err := telemetry.InitTracer(ctx, "taskmanager-api", cfg.Exporter, cfg.Endpoint)
//	defer tp.Shutdown(ctx)
package telemetry

import (
	"context"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Exporter names matching the telemetry.exporter config key.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Label keys shared between the middleware and any dashboards built on top.
var (
	AttrHTTPMethod = attribute.Key("http.method")
	AttrHTTPStatus = attribute.Key("http.status_code")
	AttrResult     = attribute.Key("result")
)

// Metrics bundles the pre-registered server instruments.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
}

// InitTracer builds a TracerProvider for the named exporter, installs it as
// the global provider, and registers the W3C TraceContext and Baggage
// propagators. Shut the returned provider down on exit to flush spans.
func InitTracer(ctx context.Context, serviceName, exporter, endpoint string) (*sdktrace.TracerProvider, error) {
	var (
		spanExporter sdktrace.SpanExporter
		err          error
	)
	switch exporter {
	case ExporterOTLP:
		var opts []otlptracehttp.Option
		opts, err = otlpOptions(endpoint,
			otlptracehttp.WithEndpoint, otlptracehttp.WithInsecure)
		if err == nil {
			spanExporter, err = otlptracehttp.New(ctx, opts...)
		}
	case ExporterStdout:
		spanExporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		err = fmt.Errorf("unsupported exporter %q", exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	res, err := serviceResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, nil
}

// InitMeter builds a MeterProvider for the named exporter and installs it
// globally. Metrics flush on the SDK's default periodic interval; Shutdown
// forces a final export.
func InitMeter(ctx context.Context, serviceName, exporter, endpoint string) (*sdkmetric.MeterProvider, error) {
	var (
		metricExporter sdkmetric.Exporter
		err            error
	)
	switch exporter {
	case ExporterOTLP:
		var opts []otlpmetrichttp.Option
		opts, err = otlpOptions(endpoint,
			otlpmetrichttp.WithEndpoint, otlpmetrichttp.WithInsecure)
		if err == nil {
			metricExporter, err = otlpmetrichttp.New(ctx, opts...)
		}
	case ExporterStdout:
		metricExporter, err = stdoutmetric.New()
	default:
		err = fmt.Errorf("unsupported exporter %q", exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := serviceResource(serviceName)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// NewMetrics registers the server instruments on a meter scoped to the
// service name.
func NewMetrics(mp *sdkmetric.MeterProvider, serviceName string) (*Metrics, error) {
	meter := mp.Meter(serviceName)

	duration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Duration of incoming HTTP requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.duration: %w", err)
	}

	total, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of incoming HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.request.total: %w", err)
	}

	return &Metrics{ServerRequestDuration: duration, ServerRequestTotal: total}, nil
}

// otlpOptions translates an endpoint URL into OTLP client options. The OTLP
// HTTP clients take a bare host:port plus a separate insecure flag, so the
// URL form from config ("http://collector:4318") is split here. Generic over
// the trace and metric option types, which share no interface.
func otlpOptions[O any](endpoint string, withEndpoint func(string) O, withInsecure func() O) ([]O, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("otlp exporter requires an endpoint")
	}

	target := endpoint
	insecure := true
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		target = u.Host
		insecure = u.Scheme != "https"
	}

	opts := []O{withEndpoint(target)}
	if insecure {
		opts = append(opts, withInsecure())
	}
	return opts, nil
}

func serviceResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}
