package snippets

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var (
	remoteMetricsEnabled  bool
	remoteRequestDuration metric.Float64Histogram
	remoteRequestErrors   metric.Int64Counter
	remoteTracer          trace.Tracer
)

func InitTelemetry(serviceName string) {
	remoteTracer = otel.Tracer(serviceName + "/remote")
	meter := otel.Meter(serviceName + "/remote")

	var err error
	remoteRequestDuration, err = meter.Float64Histogram(
		"snipdeck_remote_request_duration_seconds",
		metric.WithDescription("Latency of snippet service requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return
	}

	remoteRequestErrors, err = meter.Int64Counter(
		"snipdeck_remote_errors_total",
		metric.WithDescription("Failed snippet service requests"),
	)
	if err != nil {
		return
	}

	remoteMetricsEnabled = true
}

// InstrumentedTransport wraps next with a span and metrics per snippet service call.
type InstrumentedTransport struct {
	Next http.RoundTripper
}

func NewInstrumentedClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: InstrumentedTransport{Next: http.DefaultTransport},
	}
}

func (t InstrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	start := time.Now()
	route := remoteRoute(req.URL.Path)
	ctx, span := startRemoteSpan(req.Context(), req.Method, route)

	out := req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	res, err := next.RoundTrip(out)
	status := 0
	if res != nil {
		status = res.StatusCode
	}
	recordRemoteTelemetry(ctx, span, req.Method, route, status, err, time.Since(start))
	return res, err
}

func startRemoteSpan(ctx context.Context, method, route string) (context.Context, trace.Span) {
	tracer := remoteTracer
	if tracer == nil {
		tracer = otel.Tracer("snipdeck-remote")
	}
	ctx, span := tracer.Start(ctx, "REMOTE "+method+" "+route, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	)
	return ctx, span
}

func recordRemoteTelemetry(ctx context.Context, span trace.Span, method, route string, status int, err error, duration time.Duration) {
	failed := err != nil || status >= 500
	if status > 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
	}
	if failed {
		span.SetStatus(codes.Error, "remote_error")
	}
	span.End()

	if !remoteMetricsEnabled {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	}
	remoteRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if failed {
		remoteRequestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// remoteRoute collapses slugs so span names and metric labels stay low cardinality.
func remoteRoute(path string) string {
	idx := strings.Index(path, pathSnippets)
	if idx < 0 {
		return "unknown_route"
	}
	rest := strings.Trim(path[idx+len(pathSnippets):], "/")
	if rest == "" {
		return pathSnippets
	}
	return pathSnippets + "/{slug}"
}
