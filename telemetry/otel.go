package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Setup installs a real OpenTelemetry SDK TracerProvider as the global
// provider, so that NewOTelTracer's otel.Tracer(name) calls produce
// recording spans instead of falling back to the package default's
// no-op provider. Grounded on internal/app.setupOTel, adapted to accept
// caller-supplied sdktrace.SpanProcessor values in place of the
// bubbletea TUI bridge that function wired in (kiln's TUISink consumes
// ProgressSink events directly, not span events). Call once at process
// startup; a nil/empty processors list still installs a provider that
// creates and ends spans but exports nothing.
func Setup(processors ...sdktrace.SpanProcessor) {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	otel.SetTracerProvider(sdktrace.NewTracerProvider(opts...))
}

// OTelTracer is the OpenTelemetry-backed Tracer, grounded on
// internal/adapters/telemetry/provider.go's OTelTracer/OTelSpan pair.
type OTelTracer struct {
	tracer trace.Tracer
}

// NewOTelTracer wraps the global otel.Tracer registered under name.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{tracer: otel.Tracer(name)}
}

func (t *OTelTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &otelSpan{span: span}
}

func (t *OTelTracer) EmitPlan(ctx context.Context, commandDescriptions []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("commands", commandDescriptions),
		))
	}
}

type otelSpan struct {
	span trace.Span
}

func (s *otelSpan) End() { s.span.End() }

func (s *otelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

func (s *otelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

func (s *otelSpan) Write(p []byte) (int, error) {
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
