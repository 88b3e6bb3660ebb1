package direct

import (
	"context"
	"sync"

	"go.kiln.build/kiln/telemetry"
)

// TelemetrySink decorates another ProgressSink with OpenTelemetry spans:
// one EmitPlan event naming every command about to run, plus one span
// per command bracketing its Started/Finished lifecycle. Grounded on
// internal/core/ports.Tracer's EmitPlan/Start pair as internal/app.App
// drives them around a scheduler run, wired here via composition rather
// than a new Run parameter so existing ProgressSink implementations
// (TermSink, LoggingSink, ProgrockSink, TUISink) stay tracer-agnostic.
type TelemetrySink struct {
	ctx          context.Context
	tracer       telemetry.Tracer
	inner        ProgressSink
	descriptions []string

	mu    sync.Mutex
	spans map[*PendingCommand]telemetry.Span
}

// NewTelemetrySink wraps inner, recording spans through tracer rooted at
// ctx. descriptions is the full set of command descriptions about to
// run, reported once via Tracer.EmitPlan when Plan is called.
func NewTelemetrySink(ctx context.Context, tracer telemetry.Tracer, inner ProgressSink, descriptions []string) *TelemetrySink {
	return &TelemetrySink{
		ctx:          ctx,
		tracer:       tracer,
		inner:        inner,
		descriptions: descriptions,
		spans:        make(map[*PendingCommand]telemetry.Span),
	}
}

func (s *TelemetrySink) Plan(total int) {
	s.tracer.EmitPlan(s.ctx, s.descriptions)
	s.inner.Plan(total)
}

func (s *TelemetrySink) Started(pc *PendingCommand) {
	_, span := s.tracer.Start(s.ctx, pc.Description)
	s.mu.Lock()
	s.spans[pc] = span
	s.mu.Unlock()
	s.inner.Started(pc)
}

func (s *TelemetrySink) Finished(pc *PendingCommand, err error) {
	s.mu.Lock()
	span, ok := s.spans[pc]
	delete(s.spans, pc)
	s.mu.Unlock()
	if ok {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}
	s.inner.Finished(pc, err)
}

func (s *TelemetrySink) Close() error {
	return s.inner.Close()
}
