// Package telemetry defines the tracer/span port the direct builder and
// emitters record scheduling spans through, plus an OpenTelemetry
// adapter and a no-op fallback. Grounded on
// internal/core/ports/telemetry.go, adapted from EmitPlan(taskNames
// []string) to EmitPlan(commandDescriptions []string) since kiln's unit
// of work is a command.Entry rather than a domain.Task.
package telemetry

import (
	"context"
	"io"
)

// Tracer is the entry point for creating spans around a build run.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
	// EmitPlan records the set of command descriptions the scheduler is
	// about to run, once depth assignment and staleness evaluation have
	// produced the dirty set.
	EmitPlan(ctx context.Context, commandDescriptions []string)
}

// Span represents one unit of work: a single command's execution, or a
// whole build/emit invocation.
type Span interface {
	io.Writer
	End()
	RecordError(err error)
	SetAttribute(key string, value any)
}
