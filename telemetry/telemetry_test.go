package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"go.kiln.build/kiln/telemetry"
)

func TestNoopTracerIsHarmless(t *testing.T) {
	tracer := telemetry.NewNoopTracer()
	ctx, span := tracer.Start(context.Background(), "build")
	require.NotNil(t, ctx)
	span.SetAttribute("k", "v")
	span.RecordError(errors.New("boom"))
	n, err := span.Write([]byte("log line"))
	require.NoError(t, err)
	require.Equal(t, len("log line"), n)
	span.End()
	tracer.EmitPlan(ctx, []string{"compile a.cpp"})
}

func TestSetupInstallsRecordingProvider(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	telemetry.Setup(sr)

	tracer := telemetry.NewOTelTracer("kiln-setup-test")
	_, span := tracer.Start(context.Background(), "materialize")
	span.End()

	require.Len(t, sr.Ended(), 1)
	require.Equal(t, "materialize", sr.Ended()[0].Name())
}

func TestOTelTracerProducesSpans(t *testing.T) {
	tracer := telemetry.NewOTelTracer("kiln-test")
	ctx, span := tracer.Start(context.Background(), "materialize")
	require.NotNil(t, ctx)
	span.SetAttribute("project", "hello")
	span.SetAttribute("count", 3)
	span.RecordError(errors.New("compile failed"))
	span.End()
}
