package direct_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/direct"
	"go.kiln.build/kiln/telemetry"
)

func TestTelemetrySinkEmitsPlanAndSpans(t *testing.T) {
	tracer := telemetry.NewOTelTracer("telemetrysink-test")
	inner := &recordingSink{}
	sink := direct.NewTelemetrySink(context.Background(), tracer, inner, []string{"compile a.c", "compile b.c"})

	a := &direct.PendingCommand{Entry: command.Entry{Command: "cc a.c", Description: "compile a.c"}}
	b := &direct.PendingCommand{Entry: command.Entry{Command: "cc b.c", Description: "compile b.c"}}

	sink.Plan(2)
	sink.Started(a)
	sink.Finished(a, nil)
	sink.Started(b)
	sink.Finished(b, errors.New("boom"))
	require.NoError(t, sink.Close())

	require.Equal(t, []string{"cc a.c", "cc b.c"}, inner.started)
	require.Equal(t, []string{"cc a.c", "cc b.c"}, inner.finished)
}
