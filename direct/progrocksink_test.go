package direct_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/direct"
)

// TestProgrockSinkRecordsVertices exercises ProgrockSink against a real
// progrock.Tape, grounded on
// internal/adapters/telemetry/progrock.New's default-tape construction.
func TestProgrockSinkRecordsVertices(t *testing.T) {
	tape := progrock.NewTape()
	sink := direct.NewProgrockSink(tape)

	pc := &direct.PendingCommand{Entry: command.Entry{Command: "cc a.c", Description: "compile a.c"}}
	sink.Plan(1)
	sink.Started(pc)
	sink.Finished(pc, nil)

	require.NoError(t, sink.Close())
}

func TestProgrockSinkIgnoresUnknownVertexOnFinish(t *testing.T) {
	tape := progrock.NewTape()
	sink := direct.NewProgrockSink(tape)

	pc := &direct.PendingCommand{Entry: command.Entry{Command: "cc a.c", Description: "compile a.c"}}
	require.NotPanics(t, func() { sink.Finished(pc, nil) })
}
