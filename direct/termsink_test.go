package direct_test

import (
	"bytes"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/direct"
)

func TestTermSinkWritesOneLinePerEventWhenNotATTY(t *testing.T) {
	var buf bytes.Buffer
	sink := direct.NewTermSink(&buf)

	pc := &direct.PendingCommand{Entry: command.Entry{Command: "echo hi", Description: "say hi"}}
	sink.Plan(1)
	sink.Started(pc)
	sink.Finished(pc, nil)
	require.NoError(t, sink.Close())

	out := buf.String()
	require.Contains(t, out, "say hi")
	require.Contains(t, out, "running")
	require.Contains(t, out, "ok")
}

// TestTermSinkRewritesOneLineOnARealTTY opens an actual pseudo-terminal
// (rather than a bytes.Buffer, which go-isatty never reports as a TTY)
// to exercise the `\r`-rewrite branch NewTermSink only takes when its
// writer really is a terminal. Grounded on
// internal/adapters/shell.Executor's use of github.com/creack/pty to
// run hermetic tests against a real pty pair.
func TestTermSinkRewritesOneLineOnARealTTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	defer ptmx.Close()
	defer tty.Close()

	sink := direct.NewTermSink(tty)
	pc := &direct.PendingCommand{Entry: command.Entry{Command: "echo hi", Description: "say hi"}}
	sink.Plan(1)
	sink.Started(pc)

	buf := make([]byte, 256)
	n, err := ptmx.Read(buf)
	require.NoError(t, err)
	require.Contains(t, string(buf[:n]), "\r")
	require.Contains(t, string(buf[:n]), "say hi")
}
