package direct_test

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/direct"
)

// TestTUISinkRunsHeadlessly drives TUISink against an io.Discard/
// strings.Reader pair instead of a real terminal, grounded on
// internal/app/app_test.go's tea.WithInput(strings.NewReader(""))/
// tea.WithOutput(io.Discard) pattern for headless bubbletea tests.
func TestTUISinkRunsHeadlessly(t *testing.T) {
	sink := direct.NewTUISink(tea.WithInput(strings.NewReader("")), tea.WithOutput(io.Discard))

	pc := &direct.PendingCommand{Entry: command.Entry{Command: "cc a.c", Description: "compile a.c"}}
	sink.Plan(1)
	sink.Started(pc)
	sink.Finished(pc, nil)

	require.NoError(t, sink.Close())
}
