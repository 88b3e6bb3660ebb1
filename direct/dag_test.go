package direct_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/direct"
)

func findByOutput(pending []*direct.PendingCommand, output string) *direct.PendingCommand {
	for _, pc := range pending {
		for _, out := range pc.Outputs {
			if out == output {
				return pc
			}
		}
	}
	return nil
}

// TestDiamondDepthAssignment is spec.md's worked example: A produces a; B
// and C each consume a and produce b/c respectively; D consumes b and c.
// Depths must resolve D=0, B=1, C=1, A=2.
func TestDiamondDepthAssignment(t *testing.T) {
	entries := []command.Entry{
		{Command: "make-a", Outputs: []string{"a"}},
		{Command: "make-b", Inputs: []string{"a"}, Outputs: []string{"b"}},
		{Command: "make-c", Inputs: []string{"a"}, Outputs: []string{"c"}},
		{Command: "make-d", Inputs: []string{"b", "c"}, Outputs: []string{"d"}},
	}

	pending := direct.Build(entries)

	require.Equal(t, 0, findByOutput(pending, "d").Depth)
	require.Equal(t, 1, findByOutput(pending, "b").Depth)
	require.Equal(t, 1, findByOutput(pending, "c").Depth)
	require.Equal(t, 2, findByOutput(pending, "a").Depth)
}

func TestBuildLinksUpstreamProducers(t *testing.T) {
	entries := []command.Entry{
		{Command: "make-a", Outputs: []string{"a"}},
		{Command: "make-b", Inputs: []string{"a"}, Outputs: []string{"b"}},
	}

	pending := direct.Build(entries)
	b := findByOutput(pending, "b")
	require.Len(t, b.Upstream, 1)
	require.Equal(t, "make-a", b.Upstream[0].Command)
}

func TestBuildIgnoresInputsWithNoProducer(t *testing.T) {
	entries := []command.Entry{
		{Command: "compile", Inputs: []string{"hello.cpp"}, Outputs: []string{"hello.o"}},
	}

	pending := direct.Build(entries)
	require.Empty(t, pending[0].Upstream)
	require.Equal(t, 0, pending[0].Depth)
}

func TestBuildLastWriteWinsOnDuplicateOutput(t *testing.T) {
	entries := []command.Entry{
		{Command: "first", Outputs: []string{"out"}},
		{Command: "second", Outputs: []string{"out"}},
		{Command: "consumer", Inputs: []string{"out"}, Outputs: []string{"final"}},
	}

	pending := direct.Build(entries)
	consumer := findByOutput(pending, "final")
	require.Len(t, consumer.Upstream, 1)
	require.Equal(t, "second", consumer.Upstream[0].Command)
}
