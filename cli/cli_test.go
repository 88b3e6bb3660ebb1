package cli_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/cli"
)

func TestParseArgsSeparatesOptionsAndPositional(t *testing.T) {
	args := cli.ParseArgs([]string{"gen", "--ninja=ninjabuild", "--config=debug", "extra.txt", "--watch"})

	require.Equal(t, "ninjabuild", args.Options["ninja"])
	require.Equal(t, "debug", args.Options["config"])
	_, hasWatch := args.Options["watch"]
	require.True(t, hasWatch)
	require.Equal(t, "", args.Options["watch"])
	require.Equal(t, []string{"extra.txt"}, args.Positional)
}

func TestParseArgsSkipsProgramName(t *testing.T) {
	args := cli.ParseArgs([]string{"--ninja", "gen"})
	_, hasNinja := args.Options["ninja"]
	require.False(t, hasNinja)
	require.Equal(t, []string{"gen"}, args.Positional)
}

func TestUsageListsEmitters(t *testing.T) {
	usage := cli.Usage("gen")
	require.Contains(t, usage, "--ninja")
	require.Contains(t, usage, "--msvc")
}
