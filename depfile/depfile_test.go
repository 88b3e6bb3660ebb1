package depfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/depfile"
)

func TestParseBytesRoundTrip(t *testing.T) {
	inputs := depfile.ParseBytes([]byte(`out: a b\ c d\\e`))
	require.Equal(t, []string{"a", "b c", "d\\e"}, inputs)
}

func TestParseBytesLineContinuation(t *testing.T) {
	inputs := depfile.ParseBytes([]byte("out: a \\\n b c\n"))
	require.Equal(t, []string{"a", "b", "c"}, inputs)
}

func TestParseMultipleOutputsIgnored(t *testing.T) {
	inputs := depfile.ParseBytes([]byte(`a.o b.o: x.cpp y.h`))
	require.Equal(t, []string{"x.cpp", "y.h"}, inputs)
}

func TestParseMissingFileIsUnavailable(t *testing.T) {
	_, err := depfile.Parse(filepath.Join(t.TempDir(), "missing.d"))
	require.ErrorIs(t, err, depfile.ErrUnavailable)
}

func TestParseEmptyFileIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.d")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := depfile.Parse(path)
	require.ErrorIs(t, err, depfile.ErrUnavailable)
}
