package direct_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/direct"
)

func touch(t *testing.T, path string, when time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, when, when))
}

func TestEvaluateStalenessMissingOutputIsDirty(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.cpp")
	touch(t, src, time.Now())

	entries := []command.Entry{
		{Command: "compile", Inputs: []string{src}, Outputs: []string{filepath.Join(dir, "in.o")}},
	}
	pending := direct.Build(entries)
	dirty := direct.EvaluateStaleness(pending)
	require.Len(t, dirty, 1)
}

func TestEvaluateStalenessUpToDateIsClean(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.cpp")
	out := filepath.Join(dir, "in.o")
	now := time.Now()
	touch(t, src, now.Add(-time.Hour))
	touch(t, out, now)

	entries := []command.Entry{
		{Command: "compile", Inputs: []string{src}, Outputs: []string{out}},
	}
	pending := direct.Build(entries)
	dirty := direct.EvaluateStaleness(pending)
	require.Empty(t, dirty)
}

func TestEvaluateStalenessNewerInputIsDirty(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.cpp")
	out := filepath.Join(dir, "in.o")
	now := time.Now()
	touch(t, out, now.Add(-time.Hour))
	touch(t, src, now)

	entries := []command.Entry{
		{Command: "compile", Inputs: []string{src}, Outputs: []string{out}},
	}
	pending := direct.Build(entries)
	dirty := direct.EvaluateStaleness(pending)
	require.Len(t, dirty, 1)
}

func TestEvaluateStalenessDirtyUpstreamPropagates(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.cpp")
	a := filepath.Join(dir, "a.o")
	b := filepath.Join(dir, "b")
	now := time.Now()
	touch(t, src, now)
	touch(t, a, now.Add(-time.Hour))
	touch(t, b, now)

	entries := []command.Entry{
		{Command: "compile-a", Inputs: []string{src}, Outputs: []string{a}},
		{Command: "link-b", Inputs: []string{a}, Outputs: []string{b}},
	}
	pending := direct.Build(entries)
	dirty := direct.EvaluateStaleness(pending)
	require.Len(t, dirty, 2)
}

func TestEvaluateStalenessMissingDepfileIsDirty(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.cpp")
	out := filepath.Join(dir, "in.o")
	now := time.Now()
	touch(t, src, now.Add(-time.Hour))
	touch(t, out, now)

	entries := []command.Entry{
		{Command: "compile", Inputs: []string{src}, Outputs: []string{out}, Depfile: filepath.Join(dir, "missing.d")},
	}
	pending := direct.Build(entries)
	dirty := direct.EvaluateStaleness(pending)
	require.Len(t, dirty, 1)
}

func TestEvaluateStalenessOrdersDepthDescending(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.cpp")
	touch(t, src, time.Now())

	entries := []command.Entry{
		{Command: "compile-a", Inputs: []string{src}, Outputs: []string{filepath.Join(dir, "a.o")}},
		{Command: "link-b", Inputs: []string{filepath.Join(dir, "a.o")}, Outputs: []string{filepath.Join(dir, "b")}},
	}
	pending := direct.Build(entries)
	dirty := direct.EvaluateStaleness(pending)
	require.Len(t, dirty, 2)
	require.GreaterOrEqual(t, dirty[0].Depth, dirty[1].Depth)
}
