package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/cmd/kiln/commands"
	"go.kiln.build/kiln/command"
)

func TestVersionPrintsVersion(t *testing.T) {
	var out bytes.Buffer
	cli := commands.New()
	cli.SetOut(&out)
	cli.SetArgs([]string{"version"})
	require.NoError(t, cli.Execute(context.Background()))
	require.Contains(t, out.String(), "dev")
}

func TestDoctorListsToolchainsAndCapabilities(t *testing.T) {
	var out bytes.Buffer
	cli := commands.New()
	cli.SetOut(&out)
	cli.SetArgs([]string{"doctor"})
	require.NoError(t, cli.Execute(context.Background()))
	require.Contains(t, out.String(), "Registered toolchains:")
	require.Contains(t, out.String(), "CPUs:")
}

func TestInitScaffoldsFiles(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	cli := commands.New()
	cli.SetArgs([]string{"init"})
	require.NoError(t, cli.Execute(context.Background()))

	_, err = os.Stat(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "kiln.yaml"))
	require.NoError(t, err)
}

func TestInitRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644))

	cli := commands.New()
	cli.SetArgs([]string{"init"})
	require.Error(t, cli.Execute(context.Background()))
}

func TestGraphRendersDot(t *testing.T) {
	dir := t.TempDir()
	entries := []command.Entry{
		{Command: "cc -c a.c -o a.o", Outputs: []string{"a.o"}, Description: "compile a.c"},
		{Command: "cc a.o -o app", Inputs: []string{"a.o"}, Outputs: []string{"app"}, Description: "link app"},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	path := filepath.Join(dir, "commands.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	var out bytes.Buffer
	cli := commands.New()
	cli.SetOut(&out)
	cli.SetArgs([]string{"graph", path})
	require.NoError(t, cli.Execute(context.Background()))

	got := out.String()
	require.Contains(t, got, "digraph kiln")
	require.Contains(t, got, `label="compile a.c"`)
	require.Contains(t, got, "n0 -> n1")
}
