package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/cli"
	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/project"
	"go.kiln.build/kiln/stdopt"
)

func TestGenerateRequiresAnEmitter(t *testing.T) {
	err := cli.Generate(t.TempDir(), cli.Args{Options: map[string]string{}}, nil, []string{""}, project.OSAny)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no emitters specified")
}

func TestGenerateNinjaWritesBuildFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int main(){}"), 0o644))

	p := project.New("app", project.Executable)
	option.Add(p.Base.Options, stdopt.Files, []string{src})

	args := cli.Args{Options: map[string]string{"ninja": "out"}}
	err := cli.Generate(dir, args, []*project.Project{p}, []string{""}, project.OSAny)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "out", "build.ninja"))
	require.NoError(t, err)
}

func TestGenerateDumpCommandsWritesJSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int main(){}"), 0o644))

	p := project.New("app", project.Executable)
	option.Add(p.Base.Options, stdopt.Files, []string{src})

	args := cli.Args{Options: map[string]string{"dump-commands": "commands.json"}}
	err := cli.Generate(dir, args, []*project.Project{p}, []string{""}, project.OSAny)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "commands.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Command")
}

func TestRunDirectPrintsSummaryWhenNothingIsDirty(t *testing.T) {
	dir := t.TempDir()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w

	runErr := cli.RunDirect(context.Background(), nil, "", project.OSAny, dir, filepath.Join(dir, "data"), 2, nil)
	require.NoError(t, w.Close())
	os.Stdout = stdout
	require.NoError(t, runErr)

	buf := make([]byte, 256)
	n, _ := r.Read(buf)
	require.Contains(t, string(buf[:n]), "0 targets rebuilt. (Everything up to date.)")
}

func TestRunDirectBuildsExecutable(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int main(){}"), 0o644))

	p := project.New("app", project.Executable)
	option.Add(p.Base.Options, stdopt.Files, []string{src})

	err := cli.RunDirect(context.Background(), []*project.Project{p}, "", project.OSAny, dir, filepath.Join(dir, "data"), 2, nil)
	// The toolchain's compiler/linker binaries are not necessarily present
	// in this environment, so accept either a clean run or a subprocess
	// failure — what matters is that materialization and scheduling
	// happen without panicking on nil derefs or malformed commands.
	if err != nil {
		require.Contains(t, err.Error(), "exit")
	}
}
