package msvc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/msvc"
	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/project"
	"go.kiln.build/kiln/stdopt"
)

func TestEmitWritesVcxprojPerProject(t *testing.T) {
	dir := t.TempDir()

	p := project.New("hello", project.Executable)
	option.Add(p.Base.Options, stdopt.Files, []string{"hello.cpp"})

	err := msvc.Emit(dir, []*project.Project{p}, []string{"Debug", "Release"}, project.OSWindows)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "hello.vcxproj"))
	require.NoError(t, err)
	require.Contains(t, string(data), `<?xml version="1.0" encoding="utf-8"?>`)
	require.Contains(t, string(data), `Include="Debug"`)
	require.Contains(t, string(data), `ClCompile Include="hello.cpp"`)
}

func TestEmitSkipsGroupProjects(t *testing.T) {
	dir := t.TempDir()
	group := project.NewGroup("all")

	err := msvc.Emit(dir, []*project.Project{group}, []string{"Debug"}, project.OSWindows)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "all.vcxproj"))
	require.True(t, os.IsNotExist(err))
}
