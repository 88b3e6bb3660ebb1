// Package toolchain defines the ToolchainProvider contract: translating a
// project's resolved options into concrete compile/link/archive command
// records, plus a process-global registry of named providers (supplemented
// from the original source's modules/toolchain.h Toolchains registry,
// dropped by the spec.md distillation but useful for `kiln doctor`-style
// introspection).
package toolchain

import (
	"sort"
	"sync"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/option"
)

// ProjectType mirrors project.Type without importing the project package,
// which itself stores a Provider behind an option key; the two packages
// would otherwise form an import cycle.
type ProjectType int

const (
	Executable ProjectType = iota
	StaticLib
	SharedLib
	Command
)

// ProjectInfo is the subset of project.Project a Provider needs.
type ProjectInfo struct {
	Name string
	Type ProjectType
	// HasType is false for group/alias projects with no project type.
	HasType bool
}

// Provider is the contract a family of tools (compiler/linker/archiver)
// implements. Most methods take the resolved option collection for the
// project being processed; CommonCompilerFlags also takes pathOffset — the
// relative path from the working directory to the build root, used to
// rewrite user-relative paths into build-root-relative ones.
type Provider interface {
	Name() string
	Compiler(resolved *option.Collection) string
	Linker(resolved *option.Collection, project ProjectInfo) string
	CommonCompilerFlags(resolved *option.Collection, pathOffset string) string
	CompilerFlags(input, output string) string
	CommonLinkerFlags(resolved *option.Collection, project ProjectInfo) string
	LinkerFlags(inputs []string, output string, project ProjectInfo) string

	// Process materializes resolved into CommandEntry records (appended to
	// resolved's Commands option) and returns the ordered list of output
	// paths the project produces. workingDir is the directory commands
	// should be considered relative to; dataDir is the build data root;
	// outputPath is the project's final link/archive output path, already
	// computed by the caller (project.Project.OutputPath) since this
	// package cannot import project without an import cycle.
	Process(project ProjectInfo, resolved *option.Collection, workingDir, dataDir, outputPath string) ([]string, error)
}

var (
	registryMu sync.Mutex
	registry   = map[string]Provider{}
)

// Register installs a Provider under its own Name(), making it discoverable
// via List. Intended to be called from a toolchain implementation's init().
func Register(p Provider) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[p.Name()] = p
}

// List returns the names of every registered provider, sorted.
func List() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the provider registered under name, if any.
func Lookup(name string) (Provider, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	p, ok := registry[name]
	return p, ok
}

// NoopCommands is used by Provider implementations for project types (e.g.
// Command) that contribute no compile/link step of their own: whatever is
// already in resolved's Commands — typically appended by a postprocessor —
// passes through untouched, and Process reports no outputs of its own.
func NoopCommands(resolved *option.Collection, commandsKey option.Key[[]command.Entry]) []string {
	_ = option.Get(resolved, commandsKey)
	return nil
}
