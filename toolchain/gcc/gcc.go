// Package gcc implements a GCC/Clang-like toolchain.Provider: translating
// resolved options into compile, PCH, link, and archive command records.
// Grounded on the original source's GccLikeToolchainProvider in build.h.
package gcc

import (
	"fmt"
	"path/filepath"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/stdopt"
	"go.kiln.build/kiln/toolchain"
)

// featureFlags maps a Features option entry to the compiler flag it adds.
// Unknown features are silently ignored, per spec.md §4.4.
var featureFlags = map[string]string{
	"c++17":     "-std=c++17",
	"libc++":    "-stdlib=libc++",
	"optimize":  "-O3",
	"debuginfo": "-g",
}

// compilableExtensions are the Files entries the compile stage acts on;
// everything else in Files is ignored at this stage.
var compilableExtensions = map[string]bool{
	".c":   true,
	".cpp": true,
	".mm":  true,
}

// Provider is a GCC-like toolchain.Provider.
type Provider struct {
	name      string
	compiler  string
	linker    string
	archiver  string
}

// New returns a Provider invoking the given compiler, linker, and archiver
// executables (e.g. "g++", "g++", "ar"). name identifies it in the
// toolchain registry.
func New(name, compiler, linker, archiver string) *Provider {
	return &Provider{name: name, compiler: compiler, linker: linker, archiver: archiver}
}

// Default is the GCC-like provider used when a project's resolved options
// do not set stdopt.Toolchain, matching the original source's fallback
// `GccLikeToolchainProvider("g++","g++","ar")`.
var Default = New("gcc-like", "g++", "g++", "ar")

func init() {
	toolchain.Register(Default)
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) Compiler(_ *option.Collection) string { return p.compiler }

func (p *Provider) Linker(_ *option.Collection, project toolchain.ProjectInfo) string {
	if project.Type == toolchain.StaticLib {
		return p.archiver
	}
	return p.linker
}

func (p *Provider) CommonCompilerFlags(resolved *option.Collection, pathOffset string) string {
	flags := ""
	for _, define := range option.Get(resolved, stdopt.Defines) {
		flags += fmt.Sprintf(` -D"%s"`, define)
	}
	for _, include := range option.Get(resolved, stdopt.IncludePaths) {
		flags += fmt.Sprintf(` -I"%s"`, joinOffset(pathOffset, include))
	}
	if option.Get(resolved, stdopt.Platform) == "x64" {
		flags += " -m64 -arch x86_64"
	}
	for _, feature := range option.Get(resolved, stdopt.Features) {
		if flag, ok := featureFlags[feature]; ok {
			flags += " " + flag
		}
	}
	return flags
}

func (p *Provider) CompilerFlags(input, output string) string {
	return fmt.Sprintf(` -MMD -MF %s.d  -c -o %s %s`, output, output, input)
}

func (p *Provider) CommonLinkerFlags(resolved *option.Collection, project toolchain.ProjectInfo) string {
	switch project.Type {
	case toolchain.StaticLib:
		return " -rcs"
	case toolchain.SharedLib:
		flags := linkerLibsAndFrameworks(resolved)
		if hasFeature(resolved, "bundle") {
			return flags + " -bundle"
		}
		return flags + " -shared"
	default:
		return linkerLibsAndFrameworks(resolved)
	}
}

func linkerLibsAndFrameworks(resolved *option.Collection) string {
	flags := ""
	for _, lib := range option.Get(resolved, stdopt.Libs) {
		flags += fmt.Sprintf(` %s`, lib)
	}
	for _, framework := range option.Get(resolved, stdopt.Frameworks) {
		flags += fmt.Sprintf(` -framework %s`, framework)
	}
	return flags
}

func hasFeature(resolved *option.Collection, name string) bool {
	for _, f := range option.Get(resolved, stdopt.Features) {
		if f == name {
			return true
		}
	}
	return false
}

func (p *Provider) LinkerFlags(inputs []string, output string, project toolchain.ProjectInfo) string {
	joined := ""
	for _, in := range inputs {
		joined += fmt.Sprintf(` %s`, in)
	}
	if project.Type == toolchain.StaticLib {
		return fmt.Sprintf(`"%s"%s`, output, joined)
	}
	return fmt.Sprintf(`-o "%s"%s`, output, joined)
}

// Process materializes a PCH-build command (if BuildPch is set), one
// compile command per compilable Files entry (importing the PCH if
// ImportPch is set), and — if this project type links or archives — one
// link/archive command whose inputs include every compiled object plus any
// LinkedOutputs contributed by StaticLib link dependencies. It returns the
// link/archive output path; publishing a StaticLib's archive to its
// consumers is left to the caller (materialize.Project).
func (p *Provider) Process(project toolchain.ProjectInfo, resolved *option.Collection, workingDir, dataDir, outputPath string) ([]string, error) {
	if !project.HasType {
		return nil, nil
	}
	if project.Type != toolchain.Executable && project.Type != toolchain.SharedLib && project.Type != toolchain.StaticLib {
		// Command (and any future non-linkable type) contributes no
		// compile/link step of its own: whatever is already in resolved's
		// Commands (e.g. from a postprocessor) passes through untouched.
		return toolchain.NoopCommands(resolved, stdopt.Commands), nil
	}

	pathOffset, err := filepath.Rel(workingDir, ".")
	if err != nil {
		pathOffset = "."
	}
	commonFlags := p.CommonCompilerFlags(resolved, pathOffset)

	var pchInputs []string
	if buildPch := option.Get(resolved, stdopt.BuildPch); buildPch != "" {
		output := filepath.Join(dataDir, "pch", buildPch+".pch")
		depfile := output + ".d"
		cmd := fmt.Sprintf(`%s%s -x c++-header -Xclang -emit-pch%s`, p.compiler, commonFlags, p.CompilerFlags(buildPch, output))
		option.Add(resolved, stdopt.Commands, []command.Entry{{
			Command: cmd, Inputs: []string{buildPch}, Outputs: []string{output},
			WorkingDir: workingDir, Depfile: depfile, Description: "pch " + buildPch,
		}})
	}

	compileFlags := commonFlags
	if importPch := option.Get(resolved, stdopt.ImportPch); importPch != "" {
		pchPath := filepath.Join(dataDir, "pch", importPch+".pch")
		compileFlags = fmt.Sprintf(" -Xclang -include-pch -Xclang %s%s", pchPath, commonFlags)
		pchInputs = append(pchInputs, pchPath)
	}

	var linkerInputs []string
	for _, f := range option.Get(resolved, stdopt.Files) {
		if !compilableExtensions[filepath.Ext(f)] {
			continue
		}
		output := filepath.Join(dataDir, "obj", project.Name, f+".o")
		depfile := output + ".d"
		inputs := append([]string{f}, pchInputs...)
		cmd := fmt.Sprintf(`%s%s%s`, p.compiler, compileFlags, p.CompilerFlags(joinOffset(pathOffset, f), joinOffset(pathOffset, output)))
		option.Add(resolved, stdopt.Commands, []command.Entry{{
			Command: cmd, Inputs: inputs, Outputs: []string{output},
			WorkingDir: workingDir, Depfile: depfile, Description: "compile " + f,
		}})
		linkerInputs = append(linkerInputs, output)
	}

	linker := p.Linker(resolved, project)
	if linker == "" {
		return nil, nil
	}

	linkerInputs = append(linkerInputs, option.Get(resolved, stdopt.LinkedOutputs)...)
	linkCmd := fmt.Sprintf(`%s%s %s`, linker, p.CommonLinkerFlags(resolved, project), p.LinkerFlags(linkerInputs, outputPath, project))
	option.Add(resolved, stdopt.Commands, []command.Entry{{
		Command: linkCmd, Inputs: linkerInputs, Outputs: []string{outputPath},
		WorkingDir: workingDir, Description: "link " + project.Name,
	}})

	// Publishing a StaticLib's archive as a public LinkedOutputs
	// contribution to consumers is the caller's responsibility (see
	// materialize.Project): it requires writing into the *project.Project's
	// own Public-transitivity bucket, which this package cannot reach
	// without importing project and creating a cycle with stdopt.
	return []string{outputPath}, nil
}

// joinOffset joins pathOffset and p the way the original source's
// `pathOffset / path` does: pathOffset is the relative path from the
// working directory to the build root.
func joinOffset(pathOffset, p string) string {
	if pathOffset == "" || pathOffset == "." {
		return p
	}
	return filepath.Join(pathOffset, p)
}
