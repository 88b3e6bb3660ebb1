// Package msvc emits minimal Visual Studio project files: one .vcxproj
// per project, listing its configurations and compilable source files.
// Grounded on original_source/build.h/emitters/msvc.h, which is itself
// an unfinished emitter — command/link generation there is compiled out
// behind a disabled `#if 0` block, so this port carries over only the
// parts the original actually emits (project configurations and a
// ClCompile item group) rather than inventing the missing half.
package msvc

import (
	"fmt"
	"os"
	"path/filepath"

	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/project"
	"go.kiln.build/kiln/stdopt"
)

var compilableExtensions = map[string]bool{
	".c": true, ".cpp": true, ".mm": true,
}

// Emit writes targetPath/<project>.vcxproj for every project reachable
// from roots, each listing configs as its ProjectConfigurations and its
// compilable Files as ClCompile items.
func Emit(targetPath string, roots []*project.Project, configs []string, targetOS project.OperatingSystem) error {
	if err := os.MkdirAll(targetPath, 0o755); err != nil {
		return fmt.Errorf("creating msvc output directory: %w", err)
	}

	seen := make(map[*project.Project]bool)
	var visit func(p *project.Project) error
	visit = func(p *project.Project) error {
		if seen[p] {
			return nil
		}
		seen[p] = true
		for _, link := range p.AllLinks() {
			if err := visit(link); err != nil {
				return err
			}
		}
		return emitProject(targetPath, p, configs, targetOS)
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return err
		}
	}
	return nil
}

func emitProject(root string, p *project.Project, configs []string, targetOS project.OperatingSystem) error {
	if !p.HasType {
		return nil
	}
	if p.Name == "" {
		return fmt.Errorf("trying to emit project with no name")
	}

	t := p.Type
	resolved, err := p.Resolve(&t, "", targetOS)
	if err != nil {
		return fmt.Errorf("resolving project %q: %w", p.Name, err)
	}

	path := filepath.Join(root, p.Name+".vcxproj")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	xml := newXMLWriter(f)
	defer xml.Close()

	proj := xml.Tag("Project", attrs{
		"DefaultTargets": "Build",
		"ToolsVersion":   "16.0",
		"xmlns":          "http://schemas.microsoft.com/developer/msbuild/2003",
	})
	func() {
		group := xml.Tag("ItemGroup", attrs{"Label": "ProjectConfigurations"})
		defer group.Close()
		for _, config := range configs {
			cfg := xml.Tag("ProjectConfiguration", attrs{"Include": config})
			xml.ShortTag("Configuration", nil, config)
			xml.ShortTag("Platform", nil, "x64")
			cfg.Close()
		}
	}()

	func() {
		globals := xml.Tag("PropertyGroup", attrs{"Label": "Globals"})
		defer globals.Close()
	}()

	func() {
		group := xml.Tag("ItemGroup", nil)
		defer group.Close()
		for _, input := range option.Get(resolved, stdopt.Files) {
			if !compilableExtensions[filepath.Ext(input)] {
				continue
			}
			xml.ShortTagSelfClosing("ClCompile", attrs{"Include": input})
		}
	}()

	proj.Close()
	return nil
}
