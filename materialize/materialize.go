// Package materialize ties resolution, post-processing, and toolchain
// command generation together for a single project: the shared pipeline
// both the Ninja emitter and the direct builder drive per project.
// Grounded on the original source's NinjaEmitter::emitProject, which
// performs exactly this sequence (resolve, run post-processors, call
// toolchain.process, propagate StaticLib outputs publicly).
package materialize

import (
	"fmt"

	"go.trai.ch/zerr"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/postprocess"
	"go.kiln.build/kiln/project"
	"go.kiln.build/kiln/stdopt"
	"go.kiln.build/kiln/toolchain"
	_ "go.kiln.build/kiln/toolchain/gcc" // registers the default provider
)

// Result is everything materializing one project for one config produced.
type Result struct {
	Project  *project.Project
	Resolved *option.Collection
	Outputs  []string
	Commands []command.Entry
}

// DefaultToolchain is used when a project's resolved options do not set
// stdopt.Toolchain explicitly.
var DefaultToolchain toolchain.Provider

func defaultToolchain() toolchain.Provider {
	if DefaultToolchain != nil {
		return DefaultToolchain
	}
	if p, ok := toolchain.Lookup("gcc-like"); ok {
		return p
	}
	return nil
}

// Project resolves p for (configName, targetOS), runs its post-processor
// pipeline, and — if p has a project type — calls the resolved toolchain's
// Process to produce CommandEntry records and output paths. A StaticLib's
// outputs are propagated into p's own Public-transitivity bucket so that
// projects linking p and resolved afterward see them as LinkedOutputs,
// matching the original source's `project[Public/config][_LinkedOutputs]`.
func Project(p *project.Project, configName string, targetOS project.OperatingSystem, workingDir, dataDir string) (*Result, error) {
	var pt *project.Type
	if p.HasType {
		t := p.Type
		pt = &t
	}

	resolved, err := p.Resolve(pt, configName, targetOS)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrResolveFailed.Error()), "project", p.Name)
	}
	option.Put(resolved, stdopt.DataDir, dataDir)

	if err := postprocess.Run(postprocess.Context{ProjectName: p.Name, Resolved: resolved}, stdopt.PostProcess); err != nil {
		return nil, err
	}

	if !p.HasType {
		// Group/alias projects contribute nothing to materialization but
		// still participate in link traversal.
		return &Result{Project: p, Resolved: resolved}, nil
	}
	if p.Name == "" {
		return nil, zerr.With(ErrProjectNameMissing, "type", p.Type.String())
	}

	tc := option.Get(resolved, stdopt.Toolchain)
	if tc == nil {
		tc = defaultToolchain()
	}
	if tc == nil {
		return nil, zerr.With(ErrNoToolchainAvailable, "project", p.Name)
	}

	outputPath := p.OutputPath(resolved)
	info := toolchain.ProjectInfo{Name: p.Name, Type: toolchain.ProjectType(p.Type), HasType: true}

	outputs, err := tc.Process(info, resolved, workingDir, dataDir, outputPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrProcessFailed.Error()), "project", p.Name)
	}

	if p.Type == project.Command && len(option.Get(resolved, stdopt.Commands)) == 0 {
		return nil, fmt.Errorf("%w: project %q", ErrCommandProjectEmpty, p.Name)
	}

	if p.Type == project.StaticLib && len(outputs) > 0 {
		pub, err := project.Selector{}.WithTransitivity(project.Public)
		if err != nil {
			return nil, err
		}
		option.Add(p.At(pub).Options, stdopt.LinkedOutputs, outputs)
	}

	return &Result{
		Project:  p,
		Resolved: resolved,
		Outputs:  outputs,
		Commands: option.Get(resolved, stdopt.Commands),
	}, nil
}

// Discover returns every project reachable from roots via links, in
// post-order depth-first traversal (each project emitted only after every
// project it links), deduplicated, matching the original source's
// discover() — "leaves precede consumers" (spec.md §5).
func Discover(roots []*project.Project) []*project.Project {
	var order []*project.Project
	seen := make(map[*project.Project]bool)

	var visit func(p *project.Project)
	visit = func(p *project.Project) {
		if seen[p] {
			return
		}
		seen[p] = true
		for _, link := range p.AllLinks() {
			visit(link)
		}
		order = append(order, p)
	}
	for _, root := range roots {
		visit(root)
	}
	return order
}
