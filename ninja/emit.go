package ninja

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"

	"go.kiln.build/kiln/buildenv"
	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/materialize"
	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/project"
	"go.kiln.build/kiln/stdopt"
)

// Emit materializes every project reachable from roots for (configName,
// targetOS) and writes a build.ninja under targetPath that subninjas one
// generated <name>.ninja per project, plus a synthetic "_generator"
// project so that editing the build description itself triggers a
// regenerate-and-rebuild. Grounded on
// original_source/build.h's NinjaEmitter::emit.
func Emit(targetPath string, roots []*project.Project, configName string, targetOS project.OperatingSystem, env buildenv.Env) error {
	if err := os.MkdirAll(targetPath, 0o755); err != nil {
		return zerr.Wrap(err, ErrOutputDirCreateFailed.Error())
	}

	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, ErrWorkingDirResolveFailed.Error())
	}
	absTarget, err := filepath.Abs(targetPath)
	if err != nil {
		return err
	}
	pathOffset, err := filepath.Rel(absTarget, cwd)
	if err != nil {
		return err
	}

	ordered := materialize.Discover(roots)

	seenDeps := make(map[string]bool)
	var generatorDeps []string
	addDep := func(d string) {
		if d != "" && !seenDeps[d] {
			seenDeps[d] = true
			generatorDeps = append(generatorDeps, d)
		}
	}

	results := make([]*materialize.Result, 0, len(ordered))
	for _, p := range ordered {
		res, err := materialize.Project(p, configName, targetOS, ".", targetPath)
		if err != nil {
			return err
		}
		results = append(results, res)
		for _, d := range option.Get(res.Resolved, stdopt.GeneratorDependencies) {
			addDep(d)
		}
	}

	buildOutput := strings.TrimSuffix(env.BuildFile, filepath.Ext(env.BuildFile))
	addDep(buildOutput)

	generatorInputs := append([]string(nil), generatorDeps...)
	generatorCommand := command.Entry{
		Command:     fmt.Sprintf("%q %s", filepath.Join(env.BuildDir, buildOutput), env.BuildArgs),
		Inputs:      generatorInputs,
		Outputs:     []string{filepath.Join(targetPath, "build.ninja")},
		WorkingDir:  env.StartDir,
		Description: "Running build generator.",
	}

	genResolved := option.New()
	option.Put(genResolved, stdopt.Commands, []command.Entry{generatorCommand})
	results = append(results, &materialize.Result{
		Project:  project.New("_generator", project.Executable),
		Resolved: genResolved,
		Commands: []command.Entry{generatorCommand},
	})

	var subninjas []string
	for _, res := range results {
		name, err := emitProject(targetPath, res, pathOffset, res.Project.Name == "_generator")
		if err != nil {
			return err
		}
		if name != "" {
			subninjas = append(subninjas, name)
		}
	}

	out, err := os.Create(filepath.Join(targetPath, "build.ninja"))
	if err != nil {
		return err
	}
	defer out.Close()

	w := newWriter(out)
	for _, name := range subninjas {
		w.Subninja(name)
	}
	return nil
}

// emitProject writes <project>.ninja: a generic "command" rule
// (cd-prefixed per spec.md §4.9, parameterized by $cmd/$depfile/$desc),
// one build statement per CommandEntry (order-only on "_generator"
// unless this IS the generator project, so editing the build
// description reruns it before anything else), and a trailing phony
// target aggregating every output under the project's own name.
func emitProject(root string, res *materialize.Result, pathOffset string, isGenerator bool) (string, error) {
	if !res.Project.HasType && res.Project.Name != "_generator" {
		return "", nil
	}
	if len(res.Commands) == 0 {
		return "", nil
	}

	name := res.Project.Name + ".ninja"
	f, err := os.Create(filepath.Join(root, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := newWriter(f)
	prologue := `cd "$cwd" && `
	w.Rule("command", map[string]string{
		"command":     prologue + "$cmd",
		"depfile":     "$depfile",
		"description": "$desc",
	})

	var orderOnly []string
	if !isGenerator {
		orderOnly = []string{"_generator"}
	}

	rel := func(p string) string {
		if p == "" {
			return "."
		}
		return filepath.Join(pathOffset, p)
	}

	var allOutputs []string
	for _, c := range res.Commands {
		inputs := make([]string, len(c.Inputs))
		for i, in := range c.Inputs {
			inputs[i] = rel(in)
		}
		outputs := make([]string, len(c.Outputs))
		for i, out := range c.Outputs {
			outputs[i] = rel(out)
			allOutputs = append(allOutputs, rel(out))
		}

		cwd := c.WorkingDir
		vars := map[string]string{
			"cmd": c.Command,
			"cwd": rel(cwd),
		}
		if c.Depfile != "" {
			vars["depfile"] = rel(c.Depfile)
		}
		if c.Description != "" {
			vars["desc"] = c.Description
		}

		w.Build(outputs, "command", inputs, nil, orderOnly, vars)
	}

	if len(allOutputs) > 0 {
		sort.Strings(allOutputs)
		w.Build([]string{res.Project.Name}, "phony", allOutputs, nil, nil, nil)
	}

	return name, nil
}
