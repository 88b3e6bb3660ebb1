package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/direct"
	"go.kiln.build/kiln/materialize"
	"go.kiln.build/kiln/msvc"
	"go.kiln.build/kiln/ninja"
	"go.kiln.build/kiln/project"
	"go.kiln.build/kiln/telemetry"
	"go.kiln.build/kiln/watch"
)

// Generate dispatches to the Ninja and/or MSVC emitters according to
// which emitter flags are present in args, once per config in configs.
// Grounded on original_source/build.h's parseCommandLineAndEmit: Ninja
// gets one output directory per config (<target>/<config>), MSVC one
// directory holding all configs; the target defaults to "<emitter>build"
// when no explicit target directory is given.
// `--dump-commands[=path]` additionally writes every materialized
// command.Entry as JSON (default "commands.json"), consumed by
// `kiln graph` to render a Graphviz dependency graph without requiring
// Ninja itself to be installed.
func Generate(startPath string, args Args, roots []*project.Project, configs []string, targetOS project.OperatingSystem) error {
	ninjaValue, wantNinja := args.Options["ninja"]
	msvcValue, wantMsvc := args.Options["msvc"]
	dumpValue, wantDump := args.Options["dump-commands"]

	if !wantNinja && !wantMsvc && !wantDump {
		return fmt.Errorf("no emitters specified\n\n%s", Usage("generator"))
	}

	env := BootstrapEnv()

	if wantNinja {
		for _, config := range configs {
			target := emitterTarget(startPath, "ninja", ninjaValue)
			target = filepath.Join(target, config)
			if err := ninja.Emit(target, roots, config, targetOS, env); err != nil {
				return fmt.Errorf("emitting ninja build for config %q: %w", config, err)
			}
		}
	}

	if wantMsvc {
		target := emitterTarget(startPath, "msvc", msvcValue)
		if err := msvc.Emit(target, roots, configs, targetOS); err != nil {
			return fmt.Errorf("emitting msvc project files: %w", err)
		}
	}

	if wantDump {
		path := dumpValue
		if path == "" {
			path = "commands.json"
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(startPath, path)
		}
		config := "debug"
		if len(configs) > 0 {
			config = configs[0]
		}
		if err := DumpCommands(roots, config, targetOS, startPath, env.BuildDir, path); err != nil {
			return fmt.Errorf("dumping command list: %w", err)
		}
	}

	return nil
}

// collectCommands materializes every project reachable from roots for
// (configName, targetOS), returning the combined list of command.Entry
// in discovery order.
func collectCommands(roots []*project.Project, configName string, targetOS project.OperatingSystem, workingDir, dataDir string) ([]command.Entry, error) {
	var entries []command.Entry
	for _, p := range materialize.Discover(roots) {
		res, err := materialize.Project(p, configName, targetOS, workingDir, dataDir)
		if err != nil {
			return nil, err
		}
		entries = append(entries, res.Commands...)
	}
	return entries, nil
}

// DumpCommands materializes roots and writes the resulting command.Entry
// list as JSON to path, for later consumption by `kiln graph`.
func DumpCommands(roots []*project.Project, configName string, targetOS project.OperatingSystem, workingDir, dataDir, path string) error {
	entries, err := collectCommands(roots, configName, targetOS, workingDir, dataDir)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding command list: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// RunDirect materializes every project reachable from roots for
// (configName, targetOS) and drives the direct builder's scheduler over
// the result, without writing any emitted build files. jobs bounds
// concurrency; sink receives progress events (nil for none). The given
// sink is wrapped with a TelemetrySink under one "direct build" span, so
// every direct build reports an EmitPlan event on that span and one child
// span per command through the OpenTelemetry Tracer port, regardless of
// which ProgressSink the caller chose. Spans are recorded once
// telemetry.Setup has installed a provider.
func RunDirect(ctx context.Context, roots []*project.Project, configName string, targetOS project.OperatingSystem, workingDir, dataDir string, jobs int, sink direct.ProgressSink) error {
	entries, err := collectCommands(roots, configName, targetOS, workingDir, dataDir)
	if err != nil {
		return err
	}

	pending := direct.Build(entries)
	dirty := direct.EvaluateStaleness(pending)

	if sink == nil {
		sink = direct.NoopProgress{}
	}
	descriptions := make([]string, len(dirty))
	for i, pc := range dirty {
		descriptions[i] = pc.Description
	}
	tracer := telemetry.NewOTelTracer("kiln")
	buildCtx, buildSpan := tracer.Start(ctx, "direct build")
	defer buildSpan.End()
	traced := direct.NewTelemetrySink(buildCtx, tracer, sink, descriptions)

	if err := direct.Run(ctx, dirty, jobs, traced); err != nil {
		return err
	}
	if len(dirty) == 0 {
		fmt.Println("0 targets rebuilt. (Everything up to date.)")
	}
	return nil
}

// Watch runs RunDirect once, then again every time root's filesystem
// settles after a change, until ctx is canceled. A failing rebuild is
// reported through logf but does not stop watching.
func Watch(ctx context.Context, root string, roots []*project.Project, configName string, targetOS project.OperatingSystem, workingDir, dataDir string, jobs int, sink direct.ProgressSink, logf func(format string, args ...any)) error {
	rebuild := func() error {
		return RunDirect(ctx, roots, configName, targetOS, workingDir, dataDir, jobs, sink)
	}
	if err := rebuild(); err != nil && logf != nil {
		logf("initial build failed: %v", err)
	}
	return watch.Run(ctx, root, rebuild, logf)
}
