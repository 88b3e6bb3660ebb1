// Package postprocess defines the post-processor hook type invoked after
// project resolution but before toolchain materialization, plus a handful
// of example hooks (bundle, copy, mkdir) ported from the original source's
// namespace commands / namespace postprocess helpers.
package postprocess

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.kiln.build/kiln/command"
	"go.kiln.build/kiln/option"
)

// Context is what a Hook receives: the resolved option collection it may
// mutate, and identifying information about the project being resolved.
// It intentionally does not reference the project package, to keep
// postprocess a leaf dependency of the option-key declarations.
type Context struct {
	ProjectName string
	Resolved    *option.Collection
}

// Hook is a post-processing callable: it may read and mutate Resolved,
// including appending to the Commands or PostProcess options themselves.
type Hook func(ctx Context) error

// Run invokes hooks in order against ctx's Resolved collection, reading the
// hook sequence fresh from hooksKey after every invocation so
// that a hook appending further hooks to the PostProcess option is itself
// visited. It does not take a snapshot slice up front — the length is
// re-read every step, never cached, matching spec.md §4.5's explicit
// requirement.
func Run(ctx Context, hooksKey option.Key[[]Hook]) error {
	i := 0
	for {
		hooks := option.Get(ctx.Resolved, hooksKey)
		if i >= len(hooks) {
			return nil
		}
		if err := hooks[i](ctx); err != nil {
			return zerr.With(zerr.With(zerr.Wrap(err, ErrHookFailed.Error()), "index", i), "project", ctx.ProjectName)
		}
		i++
	}
}

// Copy returns a Hook that appends a CommandEntry copying from to to,
// creating to's parent directory first. Grounded on the original source's
// namespace commands::copy.
func Copy(from, to string, commandsKey option.Key[[]command.Entry]) Hook {
	return func(ctx Context) error {
		dir := filepath.Dir(to)
		line := fmt.Sprintf(`mkdir -p %q && cp %q %q`, dir, from, to)
		option.Add(ctx.Resolved, commandsKey, []command.Entry{{
			Command:     line,
			Inputs:      []string{from},
			Outputs:     []string{to},
			Description: fmt.Sprintf("copy %s -> %s", from, to),
		}})
		return nil
	}
}

// Mkdir returns a Hook that appends a CommandEntry creating dir. Grounded
// on the original source's namespace commands::mkdir.
func Mkdir(dir string, commandsKey option.Key[[]command.Entry]) Hook {
	return func(ctx Context) error {
		option.Add(ctx.Resolved, commandsKey, []command.Entry{{
			Command:     fmt.Sprintf(`mkdir -p %q`, dir),
			Outputs:     []string{dir},
			Description: fmt.Sprintf("mkdir %s", dir),
		}})
		return nil
	}
}

// BundleOptions names the option keys Bundle needs in order to stay free of
// a direct dependency on the stdopt package (which itself depends on
// postprocess for the PostProcess option's element type).
type BundleOptions struct {
	OutputPath    option.Key[string]
	DataDir       option.Key[string]
	Commands      option.Key[[]command.Entry]
	BundleSuffix  string // e.g. ".bundle" or ".app"
}

// Bundle returns a Hook that wraps a built executable into a minimal
// macOS-style app bundle: it writes an Info.plist scaffold and appends
// copy commands placing the binary and plist into the bundle's Contents
// directory. Grounded on the original source's namespace postprocess::bundle.
func Bundle(opts BundleOptions) Hook {
	if opts.BundleSuffix == "" {
		opts.BundleSuffix = ".bundle"
	}
	return func(ctx Context) error {
		projectOutput := option.Get(ctx.Resolved, opts.OutputPath)
		if projectOutput == "" {
			return zerr.With(ErrBundleOutputMissing, "project", ctx.ProjectName)
		}
		dataDir := option.Get(ctx.Resolved, opts.DataDir)

		ext := filepath.Ext(projectOutput)
		bundleOutput := strings.TrimSuffix(projectOutput, ext) + opts.BundleSuffix
		bundleBinary := strings.TrimSuffix(filepath.Base(projectOutput), ext)

		plistDir := filepath.Join(dataDir, ctx.ProjectName)
		plistPath := filepath.Join(plistDir, "Info.plist")
		if err := writePlist(plistPath, bundleBinary); err != nil {
			return err
		}

		macOS := filepath.Join(bundleOutput, "Contents", "MacOS", bundleBinary)
		plistTarget := filepath.Join(bundleOutput, "Contents", "Info.plist")

		option.Add(ctx.Resolved, opts.Commands, []command.Entry{
			{
				Command:     fmt.Sprintf(`mkdir -p %q && cp %q %q`, filepath.Dir(macOS), projectOutput, macOS),
				Inputs:      []string{projectOutput},
				Outputs:     []string{macOS},
				Description: fmt.Sprintf("bundle %s", ctx.ProjectName),
			},
			{
				Command:     fmt.Sprintf(`mkdir -p %q && cp %q %q`, filepath.Dir(plistTarget), plistPath, plistTarget),
				Inputs:      []string{plistPath},
				Outputs:     []string{plistTarget},
				Description: fmt.Sprintf("bundle plist %s", ctx.ProjectName),
			},
		})
		return nil
	}
}

func writePlist(path, executable string) error {
	if err := mkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	contents := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleExecutable</key>
	<string>%s</string>
</dict>
</plist>
`, executable)
	return writeFile(path, contents)
}
