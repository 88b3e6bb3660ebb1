// Package cli implements the bespoke flat-flag command line a generator
// binary parses, plus the Generate/RunDirect dispatchers that tie flag
// selection to the Ninja, MSVC, and direct backends. Grounded on
// original_source/build.h's parseOptionArguments/parsePositionalArguments
// (the `--key[=value]` grammar) and parseCommandLineAndEmit/main (env
// bootstrap, emitter dispatch).
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.kiln.build/kiln/buildenv"
)

// Args is the parsed command line: every `--key[=value]` token becomes
// an Options entry (value "" if no `=` was present), and every other
// token (after the first, the invoked program name) is Positional.
type Args struct {
	Options    map[string]string
	Positional []string
}

// ParseArgs parses argv (including argv[0], the program name, which is
// always skipped) per spec.md §6's grammar: `--key=value` or `--key`
// become option entries; anything else is positional.
func ParseArgs(argv []string) Args {
	args := Args{Options: make(map[string]string)}
	for i, arg := range argv {
		if i == 0 {
			continue
		}
		if len(arg) > 1 && strings.HasPrefix(arg, "--") {
			key, value, _ := strings.Cut(arg[2:], "=")
			args.Options[key] = value
			continue
		}
		args.Positional = append(args.Positional, arg)
	}
	return args
}

// BootstrapEnv reads BUILD_FILE/BUILD_DIR/BUILD_H_DIR/START_DIR/
// BUILD_ARGS from the environment, the way original_source/build.h's
// main() does before calling generate(). Unlike the original, kiln does
// not chdir into BUILD_DIR itself — the generator binary's own working
// directory is left to its caller, since Go generator binaries are
// typically invoked already rooted there.
func BootstrapEnv() buildenv.Env {
	return buildenv.FromEnviron()
}

// availableEmitters lists the --<name>[=dir] flags Generate recognizes.
var availableEmitters = []string{"ninja", "msvc"}

// Usage returns the usage text printed when no emitter flag is given,
// matching original_source/build.h's parseCommandLineAndEmit.
func Usage(programName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: %s --emitter[=targetDir]\n", programName)
	fmt.Fprintf(&b, "Example: %s --ninja=ninjabuild\n\n", programName)
	b.WriteString("Available emitters:\n")
	for _, e := range availableEmitters {
		fmt.Fprintf(&b, "  --%s\n", e)
	}
	return b.String()
}

// emitterTarget resolves the output directory for an emitter flag: the
// flag's own value if given, else "<name>build", resolved relative to
// startPath if not already absolute.
func emitterTarget(startPath, name, value string) string {
	target := value
	if target == "" {
		target = name + "build"
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(startPath, target)
	}
	return target
}
