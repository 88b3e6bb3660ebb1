// Package buildenv captures the handful of environment variables the
// generator binary is invoked with, which the Ninja emitter threads into
// its synthetic "_generator" project so Ninja knows to rerun the
// generator itself whenever the build description changes. Grounded on
// original_source/build.h's BUILD_FILE/BUILD_DIR/BUILD_H_DIR/START_DIR/
// BUILD_ARGS compile-time defines, translated to runtime environment
// variables since Go has no preprocessor stage to bake them in at build
// time.
package buildenv

import "os"

// Env holds the generator's invocation context.
type Env struct {
	// BuildFile is the path (relative to StartDir) of the build
	// description source file that produced the running generator binary.
	BuildFile string
	// BuildDir is the directory the generator binary itself lives in.
	BuildDir string
	// BuildHDir is the directory containing the build-description
	// support headers/packages the generator was compiled against.
	BuildHDir string
	// StartDir is the directory the generator was originally invoked
	// from, before any chdir.
	StartDir string
	// BuildArgs is the original command line the generator was invoked
	// with, forwarded verbatim so a regenerate rerun sees the same flags.
	BuildArgs string
}

// FromEnviron reads BUILD_FILE, BUILD_DIR, BUILD_H_DIR, START_DIR, and
// BUILD_ARGS from the process environment.
func FromEnviron() Env {
	return Env{
		BuildFile: os.Getenv("BUILD_FILE"),
		BuildDir:  os.Getenv("BUILD_DIR"),
		BuildHDir: os.Getenv("BUILD_H_DIR"),
		StartDir:  os.Getenv("START_DIR"),
		BuildArgs: os.Getenv("BUILD_ARGS"),
	}
}
