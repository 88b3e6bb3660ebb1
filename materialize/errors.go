package materialize

import "go.trai.ch/zerr"

var (
	// ErrResolveFailed is returned when a project's option resolution fails.
	ErrResolveFailed = zerr.New("resolving project failed")

	// ErrProjectNameMissing is returned when a typed project has no name.
	ErrProjectNameMissing = zerr.New("typed project has no name")

	// ErrNoToolchainAvailable is returned when a project resolves to no
	// toolchain, and no default toolchain is registered either.
	ErrNoToolchainAvailable = zerr.New("no toolchain available")

	// ErrProcessFailed is returned when a toolchain fails to process a
	// project's resolved options into commands.
	ErrProcessFailed = zerr.New("materializing project failed")

	// ErrCommandProjectEmpty is returned when a Command-type project
	// resolves to zero commands: it has nothing to do, which is a
	// configuration error rather than a silent no-op.
	ErrCommandProjectEmpty = zerr.New("command project has no commands")
)
