package ninja

import "go.trai.ch/zerr"

var (
	// ErrOutputDirCreateFailed is returned when the ninja output directory
	// cannot be created.
	ErrOutputDirCreateFailed = zerr.New("creating ninja output directory failed")

	// ErrWorkingDirResolveFailed is returned when the current working
	// directory cannot be determined.
	ErrWorkingDirResolveFailed = zerr.New("resolving working directory failed")
)
