package postprocess

import "go.trai.ch/zerr"

var (
	// ErrHookFailed is returned when a post-processor hook returns an error.
	ErrHookFailed = zerr.New("postprocess hook failed")

	// ErrBundleOutputMissing is returned when Bundle is run against a
	// project with no resolved OutputPath.
	ErrBundleOutputMissing = zerr.New("bundle post-processor: project has no OutputPath")
)
