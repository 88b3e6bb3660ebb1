package direct

import "go.trai.ch/zerr"

// ErrOutputDirCreateFailed is returned when a command's declared output
// directory cannot be created before the command runs.
var ErrOutputDirCreateFailed = zerr.New("creating output directory failed")
