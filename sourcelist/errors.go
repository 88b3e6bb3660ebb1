package sourcelist

import "go.trai.ch/zerr"

var (
	// ErrSourceDirMissing is returned when Scan's path does not exist or is
	// not a directory.
	ErrSourceDirMissing = zerr.New("source directory does not exist")

	// ErrScanFailed is returned when walking the source directory fails.
	ErrScanFailed = zerr.New("scanning source directory failed")
)
