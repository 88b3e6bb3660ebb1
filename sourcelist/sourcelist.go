// Package sourcelist walks a directory and returns an option.Collection
// populated with every source/header file found, plus a
// GeneratorDependencies entry for the directory itself (so a watch-mode
// rebuild is triggered when files are added or removed, not just when an
// already-known file changes). Grounded on
// original_source/build.h's sourceList, adapted from
// internal/adapters/fs.Walker's iter.Seq[string]-based recursive walk
// (itself superseded here, since kiln's directory scan always needs the
// sourceList extension filter and GeneratorDependencies bookkeeping, not
// a bare file iterator).
package sourcelist

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.kiln.build/kiln/option"
	"go.kiln.build/kiln/stdopt"
)

// extensions mirrors the original source's hardcoded source/header list.
var extensions = map[string]bool{
	".c":   true,
	".cpp": true,
	".mm":  true,
	".h":   true,
	".hpp": true,
}

// Scan walks path (recursively when recurse is true) and returns a
// Collection with stdopt.Files set to every matching source/header file
// and stdopt.GeneratorDependencies set to path itself plus every
// subdirectory visited.
func Scan(path string, recurse bool) (*option.Collection, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(ErrSourceDirMissing, "path", path)
	}

	result := option.New()
	option.Add(result, stdopt.GeneratorDependencies, []string{path})

	walk := filepath.WalkDir
	err = walk(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != path {
				if !recurse {
					return filepath.SkipDir
				}
				option.Add(result, stdopt.GeneratorDependencies, []string{p})
			}
			return nil
		}
		if extensions[filepath.Ext(p)] {
			option.Add(result, stdopt.Files, []string{p})
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrScanFailed.Error()), "path", path)
	}
	return result, nil
}
