package direct

import (
	"os"
	"sort"
	"time"

	"go.kiln.build/kiln/depfile"
)

// EvaluateStaleness walks pending in depth-descending order (producers,
// which always have a strictly greater depth than their consumers, are
// evaluated before the commands that consume them) and marks each dirty
// per spec.md §4.7. It returns the dirty subset, in the same
// depth-descending order, ready for scheduling.
func EvaluateStaleness(pending []*PendingCommand) []*PendingCommand {
	ordered := make([]*PendingCommand, len(pending))
	copy(ordered, pending)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Depth > ordered[j].Depth })

	dirty := make([]*PendingCommand, 0, len(ordered))
	for _, pc := range ordered {
		pc.Dirty = isDirty(pc)
		if pc.Dirty {
			dirty = append(dirty, pc)
		}
	}
	return dirty
}

func isDirty(pc *PendingCommand) bool {
	for _, up := range pc.Upstream {
		if up.Dirty {
			return true
		}
	}

	minOutput, ok := minMtime(pc.Outputs)
	if !ok {
		return true
	}

	for _, in := range pc.Inputs {
		mt, err := statMtime(in)
		if err != nil || mt.After(minOutput) {
			return true
		}
	}

	if pc.Depfile != "" {
		deps, err := depfile.Parse(pc.Depfile)
		if err != nil {
			return true
		}
		for _, d := range deps {
			mt, err := statMtime(d)
			if err != nil || mt.After(minOutput) {
				return true
			}
		}
	}

	return false
}

func statMtime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// minMtime returns the earliest modification time among paths. ok is false
// if paths is empty or any path is missing.
func minMtime(paths []string) (time.Time, bool) {
	if len(paths) == 0 {
		return time.Time{}, false
	}
	var min time.Time
	for i, p := range paths {
		mt, err := statMtime(p)
		if err != nil {
			return time.Time{}, false
		}
		if i == 0 || mt.Before(min) {
			min = mt
		}
	}
	return min, true
}
