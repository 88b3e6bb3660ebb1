// Package command defines the uniform, invocable step record that both the
// Ninja emitter and the direct builder consume: CommandEntry and the
// smaller BundleEntry used for app-bundle contents.
package command

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Entry is a self-contained invocation: a command line plus its declared
// inputs, outputs, working directory, optional Make-format depfile, and a
// human-readable description. Equality is structural.
type Entry struct {
	Command     string
	Inputs      []string
	Outputs     []string
	WorkingDir  string
	Depfile     string
	Description string
}

// Equal reports structural equality.
func (e Entry) Equal(other Entry) bool {
	return e.Hash() == other.Hash()
}

// Hash combines all fields into a single digest, used for dedup and by
// Equal. Grounded on the
// field-by-field xxhash digest pattern the teacher's filesystem hasher
// used for content-addressed caching, repurposed here for plain structural
// identity since kiln does not do content-addressed caching.
func (e Entry) Hash() uint64 {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.Write([]byte(s))
		_, _ = d.Write([]byte{0})
	}
	write(e.Command)
	write(e.WorkingDir)
	write(e.Depfile)
	write(e.Description)
	for _, in := range e.Inputs {
		write(in)
	}
	write("")
	for _, out := range e.Outputs {
		write(out)
	}
	return d.Sum64()
}

// Bundle is a (source, target) path pair used for app-bundle contents. It
// is totally ordered lexicographically by (Source, Target).
type Bundle struct {
	Source string
	Target string
}

// Less implements the total lexicographic order BundleEntry requires.
func (b Bundle) Less(other Bundle) bool {
	if b.Source != other.Source {
		return b.Source < other.Source
	}
	return b.Target < other.Target
}

// SortBundles sorts a slice of Bundle in place per Less.
func SortBundles(bundles []Bundle) {
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Less(bundles[j]) })
}

// DedupKey returns the key used to deduplicate a sequence of Entry values
// by structural identity (see option.DedupSliceBy).
func DedupKey(e Entry) uint64 { return e.Hash() }
