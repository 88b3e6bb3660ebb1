// Package option implements the type-safe heterogeneous option map: a
// key->value store where each key's value shape is fixed at the Go type
// level (via generics) but the store itself is homogeneous at the map
// level, the same trick the original C++ build system achieved with
// type-erased storage and per-type function pointers bound at first use.
//
// Rather than reflection, each Key carries its own combine and deduplicate
// functions, picked from the small set of shape combinators below
// (Overwrite, AppendSlice, MergeMap, ...). This mirrors the tagged-union
// design spec.md §9 recommends in place of virtual dispatch: the shape is
// selected once, when the option constant is declared, not at every use.
package option

// Key is a typed option name: its identity is Name, its phantom type T is
// the value shape. Two keys with the same Name must always be constructed
// with the same T and the same combine/dedup behavior — mixing shapes under
// one name is a programmer error the storage layer cannot catch statically
// and does not attempt to catch dynamically (panicking on a bad type
// assertion is the observable failure mode, matching the "undefined
// behavior" the source documents for this case).
type Key[T any] struct {
	Name    string
	combine func(old, next T) T
	dedup   func(v T) T
}

// NewKey declares a new option key with explicit combine and deduplicate
// behavior. combine must be associative enough that repeated Combine calls
// across many collections agree regardless of grouping (spec.md's
// "combine associativity for sequences" property); dedup must be a stable,
// first-occurrence-wins reduction.
func NewKey[T any](name string, combine func(old, next T) T, dedup func(v T) T) Key[T] {
	return Key[T]{Name: name, combine: combine, dedup: dedup}
}

// Overwrite is the scalar combine rule: the right-hand value always wins.
func Overwrite[T any](_, next T) T { return next }

// NoDedup is the scalar/map dedup rule: values are already single-valued.
func NoDedup[T any](v T) T { return v }

// AppendSlice is the sequence combine rule: append right to left,
// preserving order.
func AppendSlice[E any](old, next []E) []E {
	out := make([]E, 0, len(old)+len(next))
	out = append(out, old...)
	out = append(out, next...)
	return out
}

// MergeMap is the associative-map combine rule: merge, existing keys win.
func MergeMap[K comparable, V any](old, next map[K]V) map[K]V {
	out := make(map[K]V, len(old)+len(next))
	for k, v := range next {
		out[k] = v
	}
	for k, v := range old {
		out[k] = v
	}
	return out
}

// DedupSliceBy returns a dedup function for sequences whose elements are
// compared by a derived comparable key (e.g. a struct's string fields
// joined, or a content hash) rather than by direct equality — used when the
// element type itself isn't comparable (e.g. it embeds a slice).
func DedupSliceBy[E any, K comparable](keyOf func(E) K) func([]E) []E {
	return func(v []E) []E {
		seen := make(map[K]struct{}, len(v))
		out := make([]E, 0, len(v))
		for _, e := range v {
			k := keyOf(e)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, e)
		}
		return out
	}
}

// DedupSlice is DedupSliceBy with the identity key, for directly comparable
// element types.
func DedupSlice[E comparable]() func([]E) []E {
	return DedupSliceBy(func(e E) E { return e })
}

type entry struct {
	value   any
	zero    func() any
	combine func(old, next any) any
	dedup   func(v any) any
}

// Collection is an associative structure keyed by option name. Each value
// remembers, from the Key used to first write it, how to combine and
// deduplicate its payload.
type Collection struct {
	entries map[string]*entry
}

// New returns an empty Collection.
func New() *Collection {
	return &Collection{entries: make(map[string]*entry)}
}

func bind[T any](key Key[T]) *entry {
	return &entry{
		zero: func() any { var z T; return z },
		combine: func(old, next any) any {
			return key.combine(old.(T), next.(T))
		},
		dedup: func(v any) any {
			return key.dedup(v.(T))
		},
	}
}

// Get reads the current value for key, or T's zero value if unset.
func Get[T any](c *Collection, key Key[T]) T {
	e, ok := c.entries[key.Name]
	if !ok {
		var zero T
		return zero
	}
	v, _ := e.value.(T)
	return v
}

// Put directly assigns v to key, overwriting any previous value without
// invoking the combine rule (the equivalent of the source's `operator[] =`
// direct assignment, used for scalar fields like OutputDir).
func Put[T any](c *Collection, key Key[T], v T) {
	e, ok := c.entries[key.Name]
	if !ok {
		e = bind(key)
		c.entries[key.Name] = e
	}
	e.value = v
}

// Add combines v into key's current value using key's combine rule (the
// equivalent of the source's `operator+=`, used for sequence fields like
// Files or Defines, but valid for any shape: for a scalar key it behaves
// like Put since Overwrite(old, next) == next).
func Add[T any](c *Collection, key Key[T], v T) {
	e, ok := c.entries[key.Name]
	if !ok {
		e = bind(key)
		c.entries[key.Name] = e
		var zero T
		e.value = key.combine(zero, v)
		return
	}
	e.value = e.combine(e.value, v)
}

// Has reports whether key has been written.
func Has[T any](c *Collection, key Key[T]) bool {
	_, ok := c.entries[key.Name]
	return ok
}

// Combine merges other into c: for keys absent in c, other's value is
// cloned in (via combine-with-zero, which for every shape combinator here
// yields a fresh copy rather than an aliased slice/map); for keys present
// in both, c's bound combine function is invoked with (c's value, other's
// value).
func (c *Collection) Combine(other *Collection) {
	for name, src := range other.entries {
		dst, ok := c.entries[name]
		if !ok {
			cloned := &entry{zero: src.zero, combine: src.combine, dedup: src.dedup}
			cloned.value = src.combine(src.zero(), src.value)
			c.entries[name] = cloned
			continue
		}
		dst.value = dst.combine(dst.value, src.value)
	}
}

// Deduplicate invokes the bound deduplicate routine on every key's value.
func (c *Collection) Deduplicate() {
	for _, e := range c.entries {
		e.value = e.dedup(e.value)
	}
}

// Names returns the set of option names currently written, for diagnostics.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	return names
}
