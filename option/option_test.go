package option_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go.kiln.build/kiln/option"
)

var (
	stringKey = option.NewKey[string]("Scalar", option.Overwrite[string], option.NoDedup[string])
	pathsKey  = option.NewKey[[]string]("Paths", option.AppendSlice[string], option.DedupSlice[string]())
)

func TestPutOverwrites(t *testing.T) {
	c := option.New()
	option.Put(c, stringKey, "a")
	option.Put(c, stringKey, "b")
	require.Equal(t, "b", option.Get(c, stringKey))
}

func TestAddAppends(t *testing.T) {
	c := option.New()
	option.Add(c, pathsKey, []string{"a"})
	option.Add(c, pathsKey, []string{"b", "c"})
	require.Equal(t, []string{"a", "b", "c"}, option.Get(c, pathsKey))
}

func TestGetUnsetIsZeroValue(t *testing.T) {
	c := option.New()
	require.Equal(t, "", option.Get(c, stringKey))
	require.Nil(t, option.Get(c, pathsKey))
	require.False(t, option.Has(c, stringKey))
}

func TestCombineClonesAbsentKeys(t *testing.T) {
	a := option.New()
	b := option.New()
	option.Add(b, pathsKey, []string{"x", "y"})

	a.Combine(b)
	require.Equal(t, []string{"x", "y"}, option.Get(a, pathsKey))

	// mutating a's slice must not alias b's.
	av := option.Get(a, pathsKey)
	av[0] = "mutated"
	option.Put(a, pathsKey, av)
	require.Equal(t, []string{"x", "y"}, option.Get(b, pathsKey))
}

func TestCombineMergesPresentKeys(t *testing.T) {
	a := option.New()
	option.Add(a, pathsKey, []string{"a"})
	b := option.New()
	option.Add(b, pathsKey, []string{"b"})

	a.Combine(b)
	require.Equal(t, []string{"a", "b"}, option.Get(a, pathsKey))
}

func TestCombineAssociativity(t *testing.T) {
	newColl := func(vals ...string) *option.Collection {
		c := option.New()
		option.Add(c, pathsKey, vals)
		return c
	}

	a, b, c := newColl("a"), newColl("b"), newColl("c")

	left := option.New()
	left.Combine(a)
	left.Combine(b)
	left.Combine(c)

	bc := option.New()
	bc.Combine(b)
	bc.Combine(c)
	right := option.New()
	right.Combine(a)
	right.Combine(bc)

	require.Equal(t, option.Get(left, pathsKey), option.Get(right, pathsKey))
}

func TestDeduplicateStableFirstOccurrence(t *testing.T) {
	c := option.New()
	option.Add(c, pathsKey, []string{"a", "b", "a", "c", "b"})
	c.Deduplicate()
	require.Equal(t, []string{"a", "b", "c"}, option.Get(c, pathsKey))
}

func TestOverwriteCombineRule(t *testing.T) {
	a := option.New()
	option.Put(a, stringKey, "first")
	b := option.New()
	option.Put(b, stringKey, "second")

	a.Combine(b)
	require.Equal(t, "second", option.Get(a, stringKey))
}
