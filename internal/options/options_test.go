package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_Add(t *testing.T) {
	t.Run("preserves declaration order", func(t *testing.T) {
		s := NewSet()
		s.String("bravo", "", "1", "first")
		s.Switch("alpha", "", "second")
		s.Repeatable("charlie", "third")

		var names []string
		for _, e := range s.Entries() {
			names = append(names, e.Name)
		}
		require.Equal(t, []string{"bravo", "alpha", "charlie"}, names)
	})

	t.Run("duplicate name keeps earlier entry", func(t *testing.T) {
		s := NewSet()
		s.String("opt", "", "5", "from plugin a")
		s.String("opt", "", "9", "from plugin b")

		require.Equal(t, 1, s.Len())
		e, ok := s.Lookup("opt")
		require.True(t, ok)
		require.Equal(t, "5", e.Default)
		require.Equal(t, "from plugin a; from plugin b", e.Description)
	})

	t.Run("duplicate with same description folds silently", func(t *testing.T) {
		s := NewSet()
		s.String("opt", "", "5", "shared")
		s.String("opt", "", "9", "shared")

		e, _ := s.Lookup("opt")
		require.Equal(t, "shared", e.Description)
	})
}

func TestSet_Merge(t *testing.T) {
	t.Run("appends in other's order after own entries", func(t *testing.T) {
		a := NewSet()
		a.String("one", "", "", "")
		b := NewSet()
		b.String("two", "", "", "")
		b.String("three", "", "", "")

		a.Merge(b)

		var names []string
		for _, e := range a.Entries() {
			names = append(names, e.Name)
		}
		require.Equal(t, []string{"one", "two", "three"}, names)
	})

	t.Run("nil merge is a no-op", func(t *testing.T) {
		a := NewSet()
		a.String("one", "", "", "")
		a.Merge(nil)
		require.Equal(t, 1, a.Len())
	})

	t.Run("merge order is deterministic across repeats", func(t *testing.T) {
		build := func() *Set {
			a := NewSet()
			a.String("one", "", "", "")
			b := NewSet()
			b.Switch("two", "", "")
			b.String("one", "", "other", "dup")
			a.Merge(b)
			return a
		}
		require.Equal(t, build().Entries(), build().Entries())
	})
}

func TestValues_Precedence(t *testing.T) {
	schema := NewSet()
	schema.String("scalar", "", "def", "")
	schema.Repeatable("multi", "")

	t.Run("file value does not clobber CLI value", func(t *testing.T) {
		v := newValues(schema)
		e, _ := schema.Lookup("scalar")
		v.apply(e, []string{"from-cli"}, sourceCLI)
		v.apply(e, []string{"from-file"}, sourceFile)
		require.Equal(t, "from-cli", v.String("scalar"))
	})

	t.Run("file value fills in when CLI silent", func(t *testing.T) {
		v := newValues(schema)
		e, _ := schema.Lookup("scalar")
		v.apply(e, []string{"from-file"}, sourceFile)
		require.Equal(t, "from-file", v.String("scalar"))
	})

	t.Run("repeatable accumulates across sources", func(t *testing.T) {
		v := newValues(schema)
		e, _ := schema.Lookup("multi")
		v.apply(e, []string{"a", "b"}, sourceCLI)
		v.apply(e, []string{"c"}, sourceFile)
		require.Equal(t, []string{"a", "b", "c"}, v.Strings("multi"))
	})

	t.Run("falls back to schema default", func(t *testing.T) {
		v := newValues(schema)
		require.Equal(t, "def", v.String("scalar"))
		require.True(t, v.Has("scalar"))
		require.False(t, v.Has("multi"))
	})

	t.Run("override outranks file input", func(t *testing.T) {
		v := newValues(schema)
		v.Override("scalar", "/abs/path")
		e, _ := schema.Lookup("scalar")
		v.apply(e, []string{"from-file"}, sourceFile)
		require.Equal(t, "/abs/path", v.String("scalar"))
	})
}

func TestValues_Typed(t *testing.T) {
	schema := NewSet()
	schema.String("count", "", "5", "")
	schema.Switch("flag", "", "")
	schema.StringNoDefault("missing", "")

	v := newValues(schema)

	t.Run("int from default", func(t *testing.T) {
		n, err := v.Int("count")
		require.NoError(t, err)
		require.Equal(t, 5, n)
	})

	t.Run("int without value errors", func(t *testing.T) {
		_, err := v.Int("missing")
		require.Error(t, err)
	})

	t.Run("unset switch is false", func(t *testing.T) {
		require.False(t, v.Bool("flag"))
	})

	t.Run("set switch is true", func(t *testing.T) {
		e, _ := schema.Lookup("flag")
		v.apply(e, []string{"true"}, sourceCLI)
		require.True(t, v.Bool("flag"))
	})
}
