/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/
package verrors

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPath_Compare(t *testing.T) {
	tests := map[string]struct {
		a, b     Path
		expected int
	}{
		"equal":               {a: MustPath("a", 1), b: MustPath("a", 1), expected: 0},
		"prefix first":        {a: MustPath("a"), b: MustPath("a", 1), expected: -1},
		"root first":          {a: Path{}, b: MustPath("a"), expected: -1},
		"index before name":   {a: MustPath(10), b: MustPath("0"), expected: -1},
		"names lexicographic": {a: MustPath("a", "z"), b: MustPath("b"), expected: -1},
		"indexes numeric":     {a: MustPath("a", 10), b: MustPath("a", 9), expected: 1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.a.Compare(tc.b))
			require.Equal(t, -tc.expected, tc.b.Compare(tc.a))
		})
	}
}

func TestPath_SortMixedSegments(t *testing.T) {
	paths := []Path{
		MustPath("items", "name"),
		MustPath("items", 1, "name"),
		MustPath("items"),
		MustPath("items", 0),
		MustPath("id"),
	}
	slices.SortFunc(paths, Path.Compare)

	require.Equal(t, []string{"id", "items", "items.0", "items.1.name", "items.name"},
		[]string{paths[0].String(), paths[1].String(), paths[2].String(), paths[3].String(), paths[4].String()})
}

func TestPath_Construct(t *testing.T) {
	p, err := NewPath("items", 1, Name("name"), int64(2))
	require.NoError(t, err)
	require.Equal(t, Path{Name("items"), Index(1), Name("name"), Index(2)}, p)
	require.Equal(t, []any{"items", 1, "name", 2}, p.Keys())

	_, err = NewPath("items", 1.5)
	var keyErr *KeyTypeError
	require.ErrorAs(t, err, &keyErr)
	require.Equal(t, 1.5, keyErr.Key)

	require.Panics(t, func() { MustPath(struct{}{}) })
}

func TestPath_Append_DoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Name("a")

	x := base.Append(Name("x"))
	y := base.Append(Name("y"))

	require.Equal(t, "a.x", x.String())
	require.Equal(t, "a.y", y.String())
	require.Len(t, base, 1)
}

func TestPath_HasPrefixAndLast(t *testing.T) {
	p := MustPath("a", 0, "b")
	require.True(t, p.HasPrefix(MustPath("a", 0)))
	require.False(t, p.HasPrefix(MustPath("a", 1)))

	last, ok := p.Last()
	require.True(t, ok)
	require.Equal(t, Name("b"), last)

	_, ok = Path{}.Last()
	require.False(t, ok)
}

func TestParsePath(t *testing.T) {
	require.Equal(t, Path{}, ParsePath(""))
	require.Equal(t, MustPath("items", 1, "name"), ParsePath("items.1.name"))
	require.Equal(t, MustPath("a", "-1"), ParsePath("a.-1"))
}

func TestSegment(t *testing.T) {
	require.True(t, Index(3).IsIndex())
	require.False(t, Name("3").IsIndex())
	require.NotEqual(t, Index(3), Name("3"))
	require.Equal(t, 3, Index(3).Key())
	require.Equal(t, "3", Name("3").Key())

	text, err := Name("zip").MarshalText()
	require.NoError(t, err)
	require.Equal(t, "zip", string(text))
}
