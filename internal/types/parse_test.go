package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormula(t *testing.T) {
	t.Run("single literal", func(t *testing.T) {
		f, err := ParseFormula("ontop(a,b)")
		require.NoError(t, err)
		require.Len(t, f, 1)
		require.Len(t, f[0], 1)
		assert.Equal(t, Literal{Polarity: true, Relation: RelOnTop, Args: []string{"a", "b"}}, f[0][0])
	})

	t.Run("conjunction and disjunction", func(t *testing.T) {
		f, err := ParseFormula("ontop(a,b) & holding(c) | above(a,floor)")
		require.NoError(t, err)
		require.Len(t, f, 2)
		assert.Len(t, f[0], 2)
		assert.Len(t, f[1], 1)
		assert.Equal(t, RelHolding, f[0][1].Relation)
		assert.Equal(t, []string{"a", "floor"}, f[1][0].Args)
	})

	t.Run("negation", func(t *testing.T) {
		f, err := ParseFormula("!holding(a)")
		require.NoError(t, err)
		assert.False(t, f[0][0].Polarity)
	})

	t.Run("whitespace tolerated", func(t *testing.T) {
		f, err := ParseFormula("  ontop( a , b )  ")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, f[0][0].Args)
	})

	t.Run("round trip through String", func(t *testing.T) {
		in := "ontop(a,b) & !holding(c) | beside(a,c)"
		f, err := ParseFormula(in)
		require.NoError(t, err)
		f2, err := ParseFormula(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, f2)
	})

	t.Run("errors", func(t *testing.T) {
		for _, bad := range []string{
			"",
			"ontop(a,b) |",
			"nextto(a,b)",
			"holding(a,b)",
			"ontop(a)",
			"ontop a b",
			"ontop(,b)",
		} {
			_, err := ParseFormula(bad)
			assert.Error(t, err, "input %q", bad)
		}
	})
}
