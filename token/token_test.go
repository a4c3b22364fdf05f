package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindStringKnownAndUnknown(t *testing.T) {
	require.Equal(t, "SELECT", Select.String())
	require.Equal(t, "<=>", NullSafeEqual.String())
	require.Equal(t, "Kind(9999)", Kind(9999).String())
}

func TestKeywordsTableResolvesToExpectedKind(t *testing.T) {
	for word, want := range map[string]Kind{
		"select": Select, "from": From, "where": Where, "group": Group,
		"order": Order, "desc": Descending, "null": Null, "true": True,
	} {
		got, ok := Keywords[word]
		require.True(t, ok, "missing keyword %q", word)
		require.Equal(t, want, got)
	}
}

func TestSourceLocationExpandUntil(t *testing.T) {
	loc := SourceLocation{LineStart: 1, LineEnd: 1, ColumnStart: 0, ColumnEnd: 5}
	loc.ExpandUntil(SourceLocation{LineStart: 1, LineEnd: 2, ColumnStart: 0, ColumnEnd: 3})
	require.Equal(t, 2, loc.LineEnd)
	require.Equal(t, 3, loc.ColumnEnd)
}

func TestTokenStringByKind(t *testing.T) {
	require.Equal(t, "hi", Token{Kind: String, Literal: "hi"}.String())
	require.Equal(t, "42", Token{Kind: Integer, IntegerValue: 42}.String())
	require.Equal(t, "3.5", Token{Kind: Float, FloatValue: 3.5}.String())
	require.Equal(t, "SELECT", Token{Kind: Select}.String())
}
