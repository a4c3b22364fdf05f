package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, err := Tokenize(src)
	require.NoError(t, err)
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeKeywordsCaseInsensitive(t *testing.T) {
	require.Equal(t, []token.Kind{token.Select, token.Symbol, token.From, token.Symbol, token.EOF},
		kinds(t, "select a from t"))
	require.Equal(t, []token.Kind{token.Select, token.Symbol, token.From, token.Symbol, token.EOF},
		kinds(t, "SELECT a FROM t"))
}

func TestTokenizeIntegerAndFloat(t *testing.T) {
	toks, err := Tokenize("42 3.14")
	require.NoError(t, err)
	require.Equal(t, token.Integer, toks[0].Kind)
	require.Equal(t, int64(42), toks[0].IntegerValue)
	require.Equal(t, token.Float, toks[1].Kind)
	require.Equal(t, 3.14, toks[1].FloatValue)
}

func TestTokenizeString(t *testing.T) {
	toks, err := Tokenize(`'hi there'`)
	require.NoError(t, err)
	require.Equal(t, token.String, toks[0].Kind)
	require.Equal(t, "hi there", toks[0].Literal)
}

func TestTokenizeGlobalVariable(t *testing.T) {
	toks, err := Tokenize("@k")
	require.NoError(t, err)
	require.Equal(t, token.GlobalVariable, toks[0].Kind)
	require.Equal(t, "k", toks[0].Literal)
}

func TestTokenizeOperators(t *testing.T) {
	require.Equal(t, []token.Kind{token.NullSafeEqual, token.EOF}, kinds(t, "<=>"))
	require.Equal(t, []token.Kind{token.LessEqual, token.EOF}, kinds(t, "<="))
	require.Equal(t, []token.Kind{token.ColonEqual, token.EOF}, kinds(t, ":="))
}

func TestTokenizeSkipsWhitespaceAndComments(t *testing.T) {
	require.Equal(t, []token.Kind{token.Select, token.Symbol, token.EOF},
		kinds(t, "select  -- a comment\n  a"))
}

func TestTokenizeUnterminatedStringErrors(t *testing.T) {
	_, err := Tokenize(`'unterminated`)
	require.Error(t, err)
}
