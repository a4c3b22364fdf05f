package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/lexer"
	"github.com/gqlengine/gql/plan"
	"github.com/gqlengine/gql/types"
)

func testEnv() *environment.Environment {
	schema := environment.NewSchema()
	schema.AddTable("t", []string{"a", "b"}, map[string]types.Type{"a": types.Int, "b": types.Text})
	env := environment.New(schema)
	env.RegisterBuiltins()
	return env
}

func parseOne(t *testing.T, src string) ast.Query {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	p := New(toks, testEnv())
	queries, err := p.ParsePrograms()
	require.NoError(t, err)
	require.Len(t, queries, 1)
	return queries[0]
}

func TestParseSimpleSelect(t *testing.T) {
	q := parseOne(t, "SELECT a, b FROM t")
	sq, ok := q.(*plan.SelectQuery)
	require.True(t, ok)
	sel := sq.Select()
	require.Len(t, sel.Tables, 1)
	require.Equal(t, "t", sel.Tables[0].Table)
	require.Len(t, sel.Projections, 2)
}

func TestParseWhereRejectsNonBoolPredicate(t *testing.T) {
	toks, err := lexer.Tokenize("SELECT a FROM t WHERE a")
	require.NoError(t, err)
	p := New(toks, testEnv())
	_, err = p.ParsePrograms()
	require.Error(t, err)
}

func TestParseWhereAcceptsBoolPredicate(t *testing.T) {
	q := parseOne(t, "SELECT a FROM t WHERE a > 1")
	sq := q.(*plan.SelectQuery)
	_, ok := sq.Statements[plan.ClauseWhere]
	require.True(t, ok)
}

func TestParseClauseDefinedTwiceErrors(t *testing.T) {
	toks, err := lexer.Tokenize("SELECT a FROM t WHERE a > 1 WHERE a < 5")
	require.NoError(t, err)
	p := New(toks, testEnv())
	_, err = p.ParsePrograms()
	require.Error(t, err)
}

func TestParseUnknownTableSuggestsSimilarName(t *testing.T) {
	toks, err := lexer.Tokenize("DESCRIBE tt")
	require.NoError(t, err)
	p := New(toks, testEnv())
	_, err = p.ParsePrograms()
	require.Error(t, err)
	require.Contains(t, err.Error(), "t")
}

func TestParseDescribeKnownTable(t *testing.T) {
	q := parseOne(t, "DESCRIBE t")
	d, ok := q.(*ast.DescribeStatement)
	require.True(t, ok)
	require.Equal(t, "t", d.Table)
}

func TestParseShowTables(t *testing.T) {
	q := parseOne(t, "SHOW TABLES")
	_, ok := q.(*ast.ShowTablesStatement)
	require.True(t, ok)
}

func TestParseSetRegistersGlobalType(t *testing.T) {
	env := testEnv()
	toks, err := lexer.Tokenize("SET @k := 2")
	require.NoError(t, err)
	p := New(toks, env)
	queries, err := p.ParsePrograms()
	require.NoError(t, err)
	require.Len(t, queries, 1)

	set, ok := queries[0].(*ast.SetStatement)
	require.True(t, ok)
	require.Equal(t, "k", set.Name)

	ty, err := env.ResolveType("@k")
	require.NoError(t, err)
	require.Equal(t, types.Type(types.Int), ty)
}

func TestParseDoMultipleExpressions(t *testing.T) {
	q := parseOne(t, "DO 1, 2")
	do, ok := q.(*ast.DoStatement)
	require.True(t, ok)
	require.Len(t, do.Exprs, 2)
}

func TestParseMultipleStatementsSeparatedBySemicolon(t *testing.T) {
	toks, err := lexer.Tokenize("SELECT a FROM t; SELECT b FROM t;")
	require.NoError(t, err)
	p := New(toks, testEnv())
	queries, err := p.ParsePrograms()
	require.NoError(t, err)
	require.Len(t, queries, 2)
}

func TestParseMissingFromTableErrors(t *testing.T) {
	toks, err := lexer.Tokenize("SELECT a FROM nope")
	require.NoError(t, err)
	p := New(toks, testEnv())
	_, err = p.ParsePrograms()
	require.Error(t, err)
}

func TestCheckAllSameTypeMixedErrors(t *testing.T) {
	toks, err := lexer.Tokenize("SELECT a FROM t WHERE a IN (1, 'x')")
	require.NoError(t, err)
	p := New(toks, testEnv())
	_, err = p.ParsePrograms()
	require.Error(t, err)
}

func TestGroupByParsesWithRollup(t *testing.T) {
	q := parseOne(t, "SELECT a, COUNT(a) FROM t GROUP BY a WITH ROLLUP")
	sq := q.(*plan.SelectQuery)
	require.True(t, sq.HasGroupBy)
	gb, ok := sq.Statements[plan.ClauseGroup].(*ast.GroupByStatement)
	require.True(t, ok)
	require.True(t, gb.WithRollup)
}
