package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/token"
	"github.com/gqlengine/gql/types"
)

func TestExprBaseTypeAndLocation(t *testing.T) {
	loc := token.SourceLocation{LineStart: 1, ColumnStart: 3}
	base := NewBase(types.Int, loc)

	require.Equal(t, types.Type(types.Int), base.ExprType())
	require.Equal(t, loc, base.Location())
}

func TestConcreteNodesEmbedBase(t *testing.T) {
	loc := token.SourceLocation{LineStart: 2}

	sym := &SymbolExpr{ExprBase: NewBase(types.Text, loc), Name: "a"}
	require.Equal(t, types.Type(types.Text), sym.ExprType())
	require.Equal(t, "a", sym.Name)

	num := &NumberExpr{ExprBase: NewBase(types.Int, loc), IntValue: 5}
	require.Equal(t, int64(5), num.IntValue)
	require.False(t, num.IsFloat)

	str := &StringExpr{ExprBase: NewBase(types.Text, loc), Value: "2024-01-02"}
	require.True(t, str.IsStringLiteral())
	require.Equal(t, "2024-01-02", str.StringLiteralValue())
}

func TestComparisonExprHoldsOperatorAndQuantifier(t *testing.T) {
	loc := token.SourceLocation{}
	left := &SymbolExpr{ExprBase: NewBase(types.Int, loc), Name: "a"}
	right := &NumberExpr{ExprBase: NewBase(types.Int, loc), IntValue: 1}

	cmp := &ComparisonExpr{
		ExprBase:   NewBase(types.Bool, loc),
		Op:         types.Gt,
		Left:       left,
		Right:      right,
		Quantifier: "",
	}
	require.Equal(t, types.Gt, cmp.Op)
	require.Equal(t, types.Type(types.Bool), cmp.ExprType())
}

func TestCallExprTracksAggregationFlag(t *testing.T) {
	call := &CallExpr{
		ExprBase:      NewBase(types.Int, token.SourceLocation{}),
		Name:          "sum",
		Args:          []Expression{&SymbolExpr{Name: "a"}},
		IsAggregation: true,
	}
	require.True(t, call.IsAggregation)
	require.Len(t, call.Args, 1)
}

func TestStatementNodesSatisfyStatement(t *testing.T) {
	var stmts []Statement = []Statement{
		&SelectStatement{}, &WhereStatement{}, &HavingStatement{},
		&QualifyStatement{}, &LimitStatement{}, &OffsetStatement{},
		&OrderByStatement{}, &GroupByStatement{}, &AggregationsStatement{},
		&WindowFunctionsStatement{}, &IntoStatement{},
	}
	require.Len(t, stmts, 11)
}

func TestQueryNodesSatisfyQuery(t *testing.T) {
	var queries []Query = []Query{
		&DoStatement{}, &SetStatement{}, &DescribeStatement{}, &ShowTablesStatement{},
	}
	require.Len(t, queries, 4)
}

func TestJoinAndOrderTermFields(t *testing.T) {
	j := Join{Kind: JoinLeft, Left: "t", Right: "u", First: true}
	require.Equal(t, JoinLeft, j.Kind)
	require.True(t, j.First)

	term := OrderTerm{Descending: true, Nulls: NullsFirst}
	require.Equal(t, NullsFirst, term.Nulls)
}

func TestIntoStatementKinds(t *testing.T) {
	out := &IntoStatement{Kind: IntoOutfile, Path: "/tmp/x", FieldsTerminatedBy: ","}
	require.Equal(t, IntoOutfile, out.Kind)

	dump := &IntoStatement{Kind: IntoDumpfile, Path: "/tmp/y"}
	require.Equal(t, IntoDumpfile, dump.Kind)
}
