package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/object"
	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

func groupedObj() *object.Object {
	return &object.Object{
		Titles: []string{"a"},
		Groups: []object.Group{
			{Rows: rowsOf(value.IntValue(1), value.IntValue(2))},
			{Rows: rowsOf(value.IntValue(10))},
		},
	}
}

func TestComputeAggregationsSum(t *testing.T) {
	env := testEnv()
	ag := &ast.AggregationsStatement{Aggregations: map[string]*ast.CallExpr{
		"__sum_a": {Name: "SUM", Args: []ast.Expression{sym("a", types.Int)}},
	}}
	out, err := computeAggregations(ag, groupedObj(), env)
	require.NoError(t, err)
	require.Len(t, out.Groups, 2)
	idx := out.ColumnIndex("__sum_a")
	require.GreaterOrEqual(t, idx, 0)
	require.Equal(t, value.IntValue(3), out.Groups[0].Rows[0].Values[idx])
	require.Equal(t, value.IntValue(10), out.Groups[1].Rows[0].Values[idx])
}

func TestComputeAggregationsCollapsesEachGroupToOneRow(t *testing.T) {
	env := testEnv()
	ag := &ast.AggregationsStatement{Aggregations: map[string]*ast.CallExpr{
		"__count_a": {Name: "COUNT", Args: []ast.Expression{sym("a", types.Int)}},
	}}
	out, err := computeAggregations(ag, groupedObj(), env)
	require.NoError(t, err)
	for _, g := range out.Groups {
		require.Len(t, g.Rows, 1)
	}
}

func TestComputeWindowFunctionsRowNumber(t *testing.T) {
	env := testEnv()
	obj := &object.Object{
		Titles: []string{"a"},
		Groups: []object.Group{{Rows: rowsOf(value.IntValue(30), value.IntValue(10), value.IntValue(20))}},
	}
	wf := &ast.WindowFunctionsStatement{Calls: map[string]ast.WindowCall{
		"__rn": {
			Call: &ast.CallExpr{Name: "ROW_NUMBER"},
			Def:  ast.WindowDef{OrderBy: []ast.OrderTerm{{Expr: sym("a", types.Int)}}},
		},
	}}
	out, err := computeWindowFunctions(wf, obj, env)
	require.NoError(t, err)
	idx := out.ColumnIndex("__rn")
	require.GreaterOrEqual(t, idx, 0)
	require.Len(t, out.Groups[0].Rows, 3)
}

func TestWindowPartitionsNoPartitionByIsOneBucket(t *testing.T) {
	env := testEnv()
	rows := rowsOf(value.IntValue(1), value.IntValue(2), value.IntValue(3))
	parts, err := windowPartitions(ast.WindowDef{}, []string{"a"}, rows, env)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	require.Len(t, parts[0], 3)
}

func TestWindowPartitionsByKey(t *testing.T) {
	env := testEnv()
	rows := rowsOf(value.IntValue(1), value.IntValue(1), value.IntValue(2))
	parts, err := windowPartitions(ast.WindowDef{PartitionBy: []ast.Expression{sym("a", types.Int)}}, []string{"a"}, rows, env)
	require.NoError(t, err)
	require.Len(t, parts, 2)
}

func TestSortPartitionOrdersIndicesByValue(t *testing.T) {
	env := testEnv()
	rows := rowsOf(value.IntValue(30), value.IntValue(10), value.IntValue(20))
	part := []int{0, 1, 2}
	err := sortPartition([]ast.OrderTerm{{Expr: sym("a", types.Int)}}, []string{"a"}, rows, part, env)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 0}, part)
}
