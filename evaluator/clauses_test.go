package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/object"
	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

func rowsOf(vals ...value.Value) []object.Row {
	out := make([]object.Row, len(vals))
	for i, v := range vals {
		out[i] = object.Row{Values: []value.Value{v}}
	}
	return out
}

func TestFilterRowsNilPredicatePassesThrough(t *testing.T) {
	env := testEnv()
	rows := rowsOf(value.IntValue(1), value.IntValue(2))
	out, err := filterRows(nil, []string{"a"}, rows, env)
	require.NoError(t, err)
	require.Equal(t, rows, out)
}

func TestFilterRowsKeepsOnlyTruthy(t *testing.T) {
	env := testEnv()
	rows := rowsOf(value.IntValue(1), value.IntValue(2), value.IntValue(3))
	pred := cmp(types.Gt, sym("a", types.Int), num(1))
	out, err := filterRows(pred, []string{"a"}, rows, env)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, value.IntValue(2), out[0].Values[0])
	require.Equal(t, value.IntValue(3), out[1].Values[0])
}

func TestHashValuesStableAndDistinct(t *testing.T) {
	k1, err := hashValues([]value.Value{value.IntValue(1), value.TextValue("x")})
	require.NoError(t, err)
	k2, err := hashValues([]value.Value{value.IntValue(1), value.TextValue("x")})
	require.NoError(t, err)
	require.Equal(t, k1, k2)

	k3, err := hashValues([]value.Value{value.IntValue(2), value.TextValue("x")})
	require.NoError(t, err)
	require.NotEqual(t, k1, k3)
}

func TestPartitionRowsGroupsByKey(t *testing.T) {
	env := testEnv()
	obj := &object.Object{
		Titles: []string{"a"},
		Groups: []object.Group{{Rows: rowsOf(
			value.IntValue(1), value.IntValue(2), value.IntValue(1),
		)}},
	}
	gb := &ast.GroupByStatement{Exprs: []ast.Expression{sym("a", types.Int)}}
	out, err := partitionRows(gb, obj, env)
	require.NoError(t, err)
	require.Len(t, out.Groups, 2)
	require.Len(t, out.Groups[0].Rows, 2)
	require.Len(t, out.Groups[1].Rows, 1)
}

func TestPartitionRowsWithRollupAddsSuperAggregates(t *testing.T) {
	env := testEnv()
	obj := &object.Object{
		Titles: []string{"a"},
		Groups: []object.Group{{Rows: rowsOf(value.IntValue(1), value.IntValue(2))}},
	}
	gb := &ast.GroupByStatement{Exprs: []ast.Expression{sym("a", types.Int)}, WithRollup: true}
	out, err := partitionRows(gb, obj, env)
	require.NoError(t, err)
	// 2 per-value groups + 1 grand-total rollup group.
	require.Len(t, out.Groups, 3)
	require.Len(t, out.Groups[2].Rows, 2)
}

func TestOrderRowsAscendingAndDescending(t *testing.T) {
	env := testEnv()
	obj := &object.Object{
		Titles: []string{"a"},
		Groups: []object.Group{{Rows: rowsOf(value.IntValue(3), value.IntValue(1), value.IntValue(2))}},
	}
	err := orderRows([]ast.OrderTerm{{Expr: sym("a", types.Int)}}, obj, env)
	require.NoError(t, err)
	require.Equal(t, value.IntValue(1), obj.Groups[0].Rows[0].Values[0])
	require.Equal(t, value.IntValue(2), obj.Groups[0].Rows[1].Values[0])
	require.Equal(t, value.IntValue(3), obj.Groups[0].Rows[2].Values[0])

	err = orderRows([]ast.OrderTerm{{Expr: sym("a", types.Int), Descending: true}}, obj, env)
	require.NoError(t, err)
	require.Equal(t, value.IntValue(3), obj.Groups[0].Rows[0].Values[0])
}

func TestOrderRowsNullsPolicy(t *testing.T) {
	env := testEnv()
	obj := &object.Object{
		Titles: []string{"a"},
		Groups: []object.Group{{Rows: rowsOf(value.IntValue(1), value.NullValue{}, value.IntValue(2))}},
	}
	err := orderRows([]ast.OrderTerm{{Expr: sym("a", types.Int), Nulls: ast.NullsFirst}}, obj, env)
	require.NoError(t, err)
	_, isNull := obj.Groups[0].Rows[0].Values[0].(value.NullValue)
	require.True(t, isNull)

	obj.Groups[0].Rows = rowsOf(value.IntValue(1), value.NullValue{}, value.IntValue(2))
	err = orderRows([]ast.OrderTerm{{Expr: sym("a", types.Int), Nulls: ast.NullsLast}}, obj, env)
	require.NoError(t, err)
	_, isNull = obj.Groups[0].Rows[2].Values[0].(value.NullValue)
	require.True(t, isNull)
}

func TestSliceRowsOffsetAndLimit(t *testing.T) {
	env := testEnv()
	obj := &object.Object{
		Titles: []string{"a"},
		Groups: []object.Group{{Rows: rowsOf(value.IntValue(1), value.IntValue(2), value.IntValue(3), value.IntValue(4))}},
	}
	err := sliceRows(num(1), num(2), nil, obj, env)
	require.NoError(t, err)
	require.Len(t, obj.Groups[0].Rows, 2)
	require.Equal(t, value.IntValue(2), obj.Groups[0].Rows[0].Values[0])
	require.Equal(t, value.IntValue(3), obj.Groups[0].Rows[1].Values[0])
}

func TestSliceRowsLimitOffsetTakesPrecedence(t *testing.T) {
	env := testEnv()
	obj := &object.Object{
		Titles: []string{"a"},
		Groups: []object.Group{{Rows: rowsOf(value.IntValue(1), value.IntValue(2), value.IntValue(3), value.IntValue(4))}},
	}
	// OFFSET 1 but LIMIT 2, 2 (comma-form count 2, offset 2): limit's own
	// offset should win over the separate OFFSET clause.
	err := sliceRows(num(1), num(2), num(2), obj, env)
	require.NoError(t, err)
	require.Len(t, obj.Groups[0].Rows, 2)
	require.Equal(t, value.IntValue(3), obj.Groups[0].Rows[0].Values[0])
}
