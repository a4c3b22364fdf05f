package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/plan"
	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

func TestApplyJoinInner(t *testing.T) {
	env := testEnv()
	j := ast.Join{
		Kind:  ast.JoinInner,
		Left:  "t",
		Right: "u",
		On:    cmp(types.Eq, sym("id", types.Int), sym("tid", types.Int)),
		First: true,
	}
	titles, rows, err := applyJoin(j,
		[]string{"id"}, [][]value.Value{{value.IntValue(1)}, {value.IntValue(2)}},
		[]string{"tid", "name"}, [][]value.Value{{value.IntValue(2), value.TextValue("x")}, {value.IntValue(3), value.TextValue("y")}},
		env)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "tid", "name"}, titles)
	require.Len(t, rows, 1)
	require.Equal(t, value.IntValue(1), rows[0][0])
	require.Equal(t, value.IntValue(2), rows[0][1])
}

func TestApplyJoinLeftPadsUnmatched(t *testing.T) {
	env := testEnv()
	j := ast.Join{
		Kind:  ast.JoinLeft,
		Left:  "t",
		Right: "u",
		On:    cmp(types.Eq, sym("id", types.Int), sym("tid", types.Int)),
		First: true,
	}
	titles, rows, err := applyJoin(j,
		[]string{"id"}, [][]value.Value{{value.IntValue(1)}, {value.IntValue(2)}},
		[]string{"tid", "name"}, [][]value.Value{{value.IntValue(2), value.TextValue("x")}},
		env)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "tid", "name"}, titles)
	require.Len(t, rows, 2)
	// id=1 has no match, so it's padded with NULLs on the right side.
	require.Equal(t, value.IntValue(1), rows[0][0])
	_, isNull := rows[0][1].(value.NullValue)
	require.True(t, isNull)
}

func TestApplyJoinRightPadsUnmatchedLeft(t *testing.T) {
	env := testEnv()
	j := ast.Join{
		Kind:  ast.JoinRight,
		Left:  "t",
		Right: "u",
		On:    cmp(types.Eq, sym("id", types.Int), sym("tid", types.Int)),
		First: true,
	}
	titles, rows, err := applyJoin(j,
		[]string{"id"}, [][]value.Value{{value.IntValue(1)}},
		[]string{"tid", "name"}, [][]value.Value{{value.IntValue(2), value.TextValue("x")}},
		env)
	require.NoError(t, err)
	require.Equal(t, []string{"id", "tid", "name"}, titles)
	require.Len(t, rows, 1)
	_, isNull := rows[0][0].(value.NullValue)
	require.True(t, isNull)
	require.Equal(t, value.TextValue("x"), rows[0][2])
}

func TestApplyJoinCrossHasNoOn(t *testing.T) {
	env := testEnv()
	j := ast.Join{Kind: ast.JoinCross, Left: "t", Right: "u", First: true}
	_, rows, err := applyJoin(j,
		[]string{"id"}, [][]value.Value{{value.IntValue(1)}, {value.IntValue(2)}},
		[]string{"tid"}, [][]value.Value{{value.IntValue(10)}, {value.IntValue(20)}},
		env)
	require.NoError(t, err)
	require.Len(t, rows, 4)
}

func TestMaterializeNoTablesReturnsSingleEmptyRow(t *testing.T) {
	q := plan.NewSelectQuery()
	q.Statements[plan.ClauseSelect] = &ast.SelectStatement{}
	env := testEnv()
	titles, rows, err := materialize(q, env, dp3())
	require.NoError(t, err)
	require.Nil(t, titles)
	require.Len(t, rows, 1)
}
