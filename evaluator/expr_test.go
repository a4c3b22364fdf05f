package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/token"
	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

func nullLit() ast.Expression {
	return &ast.NullExpr{ExprBase: ast.NewBase(types.Null, token.SourceLocation{})}
}

// evalIn is reached only through ast.InExpr nodes; these are built by
// hand to exercise evalIn's NULL handling directly, sidestepping the
// parser's same-type-list check (literal NULL mixed with Int never
// type-checks through SQL surface syntax, but the evaluator must still
// treat a NULL operand or a NULL list member per spec's equals rule).
func TestEvalInNullOperandMatchesNullListMember(t *testing.T) {
	n := &ast.InExpr{
		ExprBase: ast.NewBase(types.Bool, token.SourceLocation{}),
		Operand:  nullLit(),
		List:     []ast.Expression{num(1), nullLit(), num(3)},
	}
	v, err := evalExpr(n, row{}, testEnv())
	require.NoError(t, err)
	require.Equal(t, value.BoolValue(true), v)
}

func TestEvalInNullOperandWithoutNullListMemberIsFalse(t *testing.T) {
	n := &ast.InExpr{
		ExprBase: ast.NewBase(types.Bool, token.SourceLocation{}),
		Operand:  nullLit(),
		List:     []ast.Expression{num(1), num(3)},
	}
	v, err := evalExpr(n, row{}, testEnv())
	require.NoError(t, err)
	require.Equal(t, value.BoolValue(false), v)
}

func TestEvalInNonNullOperandSkipsNullListMembers(t *testing.T) {
	n := &ast.InExpr{
		ExprBase: ast.NewBase(types.Bool, token.SourceLocation{}),
		Operand:  num(2),
		List:     []ast.Expression{num(1), nullLit(), num(3)},
	}
	v, err := evalExpr(n, row{}, testEnv())
	require.NoError(t, err)
	require.Equal(t, value.BoolValue(false), v)
}

func TestEvalInNegated(t *testing.T) {
	n := &ast.InExpr{
		ExprBase: ast.NewBase(types.Bool, token.SourceLocation{}),
		Operand:  num(2),
		List:     []ast.Expression{num(1), num(2), num(3)},
		Negated:  true,
	}
	v, err := evalExpr(n, row{}, testEnv())
	require.NoError(t, err)
	require.Equal(t, value.BoolValue(false), v)
}
