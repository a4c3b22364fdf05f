package parser

import (
	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/gqlerrors"
	"github.com/gqlengine/gql/token"
	"github.com/gqlengine/gql/types"
)

// resolveBinary implements §4.2's four-step algorithm: accept directly,
// implicit-cast the RHS, implicit-cast the LHS, or fail. On success it
// returns the (possibly Cast-wrapped) left/right expressions and the
// operator's result type.
func resolveBinary(op types.Operator, left, right ast.Expression, loc token.SourceLocation) (ast.Expression, ast.Expression, types.Type, error) {
	lt, rt := left.ExprType(), right.ExprType()

	if spec, ok := lt.CanPerform(op); ok {
		for _, accepted := range spec.Accepts {
			if accepted.Equals(rt) {
				return left, right, spec.Result(rt), nil
			}
		}
		for _, accepted := range spec.Accepts {
			if probe, ok := right.(types.LiteralProbe); ok && accepted.HasImplicitCastFrom(probe) {
				wrapped := &ast.CastExpr{ExprBase: ast.NewBase(accepted, loc), Operand: right, Implicit: true}
				return left, wrapped, spec.Result(accepted), nil
			}
		}
	}

	if spec, ok := rt.CanPerform(op); ok {
		for _, accepted := range spec.Accepts {
			if accepted.Equals(lt) {
				return left, right, spec.Result(lt), nil
			}
		}
		for _, accepted := range spec.Accepts {
			if probe, ok := left.(types.LiteralProbe); ok && accepted.HasImplicitCastFrom(probe) {
				wrapped := &ast.CastExpr{ExprBase: ast.NewBase(accepted, loc), Operand: left, Implicit: true}
				return wrapped, right, spec.Result(rt), nil
			}
		}
	}

	return nil, nil, nil, gqlerrors.New(
		gqlerrors.ErrOperatorNotSupported.New(op.String(), lt.Name(), rt.Name()), loc)
}

// resolveUnary checks a prefix unary operator against operand's type.
func resolveUnary(op types.Operator, operand ast.Expression, loc token.SourceLocation) (types.Type, error) {
	t, ok := operand.ExprType().CanPerformUnary(op)
	if !ok {
		return nil, gqlerrors.New(
			gqlerrors.ErrOperatorNotSupported.New(op.String(), operand.ExprType().Name(), operand.ExprType().Name()), loc)
	}
	return t, nil
}
