package parser

import (
	"strconv"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/gqlerrors"
	"github.com/gqlengine/gql/internal/similartext"
	"github.com/gqlengine/gql/token"
	"github.com/gqlengine/gql/types"
)

// parseExpression is the lowest precedence entry point: assignment.
func (p *Parser) parseExpression(ctx *Context) (ast.Expression, error) {
	return p.parseAssignment(ctx)
}

func (p *Parser) parseAssignment(ctx *Context) (ast.Expression, error) {
	if p.check(token.GlobalVariable) {
		save := p.pos
		name := p.advance()
		if p.match(token.ColonEqual) || p.match(token.Equal) {
			value, err := p.parseAssignment(ctx)
			if err != nil {
				return nil, err
			}
			loc := name.Location
			loc.ExpandUntil(value.Location())
			return &ast.AssignmentExpr{ExprBase: ast.NewBase(value.ExprType(), loc), Name: name.Literal, Value: value}, nil
		}
		p.pos = save
	}
	return p.parseRegex(ctx)
}

func (p *Parser) parseRegex(ctx *Context) (ast.Expression, error) {
	left, err := p.parseIsNull(ctx)
	if err != nil {
		return nil, err
	}
	for {
		negated := false
		if p.check(token.NotRegex) {
			p.advance()
			negated = true
		} else if p.check(token.Regex) {
			p.advance()
		} else {
			return left, nil
		}
		right, err := p.parseIsNull(ctx)
		if err != nil {
			return nil, err
		}
		lt, rt := left.ExprType(), right.ExprType()
		if !types.Text.Equals(lt) || !types.Text.Equals(rt) {
			return nil, gqlerrors.New(
				gqlerrors.ErrOperatorNotSupported.New(types.Regex.String(), lt.Name(), rt.Name()), left.Location())
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		left = &ast.RegexExpr{ExprBase: ast.NewBase(types.Bool, loc), Left: left, Right: right, Negated: negated}
	}
}

func (p *Parser) parseIsNull(ctx *Context) (ast.Expression, error) {
	left, err := p.parseIn(ctx)
	if err != nil {
		return nil, err
	}
	for p.check(token.Is) {
		p.advance()
		negated := p.match(token.Not)
		end, err := p.expect(token.Null)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(end.Location)
		left = &ast.IsNullExpr{ExprBase: ast.NewBase(types.Bool, loc), Operand: left, Negated: negated}
	}
	return left, nil
}

func (p *Parser) parseIn(ctx *Context) (ast.Expression, error) {
	left, err := p.parseOr(ctx)
	if err != nil {
		return nil, err
	}
	negated := false
	if p.check(token.Not) && p.peekIs(1, token.In) {
		p.advance()
		negated = true
	} else if !p.check(token.In) {
		return left, nil
	}
	p.advance()
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	var list []ast.Expression
	if !p.check(token.RightParen) {
		for {
			e, err := p.parseExpression(ctx)
			if err != nil {
				return nil, err
			}
			list = append(list, e)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	end, err := p.expect(token.RightParen)
	if err != nil {
		return nil, err
	}
	elemType, err := checkAllSameType("IN", list)
	if err != nil {
		return nil, err
	}
	if !elemType.Equals(types.AnyType{}) && !elemType.Equals(left.ExprType()) {
		if _, ok := left.ExprType().(types.LiteralProbe); !ok {
			return nil, gqlerrors.New(
				gqlerrors.ErrOperatorNotSupported.New("IN", left.ExprType().Name(), elemType.Name()), left.Location())
		}
	}
	loc := left.Location()
	loc.ExpandUntil(end.Location)
	return &ast.InExpr{ExprBase: ast.NewBase(types.Bool, loc), Operand: left, List: list, Negated: negated}, nil
}

func (p *Parser) peekIs(offset int, k token.Kind) bool {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return false
	}
	return p.tokens[idx].Kind == k
}

func (p *Parser) parseLogicalLevel(ctx *Context, op types.Operator, next func(*Context) (ast.Expression, error), kinds ...token.Kind) (ast.Expression, error) {
	left, err := next(ctx)
	if err != nil {
		return nil, err
	}
	for p.match(kinds...) {
		right, err := next(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		newLeft, newRight, resultType, err := resolveBinary(op, left, right, loc)
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{ExprBase: ast.NewBase(resultType, loc), Op: op, Left: newLeft, Right: newRight}
	}
	return left, nil
}

func (p *Parser) parseOr(ctx *Context) (ast.Expression, error) {
	return p.parseLogicalLevel(ctx, types.LogicalOr, p.parseAnd, token.Or)
}

func (p *Parser) parseAnd(ctx *Context) (ast.Expression, error) {
	return p.parseLogicalLevel(ctx, types.LogicalAnd, p.parseBitOr, token.And)
}

func (p *Parser) parseBitwiseLevel(ctx *Context, op types.Operator, next func(*Context) (ast.Expression, error), kinds ...token.Kind) (ast.Expression, error) {
	left, err := next(ctx)
	if err != nil {
		return nil, err
	}
	for p.match(kinds...) {
		right, err := next(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		newLeft, newRight, resultType, err := resolveBinary(op, left, right, loc)
		if err != nil {
			return nil, err
		}
		left = &ast.BitwiseExpr{ExprBase: ast.NewBase(resultType, loc), Op: op, Left: newLeft, Right: newRight}
	}
	return left, nil
}

func (p *Parser) parseBitOr(ctx *Context) (ast.Expression, error) {
	return p.parseBitwiseLevel(ctx, types.BitOr, p.parseBitXor, token.BitwiseOr)
}

func (p *Parser) parseBitXor(ctx *Context) (ast.Expression, error) {
	return p.parseBitwiseLevel(ctx, types.BitXor, p.parseLogicalXor, token.BitwiseXor)
}

func (p *Parser) parseLogicalXor(ctx *Context) (ast.Expression, error) {
	return p.parseLogicalLevel(ctx, types.LogicalXor, p.parseBitAnd, token.XorKeyword)
}

func (p *Parser) parseBitAnd(ctx *Context) (ast.Expression, error) {
	return p.parseBitwiseLevel(ctx, types.BitAnd, p.parseComparison, token.BitwiseAnd)
}

var comparisonKindToOp = map[token.Kind]types.Operator{
	token.Greater: types.Gt, token.GreaterEqual: types.Gte,
	token.Less: types.Lt, token.LessEqual: types.Lte,
	token.Equal: types.Eq, token.BangEqual: types.Neq, token.LessGreater: types.Neq,
	token.NullSafeEqual: types.NullSafeEq,
}

func (p *Parser) parseComparison(ctx *Context) (ast.Expression, error) {
	left, err := p.parseContains(ctx)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonKindToOp[p.current().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		quantifier := ""
		if p.match(token.All) {
			quantifier = "ALL"
		} else if p.match(token.Any) {
			quantifier = "ANY"
		} else if p.match(token.Some) {
			quantifier = "SOME"
		}
		right, err := p.parseContains(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		var resultType types.Type
		var newLeft, newRight ast.Expression
		if quantifier != "" {
			resultType, newLeft, newRight = types.Bool, left, right
		} else {
			newLeft, newRight, resultType, err = resolveBinary(op, left, right, loc)
			if err != nil {
				return nil, err
			}
		}
		left = &ast.ComparisonExpr{ExprBase: ast.NewBase(resultType, loc), Op: op, Left: newLeft, Right: newRight, Quantifier: quantifier}
	}
}

func (p *Parser) parseContains(ctx *Context) (ast.Expression, error) {
	left, err := p.parseContainedBy(ctx)
	if err != nil {
		return nil, err
	}
	for p.check(token.Contains) {
		p.advance()
		right, err := p.parseContainedBy(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		newLeft, newRight, resultType, err := resolveBinary(types.Contains, left, right, loc)
		if err != nil {
			return nil, err
		}
		left = &ast.ContainsExpr{ExprBase: ast.NewBase(resultType, loc), Left: newLeft, Right: newRight}
	}
	return left, nil
}

func (p *Parser) parseContainedBy(ctx *Context) (ast.Expression, error) {
	left, err := p.parseShift(ctx)
	if err != nil {
		return nil, err
	}
	for p.check(token.ContainedBy) {
		p.advance()
		right, err := p.parseShift(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		newLeft, newRight, resultType, err := resolveBinary(types.ContainedBy, left, right, loc)
		if err != nil {
			return nil, err
		}
		left = &ast.ContainedByExpr{ExprBase: ast.NewBase(resultType, loc), Left: newLeft, Right: newRight}
	}
	return left, nil
}

var shiftKindToOp = map[token.Kind]types.Operator{
	token.BitwiseLeftShift: types.Shl, token.BitwiseRightShift: types.Shr,
}

func (p *Parser) parseShift(ctx *Context) (ast.Expression, error) {
	left, err := p.parseTerm(ctx)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := shiftKindToOp[p.current().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		newLeft, newRight, resultType, err := resolveBinary(op, left, right, loc)
		if err != nil {
			return nil, err
		}
		left = &ast.BitwiseExpr{ExprBase: ast.NewBase(resultType, loc), Op: op, Left: newLeft, Right: newRight}
	}
}

var termKindToOp = map[token.Kind]types.Operator{token.Plus: types.Add, token.Minus: types.Sub}

func (p *Parser) parseTerm(ctx *Context) (ast.Expression, error) {
	left, err := p.parseFactor(ctx)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := termKindToOp[p.current().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseFactor(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		newLeft, newRight, resultType, err := resolveBinary(op, left, right, loc)
		if err != nil {
			return nil, err
		}
		left = &ast.ArithmeticExpr{ExprBase: ast.NewBase(resultType, loc), Op: op, Left: newLeft, Right: newRight}
	}
}

var factorKindToOp = map[token.Kind]types.Operator{
	token.Star: types.Mul, token.Slash: types.Div, token.Percentage: types.Mod, token.Caret: types.Pow,
}

func (p *Parser) parseFactor(ctx *Context) (ast.Expression, error) {
	left, err := p.parseLike(ctx)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := factorKindToOp[p.current().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseLike(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		newLeft, newRight, resultType, err := resolveBinary(op, left, right, loc)
		if err != nil {
			return nil, err
		}
		left = &ast.ArithmeticExpr{ExprBase: ast.NewBase(resultType, loc), Op: op, Left: newLeft, Right: newRight}
	}
}

func (p *Parser) parseLike(ctx *Context) (ast.Expression, error) {
	left, err := p.parseGlob(ctx)
	if err != nil {
		return nil, err
	}
	for {
		negated := false
		if p.check(token.Not) && p.peekIs(1, token.Like) {
			p.advance()
			negated = true
		} else if !p.check(token.Like) {
			return left, nil
		}
		p.advance()
		right, err := p.parseGlob(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		newLeft, newRight, resultType, err := resolveBinary(types.Like, left, right, loc)
		if err != nil {
			return nil, err
		}
		left = &ast.LikeExpr{ExprBase: ast.NewBase(resultType, loc), Left: newLeft, Right: newRight, Negated: negated}
	}
}

func (p *Parser) parseGlob(ctx *Context) (ast.Expression, error) {
	left, err := p.parseCast(ctx)
	if err != nil {
		return nil, err
	}
	for p.check(token.Glob) {
		p.advance()
		right, err := p.parseCast(ctx)
		if err != nil {
			return nil, err
		}
		loc := left.Location()
		loc.ExpandUntil(right.Location())
		newLeft, newRight, resultType, err := resolveBinary(types.Glob, left, right, loc)
		if err != nil {
			return nil, err
		}
		left = &ast.GlobExpr{ExprBase: ast.NewBase(resultType, loc), Left: newLeft, Right: newRight}
	}
	return left, nil
}

func (p *Parser) parseCast(ctx *Context) (ast.Expression, error) {
	left, err := p.parseIndexSlice(ctx)
	if err != nil {
		return nil, err
	}
	for p.check(token.ColonColon) {
		p.advance()
		target, end, err := p.parseTypeName()
		if err != nil {
			return nil, err
		}
		if !left.ExprType().CanPerformExplicitCastTo(target) {
			return nil, gqlerrors.New(gqlerrors.ErrCastFailure.New(left.ExprType().Name(), target.Name()), end)
		}
		loc := left.Location()
		loc.ExpandUntil(end)
		left = &ast.CastExpr{ExprBase: ast.NewBase(target, loc), Operand: left, Implicit: false}
	}
	return left, nil
}

// parseTypeName consumes a type-name symbol (INT/FLOAT/TEXT/BOOL/DATE/
// TIME/DATETIME, case-insensitively) for `::T` and `CAST(x AS T)`.
func (p *Parser) parseTypeName() (types.Type, token.SourceLocation, error) {
	tok, err := p.expect(token.Symbol)
	if err != nil {
		return nil, token.SourceLocation{}, err
	}
	t, ok := typeNameLookup(tok.Literal)
	if !ok {
		return nil, token.SourceLocation{}, gqlerrors.New(
			gqlerrors.ErrUnsupportedFeature.New("unknown type name "+tok.Literal), tok.Location)
	}
	return t, tok.Location, nil
}

func typeNameLookup(name string) (types.Type, bool) {
	switch name {
	case "int", "Int", "INT", "integer", "INTEGER":
		return types.Int, true
	case "float", "Float", "FLOAT":
		return types.Float, true
	case "text", "Text", "TEXT", "string", "String", "STRING":
		return types.Text, true
	case "bool", "Bool", "BOOL", "boolean", "Boolean", "BOOLEAN":
		return types.Bool, true
	case "date", "Date", "DATE":
		return types.Date, true
	case "time", "Time", "TIME":
		return types.Time, true
	case "datetime", "DateTime", "DATETIME":
		return types.DateTime, true
	default:
		return nil, false
	}
}

func (p *Parser) parseIndexSlice(ctx *Context) (ast.Expression, error) {
	left, err := p.parsePrefixUnary(ctx)
	if err != nil {
		return nil, err
	}
	for p.check(token.LeftBracket) {
		p.advance()
		if p.check(token.Colon) {
			p.advance()
			hi, err := p.parseExpression(ctx)
			if err != nil {
				return nil, err
			}
			end, err := p.expect(token.RightBracket)
			if err != nil {
				return nil, err
			}
			loc := left.Location()
			loc.ExpandUntil(end.Location)
			left = &ast.SliceExpr{ExprBase: ast.NewBase(left.ExprType(), loc), Target: left, Lo: nil, Hi: hi}
			continue
		}
		first, err := p.parseExpression(ctx)
		if err != nil {
			return nil, err
		}
		if p.check(token.Colon) {
			p.advance()
			var hi ast.Expression
			if !p.check(token.RightBracket) {
				hi, err = p.parseExpression(ctx)
				if err != nil {
					return nil, err
				}
			}
			end, err := p.expect(token.RightBracket)
			if err != nil {
				return nil, err
			}
			loc := left.Location()
			loc.ExpandUntil(end.Location)
			left = &ast.SliceExpr{ExprBase: ast.NewBase(left.ExprType(), loc), Target: left, Lo: first, Hi: hi}
			continue
		}
		end, err := p.expect(token.RightBracket)
		if err != nil {
			return nil, err
		}
		spec, ok := left.ExprType().CanPerform(types.Index)
		if !ok {
			return nil, gqlerrors.New(
				gqlerrors.ErrOperatorNotSupported.New(types.Index.String(), left.ExprType().Name(), first.ExprType().Name()), end.Location)
		}
		loc := left.Location()
		loc.ExpandUntil(end.Location)
		left = &ast.IndexExpr{ExprBase: ast.NewBase(spec.Result(first.ExprType()), loc), Target: left, Index: first}
	}
	return left, nil
}

var prefixKindToOp = map[token.Kind]types.Operator{
	token.Bang: types.Not, token.Not: types.Not, token.Minus: types.Neg, token.BitwiseNot: types.BitNot,
}

func (p *Parser) parsePrefixUnary(ctx *Context) (ast.Expression, error) {
	if op, ok := prefixKindToOp[p.current().Kind]; ok {
		start := p.advance()
		operand, err := p.parsePrefixUnary(ctx)
		if err != nil {
			return nil, err
		}
		loc := start.Location
		loc.ExpandUntil(operand.Location())
		resultType, err := resolveUnary(op, operand, loc)
		if err != nil {
			return nil, err
		}
		return &ast.PrefixUnaryExpr{ExprBase: ast.NewBase(resultType, loc), Op: op, Operand: operand}, nil
	}
	return p.parseBetween(ctx)
}

func (p *Parser) parseBetween(ctx *Context) (ast.Expression, error) {
	operand, err := p.parseCallOrMember(ctx)
	if err != nil {
		return nil, err
	}
	negated := false
	if p.check(token.Not) && p.peekIs(1, token.Between) {
		p.advance()
		negated = true
	} else if !p.check(token.Between) {
		return operand, nil
	}
	p.advance()
	symmetric := false
	if p.match(token.Symmetric) {
		symmetric = true
	} else {
		p.match(token.Asymmetric)
	}
	lo, err := p.parseCallOrMember(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.And); err != nil {
		return nil, err
	}
	hi, err := p.parseCallOrMember(ctx)
	if err != nil {
		return nil, err
	}
	if !operand.ExprType().Equals(lo.ExprType()) {
		return nil, gqlerrors.New(
			gqlerrors.ErrMixedTypesInList.New("BETWEEN", operand.ExprType().Name(), lo.ExprType().Name()), lo.Location())
	}
	if !operand.ExprType().Equals(hi.ExprType()) {
		return nil, gqlerrors.New(
			gqlerrors.ErrMixedTypesInList.New("BETWEEN", operand.ExprType().Name(), hi.ExprType().Name()), hi.Location())
	}
	loc := operand.Location()
	loc.ExpandUntil(hi.Location())
	return &ast.BetweenExpr{ExprBase: ast.NewBase(types.Bool, loc), Operand: operand, Lo: lo, Hi: hi, Negated: negated, Symmetric: symmetric}, nil
}

func (p *Parser) parseCallOrMember(ctx *Context) (ast.Expression, error) {
	left, err := p.parsePrimary(ctx)
	if err != nil {
		return nil, err
	}
	for p.check(token.Dot) {
		p.advance()
		member, err := p.expect(token.Symbol)
		if err != nil {
			return nil, err
		}
		ct, ok := left.ExprType().(types.CompositeType)
		var memberType types.Type = types.Undefined
		if ok {
			if mt, present := ct.Members[member.Literal]; present {
				memberType = mt
			}
		}
		loc := left.Location()
		loc.ExpandUntil(member.Location)
		left = &ast.MemberAccessExpr{ExprBase: ast.NewBase(memberType, loc), Target: left, Member: member.Literal}
	}
	return left, nil
}

func (p *Parser) parsePrimary(ctx *Context) (ast.Expression, error) {
	tok := p.current()
	switch tok.Kind {
	case token.Integer:
		p.advance()
		return &ast.NumberExpr{ExprBase: ast.NewBase(types.Int, tok.Location), IntValue: tok.IntegerValue}, nil
	case token.Float:
		p.advance()
		return &ast.NumberExpr{ExprBase: ast.NewBase(types.Float, tok.Location), FloatValue: tok.FloatValue, IsFloat: true}, nil
	case token.String:
		p.advance()
		return &ast.StringExpr{ExprBase: ast.NewBase(types.Text, tok.Location), Value: tok.Literal}, nil
	case token.True:
		p.advance()
		return &ast.BooleanExpr{ExprBase: ast.NewBase(types.Bool, tok.Location), Value: true}, nil
	case token.False:
		p.advance()
		return &ast.BooleanExpr{ExprBase: ast.NewBase(types.Bool, tok.Location), Value: false}, nil
	case token.Null:
		p.advance()
		return &ast.NullExpr{ExprBase: ast.NewBase(types.Null, tok.Location)}, nil
	case token.GlobalVariable:
		p.advance()
		t, err := p.env.ResolveType("@" + tok.Literal)
		if err != nil {
			return nil, gqlerrors.New(gqlerrors.ErrUnexpectedToken.New("a declared global variable", err.Error()), tok.Location)
		}
		return &ast.GlobalVariableExpr{ExprBase: ast.NewBase(t, tok.Location), Name: tok.Literal}, nil
	case token.Array:
		return p.parseArrayLiteral(ctx)
	case token.Cast:
		return p.parseCastCall(ctx)
	case token.Case:
		return p.parseCaseExpr(ctx)
	case token.Benchmark:
		return p.parseBenchmarkCall(ctx)
	case token.LeftParen:
		return p.parseParenOrGroup(ctx)
	case token.Symbol:
		return p.parseSymbolOrCall(ctx)
	default:
		return nil, gqlerrors.New(gqlerrors.ErrUnexpectedToken.New("an expression", tok.Kind.String()), tok.Location)
	}
}

func (p *Parser) parseArrayLiteral(ctx *Context) (ast.Expression, error) {
	start := p.advance().Location
	if _, err := p.expect(token.LeftBracket); err != nil {
		return nil, err
	}
	var elems []ast.Expression
	if !p.check(token.RightBracket) {
		for {
			e, err := p.parseExpression(ctx)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	end, err := p.expect(token.RightBracket)
	if err != nil {
		return nil, err
	}
	elemType, err := checkAllSameType("ARRAY", elems)
	if err != nil {
		return nil, err
	}
	loc := start
	loc.ExpandUntil(end.Location)
	arrType := types.ArrayType{Element: elemType}
	return &ast.ArrayExpr{ExprBase: ast.NewBase(arrType, loc), Element: elemType, Elements: elems}, nil
}

func (p *Parser) parseCastCall(ctx *Context) (ast.Expression, error) {
	start := p.advance().Location
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.As); err != nil {
		return nil, err
	}
	target, _, err := p.parseTypeName()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RightParen)
	if err != nil {
		return nil, err
	}
	if !operand.ExprType().CanPerformExplicitCastTo(target) {
		return nil, gqlerrors.New(gqlerrors.ErrCastFailure.New(operand.ExprType().Name(), target.Name()), end.Location)
	}
	loc := start
	loc.ExpandUntil(end.Location)
	return &ast.CastExpr{ExprBase: ast.NewBase(target, loc), Operand: operand, Implicit: false}, nil
}

func (p *Parser) parseCaseExpr(ctx *Context) (ast.Expression, error) {
	start := p.advance().Location
	var whens []ast.CaseWhen
	for p.check(token.When) {
		p.advance()
		cond, err := p.parseExpression(ctx)
		if err != nil {
			return nil, err
		}
		if !types.Bool.Equals(cond.ExprType()) {
			return nil, gqlerrors.New(
				gqlerrors.ErrOperatorNotSupported.New("WHEN", cond.ExprType().Name(), types.Bool.Name()), cond.Location())
		}
		if _, err := p.expect(token.Then); err != nil {
			return nil, err
		}
		result, err := p.parseExpression(ctx)
		if err != nil {
			return nil, err
		}
		whens = append(whens, ast.CaseWhen{Condition: cond, Result: result})
	}
	if len(whens) == 0 {
		got := p.current()
		return nil, gqlerrors.New(gqlerrors.ErrUnexpectedToken.New("WHEN", got.Kind.String()), got.Location)
	}
	if _, err := p.expect(token.Else); err != nil {
		return nil, err
	}
	def, err := p.parseExpression(ctx)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.End)
	if err != nil {
		return nil, err
	}
	for _, w := range whens {
		if !w.Result.ExprType().Equals(def.ExprType()) {
			return nil, gqlerrors.New(
				gqlerrors.ErrMixedTypesInList.New("CASE", def.ExprType().Name(), w.Result.ExprType().Name()), w.Result.Location())
		}
	}
	loc := start
	loc.ExpandUntil(end.Location)
	return &ast.CaseExpr{ExprBase: ast.NewBase(def.ExprType(), loc), Whens: whens, Default: def}, nil
}

func (p *Parser) parseBenchmarkCall(ctx *Context) (ast.Expression, error) {
	start := p.advance().Location
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	iterations, err := p.parseExpression(ctx)
	if err != nil {
		return nil, err
	}
	if !types.Int.Equals(iterations.ExprType()) {
		return nil, gqlerrors.New(
			gqlerrors.ErrArgumentTypeMismatch.New("BENCHMARK", 1, types.Int.Name(), iterations.ExprType().Name()), iterations.Location())
	}
	if _, err := p.expect(token.Comma); err != nil {
		return nil, err
	}
	target, err := p.parseExpression(ctx)
	if err != nil {
		return nil, err
	}
	end, err := p.expect(token.RightParen)
	if err != nil {
		return nil, err
	}
	loc := start
	loc.ExpandUntil(end.Location)
	return &ast.BenchmarkCallExpr{ExprBase: ast.NewBase(types.Float, loc), Iterations: iterations, Target: target}, nil
}

func (p *Parser) parseParenOrGroup(ctx *Context) (ast.Expression, error) {
	start := p.advance().Location
	first, err := p.parseExpression(ctx)
	if err != nil {
		return nil, err
	}
	if p.check(token.Comma) {
		group := []ast.Expression{first}
		for p.match(token.Comma) {
			e, err := p.parseExpression(ctx)
			if err != nil {
				return nil, err
			}
			group = append(group, e)
		}
		end, err := p.expect(token.RightParen)
		if err != nil {
			return nil, err
		}
		loc := start
		loc.ExpandUntil(end.Location)
		return p.parseGroupComparison(ctx, group, loc)
	}
	end, err := p.expect(token.RightParen)
	if err != nil {
		return nil, err
	}
	loc := start
	loc.ExpandUntil(end.Location)
	return &ast.GroupExpr{ExprBase: ast.NewBase(first.ExprType(), loc), Inner: first}, nil
}

// parseGroupComparison handles `(a, b) = (c, d)`-shaped multi-column
// comparisons that can follow a parenthesized expression list.
func (p *Parser) parseGroupComparison(ctx *Context, left []ast.Expression, loc token.SourceLocation) (ast.Expression, error) {
	op, ok := comparisonKindToOp[p.current().Kind]
	if !ok {
		return nil, gqlerrors.New(
			gqlerrors.ErrUnexpectedToken.New("a comparison operator after a grouped expression list", p.current().Kind.String()), p.current().Location)
	}
	p.advance()
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}
	var right []ast.Expression
	for {
		e, err := p.parseExpression(ctx)
		if err != nil {
			return nil, err
		}
		right = append(right, e)
		if !p.match(token.Comma) {
			break
		}
	}
	end, err := p.expect(token.RightParen)
	if err != nil {
		return nil, err
	}
	if len(left) != len(right) {
		return nil, gqlerrors.New(
			gqlerrors.ErrMixedTypesInList.New("grouped comparison", itoa(len(left))+" columns", itoa(len(right))+" columns"), end.Location)
	}
	loc.ExpandUntil(end.Location)
	return &ast.GroupComparisonExpr{ExprBase: ast.NewBase(types.Bool, loc), Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseSymbolOrCall(ctx *Context) (ast.Expression, error) {
	tok := p.advance()
	if p.check(token.LeftParen) {
		return p.parseCall(ctx, tok)
	}
	t, err := p.env.ResolveType(tok.Literal)
	if err != nil {
		return nil, gqlerrors.New(gqlerrors.ErrUnexpectedToken.New("a known column or alias", err.Error()), tok.Location)
	}
	ctx.SelectedColumns[tok.Literal] = true
	return &ast.SymbolExpr{ExprBase: ast.NewBase(t, tok.Location), Name: tok.Literal}, nil
}

func (p *Parser) parseCall(ctx *Context, name token.Token) (ast.Expression, error) {
	p.advance() // consume '('
	var args []ast.Expression
	if p.check(token.Star) {
		p.advance()
	} else if !p.check(token.RightParen) {
		for {
			a, err := p.parseExpression(ctx)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	end, err := p.expect(token.RightParen)
	if err != nil {
		return nil, err
	}
	loc := name.Location
	loc.ExpandUntil(end.Location)

	isAgg := p.env.IsAggregation(name.Literal)
	isWindow := p.env.IsWindow(name.Literal)

	var returnType types.Type
	var params []types.Type
	switch {
	case isAgg:
		s, _, ok := p.env.LookupAggregation(name.Literal)
		if !ok {
			return nil, p.unknownFunctionErr(name)
		}
		params, returnType = s.Parameters, s.Return
	case isWindow:
		s, _, ok := p.env.LookupWindow(name.Literal)
		if !ok {
			return nil, p.unknownFunctionErr(name)
		}
		params, returnType = s.Parameters, s.Return
	default:
		s, _, ok := p.env.LookupStandard(name.Literal)
		if !ok {
			return nil, p.unknownFunctionErr(name)
		}
		params, returnType = s.Parameters, s.Return
	}

	if err := checkCallArguments(name, params, args); err != nil {
		return nil, err
	}
	if dyn, ok := returnType.(types.DynamicType); ok {
		argTypes := make([]types.Type, len(args))
		for i, a := range args {
			argTypes[i] = a.ExprType()
		}
		returnType = dyn.Resolve(argTypes)
	}

	call := &ast.CallExpr{ExprBase: ast.NewBase(returnType, loc), Name: name.Literal, Args: args, IsAggregation: isAgg}

	if isWindow || (isAgg && p.check(token.Over)) {
		def, namedRef, err := p.parseOverClauseIfPresent(ctx)
		if err != nil {
			return nil, err
		}
		hidden := ctx.FreshHiddenName("win")
		ctx.WindowCalls[hidden] = ast.WindowCall{Call: call, Def: def}
		if namedRef != "" {
			ctx.PendingNamedWindowRefs[hidden] = namedRef
		}
		return &ast.SymbolExpr{ExprBase: ast.NewBase(returnType, loc), Name: hidden}, nil
	}

	// A bare aggregation call (no OVER clause) is hoisted to its own
	// hidden column and replaced in the expression tree by a reference to
	// it, the same way a user-written alias would be: the evaluator
	// computes Aggregations before it ever looks at the projection list.
	// HAVING/QUALIFY may reference an aggregation this way too. Every call
	// gets its own entry under a fresh name from FreshHiddenName; entries
	// are not shared, so two occurrences of literally the same call are
	// computed twice.
	if isAgg {
		hidden := ctx.FreshHiddenName("agg")
		ctx.Aggregations[hidden] = call
		return &ast.SymbolExpr{ExprBase: ast.NewBase(returnType, loc), Name: hidden}, nil
	}

	return call, nil
}

// parseOverClauseIfPresent consumes an optional `OVER (...)` or `OVER
// name` clause. A window function call must have one; an aggregation
// used as a window function (e.g. `SUM(x) OVER (...)`) may or may not.
func (p *Parser) parseOverClauseIfPresent(ctx *Context) (ast.WindowDef, string, error) {
	if !p.match(token.Over) {
		got := p.current()
		return ast.WindowDef{}, "", gqlerrors.New(
			gqlerrors.ErrUnexpectedToken.New("OVER", got.Kind.String()), got.Location)
	}
	if p.check(token.Symbol) {
		name := p.advance()
		return ast.WindowDef{}, name.Literal, nil
	}
	prevInsideOver := ctx.InsideOverClause
	ctx.InsideOverClause = true
	def, err := p.parseWindowDefParenBody(ctx)
	ctx.InsideOverClause = prevInsideOver
	if err != nil {
		return ast.WindowDef{}, "", err
	}
	return def, "", nil
}

// parseOrderTerm parses one `expr [ASC|DESC] [NULLS FIRST|LAST]` entry,
// shared by ORDER BY and a window's OVER (... ORDER BY ...).
func (p *Parser) parseOrderTerm(ctx *Context) (ast.OrderTerm, error) {
	e, err := p.parseExpression(ctx)
	if err != nil {
		return ast.OrderTerm{}, err
	}
	descending := false
	if p.match(token.Descending) {
		descending = true
	} else {
		p.match(token.Ascending)
	}
	nulls := ast.NullsDefault
	if p.match(token.Nulls) {
		if p.match(token.First) {
			nulls = ast.NullsFirst
		} else if _, err := p.expect(token.Last); err != nil {
			return ast.OrderTerm{}, err
		} else {
			nulls = ast.NullsLast
		}
	}
	return ast.OrderTerm{Expr: e, Descending: descending, Nulls: nulls}, nil
}

func (p *Parser) unknownFunctionErr(name token.Token) error {
	err := gqlerrors.ErrUnexpectedToken.New("a known function name", name.Literal)
	d := gqlerrors.New(err, name.Location)
	if hint := similartext.FindMatch(p.env.FunctionNames(), name.Literal); hint != "" {
		d = d.WithDidYouMean(hint)
	}
	return d
}

// checkCallArguments implements check_function_call_arguments: arity via
// min_required = len(params) - optionalCount - (hasVarargs ? 1 : 0), then
// per-argument type-check with implicit-cast insertion (mutating args in
// place when a cast is inserted).
func checkCallArguments(name token.Token, params []types.Type, args []ast.Expression) error {
	optionalCount := 0
	hasVarargs := false
	for _, prm := range params {
		if _, ok := prm.(types.OptionalType); ok {
			optionalCount++
		}
		if _, ok := prm.(types.VarargsType); ok {
			hasVarargs = true
		}
	}
	minRequired := len(params) - optionalCount
	if hasVarargs {
		minRequired--
	}
	if len(args) < minRequired {
		return gqlerrors.New(gqlerrors.ErrWrongArgumentCount.New(name.Literal, "at least "+itoa(minRequired), len(args)), name.Location)
	}
	if !hasVarargs && len(args) > len(params) {
		return gqlerrors.New(gqlerrors.ErrWrongArgumentCount.New(name.Literal, "at most "+itoa(len(params)), len(args)), name.Location)
	}
	for i, arg := range args {
		var formal types.Type
		switch {
		case i < len(params):
			formal = params[i]
		case hasVarargs:
			formal = params[len(params)-1]
		default:
			continue
		}
		switch f := formal.(type) {
		case types.OptionalType:
			formal = f.Inner
		case types.VarargsType:
			formal = f.Inner
		}
		if formal.Equals(arg.ExprType()) {
			continue
		}
		if probe, ok := arg.(types.LiteralProbe); ok && formal.HasImplicitCastFrom(probe) {
			args[i] = &ast.CastExpr{ExprBase: ast.NewBase(formal, arg.Location()), Operand: arg, Implicit: true}
			continue
		}
		if _, isAny := formal.(types.AnyType); isAny {
			continue
		}
		return gqlerrors.New(
			gqlerrors.ErrArgumentTypeMismatch.New(name.Literal, i+1, formal.Name(), arg.ExprType().Name()), arg.Location())
	}
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }
