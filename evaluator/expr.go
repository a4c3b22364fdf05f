// Package evaluator is the tree-walking executor that turns a parsed
// query plus a provider.DataProvider into a result object.Object: it
// walks plan.CanonicalOrder's clauses over the rows the FROM/JOIN step
// materialized, evaluating every ast.Expression node against the
// current row with evalExpr.
package evaluator

import (
	"fmt"
	"time"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/gqlerrors"
	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

// row pairs an object.Row with the column titles it's evaluated against,
// since a SymbolExpr only carries a name and needs the title->index map
// to find its value.
type row struct {
	titles []string
	values []value.Value
}

func (r row) column(name string) (value.Value, bool) {
	for i, t := range r.titles {
		if t == name {
			return r.values[i], true
		}
	}
	return nil, false
}

func evalExpr(e ast.Expression, r row, env *environment.Environment) (value.Value, error) {
	switch n := e.(type) {
	case *ast.StringExpr:
		return value.TextValue(n.Value), nil
	case *ast.NumberExpr:
		if n.IsFloat {
			return value.FloatValue(n.FloatValue), nil
		}
		return value.IntValue(n.IntValue), nil
	case *ast.BooleanExpr:
		return value.BoolValue(n.Value), nil
	case *ast.NullExpr:
		return value.NullValue{}, nil
	case *ast.SymbolExpr:
		v, ok := r.column(n.Name)
		if !ok {
			return nil, runtimeErr(n, "column %q not present in row", n.Name)
		}
		return v, nil
	case *ast.GlobalVariableExpr:
		v, ok := env.Global(n.Name)
		if !ok {
			return value.NullValue{}, nil
		}
		return v, nil
	case *ast.ArrayExpr:
		items := make([]value.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := evalExpr(el, r, env)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return value.ArrayValue{Element: n.Element, Items: items}, nil
	case *ast.AssignmentExpr:
		v, err := evalExpr(n.Value, r, env)
		if err != nil {
			return nil, err
		}
		env.SetGlobal(n.Name, v, n.Value.ExprType())
		return v, nil
	case *ast.PrefixUnaryExpr:
		return evalPrefixUnary(n, r, env)
	case *ast.IndexExpr:
		return evalIndex(n, r, env)
	case *ast.SliceExpr:
		return evalSlice(n, r, env)
	case *ast.ArithmeticExpr:
		return evalArithOrBitwise(n.Op, n.Left, n.Right, n, r, env)
	case *ast.BitwiseExpr:
		return evalArithOrBitwise(n.Op, n.Left, n.Right, n, r, env)
	case *ast.LogicalExpr:
		return evalLogical(n, r, env)
	case *ast.ComparisonExpr:
		return evalComparison(n, r, env)
	case *ast.ContainsExpr:
		return evalContains(n.Left, n.Right, n, r, env)
	case *ast.ContainedByExpr:
		return evalContains(n.Right, n.Left, n, r, env)
	case *ast.LikeExpr:
		return evalLike(n, r, env)
	case *ast.GlobExpr:
		return evalGlob(n, r, env)
	case *ast.RegexExpr:
		return evalRegex(n, r, env)
	case *ast.CallExpr:
		return evalCall(n, r, env)
	case *ast.BenchmarkCallExpr:
		return evalBenchmark(n, r, env)
	case *ast.BetweenExpr:
		return evalBetween(n, r, env)
	case *ast.CaseExpr:
		return evalCase(n, r, env)
	case *ast.InExpr:
		return evalIn(n, r, env)
	case *ast.IsNullExpr:
		return evalIsNull(n, r, env)
	case *ast.CastExpr:
		operand, err := evalExpr(n.Operand, r, env)
		if err != nil {
			return nil, err
		}
		v, err := value.Cast(operand, n.ExprType())
		if err != nil {
			return nil, gqlerrors.New(gqlerrors.ErrCastFailure.New(operand.Type().Name(), n.ExprType().Name()), n.Location())
		}
		return v, nil
	case *ast.GroupComparisonExpr:
		return evalGroupComparison(n, r, env)
	case *ast.MemberAccessExpr:
		return evalMemberAccess(n, r, env)
	case *ast.GroupExpr:
		return evalExpr(n.Inner, r, env)
	default:
		return nil, fmt.Errorf("evaluator: unhandled expression node %T", e)
	}
}

func runtimeErr(e ast.Expression, format string, args ...interface{}) error {
	return gqlerrors.New(fmt.Errorf(format, args...), e.Location())
}

func evalPrefixUnary(n *ast.PrefixUnaryExpr, r row, env *environment.Environment) (value.Value, error) {
	operand, err := evalExpr(n.Operand, r, env)
	if err != nil {
		return nil, err
	}
	if _, isNull := operand.(value.NullValue); isNull {
		return value.NullValue{}, nil
	}
	switch n.Op {
	case types.Not:
		b, ok := operand.(value.BoolValue)
		if !ok {
			return nil, runtimeErr(n, "NOT requires Bool, got %s", operand.Type().Name())
		}
		return b.Not()
	case types.Neg:
		neg, ok := operand.(interface{ Neg() (value.Value, error) })
		if !ok {
			return nil, runtimeErr(n, "unary - not supported for %s", operand.Type().Name())
		}
		v, err := neg.Neg()
		if err != nil {
			return nil, gqlerrors.New(gqlerrors.ErrIntegerOverflowOp.New("unary -"), n.Location())
		}
		return v, nil
	case types.BitNot:
		i, ok := operand.(value.IntValue)
		if !ok {
			return nil, runtimeErr(n, "~ requires Int, got %s", operand.Type().Name())
		}
		return i.BitNot()
	default:
		return nil, runtimeErr(n, "unsupported unary operator %s", n.Op)
	}
}

type indexable interface {
	Index(i value.IntValue) (value.Value, error)
}

type sliceable interface {
	Slice(lo, hi value.IntValue) (value.Value, error)
}

func evalIndex(n *ast.IndexExpr, r row, env *environment.Environment) (value.Value, error) {
	target, err := evalExpr(n.Target, r, env)
	if err != nil {
		return nil, err
	}
	idx, err := evalExpr(n.Index, r, env)
	if err != nil {
		return nil, err
	}
	if _, isNull := target.(value.NullValue); isNull {
		return value.NullValue{}, nil
	}
	ia, ok := target.(indexable)
	if !ok {
		return nil, runtimeErr(n, "%s does not support indexing", target.Type().Name())
	}
	i, ok := idx.(value.IntValue)
	if !ok {
		return nil, runtimeErr(n, "index must be Int, got %s", idx.Type().Name())
	}
	v, err := ia.Index(i)
	if err != nil {
		length := -1
		if arr, ok := target.(value.ArrayValue); ok {
			length = len(arr.Items)
		}
		return nil, gqlerrors.New(gqlerrors.ErrIndexOutOfRange.New(int64(i), length), n.Location())
	}
	return v, nil
}

func evalSlice(n *ast.SliceExpr, r row, env *environment.Environment) (value.Value, error) {
	target, err := evalExpr(n.Target, r, env)
	if err != nil {
		return nil, err
	}
	if _, isNull := target.(value.NullValue); isNull {
		return value.NullValue{}, nil
	}
	sa, ok := target.(sliceable)
	if !ok {
		return nil, runtimeErr(n, "%s does not support slicing", target.Type().Name())
	}
	lo, hi := value.IntValue(0), value.IntValue(-1)
	if arr, ok := target.(value.ArrayValue); ok {
		hi = value.IntValue(len(arr.Items))
	}
	if n.Lo != nil {
		v, err := evalExpr(n.Lo, r, env)
		if err != nil {
			return nil, err
		}
		lo, ok = v.(value.IntValue)
		if !ok {
			return nil, runtimeErr(n, "slice bound must be Int, got %s", v.Type().Name())
		}
	}
	if n.Hi != nil {
		v, err := evalExpr(n.Hi, r, env)
		if err != nil {
			return nil, err
		}
		hi, ok = v.(value.IntValue)
		if !ok {
			return nil, runtimeErr(n, "slice bound must be Int, got %s", v.Type().Name())
		}
	}
	v, err := sa.Slice(lo, hi)
	if err != nil {
		length := -1
		if arr, ok := target.(value.ArrayValue); ok {
			length = len(arr.Items)
		}
		return nil, gqlerrors.New(gqlerrors.ErrIndexOutOfRange.New(int64(lo), length), n.Location())
	}
	return v, nil
}

func evalArithOrBitwise(op types.Operator, le, re ast.Expression, n ast.Expression, r row, env *environment.Environment) (value.Value, error) {
	left, err := evalExpr(le, r, env)
	if err != nil {
		return nil, err
	}
	right, err := evalExpr(re, r, env)
	if err != nil {
		return nil, err
	}
	if isNull(left) || isNull(right) {
		return value.NullValue{}, nil
	}
	switch op {
	case types.Add, types.Sub, types.Mul, types.Div, types.Mod, types.Pow:
		return evalArith(op, left, right, n)
	case types.BitOr, types.BitAnd, types.BitXor, types.Shl, types.Shr:
		return evalBitOp(op, left, right, n)
	}
	return nil, runtimeErr(n, "unsupported arithmetic operator %s", op)
}

type adder interface {
	Add(value.Value) (value.Value, error)
}

type suber interface {
	Sub(value.Value) (value.Value, error)
}

func evalArith(op types.Operator, left, right value.Value, n ast.Expression) (value.Value, error) {
	var v value.Value
	var err error
	switch {
	case op == types.Add:
		if a, ok := left.(adder); ok {
			v, err = a.Add(right)
			break
		}
		return nil, runtimeErr(n, "operator + not supported between %s and %s", left.Type().Name(), right.Type().Name())
	case op == types.Sub:
		if s, ok := left.(suber); ok {
			v, err = s.Sub(right)
			break
		}
		return nil, runtimeErr(n, "operator - not supported between %s and %s", left.Type().Name(), right.Type().Name())
	default:
		a, ok := left.(value.Arith)
		if !ok {
			return nil, runtimeErr(n, "operator %s not supported between %s and %s", op, left.Type().Name(), right.Type().Name())
		}
		switch op {
		case types.Mul:
			v, err = a.Mul(right)
		case types.Div:
			v, err = a.Div(right)
		case types.Mod:
			v, err = a.Mod(right)
		case types.Pow:
			v, err = a.Pow(right)
		}
	}
	if err != nil {
		return nil, gqlerrors.New(err, n.Location())
	}
	return v, nil
}

type bitOps interface {
	BitOr(value.Value) (value.Value, error)
	BitAnd(value.Value) (value.Value, error)
	BitXor(value.Value) (value.Value, error)
	Shl(value.Value) (value.Value, error)
	Shr(value.Value) (value.Value, error)
}

func evalBitOp(op types.Operator, left, right value.Value, n ast.Expression) (value.Value, error) {
	if bo, ok := left.(bitOps); ok {
		var v value.Value
		var err error
		switch op {
		case types.BitOr:
			v, err = bo.BitOr(right)
		case types.BitAnd:
			v, err = bo.BitAnd(right)
		case types.BitXor:
			v, err = bo.BitXor(right)
		case types.Shl:
			v, err = bo.Shl(right)
		case types.Shr:
			v, err = bo.Shr(right)
		default:
			return nil, runtimeErr(n, "operator %s not supported between %s and %s", op, left.Type().Name(), right.Type().Name())
		}
		if err != nil {
			return nil, gqlerrors.New(err, n.Location())
		}
		return v, nil
	}
	return nil, runtimeErr(n, "operator %s not supported between %s and %s", op, left.Type().Name(), right.Type().Name())
}

func isNull(v value.Value) bool {
	_, ok := v.(value.NullValue)
	return ok
}

func evalLogical(n *ast.LogicalExpr, r row, env *environment.Environment) (value.Value, error) {
	left, err := evalExpr(n.Left, r, env)
	if err != nil {
		return nil, err
	}
	right, err := evalExpr(n.Right, r, env)
	if err != nil {
		return nil, err
	}
	if isNull(left) || isNull(right) {
		return value.NullValue{}, nil
	}
	lb, ok1 := left.(value.BoolValue)
	rb, ok2 := right.(value.BoolValue)
	if !ok1 || !ok2 {
		return nil, runtimeErr(n, "%s requires Bool operands", n.Op)
	}
	switch n.Op {
	case types.LogicalOr:
		return lb.Or(rb)
	case types.LogicalAnd:
		return lb.And(rb)
	case types.LogicalXor:
		return lb.Xor(rb)
	}
	return nil, runtimeErr(n, "unsupported logical operator %s", n.Op)
}

func evalComparison(n *ast.ComparisonExpr, r row, env *environment.Environment) (value.Value, error) {
	left, err := evalExpr(n.Left, r, env)
	if err != nil {
		return nil, err
	}
	right, err := evalExpr(n.Right, r, env)
	if err != nil {
		return nil, err
	}
	if n.Quantifier != "" {
		return evalQuantifiedComparison(n, left, right)
	}
	if n.Op == types.NullSafeEq {
		return value.BoolValue(value.NullSafeEq(left, right)), nil
	}
	if isNull(left) || isNull(right) {
		return value.NullValue{}, nil
	}
	switch n.Op {
	case types.Eq:
		return value.BoolValue(left.Eq(right)), nil
	case types.Neq:
		return value.BoolValue(!left.Eq(right)), nil
	case types.Gt, types.Gte, types.Lt, types.Lte:
		ord, ok := left.Compare(right)
		if !ok {
			return value.NullValue{}, nil
		}
		switch n.Op {
		case types.Gt:
			return value.BoolValue(ord == value.Greater), nil
		case types.Gte:
			return value.BoolValue(ord != value.Less), nil
		case types.Lt:
			return value.BoolValue(ord == value.Less), nil
		case types.Lte:
			return value.BoolValue(ord != value.Greater), nil
		}
	}
	return nil, runtimeErr(n, "unsupported comparison operator %s", n.Op)
}

func evalQuantifiedComparison(n *ast.ComparisonExpr, left, right value.Value) (value.Value, error) {
	arr, ok := right.(value.ArrayValue)
	if !ok {
		return nil, runtimeErr(n, "quantified comparison requires an Array RHS, got %s", right.Type().Name())
	}
	matches := 0
	for _, item := range arr.Items {
		var ok bool
		switch n.Op {
		case types.Eq:
			ok = left.Eq(item)
		case types.Neq:
			ok = !left.Eq(item)
		default:
			ord, comparable := left.Compare(item)
			if !comparable {
				continue
			}
			switch n.Op {
			case types.Gt:
				ok = ord == value.Greater
			case types.Gte:
				ok = ord != value.Less
			case types.Lt:
				ok = ord == value.Less
			case types.Lte:
				ok = ord != value.Greater
			}
		}
		if ok {
			matches++
		}
	}
	switch n.Quantifier {
	case "ALL":
		return value.BoolValue(matches == len(arr.Items)), nil
	default: // ANY, SOME
		return value.BoolValue(matches > 0), nil
	}
}

type container interface {
	Contains(value.Value) bool
}

func evalContains(containerExpr, elemExpr ast.Expression, n ast.Expression, r row, env *environment.Environment) (value.Value, error) {
	cv, err := evalExpr(containerExpr, r, env)
	if err != nil {
		return nil, err
	}
	ev, err := evalExpr(elemExpr, r, env)
	if err != nil {
		return nil, err
	}
	if isNull(cv) || isNull(ev) {
		return value.NullValue{}, nil
	}
	c, ok := cv.(container)
	if !ok {
		return nil, runtimeErr(n, "%s does not support @>/<@", cv.Type().Name())
	}
	return value.BoolValue(c.Contains(ev)), nil
}

func evalLike(n *ast.LikeExpr, r row, env *environment.Environment) (value.Value, error) {
	left, err := evalExpr(n.Left, r, env)
	if err != nil {
		return nil, err
	}
	right, err := evalExpr(n.Right, r, env)
	if err != nil {
		return nil, err
	}
	if isNull(left) || isNull(right) {
		return value.NullValue{}, nil
	}
	lt, ok1 := left.(value.TextValue)
	rt, ok2 := right.(value.TextValue)
	if !ok1 || !ok2 {
		return nil, runtimeErr(n, "LIKE requires Text operands")
	}
	result := lt.Like(rt)
	if n.Negated {
		result = !result
	}
	return value.BoolValue(result), nil
}

func evalGlob(n *ast.GlobExpr, r row, env *environment.Environment) (value.Value, error) {
	left, err := evalExpr(n.Left, r, env)
	if err != nil {
		return nil, err
	}
	right, err := evalExpr(n.Right, r, env)
	if err != nil {
		return nil, err
	}
	if isNull(left) || isNull(right) {
		return value.NullValue{}, nil
	}
	lt, ok1 := left.(value.TextValue)
	rt, ok2 := right.(value.TextValue)
	if !ok1 || !ok2 {
		return nil, runtimeErr(n, "GLOB requires Text operands")
	}
	return value.BoolValue(lt.Glob(rt)), nil
}

func evalRegex(n *ast.RegexExpr, r row, env *environment.Environment) (value.Value, error) {
	left, err := evalExpr(n.Left, r, env)
	if err != nil {
		return nil, err
	}
	right, err := evalExpr(n.Right, r, env)
	if err != nil {
		return nil, err
	}
	if isNull(left) || isNull(right) {
		return value.NullValue{}, nil
	}
	lt, ok1 := left.(value.TextValue)
	rt, ok2 := right.(value.TextValue)
	if !ok1 || !ok2 {
		return nil, runtimeErr(n, "REGEXP requires Text operands")
	}
	matched, err := lt.Regex(rt)
	if err != nil {
		return nil, gqlerrors.New(gqlerrors.ErrRegexCompile.New(string(rt), err.Error()), n.Location())
	}
	if n.Negated {
		matched = !matched
	}
	return value.BoolValue(matched), nil
}

func evalCall(n *ast.CallExpr, r row, env *environment.Environment) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := evalExpr(a, r, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	_, fn, ok := env.LookupStandard(n.Name)
	if !ok {
		return nil, runtimeErr(n, "function %s is not a standard function", n.Name)
	}
	v, err := fn(args)
	if err != nil {
		return nil, gqlerrors.New(err, n.Location())
	}
	return v, nil
}

func evalBenchmark(n *ast.BenchmarkCallExpr, r row, env *environment.Environment) (value.Value, error) {
	iv, err := evalExpr(n.Iterations, r, env)
	if err != nil {
		return nil, err
	}
	count, ok := iv.(value.IntValue)
	if !ok {
		return nil, runtimeErr(n, "BENCHMARK's first argument must be Int, got %s", iv.Type().Name())
	}
	start := time.Now()
	for i := int64(0); i < int64(count); i++ {
		if _, err := evalExpr(n.Target, r, env); err != nil {
			return nil, err
		}
	}
	return value.FloatValue(time.Since(start).Seconds()), nil
}

func evalBetween(n *ast.BetweenExpr, r row, env *environment.Environment) (value.Value, error) {
	operand, err := evalExpr(n.Operand, r, env)
	if err != nil {
		return nil, err
	}
	lo, err := evalExpr(n.Lo, r, env)
	if err != nil {
		return nil, err
	}
	hi, err := evalExpr(n.Hi, r, env)
	if err != nil {
		return nil, err
	}
	if isNull(operand) || isNull(lo) || isNull(hi) {
		return value.NullValue{}, nil
	}
	if n.Symmetric {
		if loOrd, ok := lo.Compare(hi); ok && loOrd == value.Greater {
			lo, hi = hi, lo
		}
	}
	loOrd, ok1 := operand.Compare(lo)
	hiOrd, ok2 := operand.Compare(hi)
	if !ok1 || !ok2 {
		return value.NullValue{}, nil
	}
	result := loOrd != value.Less && hiOrd != value.Greater
	if n.Negated {
		result = !result
	}
	return value.BoolValue(result), nil
}

func evalCase(n *ast.CaseExpr, r row, env *environment.Environment) (value.Value, error) {
	for _, w := range n.Whens {
		cond, err := evalExpr(w.Condition, r, env)
		if err != nil {
			return nil, err
		}
		if b, ok := cond.(value.BoolValue); ok && bool(b) {
			return evalExpr(w.Result, r, env)
		}
	}
	return evalExpr(n.Default, r, env)
}

func evalIn(n *ast.InExpr, r row, env *environment.Environment) (value.Value, error) {
	operand, err := evalExpr(n.Operand, r, env)
	if err != nil {
		return nil, err
	}
	found := false
	for _, e := range n.List {
		v, err := evalExpr(e, r, env)
		if err != nil {
			return nil, err
		}
		if operand.Eq(v) {
			found = true
			break
		}
	}
	if n.Negated {
		found = !found
	}
	return value.BoolValue(found), nil
}

func evalIsNull(n *ast.IsNullExpr, r row, env *environment.Environment) (value.Value, error) {
	operand, err := evalExpr(n.Operand, r, env)
	if err != nil {
		return nil, err
	}
	result := isNull(operand)
	if n.Negated {
		result = !result
	}
	return value.BoolValue(result), nil
}

func evalGroupComparison(n *ast.GroupComparisonExpr, r row, env *environment.Environment) (value.Value, error) {
	if len(n.Left) != len(n.Right) {
		return nil, runtimeErr(n, "group comparison arity mismatch: %d vs %d", len(n.Left), len(n.Right))
	}
	equal := true
	for i := range n.Left {
		lv, err := evalExpr(n.Left[i], r, env)
		if err != nil {
			return nil, err
		}
		rv, err := evalExpr(n.Right[i], r, env)
		if err != nil {
			return nil, err
		}
		if !lv.Eq(rv) {
			equal = false
			break
		}
	}
	switch n.Op {
	case types.Neq:
		return value.BoolValue(!equal), nil
	default:
		return value.BoolValue(equal), nil
	}
}

func evalMemberAccess(n *ast.MemberAccessExpr, r row, env *environment.Environment) (value.Value, error) {
	v, ok := r.column(n.Member)
	if !ok {
		return nil, runtimeErr(n, "column %q not present in row", n.Member)
	}
	return v, nil
}
