// Package ast is the closed expression/statement tree the parser builds.
// Every node remembers its own resolved type so the evaluator never
// re-infers one; this mirrors the teacher's own expression package,
// where each node caches its Type() rather than recomputing it from
// children at evaluation time.
package ast

import (
	"github.com/gqlengine/gql/token"
	"github.com/gqlengine/gql/types"
)

// Expression is implemented by every node in the closed expression set.
type Expression interface {
	// ExprType is this node's resolved static type, computed once by the
	// parser.
	ExprType() types.Type
	// Location is the node's source span, for runtime-error reporting.
	Location() token.SourceLocation
}

// ExprBase carries the two fields every node has; concrete nodes embed
// it. Its fields are unexported so callers outside ast must go through
// NewBase, keeping node construction funneled through one place.
type ExprBase struct {
	type_ types.Type
	loc   token.SourceLocation
}

// NewBase builds an ExprBase with a resolved type and source location,
// for the parser to embed when constructing any concrete node.
func NewBase(t types.Type, loc token.SourceLocation) ExprBase {
	return ExprBase{type_: t, loc: loc}
}

func (b ExprBase) ExprType() types.Type           { return b.type_ }
func (b ExprBase) Location() token.SourceLocation { return b.loc }

// StringExpr is a 'quoted' or "quoted" string literal. It implements
// types.LiteralProbe so the type checker's implicit-cast rule can ask
// whether its contents parse as a Time/Date/DateTime/Bool format.
type StringExpr struct {
	ExprBase
	Value string
}

func (e *StringExpr) IsStringLiteral() bool      { return true }
func (e *StringExpr) StringLiteralValue() string { return e.Value }

// NumberExpr is an integer or float literal.
type NumberExpr struct {
	ExprBase
	IntValue   int64
	FloatValue float64
	IsFloat    bool
}

// BooleanExpr is a TRUE/FALSE literal.
type BooleanExpr struct {
	ExprBase
	Value bool
}

// NullExpr is the NULL literal.
type NullExpr struct{ ExprBase }

// SymbolExpr names an identifier bound in the current scope at parse
// time (a column reference, or a hidden aggregation/window column name
// the parser generated).
type SymbolExpr struct {
	ExprBase
	Name string
}

// GlobalVariableExpr is an @name reference.
type GlobalVariableExpr struct {
	ExprBase
	Name string
}

// ArrayExpr is an `ARRAY[e1, e2, ...]` literal; Element is the checked
// common element type (types.AnyType{} if empty).
type ArrayExpr struct {
	ExprBase
	Element  types.Type
	Elements []Expression
}

// AssignmentExpr is `@name := expr` / `@name = expr` inside a DO/SET
// statement.
type AssignmentExpr struct {
	ExprBase
	Name  string
	Value Expression
}

// PrefixUnaryExpr is `! NOT - ~` applied to Operand.
type PrefixUnaryExpr struct {
	ExprBase
	Op      types.Operator
	Operand Expression
}

// IndexExpr is `arr[i]`.
type IndexExpr struct {
	ExprBase
	Target Expression
	Index  Expression
}

// SliceExpr is `arr[lo:hi]`.
type SliceExpr struct {
	ExprBase
	Target Expression
	Lo, Hi Expression
}

// ArithmeticExpr is `+ - * / % ^` between two operands.
type ArithmeticExpr struct {
	ExprBase
	Op          types.Operator
	Left, Right Expression
}

// BitwiseExpr is `| & xor << >>` between two operands.
type BitwiseExpr struct {
	ExprBase
	Op          types.Operator
	Left, Right Expression
}

// LogicalExpr is `OR AND XOR` between two Bool operands.
type LogicalExpr struct {
	ExprBase
	Op          types.Operator
	Left, Right Expression
}

// ComparisonExpr is `= != <=> > >= < <=`, with an optional ALL/ANY/SOME
// quantifier applied to the RHS (quantified comparisons only make sense
// against an Array/Range RHS; Quantifier is "" for a plain comparison).
type ComparisonExpr struct {
	ExprBase
	Op          types.Operator
	Left, Right Expression
	Quantifier  string // "", "ALL", "ANY", "SOME"
}

// ContainsExpr is `lhs @> rhs`.
type ContainsExpr struct {
	ExprBase
	Left, Right Expression
}

// ContainedByExpr is `lhs <@ rhs`.
type ContainedByExpr struct {
	ExprBase
	Left, Right Expression
}

// LikeExpr is `lhs [NOT] LIKE rhs`.
type LikeExpr struct {
	ExprBase
	Left, Right Expression
	Negated     bool
}

// GlobExpr is `lhs GLOB rhs`.
type GlobExpr struct {
	ExprBase
	Left, Right Expression
}

// RegexExpr is `lhs REGEXP rhs` / `lhs NOT REGEXP rhs`.
type RegexExpr struct {
	ExprBase
	Left, Right Expression
	Negated     bool
}

// CallExpr is a standard or aggregation function call. IsAggregation is
// set by the parser once it has resolved Name against the environment's
// aggregation registry; the parser hoists aggregation calls into a
// hidden column and leaves a SymbolExpr in the projection in their
// place, but the original CallExpr survives inside the plan's
// Aggregations map.
type CallExpr struct {
	ExprBase
	Name         string
	Args         []Expression
	IsAggregation bool
}

// BenchmarkCallExpr is `BENCHMARK(n, expr)`: evaluates expr n times and
// returns the elapsed-time measurement rather than expr's own value.
type BenchmarkCallExpr struct {
	ExprBase
	Iterations Expression
	Target     Expression
}

// BetweenExpr is `expr [NOT] BETWEEN [SYMMETRIC|ASYMMETRIC] lo AND hi`;
// all three operand types are checked equal by the parser.
type BetweenExpr struct {
	ExprBase
	Operand, Lo, Hi Expression
	Negated         bool
	Symmetric       bool
}

// CaseWhen is one `WHEN cond THEN result` arm of a CaseExpr.
type CaseWhen struct {
	Condition Expression
	Result    Expression
}

// CaseExpr is `CASE WHEN ... THEN ... [WHEN ...]* ELSE default END`; the
// default branch is mandatory and every branch result type is checked
// equal.
type CaseExpr struct {
	ExprBase
	Whens   []CaseWhen
	Default Expression
}

// InExpr is `expr [NOT] IN (e1, e2, ...)`.
type InExpr struct {
	ExprBase
	Operand Expression
	List    []Expression
	Negated bool
}

// IsNullExpr is `expr IS [NOT] NULL`.
type IsNullExpr struct {
	ExprBase
	Operand Expression
	Negated bool
}

// CastExpr is an explicit `CAST(expr AS T)` / `expr::T`, or an implicit
// cast the parser inserted to make an otherwise ill-typed expression
// well-typed. Implicit is false for writer-visible CASTs.
type CastExpr struct {
	ExprBase
	Operand  Expression
	Implicit bool
}

// GroupComparisonExpr is a parenthesized comparison group used by
// multi-column quantified predicates, e.g. `(a, b) = ANY (...)`; kept
// distinct from a bare GroupExpr so the evaluator knows to compare
// component-wise.
type GroupComparisonExpr struct {
	ExprBase
	Op           types.Operator
	Left, Right  []Expression
}

// MemberAccessExpr is `composite.member` — field access into a
// Composite-typed value.
type MemberAccessExpr struct {
	ExprBase
	Target Expression
	Member string
}

// GroupExpr is a parenthesized sub-expression kept as its own node so
// the original source span (and thus error locations) survives, even
// though it's semantically transparent.
type GroupExpr struct {
	ExprBase
	Inner Expression
}
