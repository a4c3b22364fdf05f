// Package types is the engine's type system: one concrete Go type per
// GQL type, a shared Operator capability table, and the one-way implicit
// cast probe the parser uses to decide whether a Cast node can be
// inserted silently.
//
// The Rust original keeps this open (`dyn DataType`, one trait method per
// operator). This port closes it to a fixed Type interface with a single
// capability table keyed by Operator, per the "open polymorphic types"
// design note: callers lose the ability to register brand-new types at
// runtime, but the capability contract — CanPerform/CanPerformUnary — is
// unchanged, and an embedder can still implement Type for a type of its
// own as long as it's known to the parser's Environment before parsing.
package types

import "fmt"

// Operator is a binary or unary operator recognised by the type system.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
	Mod
	Pow
	BitOr
	BitAnd
	BitXor
	Shl
	Shr
	LogicalOr
	LogicalAnd
	LogicalXor
	Contains
	ContainedBy
	Like
	Glob
	Regex
	Eq
	Neq
	NullSafeEq
	Gt
	Gte
	Lt
	Lte
	Index
	Slice

	// Unary
	Not
	Neg
	BitNot
)

func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Pow:
		return "^"
	case BitOr:
		return "|"
	case BitAnd:
		return "&"
	case BitXor:
		return "xor"
	case Shl:
		return "<<"
	case Shr:
		return ">>"
	case LogicalOr:
		return "OR"
	case LogicalAnd:
		return "AND"
	case LogicalXor:
		return "XOR"
	case Contains:
		return "@>"
	case ContainedBy:
		return "<@"
	case Like:
		return "LIKE"
	case Glob:
		return "GLOB"
	case Regex:
		return "REGEXP"
	case Eq:
		return "="
	case Neq:
		return "!="
	case NullSafeEq:
		return "<=>"
	case Gt:
		return ">"
	case Gte:
		return ">="
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Index:
		return "[]"
	case Slice:
		return "[:]"
	case Not:
		return "!"
	case Neg:
		return "unary -"
	case BitNot:
		return "~"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

// ResultFn computes a binary operator's result type given the RHS type
// actually supplied at the call site. Most operators ignore it and
// return a fixed type; comparisons always return Bool; Dynamic-typed
// functions are the main user of the argument-dependent form elsewhere.
type ResultFn func(rhs Type) Type

// Fixed wraps a type that doesn't depend on the RHS into a ResultFn.
func Fixed(t Type) ResultFn {
	return func(Type) Type { return t }
}

// OperatorSpec describes one binary operator's admissible RHS types and
// how to compute the result type for whichever RHS was actually matched.
type OperatorSpec struct {
	Accepts []Type
	Result  ResultFn
}

// LiteralProbe is implemented by any expression node that can be asked
// whether it is a string literal, for the implicit-cast check in
// HasImplicitCastFrom. Kept minimal and defined here (rather than
// depending on the ast package) to avoid an import cycle between types
// and ast.
type LiteralProbe interface {
	IsStringLiteral() bool
	StringLiteralValue() string
}

// Type is the capability interface every concrete GQL type implements.
type Type interface {
	// Name is the printable type name, e.g. "INT", "Array<Text>".
	Name() string
	// Literal is an example/representative literal form, used in error
	// messages ("operator + can't be performed between INT and TEXT").
	Literal() string
	// Equals is structural equality between types; Any and Variant equal
	// anything they admit, and Dynamic equals nothing.
	Equals(other Type) bool
	// CanPerform returns the operator's capability spec for this type as
	// the LHS, or ok=false if the operator isn't supported at all.
	CanPerform(op Operator) (OperatorSpec, bool)
	// CanPerformUnary returns the fixed result type of a unary operator
	// applied to this type, or ok=false if unsupported.
	CanPerformUnary(op Operator) (Type, bool)
	// HasImplicitCastFrom reports whether expr (of some other type) can
	// be silently coerced to this type. Per spec, the only built-in rule
	// is string-literal -> Time/Date/DateTime/Bool when the literal's
	// contents match the target format; non-literal expressions are
	// never implicitly castable.
	HasImplicitCastFrom(expr LiteralProbe) bool
	// CanPerformExplicitCastTo reports whether an explicit `:: target`
	// or `CAST(x AS target)` from this type to target is legal.
	CanPerformExplicitCastTo(target Type) bool
}

// base provides the zero-capability defaults every concrete type embeds,
// mirroring the Rust trait's default methods (empty accepted-RHS lists,
// Null result types) so each concrete type only overrides what it
// actually supports.
type base struct{}

func (base) CanPerform(Operator) (OperatorSpec, bool)    { return OperatorSpec{}, false }
func (base) CanPerformUnary(Operator) (Type, bool)       { return nil, false }
func (base) HasImplicitCastFrom(LiteralProbe) bool       { return false }
func (base) CanPerformExplicitCastTo(target Type) bool   { return false }
func (base) Equals(other Type) bool                      { return false }

// comparisonOperators mixes in the standard Eq/Neq/NullSafeEq/Gt/Gte/Lt/Lte table
// against a single "same type" RHS, which almost every concrete scalar
// type wants verbatim.
func comparisonOperators(self Type) map[Operator]OperatorSpec {
	ordering := OperatorSpec{Accepts: []Type{self}, Result: Fixed(Bool)}
	// NULL is always a legal RHS for equality-family operators: SQL lets
	// `col = NULL` parse (it is always unknown/false at runtime, handled
	// by value-level NULL semantics, not rejected at type-check time).
	eqLike := OperatorSpec{Accepts: []Type{self, Null}, Result: Fixed(Bool)}
	return map[Operator]OperatorSpec{
		Eq: eqLike, Neq: eqLike, NullSafeEq: eqLike,
		Gt: ordering, Gte: ordering, Lt: ordering, Lte: ordering,
	}
}
