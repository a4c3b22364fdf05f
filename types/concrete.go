package types

import (
	"regexp"
	"strconv"
	"time"
)

// scalar is a concrete, non-structural type backed by a fixed name and a
// precomputed operator table. Int/Float/Text/Bool/Date/Time/DateTime all
// share this shape; only the table and name differ.
type scalar struct {
	base
	name string
	ops  map[Operator]OperatorSpec
	unar map[Operator]Type
}

func (s *scalar) Name() string    { return s.name }
func (s *scalar) Literal() string { return s.name }
func (s *scalar) Equals(other Type) bool {
	if other == nil {
		return false
	}
	if _, ok := other.(AnyType); ok {
		return true
	}
	o, ok := other.(*scalar)
	return ok && o.name == s.name
}
func (s *scalar) CanPerform(op Operator) (OperatorSpec, bool) {
	spec, ok := s.ops[op]
	return spec, ok
}
func (s *scalar) CanPerformUnary(op Operator) (Type, bool) {
	t, ok := s.unar[op]
	return t, ok
}

func merge(tables ...map[Operator]OperatorSpec) map[Operator]OperatorSpec {
	out := map[Operator]OperatorSpec{}
	for _, t := range tables {
		for k, v := range t {
			out[k] = v
		}
	}
	return out
}

var (
	// Int is a 64-bit signed integer.
	Int *scalar
	// Float is a 64-bit IEEE-754 float.
	Float *scalar
	// Text is a UTF-8 string.
	Text *scalar
	// Bool is a boolean.
	Bool *scalar
	// Date is a Unix-seconds timestamp truncated to midnight.
	Date *scalar
	// Time is a "HH:MM:SS[.SSS]" wall-clock value, stored as text.
	Time *scalar
	// DateTime is a Unix-seconds timestamp with time-of-day.
	DateTime *scalar
	// Null is the type of the NULL literal; it equals everything for
	// comparison purposes but supports no operators of its own beyond
	// equality (handled specially by value.NullValue).
	Null *scalar
	// Undefined types an expression the parser couldn't resolve; it
	// never appears in a successfully type-checked tree.
	Undefined *scalar
)

func init() {
	arith := func(self Type) map[Operator]OperatorSpec {
		spec := OperatorSpec{Accepts: []Type{self}, Result: Fixed(self)}
		return map[Operator]OperatorSpec{Add: spec, Sub: spec, Mul: spec, Div: spec, Mod: spec, Pow: spec}
	}

	Int = &scalar{name: "INT"}
	Float = &scalar{name: "FLOAT"}
	Text = &scalar{name: "TEXT"}
	Bool = &scalar{name: "BOOLEAN"}
	Date = &scalar{name: "DATE"}
	Time = &scalar{name: "TIME"}
	DateTime = &scalar{name: "DATETIME"}
	Null = &scalar{name: "NULL"}
	Undefined = &scalar{name: "UNDEFINED"}

	bitwiseInt := OperatorSpec{Accepts: []Type{Int}, Result: Fixed(Int)}
	shiftInt := OperatorSpec{Accepts: []Type{Int}, Result: Fixed(Int)}

	Int.ops = merge(arith(Int), comparisonOperators(Int), map[Operator]OperatorSpec{
		BitOr: bitwiseInt, BitAnd: bitwiseInt, BitXor: bitwiseInt,
		Shl: shiftInt, Shr: shiftInt,
	})
	Int.unar = map[Operator]Type{Neg: Int, BitNot: Int}

	Float.ops = merge(arith(Float), comparisonOperators(Float))
	Float.unar = map[Operator]Type{Neg: Float}

	textLike := OperatorSpec{Accepts: []Type{Text}, Result: Fixed(Bool)}
	Text.ops = merge(comparisonOperators(Text), map[Operator]OperatorSpec{
		Like: textLike, Glob: textLike, Regex: textLike,
		Add: {Accepts: []Type{Text}, Result: Fixed(Text)}, // concatenation
	})

	Bool.ops = merge(comparisonOperators(Bool), map[Operator]OperatorSpec{
		LogicalOr:  {Accepts: []Type{Bool}, Result: Fixed(Bool)},
		LogicalAnd: {Accepts: []Type{Bool}, Result: Fixed(Bool)},
		LogicalXor: {Accepts: []Type{Bool}, Result: Fixed(Bool)},
	})
	Bool.unar = map[Operator]Type{Not: Bool}

	temporalArith := OperatorSpec{Accepts: []Type{Interval}, Result: Fixed(Date)}
	Date.ops = merge(comparisonOperators(Date), map[Operator]OperatorSpec{Add: temporalArith, Sub: temporalArith})

	Time.ops = comparisonOperators(Time)

	dtArith := OperatorSpec{Accepts: []Type{Interval}, Result: Fixed(DateTime)}
	DateTime.ops = merge(comparisonOperators(DateTime), map[Operator]OperatorSpec{Add: dtArith, Sub: dtArith})

	Null.ops = map[Operator]OperatorSpec{
		Eq:         {Accepts: []Type{Null}, Result: Fixed(Bool)},
		NullSafeEq: {Accepts: []Type{AnyType{}}, Result: Fixed(Bool)},
	}
}

// HasImplicitCastFrom implements the one built-in implicit-cast rule:
// a Text literal whose contents parse as this type's format may be
// silently coerced. Only Time/Date/DateTime/Bool accept this; everything
// else (including Int/Float, which MySQL-family engines often coerce
// automatically but this spec deliberately does not) requires an
// explicit CAST.
func (s *scalar) HasImplicitCastFrom(expr LiteralProbe) bool {
	if expr == nil || !expr.IsStringLiteral() {
		return false
	}
	v := expr.StringLiteralValue()
	switch s {
	case Bool:
		return v == "true" || v == "false" || v == "TRUE" || v == "FALSE"
	case Date:
		_, err := time.Parse("2006-01-02", v)
		return err == nil
	case Time:
		return timeLiteralPattern.MatchString(v)
	case DateTime:
		_, err := time.Parse("2006-01-02 15:04:05", v)
		return err == nil
	default:
		return false
	}
}

var timeLiteralPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?$`)

// CanPerformExplicitCastTo is permissive between scalar kinds that have an
// obvious textual or numeric conversion; Null/Undefined cast to anything,
// Bool only round-trips with Int/Text, and the temporal types only
// convert to/from Text.
func (s *scalar) CanPerformExplicitCastTo(target Type) bool {
	t, ok := target.(*scalar)
	if !ok {
		if _, isAny := target.(AnyType); isAny {
			return true
		}
		return false
	}
	if s == Null || s == Undefined {
		return true
	}
	switch s {
	case Int:
		return t == Int || t == Float || t == Text || t == Bool
	case Float:
		return t == Float || t == Int || t == Text
	case Text:
		return t == Text || t == Int || t == Float || t == Bool || t == Date || t == Time || t == DateTime
	case Bool:
		return t == Bool || t == Int || t == Text
	case Date, Time, DateTime:
		return t == Text || t == s
	default:
		return false
	}
}

// ParseIntLiteral/ParseFloatLiteral exist purely so the parser doesn't
// need strconv imported alongside types just for literal validation
// during implicit-cast decisions involving numeric bases.
func ParseIntLiteral(s string) (int64, error)   { return strconv.ParseInt(s, 0, 64) }
func ParseFloatLiteral(s string) (float64, error) { return strconv.ParseFloat(s, 64) }
