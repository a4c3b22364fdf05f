package types

import "fmt"

// AnyType matches any other type in Equals, and is the type assigned to
// expressions whose structure the parser can't pin down more precisely
// (e.g. an empty ARRAY[] literal). It carries no operators of its own.
type AnyType struct{ base }

func (AnyType) Name() string              { return "Any" }
func (AnyType) Literal() string           { return "Any" }
func (AnyType) Equals(Type) bool          { return true }

// DynamicType's result type is computed from the argument types actually
// supplied at a call site — e.g. MAX(col) returns col's type. It has no
// operators of its own; it only ever appears as a function's declared
// return type, never as an expression's resolved type (the parser always
// calls Resolve immediately after a successful argument type-check and
// stores the resolved type on the Call node).
type DynamicType struct {
	base
	Resolve func(argTypes []Type) Type
}

func (d DynamicType) Name() string    { return "Dynamic" }
func (d DynamicType) Literal() string { return "Dynamic" }
func (d DynamicType) Equals(Type) bool { return false }

// ArrayType is a homogeneous array of Element.
type ArrayType struct {
	base
	Element Type
}

func (a ArrayType) Name() string    { return fmt.Sprintf("Array<%s>", a.Element.Name()) }
func (a ArrayType) Literal() string { return a.Name() }
func (a ArrayType) Equals(other Type) bool {
	if _, ok := other.(AnyType); ok {
		return true
	}
	o, ok := other.(ArrayType)
	return ok && a.Element.Equals(o.Element)
}
func (a ArrayType) CanPerform(op Operator) (OperatorSpec, bool) {
	switch op {
	case Eq, Neq, NullSafeEq:
		return OperatorSpec{Accepts: []Type{a}, Result: Fixed(Bool)}, true
	case Index:
		return OperatorSpec{Accepts: []Type{Int}, Result: Fixed(a.Element)}, true
	case Slice:
		return OperatorSpec{Accepts: []Type{Int}, Result: Fixed(a)}, true
	case Contains:
		return OperatorSpec{Accepts: []Type{a.Element}, Result: Fixed(Bool)}, true
	default:
		return OperatorSpec{}, false
	}
}

// RangeType is a lo..hi range over an orderable element type, used by the
// BETWEEN/range-literal surface.
type RangeType struct {
	base
	Element Type
}

func (r RangeType) Name() string    { return fmt.Sprintf("Range<%s>", r.Element.Name()) }
func (r RangeType) Literal() string { return r.Name() }
func (r RangeType) Equals(other Type) bool {
	if _, ok := other.(AnyType); ok {
		return true
	}
	o, ok := other.(RangeType)
	return ok && r.Element.Equals(o.Element)
}
func (r RangeType) CanPerform(op Operator) (OperatorSpec, bool) {
	switch op {
	case Contains:
		return OperatorSpec{Accepts: []Type{r.Element}, Result: Fixed(Bool)}, true
	case Eq, Neq:
		return OperatorSpec{Accepts: []Type{r}, Result: Fixed(Bool)}, true
	default:
		return OperatorSpec{}, false
	}
}

// VariantType accepts any of Members as an admissible actual type; used
// for polymorphic function parameters ("this argument may be Int or
// Float").
type VariantType struct {
	base
	Members []Type
}

func (v VariantType) Name() string {
	s := "Variant<"
	for i, m := range v.Members {
		if i > 0 {
			s += "|"
		}
		s += m.Name()
	}
	return s + ">"
}
func (v VariantType) Literal() string { return v.Name() }
func (v VariantType) Equals(other Type) bool {
	for _, m := range v.Members {
		if m.Equals(other) {
			return true
		}
	}
	return false
}

// OptionalType marks a function parameter that may be omitted entirely.
// It is never the resolved type of an expression; only Environment's
// function-arity checker inspects it.
type OptionalType struct {
	base
	Inner Type
}

func (o OptionalType) Name() string       { return "Optional<" + o.Inner.Name() + ">" }
func (o OptionalType) Literal() string    { return o.Name() }
func (o OptionalType) Equals(other Type) bool { return o.Inner.Equals(other) }

// VarargsType marks a trailing zero-or-more parameter; must be the last
// formal parameter in a Signature.
type VarargsType struct {
	base
	Inner Type
}

func (v VarargsType) Name() string       { return "Varargs<" + v.Inner.Name() + ">" }
func (v VarargsType) Literal() string    { return v.Name() }
func (v VarargsType) Equals(other Type) bool { return v.Inner.Equals(other) }

// CompositeType is a named record of member types, used for function
// parameters/returns that are structured values rather than scalars.
type CompositeType struct {
	base
	TypeName string
	Members  map[string]Type
}

func (c CompositeType) Name() string    { return c.TypeName }
func (c CompositeType) Literal() string { return c.TypeName }
func (c CompositeType) Equals(other Type) bool {
	o, ok := other.(CompositeType)
	if !ok {
		_, isAny := other.(AnyType)
		return isAny
	}
	if o.TypeName != c.TypeName || len(o.Members) != len(c.Members) {
		return false
	}
	for k, t := range c.Members {
		ot, ok := o.Members[k]
		if !ok || !ot.Equals(t) {
			return false
		}
	}
	return true
}

// intervalType represents a calendar interval (months/days/hours/...),
// the RHS of Date/DateTime +/- arithmetic.
type intervalType struct{ base }

func (intervalType) Name() string    { return "INTERVAL" }
func (intervalType) Literal() string { return "INTERVAL" }
func (intervalType) Equals(other Type) bool {
	_, ok := other.(intervalType)
	if ok {
		return true
	}
	_, isAny := other.(AnyType)
	return isAny
}

// Interval is the sole INTERVAL type instance.
var Interval Type = intervalType{}

// Dynamic builds a DynamicType whose return type is computed from the
// argument types at a call site, e.g. for MAX/MIN/COALESCE-style
// "same as my first argument" signatures.
func Dynamic(resolve func(argTypes []Type) Type) DynamicType {
	return DynamicType{Resolve: resolve}
}
