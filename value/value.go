// Package value holds the engine's runtime values: one concrete Go type
// per GQL value kind, each able to report its own Type, compare/order
// itself against another Value, and carry out the operator methods the
// evaluator dispatches to (Add, Sub, Eq, Index, Slice, Contains, Cast,
// ...). Arithmetic is checked: overflow and divide-by-zero are errors,
// never silent wraparound.
package value

import (
	"fmt"

	"github.com/gqlengine/gql/types"
)

// Ordering mirrors a three-way comparison result. Cross-kind comparisons
// (e.g. Int vs Text) are always Equal, per spec: comparison is only total
// within one value kind.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
)

// Value is the runtime counterpart of types.Type: every expression
// evaluates to one of these.
type Value interface {
	// Type is this value's static type.
	Type() types.Type
	// String is the value's textual form, used for concatenation,
	// INTO-file serialization, and DISTINCT hashing.
	String() string
	// Eq is used-by-IN/DISTINCT/equality-operator equality: unlike Compare,
	// NULL == NULL is true here.
	Eq(other Value) bool
	// Compare gives a total order within same-kind values; cross-kind
	// comparisons and any comparison touching Null return (Equal, false).
	Compare(other Value) (Ordering, bool)
}

// Arith is implemented by values that support the arithmetic family
// (+ - * / % ^); the bitwise operators are IntValue methods outside it.
type Arith interface {
	Value
	Add(other Value) (Value, error)
	Sub(other Value) (Value, error)
	Mul(other Value) (Value, error)
	Div(other Value) (Value, error)
	Mod(other Value) (Value, error)
	Pow(other Value) (Value, error)
}

// NullSafeEq implements spec (I5): 1 iff both sides are NULL, 0 iff
// exactly one side is NULL, else the plain equality result.
func NullSafeEq(a, b Value) bool {
	_, an := a.(NullValue)
	_, bn := b.(NullValue)
	if an && bn {
		return true
	}
	if an != bn {
		return false
	}
	return a.Eq(b)
}

// errOverflow/errDivByZero are returned, never panicked, so the
// evaluator can surface them as the query-killing runtime error spec §7
// describes; they carry no location, the evaluator attaches one.
func errOverflow(op string) error { return fmt.Errorf("integer overflow in %s", op) }
func errDivByZero() error         { return fmt.Errorf("division or modulus by zero") }
