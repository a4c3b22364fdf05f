package value

import (
	"fmt"
	"math"

	"github.com/gqlengine/gql/types"
)

// IntValue is a 64-bit signed integer.
type IntValue int64

func (v IntValue) Type() types.Type { return types.Int }
func (v IntValue) String() string   { return fmt.Sprintf("%d", int64(v)) }

func (v IntValue) Eq(other Value) bool {
	o, ok := other.(IntValue)
	return ok && v == o
}

func (v IntValue) Compare(other Value) (Ordering, bool) {
	o, ok := other.(IntValue)
	if !ok {
		return Equal, false
	}
	switch {
	case v < o:
		return Less, true
	case v > o:
		return Greater, true
	default:
		return Equal, true
	}
}

func (v IntValue) operand(other Value) (int64, bool) {
	o, ok := other.(IntValue)
	return int64(o), ok
}

func (v IntValue) Add(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("+ requires Int")
	}
	a := int64(v)
	r := a + o
	if (o > 0 && r < a) || (o < 0 && r > a) {
		return nil, errOverflow("+")
	}
	return IntValue(r), nil
}

func (v IntValue) Sub(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("- requires Int")
	}
	a := int64(v)
	r := a - o
	if (o < 0 && r < a) || (o > 0 && r > a) {
		return nil, errOverflow("-")
	}
	return IntValue(r), nil
}

func (v IntValue) Mul(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("* requires Int")
	}
	a := int64(v)
	if a == 0 || o == 0 {
		return IntValue(0), nil
	}
	r := a * o
	if r/o != a {
		return nil, errOverflow("*")
	}
	return IntValue(r), nil
}

func (v IntValue) Div(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("/ requires Int")
	}
	if o == 0 {
		return nil, errDivByZero()
	}
	a := int64(v)
	if a == math.MinInt64 && o == -1 {
		return nil, errOverflow("/")
	}
	return IntValue(a / o), nil
}

func (v IntValue) Mod(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("%% requires Int")
	}
	if o == 0 {
		return nil, errDivByZero()
	}
	return IntValue(int64(v) % o), nil
}

func (v IntValue) Pow(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("^ requires Int")
	}
	if o < 0 {
		return nil, fmt.Errorf("^ requires a non-negative Int exponent")
	}
	r := int64(1)
	base := int64(v)
	for i := int64(0); i < o; i++ {
		next := r * base
		if base != 0 && next/base != r {
			return nil, errOverflow("^")
		}
		r = next
	}
	return IntValue(r), nil
}

func (v IntValue) BitOr(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("| requires Int")
	}
	return IntValue(int64(v) | o), nil
}

func (v IntValue) BitAnd(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("& requires Int")
	}
	return IntValue(int64(v) & o), nil
}

func (v IntValue) BitXor(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("xor requires Int")
	}
	return IntValue(int64(v) ^ o), nil
}

func (v IntValue) Shl(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("<< requires Int")
	}
	return IntValue(int64(v) << uint64(o)), nil
}

func (v IntValue) Shr(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf(">> requires Int")
	}
	return IntValue(int64(v) >> uint64(o)), nil
}

func (v IntValue) Neg() (Value, error) {
	if v == math.MinInt64 {
		return nil, errOverflow("unary -")
	}
	return -v, nil
}

func (v IntValue) BitNot() (Value, error) { return ^v, nil }
