package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gqlengine/gql/types"
)

// FloatValue is a 64-bit IEEE-754 float.
type FloatValue float64

func (v FloatValue) Type() types.Type { return types.Float }
func (v FloatValue) String() string   { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

// Eq uses bit-exact comparison so that two NaNs read from the same
// literal compare equal for IN/DISTINCT purposes, matching spec (I6)'s
// "total_cmp-equal" round-trip requirement.
func (v FloatValue) Eq(other Value) bool {
	o, ok := other.(FloatValue)
	if !ok {
		return false
	}
	return math.Float64bits(float64(v)) == math.Float64bits(float64(o))
}

func (v FloatValue) Compare(other Value) (Ordering, bool) {
	o, ok := other.(FloatValue)
	if !ok {
		return Equal, false
	}
	switch {
	case float64(v) < float64(o):
		return Less, true
	case float64(v) > float64(o):
		return Greater, true
	default:
		return Equal, true
	}
}

func (v FloatValue) operand(other Value) (float64, bool) {
	o, ok := other.(FloatValue)
	return float64(o), ok
}

func (v FloatValue) Add(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("+ requires Float")
	}
	return FloatValue(float64(v) + o), nil
}

func (v FloatValue) Sub(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("- requires Float")
	}
	return FloatValue(float64(v) - o), nil
}

func (v FloatValue) Mul(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("* requires Float")
	}
	return FloatValue(float64(v) * o), nil
}

func (v FloatValue) Div(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("/ requires Float")
	}
	if o == 0 {
		return nil, errDivByZero()
	}
	return FloatValue(float64(v) / o), nil
}

func (v FloatValue) Mod(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("%% requires Float")
	}
	if o == 0 {
		return nil, errDivByZero()
	}
	return FloatValue(math.Mod(float64(v), o)), nil
}

func (v FloatValue) Pow(other Value) (Value, error) {
	o, ok := v.operand(other)
	if !ok {
		return nil, fmt.Errorf("^ requires Float")
	}
	return FloatValue(math.Pow(float64(v), o)), nil
}

func (v FloatValue) Neg() (Value, error) { return -v, nil }
