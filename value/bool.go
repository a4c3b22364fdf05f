package value

import (
	"fmt"

	"github.com/gqlengine/gql/types"
)

// BoolValue is a boolean.
type BoolValue bool

func (v BoolValue) Type() types.Type { return types.Bool }
func (v BoolValue) String() string {
	if v {
		return "true"
	}
	return "false"
}

func (v BoolValue) Eq(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && v == o
}

func (v BoolValue) Compare(other Value) (Ordering, bool) {
	o, ok := other.(BoolValue)
	if !ok {
		return Equal, false
	}
	if v == o {
		return Equal, true
	}
	if !bool(v) && bool(o) {
		return Less, true
	}
	return Greater, true
}

func (v BoolValue) And(other Value) (Value, error) {
	o, ok := other.(BoolValue)
	if !ok {
		return nil, fmt.Errorf("AND requires Bool")
	}
	return v && o, nil
}

func (v BoolValue) Or(other Value) (Value, error) {
	o, ok := other.(BoolValue)
	if !ok {
		return nil, fmt.Errorf("OR requires Bool")
	}
	return v || o, nil
}

func (v BoolValue) Xor(other Value) (Value, error) {
	o, ok := other.(BoolValue)
	if !ok {
		return nil, fmt.Errorf("XOR requires Bool")
	}
	return v != o, nil
}

func (v BoolValue) Not() (Value, error) { return !v, nil }
