package value

import (
	"fmt"
	"strings"

	"github.com/gqlengine/gql/types"
)

// ArrayValue is a homogeneous, ordered value list.
type ArrayValue struct {
	Element types.Type
	Items   []Value
}

func (v ArrayValue) Type() types.Type { return types.ArrayType{Element: v.Element} }
func (v ArrayValue) String() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v ArrayValue) Eq(other Value) bool {
	o, ok := other.(ArrayValue)
	if !ok || len(v.Items) != len(o.Items) {
		return false
	}
	for i := range v.Items {
		if !v.Items[i].Eq(o.Items[i]) {
			return false
		}
	}
	return true
}

func (v ArrayValue) Compare(Value) (Ordering, bool) { return Equal, false }

// Index implements `arr[i]`; negative indices and out-of-range indices
// are runtime errors, never silent defaults.
func (v ArrayValue) Index(i IntValue) (Value, error) {
	idx := int(i)
	if idx < 0 || idx >= len(v.Items) {
		return nil, fmt.Errorf("array index %d out of range [0,%d)", idx, len(v.Items))
	}
	return v.Items[idx], nil
}

// Slice implements `arr[lo:hi]`; out-of-range bounds (the cases Go's own
// slicing panics on) are not clamped but returned as an error.
func (v ArrayValue) Slice(lo, hi IntValue) (Value, error) {
	l, h := int(lo), int(hi)
	if l < 0 || h > len(v.Items) || l > h {
		return nil, fmt.Errorf("array slice [%d:%d] out of range [0,%d]", l, h, len(v.Items))
	}
	return ArrayValue{Element: v.Element, Items: v.Items[l:h]}, nil
}

// Contains implements `arr @> elem`.
func (v ArrayValue) Contains(elem Value) bool {
	for _, it := range v.Items {
		if it.Eq(elem) {
			return true
		}
	}
	return false
}
