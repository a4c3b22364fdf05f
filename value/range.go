package value

import (
	"fmt"

	"github.com/gqlengine/gql/types"
)

// RangeValue is a lo..hi range over an orderable element type, each bound
// independently inclusive or exclusive.
type RangeValue struct {
	Element                types.Type
	Lo, Hi                 Value
	LoInclusive, HiInclusive bool
}

func (v RangeValue) Type() types.Type { return types.RangeType{Element: v.Element} }
func (v RangeValue) String() string {
	lb, rb := "(", ")"
	if v.LoInclusive {
		lb = "["
	}
	if v.HiInclusive {
		rb = "]"
	}
	return fmt.Sprintf("%s%s,%s%s", lb, v.Lo.String(), v.Hi.String(), rb)
}

func (v RangeValue) Eq(other Value) bool {
	o, ok := other.(RangeValue)
	return ok && v.Lo.Eq(o.Lo) && v.Hi.Eq(o.Hi) &&
		v.LoInclusive == o.LoInclusive && v.HiInclusive == o.HiInclusive
}

func (v RangeValue) Compare(Value) (Ordering, bool) { return Equal, false }

// Contains implements `range @> x`.
func (v RangeValue) Contains(x Value) bool {
	loOrd, ok := v.Lo.Compare(x)
	if !ok {
		return false
	}
	hiOrd, ok := v.Hi.Compare(x)
	if !ok {
		return false
	}
	loOK := loOrd == Less || (v.LoInclusive && loOrd == Equal)
	hiOK := hiOrd == Greater || (v.HiInclusive && hiOrd == Equal)
	return loOK && hiOK
}
