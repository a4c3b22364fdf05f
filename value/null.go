package value

import "github.com/gqlengine/gql/types"

// NullValue is the sole value of type Null.
type NullValue struct{}

func (NullValue) Type() types.Type { return types.Null }
func (NullValue) String() string   { return "NULL" }

// Eq: NULL == NULL is true here (spec's "equals", used by IN/DISTINCT) —
// this is deliberately NOT three-valued SQL logic; NullSafeEq implements
// the <=> operator's own, slightly different, rule.
func (v NullValue) Eq(other Value) bool {
	_, ok := other.(NullValue)
	return ok
}

// Compare: NULL has no ordering relative to anything, including itself.
func (NullValue) Compare(Value) (Ordering, bool) { return Equal, false }
