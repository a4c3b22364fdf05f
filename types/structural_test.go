package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnyTypeEqualsEverything(t *testing.T) {
	require.True(t, AnyType{}.Equals(Int))
	require.True(t, AnyType{}.Equals(Text))
}

func TestVariantTypeEqualsAnyMember(t *testing.T) {
	v := VariantType{Members: []Type{Int, Float}}
	require.True(t, v.Equals(Int))
	require.True(t, v.Equals(Float))
	require.False(t, v.Equals(Text))
}

func TestArrayTypeEqualsSameElementOrAny(t *testing.T) {
	a := ArrayType{Element: Int}
	require.True(t, a.Equals(ArrayType{Element: Int}))
	require.False(t, a.Equals(ArrayType{Element: Text}))
	require.True(t, a.Equals(AnyType{}))
}

func TestArrayTypeOperators(t *testing.T) {
	a := ArrayType{Element: Int}
	spec, ok := a.CanPerform(Index)
	require.True(t, ok)
	require.Equal(t, Type(Int), spec.Result(nil))

	spec, ok = a.CanPerform(Contains)
	require.True(t, ok)
	require.Contains(t, spec.Accepts, Type(Int))

	_, ok = a.CanPerform(Add)
	require.False(t, ok)
}

func TestRangeTypeEqualsAndContains(t *testing.T) {
	r := RangeType{Element: Int}
	require.True(t, r.Equals(RangeType{Element: Int}))
	require.False(t, r.Equals(RangeType{Element: Text}))

	spec, ok := r.CanPerform(Contains)
	require.True(t, ok)
	require.Contains(t, spec.Accepts, Type(Int))
}

func TestOptionalAndVarargsDelegateEqualsToInner(t *testing.T) {
	opt := OptionalType{Inner: Int}
	require.True(t, opt.Equals(Int))

	va := VarargsType{Inner: Text}
	require.True(t, va.Equals(Text))
}

func TestCompositeTypeEqualsByNameAndMembers(t *testing.T) {
	a := CompositeType{TypeName: "point", Members: map[string]Type{"x": Int, "y": Int}}
	b := CompositeType{TypeName: "point", Members: map[string]Type{"x": Int, "y": Int}}
	c := CompositeType{TypeName: "point", Members: map[string]Type{"x": Int, "y": Text}}

	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
	require.True(t, a.Equals(AnyType{}))
}

func TestIntervalTypeIsSingleton(t *testing.T) {
	require.True(t, Interval.Equals(Interval))
	require.True(t, Interval.Equals(AnyType{}))
}

func TestDynamicResolvesFromCallSiteArgs(t *testing.T) {
	d := Dynamic(func(args []Type) Type {
		if len(args) == 1 {
			return args[0]
		}
		return Undefined
	})
	require.Equal(t, Type(Text), d.Resolve([]Type{Text}))
}
