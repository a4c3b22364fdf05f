package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntValueArithmetic(t *testing.T) {
	sum, err := IntValue(2).Add(IntValue(3))
	require.NoError(t, err)
	require.Equal(t, IntValue(5), sum)

	_, err = IntValue(1).Div(IntValue(0))
	require.Error(t, err)

	_, err = IntValue(math.MaxInt64).Add(IntValue(1))
	require.Error(t, err)
}

func TestIntValueCompareAndEq(t *testing.T) {
	ord, ok := IntValue(1).Compare(IntValue(2))
	require.True(t, ok)
	require.Equal(t, Less, ord)

	require.True(t, IntValue(5).Eq(IntValue(5)))
	require.False(t, IntValue(5).Eq(IntValue(6)))

	// Cross-kind comparisons report "not comparable", not a crash.
	_, ok = IntValue(1).Compare(TextValue("1"))
	require.False(t, ok)
}

func TestNullSafeEq(t *testing.T) {
	require.True(t, NullSafeEq(NullValue{}, NullValue{}))
	require.False(t, NullSafeEq(IntValue(1), NullValue{}))
	require.False(t, NullSafeEq(NullValue{}, IntValue(1)))
	require.True(t, NullSafeEq(IntValue(2), IntValue(2)))
	require.False(t, NullSafeEq(IntValue(2), IntValue(3)))
}

func TestTextValueConcatenation(t *testing.T) {
	v, err := TextValue("a").Add(TextValue("b"))
	require.NoError(t, err)
	require.Equal(t, TextValue("ab"), v)
}

func TestBoolValueString(t *testing.T) {
	require.Equal(t, "true", BoolValue(true).String())
	require.Equal(t, "false", BoolValue(false).String())
}
