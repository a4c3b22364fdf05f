package function

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/value"
)

func TestCountIgnoresArgumentValues(t *testing.T) {
	v, err := Count([][]value.Value{{value.IntValue(1)}, {value.NullValue{}}, {value.TextValue("x")}})
	require.NoError(t, err)
	require.Equal(t, value.IntValue(3), v)

	v, err = Count(nil)
	require.NoError(t, err)
	require.Equal(t, value.IntValue(0), v)
}

func TestSumIntAndEmptyGroup(t *testing.T) {
	v, err := Sum([][]value.Value{{value.IntValue(1)}, {value.IntValue(2)}, {value.IntValue(3)}})
	require.NoError(t, err)
	require.Equal(t, value.IntValue(6), v)

	v, err = Sum(nil)
	require.NoError(t, err)
	require.Equal(t, value.IntValue(0), v)
}

func TestSumSkipsNulls(t *testing.T) {
	v, err := Sum([][]value.Value{{value.IntValue(1)}, {value.NullValue{}}, {value.IntValue(2)}})
	require.NoError(t, err)
	require.Equal(t, value.IntValue(3), v)
}

func TestSumFloat(t *testing.T) {
	v, err := Sum([][]value.Value{{value.FloatValue(1.5)}, {value.FloatValue(2.5)}})
	require.NoError(t, err)
	require.Equal(t, value.FloatValue(4), v)
}

func TestSumWrongArgCountErrors(t *testing.T) {
	_, err := Sum([][]value.Value{{value.IntValue(1), value.IntValue(2)}})
	require.Error(t, err)
}

func TestSumRejectsText(t *testing.T) {
	_, err := Sum([][]value.Value{{value.IntValue(1)}, {value.TextValue("x")}})
	require.Error(t, err)
}

func TestAvgEmptyGroupIsNull(t *testing.T) {
	v, err := Avg(nil)
	require.NoError(t, err)
	_, isNull := v.(value.NullValue)
	require.True(t, isNull)
}

func TestAvgInt(t *testing.T) {
	v, err := Avg([][]value.Value{{value.IntValue(1)}, {value.IntValue(2)}, {value.IntValue(3)}})
	require.NoError(t, err)
	require.Equal(t, value.FloatValue(2), v)
}

func TestAvgFloat(t *testing.T) {
	v, err := Avg([][]value.Value{{value.FloatValue(1)}, {value.FloatValue(3)}})
	require.NoError(t, err)
	require.Equal(t, value.FloatValue(2), v)
}

func TestMinAndMaxSkipNulls(t *testing.T) {
	rows := [][]value.Value{{value.IntValue(3)}, {value.NullValue{}}, {value.IntValue(1)}, {value.IntValue(2)}}
	v, err := Min(rows)
	require.NoError(t, err)
	require.Equal(t, value.IntValue(1), v)

	v, err = Max(rows)
	require.NoError(t, err)
	require.Equal(t, value.IntValue(3), v)
}

func TestMinMaxAllNullReturnsNull(t *testing.T) {
	rows := [][]value.Value{{value.NullValue{}}, {value.NullValue{}}}
	v, err := Min(rows)
	require.NoError(t, err)
	_, isNull := v.(value.NullValue)
	require.True(t, isNull)
}

func TestMinMaxWrongArgCountErrors(t *testing.T) {
	_, err := Min([][]value.Value{{value.IntValue(1), value.IntValue(2)}})
	require.Error(t, err)
}

func TestAbsIntAndFloat(t *testing.T) {
	v, err := Abs([]value.Value{value.IntValue(-5)})
	require.NoError(t, err)
	require.Equal(t, value.IntValue(5), v)

	v, err = Abs([]value.Value{value.IntValue(5)})
	require.NoError(t, err)
	require.Equal(t, value.IntValue(5), v)

	v, err = Abs([]value.Value{value.FloatValue(-2.5)})
	require.NoError(t, err)
	require.Equal(t, value.FloatValue(2.5), v)
}

func TestAbsWrongArgCountErrors(t *testing.T) {
	_, err := Abs(nil)
	require.Error(t, err)
	_, err = Abs([]value.Value{value.IntValue(1), value.IntValue(2)})
	require.Error(t, err)
}

func TestAbsRejectsNonNumeric(t *testing.T) {
	_, err := Abs([]value.Value{value.TextValue("x")})
	require.Error(t, err)
}

func TestRowNumberIsOneBasedPerRow(t *testing.T) {
	out, err := RowNumber([][]value.Value{{}, {}, {}})
	require.NoError(t, err)
	require.Equal(t, []value.Value{value.IntValue(1), value.IntValue(2), value.IntValue(3)}, out)
}

func TestRowNumberEmptyFrame(t *testing.T) {
	out, err := RowNumber(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestStandardBuiltinsRegistryHasAbs(t *testing.T) {
	entry, ok := StandardBuiltins["abs"]
	require.True(t, ok)
	require.Len(t, entry.Signature.Parameters, 1)

	v, err := entry.Call([]value.Value{value.IntValue(-3)})
	require.NoError(t, err)
	require.Equal(t, value.IntValue(3), v)
}

func TestAggregationBuiltinsRegistryNames(t *testing.T) {
	for _, name := range []string{"count", "sum", "avg", "min", "max"} {
		_, ok := AggregationBuiltins[name]
		require.True(t, ok, "missing aggregation builtin %q", name)
	}
}

func TestWindowBuiltinsRegistryHasRowNumber(t *testing.T) {
	entry, ok := WindowBuiltins["row_number"]
	require.True(t, ok)

	out, err := entry.Call([][]value.Value{{}, {}})
	require.NoError(t, err)
	require.Equal(t, []value.Value{value.IntValue(1), value.IntValue(2)}, out)
}
