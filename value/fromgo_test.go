package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromGoExactKinds(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want Value
	}{
		{"nil", nil, NullValue{}},
		{"bool", true, BoolValue(true)},
		{"string", "hi", TextValue("hi")},
		{"int", int(7), IntValue(7)},
		{"int32", int32(7), IntValue(7)},
		{"uint64", uint64(7), IntValue(7)},
		{"float32", float32(3.5), FloatValue(3.5)},
		{"float64", float64(3.5), FloatValue(3.5)},
		{"already a Value", IntValue(9), IntValue(9)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := FromGo(c.in)
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestFromGoDoesNotTruncateFloats(t *testing.T) {
	got, err := FromGo(float64(3.7))
	require.NoError(t, err)
	require.Equal(t, FloatValue(3.7), got)
}

func TestFromGoTime(t *testing.T) {
	tm := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got, err := FromGo(tm)
	require.NoError(t, err)
	require.Equal(t, DateTimeValue(tm.Unix()), got)
}

func TestFromGoUnconvertibleType(t *testing.T) {
	_, err := FromGo(struct{ X int }{1})
	require.Error(t, err)
}
