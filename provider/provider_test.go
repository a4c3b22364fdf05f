package provider

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gqlengine/gql/value"
)

// fakeProvider is a minimal DataProvider used to confirm the interface
// shape is implementable by a plugged-in source.
type fakeProvider struct{}

func (fakeProvider) Provide(table string, columns []string) ([]Row, error) {
	values := make([]value.Value, len(columns))
	for i := range columns {
		values[i] = value.IntValue(int64(i))
	}
	return []Row{{Values: values}}, nil
}

func TestDataProviderInterfaceIsImplementable(t *testing.T) {
	var dp DataProvider = fakeProvider{}

	rows, err := dp.Provide("t", []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, []value.Value{value.IntValue(0), value.IntValue(1)}, rows[0].Values)
}
