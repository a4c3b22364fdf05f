package gql_test

import (
	"fmt"

	gql "github.com/gqlengine/gql"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/object"
	"github.com/gqlengine/gql/provider"
	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

// sliceProvider is the simplest possible DataProvider: an in-memory
// table keyed by name, each row a positional []value.Value aligned with
// the table's declared column order.
type sliceProvider struct {
	tables map[string][]map[string]value.Value
}

func (p sliceProvider) Provide(table string, columns []string) ([]provider.Row, error) {
	rows := p.tables[table]
	out := make([]provider.Row, len(rows))
	for i, r := range rows {
		values := make([]value.Value, len(columns))
		for ci, c := range columns {
			values[ci] = r[c]
		}
		out[i] = provider.Row{Values: values}
	}
	return out, nil
}

// Example demonstrates embedding the engine over a small in-memory
// table and running a filtering, ordering query against it.
func Example() {
	schema := environment.NewSchema()
	schema.AddTable("t", []string{"a", "b"}, map[string]types.Type{
		"a": types.Int,
		"b": types.Text,
	})

	dp := sliceProvider{tables: map[string][]map[string]value.Value{
		"t": {
			{"a": value.IntValue(3), "b": value.TextValue("c")},
			{"a": value.IntValue(1), "b": value.TextValue("a")},
			{"a": value.IntValue(2), "b": value.TextValue("b")},
		},
	}}

	engine := gql.New(schema, dp)
	results, err := engine.Query("SELECT a, b FROM t WHERE a > 1 ORDER BY a")
	if err != nil {
		panic(err)
	}

	obj := results[0].Value.(*object.Object)
	for _, r := range obj.Groups[0].Rows {
		fmt.Println(r.Values[0].String(), r.Values[1].String())
	}
	// Output:
	// 2 b
	// 3 c
}
