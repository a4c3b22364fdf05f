// Package provider defines the external contract the evaluator calls
// into for table data. The engine itself ships no providers — a Git
// row source, an in-memory table, anything that can materialize rows
// for a (table, columns) request plugs in here.
package provider

import "github.com/gqlengine/gql/value"

// Row is one provider-returned tuple, positionally aligned with the
// Columns slice passed to Provide.
type Row struct {
	Values []value.Value
}

// DataProvider materializes rows for a table projection. Implementations
// must return rows whose Values are aligned positionally with columns,
// including any hidden-selection columns the engine added; they must not
// prepend or reorder columns the caller didn't ask for.
type DataProvider interface {
	Provide(table string, columns []string) ([]Row, error)
}
