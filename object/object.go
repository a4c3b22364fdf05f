// Package object is the evaluator's row set: titles (the physical column
// layout), a vector of Groups (each a vector of Rows), with GROUP BY
// partitioning the single initial group into many.
package object

import "github.com/gqlengine/gql/value"

// Row is a tuple of values aligned with an Object's Titles.
type Row struct {
	Values []value.Value
}

// Group is a bag of rows sharing the same GROUP BY key; before any
// GROUP BY runs there is exactly one group holding every row.
type Group struct {
	Rows []Row
}

// Object is the evaluator's row set, threaded through every clause.
type Object struct {
	Titles []string
	Groups []Group
}

// New builds an empty Object with the given column titles.
func New(titles []string) *Object {
	return &Object{Titles: append([]string(nil), titles...), Groups: []Group{{}}}
}

// IsEmpty reports whether there are no groups, or the sole/first group
// holds no rows.
func (o *Object) IsEmpty() bool {
	return len(o.Groups) == 0 || len(o.Groups[0].Rows) == 0
}

// Flat concatenates every group's rows into a single group, replacing
// Groups with a one-element slice holding the result. It is used before
// any statement (HAVING, QUALIFY, ORDER BY, OFFSET, LIMIT, INTO) that
// operates over the whole row set rather than per-group.
func (o *Object) Flat() {
	if len(o.Groups) <= 1 {
		if len(o.Groups) == 0 {
			o.Groups = []Group{{}}
		}
		return
	}
	var all []Row
	for _, g := range o.Groups {
		all = append(all, g.Rows...)
	}
	o.Groups = []Group{{Rows: all}}
}

// ColumnIndex returns the position of title in Titles, or -1.
func (o *Object) ColumnIndex(title string) int {
	for i, t := range o.Titles {
		if t == title {
			return i
		}
	}
	return -1
}

// EnsureColumn returns title's index, appending it to Titles (and
// growing every existing row with a Null placeholder) if it isn't
// already present. Used the first time a computed column (aggregation or
// window function) is materialized.
func (o *Object) EnsureColumn(title string, placeholder value.Value) int {
	if idx := o.ColumnIndex(title); idx >= 0 {
		return idx
	}
	o.Titles = append(o.Titles, title)
	idx := len(o.Titles) - 1
	for gi := range o.Groups {
		for ri := range o.Groups[gi].Rows {
			row := &o.Groups[gi].Rows[ri]
			for len(row.Values) <= idx {
				row.Values = append(row.Values, placeholder)
			}
		}
	}
	return idx
}
