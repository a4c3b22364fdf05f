// Package plan is the logical plan a parsed SELECT becomes: a mapping
// from clause name to the ast.Statement that implements it, plus the
// side tables the parser accumulated while building it (hidden
// selections, alias bookkeeping, and the flags the evaluator needs to
// decide whether grouping/aggregation ran at all).
package plan

import "github.com/gqlengine/gql/ast"

// Clause names index a SelectQuery's Statements map; these are the
// canonical clause keys spec §2/§4.5 name, and also the fixed execution
// order the evaluator walks them in.
const (
	ClauseSelect           = "select"
	ClauseWhere            = "where"
	ClauseGroup            = "group"
	ClauseAggregation      = "aggregation"
	ClauseWindowFunctions  = "window_functions"
	ClauseHaving           = "having"
	ClauseQualify          = "qualify"
	ClauseOrder            = "order"
	ClauseOffset           = "offset"
	ClauseLimit            = "limit"
	ClauseInto             = "into"
)

// CanonicalOrder is the fixed execution order every SELECT runs in,
// regardless of the order its clauses appeared in the source text.
var CanonicalOrder = []string{
	ClauseSelect, ClauseWhere, ClauseGroup, ClauseAggregation,
	ClauseWindowFunctions, ClauseHaving, ClauseQualify, ClauseOrder,
	ClauseOffset, ClauseLimit, ClauseInto,
}

// SelectQuery is one parsed SELECT: the clause-keyed statement map plus
// the bookkeeping the parser built up while it walked the query.
type SelectQuery struct {
	Statements map[string]ast.Statement

	// HiddenSelections maps table name -> extra column names the
	// evaluator must ask the provider for even though the user didn't
	// project them (e.g. an ORDER BY target that wasn't SELECTed).
	HiddenSelections map[string][]string

	// Aliases maps alias -> real table/column name.
	Aliases map[string]string

	HasGroupBy      bool
	HasAggregation  bool
}

// QueryNode makes *SelectQuery satisfy ast.Query.
func (q *SelectQuery) QueryNode() {}

// NewSelectQuery builds an empty plan ready for the parser to fill in.
func NewSelectQuery() *SelectQuery {
	return &SelectQuery{
		Statements:       map[string]ast.Statement{},
		HiddenSelections: map[string][]string{},
		Aliases:          map[string]string{},
	}
}

// AddHiddenSelection records that table needs column even though it
// wasn't user-projected, skipping the append if already present.
func (q *SelectQuery) AddHiddenSelection(table, column string) {
	for _, c := range q.HiddenSelections[table] {
		if c == column {
			return
		}
	}
	q.HiddenSelections[table] = append(q.HiddenSelections[table], column)
}

// Select returns the select statement, or nil if somehow absent (the
// parser always populates this for a SelectQuery).
func (q *SelectQuery) Select() *ast.SelectStatement {
	s, _ := q.Statements[ClauseSelect].(*ast.SelectStatement)
	return s
}
