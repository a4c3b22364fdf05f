package parser

import (
	"fmt"

	"github.com/gqlengine/gql/ast"
)

// Context accumulates everything a SELECT parse needs to remember as it
// walks the token stream: hidden aggregation/window columns, hidden
// table selections, and a handful of "am I inside X" flags that change
// how a sub-expression parse behaves. It is threaded through every
// parsing function by pointer rather than promoted to package-global
// state, so nothing about a parse is implicit.
type Context struct {
	// Aggregations maps a generated hidden column name to the original
	// aggregation call the projection parser hoisted out.
	Aggregations map[string]*ast.CallExpr
	// WindowCalls maps a generated hidden column name to the original
	// window call plus its resolved OVER definition.
	WindowCalls map[string]ast.WindowCall
	// NamedWindows holds `WINDOW name AS (...)` definitions, resolved
	// against later `OVER name` references.
	NamedWindows map[string]ast.WindowDef
	// PendingNamedWindowRefs maps a hoisted window call's hidden column
	// name to the OVER clause's bare window name, for the kind of call
	// that wrote `OVER w` instead of an inline `OVER (...)` definition.
	// The WINDOW clause can appear after the call that references it, so
	// resolution against NamedWindows is deferred to the select parser's
	// post-parse fix-up.
	PendingNamedWindowRefs map[string]string

	// HiddenSelections mirrors plan.SelectQuery's field while the parse
	// is in progress; copied into the plan once parsing finishes.
	HiddenSelections map[string][]string
	// Aliases maps alias -> real table name, accumulated while parsing
	// FROM/JOIN.
	Aliases map[string]string
	// SelectedTables is the set of table names (or aliases) in scope for
	// the query being parsed, used to classify a hidden selection by
	// table.
	SelectedTables []string
	// SelectedColumns is the set of column names the user actually
	// projected, used to tell a hidden selection apart from a normal one.
	SelectedColumns map[string]bool

	InsideSelections bool
	InsideHaving     bool
	InsideOrderBy    bool
	InsideOverClause bool
	HasSelectStatement bool
	HasGroupByStatement bool

	hiddenNameCounter int
}

// NewContext builds an empty Context ready for one query's parse.
func NewContext() *Context {
	return &Context{
		Aggregations:           map[string]*ast.CallExpr{},
		WindowCalls:            map[string]ast.WindowCall{},
		NamedWindows:           map[string]ast.WindowDef{},
		PendingNamedWindowRefs: map[string]string{},
		HiddenSelections:       map[string][]string{},
		Aliases:                map[string]string{},
		SelectedColumns:        map[string]bool{},
	}
}

// FreshHiddenName generates a unique hidden column name for an
// aggregation or window call the projection parser hoisted out of the
// user's expression list.
func (c *Context) FreshHiddenName(prefix string) string {
	c.hiddenNameCounter++
	return fmt.Sprintf("__%s_%d", prefix, c.hiddenNameCounter)
}

// AddHiddenSelection records that table needs column even though the
// user didn't project it (e.g. an ORDER BY target).
func (c *Context) AddHiddenSelection(table, column string) {
	if c.SelectedColumns[column] {
		return
	}
	for _, existing := range c.HiddenSelections[table] {
		if existing == column {
			return
		}
	}
	c.HiddenSelections[table] = append(c.HiddenSelections[table], column)
}
