package ast

import "github.com/gqlengine/gql/token"

// Statement is implemented by every node in the closed logical-plan
// piece set (spec §3.5); a SelectQuery is a clause-name -> Statement map
// plus plan-level side tables (see the plan package).
type Statement interface {
	statementNode()
}

// ProjectionItem is one user-projected expression plus its output title
// (an explicit AS alias, or the expression's generated/symbol name).
type ProjectionItem struct {
	Expr  Expression
	Title string
}

// Distinct is SELECT's dedup mode.
type Distinct int

const (
	DistinctNone Distinct = iota
	DistinctAll
	DistinctOn
)

// TableSelection is one FROM/JOIN operand: a table name plus the columns
// requested from it (real selections plus any hidden ones the parser
// added).
type TableSelection struct {
	Table   string
	Alias   string
	Columns []string
}

// JoinKind distinguishes the five join forms the grammar accepts.
type JoinKind int

const (
	JoinInner JoinKind = iota
	JoinLeft
	JoinRight
	JoinCross
	JoinOuter
)

// Join is one `[KIND] JOIN table [ON expr]` clause. First holds whether
// this is the query's first join (spec's OuterAndInner(left,right) vs.
// Inner(next) distinction) so the evaluator knows whether Left names the
// FROM table or a prior join's result.
type Join struct {
	Kind  JoinKind
	Left  string
	Right string
	On    Expression
	First bool
}

// SelectStatement is the `select` clause: table selections, joins, user
// projections, and the DISTINCT mode.
type SelectStatement struct {
	Tables      []TableSelection
	Joins       []Join
	Projections []ProjectionItem
	Distinct    Distinct
	DistinctOn  []string
}

func (*SelectStatement) statementNode() {}

// WhereStatement is the `where` clause: a single boolean predicate.
type WhereStatement struct{ Predicate Expression }

func (*WhereStatement) statementNode() {}

// HavingStatement is the `having` clause.
type HavingStatement struct{ Predicate Expression }

func (*HavingStatement) statementNode() {}

// QualifyStatement is the `qualify` clause (filters after window
// functions).
type QualifyStatement struct{ Predicate Expression }

func (*QualifyStatement) statementNode() {}

// LimitStatement is `LIMIT n [, m]`: Count is the row cap, Offset (if
// non-nil) is LIMIT's own comma-form offset (distinct from a separate
// OFFSET clause).
type LimitStatement struct {
	Count  Expression
	Offset Expression
}

func (*LimitStatement) statementNode() {}

// OffsetStatement is a standalone `OFFSET expr`.
type OffsetStatement struct{ Count Expression }

func (*OffsetStatement) statementNode() {}

// NullsPolicy controls NULLS FIRST/LAST placement in an ORDER BY term.
type NullsPolicy int

const (
	NullsDefault NullsPolicy = iota // ASC -> Last, DESC -> First
	NullsFirst
	NullsLast
)

// OrderTerm is one `expr [ASC|DESC] [NULLS FIRST|LAST]` entry.
type OrderTerm struct {
	Expr       Expression
	Descending bool
	Nulls      NullsPolicy
}

// OrderByStatement is the `order` clause.
type OrderByStatement struct{ Terms []OrderTerm }

func (*OrderByStatement) statementNode() {}

// GroupByStatement is the `group` clause.
type GroupByStatement struct {
	Exprs     []Expression
	WithRollup bool
}

func (*GroupByStatement) statementNode() {}

// AggregationsStatement is the `aggregation` clause: hidden column name
// -> the original aggregation call the parser hoisted out of the
// projection list.
type AggregationsStatement struct {
	Aggregations map[string]*CallExpr
}

func (*AggregationsStatement) statementNode() {}

// WindowDef is one resolved `OVER (...)` clause, whether inline or named
// via a top-level `WINDOW name AS (...)`.
type WindowDef struct {
	PartitionBy []Expression
	OrderBy     []OrderTerm
}

// WindowCall is one hoisted window-function invocation.
type WindowCall struct {
	Call *CallExpr
	Def  WindowDef
}

// WindowFunctionsStatement is the `window_functions` clause: hidden
// column name -> hoisted window call.
type WindowFunctionsStatement struct {
	Calls map[string]WindowCall
}

func (*WindowFunctionsStatement) statementNode() {}

// IntoKind distinguishes OUTFILE (delimited text) from DUMPFILE (raw
// concatenation).
type IntoKind int

const (
	IntoOutfile IntoKind = iota
	IntoDumpfile
)

// IntoStatement is the `into` clause.
type IntoStatement struct {
	Kind              IntoKind
	Path              string
	LinesTerminatedBy string
	FieldsTerminatedBy string
	Enclosed          string
}

func (*IntoStatement) statementNode() {}

// Query is implemented by every top-level query kind: Do, Set, Select,
// Describe, ShowTables. A *plan.SelectQuery implements this too (see
// that package) despite living outside ast, since QueryNode is exported.
type Query interface{ QueryNode() }

// DoStatement is a top-level `DO expr (, expr)*` query.
type DoStatement struct {
	Exprs []Expression
	Loc   token.SourceLocation
}

func (*DoStatement) QueryNode() {}

// SetStatement is a top-level `SET @name (= | :=) expr` query.
type SetStatement struct {
	Name  string
	Value Expression
	Loc   token.SourceLocation
}

func (*SetStatement) QueryNode() {}

// DescribeStatement is `DESCRIBE table`.
type DescribeStatement struct {
	Table string
	Loc   token.SourceLocation
}

func (*DescribeStatement) QueryNode() {}

// ShowTablesStatement is `SHOW TABLES`.
type ShowTablesStatement struct{ Loc token.SourceLocation }

func (*ShowTablesStatement) QueryNode() {}
