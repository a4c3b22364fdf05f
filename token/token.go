// Package token defines the lexical tokens produced by the lexer and
// consumed by the parser.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	// Keywords
	Do Kind = iota
	Set
	Select
	Distinct
	On
	From
	Join
	Left
	Right
	Cross
	Inner
	Outer
	Group
	By
	Having
	Qualify
	Where
	Limit
	Offset
	Order
	Using
	Like
	Glob
	Describe
	Show
	Tables
	Regex
	NotRegex
	Array
	Range
	Cast
	Benchmark
	Case
	When
	Then
	Else
	End
	Into
	Outfile
	Dumpfile
	Lines
	Fields
	Enclosed
	Terminated
	Between
	Symmetric
	Asymmetric
	In
	Is
	Not
	As
	With
	Rollup
	Or
	And
	XorKeyword
	Ascending
	Descending
	Nulls
	First
	Last
	Window
	Over
	Partition
	Interval
	All
	Some
	Any
	True
	False
	Null

	// Literals and identifiers
	Symbol
	GlobalVariable
	String
	Integer
	Float

	// Punctuation / operators
	Greater
	GreaterEqual
	Less
	LessEqual
	Equal
	Bang
	BangEqual
	LessGreater
	NullSafeEqual
	Contains    // @>
	ContainedBy // <@
	LeftParen
	RightParen
	LeftBracket
	RightBracket
	OrOr
	AndAnd
	BitwiseNot
	BitwiseXor
	BitwiseOr
	BitwiseAnd
	BitwiseRightShift
	BitwiseLeftShift
	Colon
	ColonColon
	ColonEqual
	Plus
	Minus
	Star
	Slash
	Percentage
	Caret
	Comma
	Dot
	Semicolon

	EOF
)

var names = map[Kind]string{
	Do: "DO", Set: "SET", Select: "SELECT", Distinct: "DISTINCT", On: "ON",
	From: "FROM", Join: "JOIN", Left: "LEFT", Right: "RIGHT", Cross: "CROSS",
	Inner: "INNER", Outer: "OUTER", Group: "GROUP", By: "BY", Having: "HAVING",
	Qualify: "QUALIFY", Where: "WHERE", Limit: "LIMIT", Offset: "OFFSET",
	Order: "ORDER", Using: "USING", Like: "LIKE", Glob: "GLOB",
	Describe: "DESCRIBE", Show: "SHOW", Tables: "TABLES", Regex: "REGEXP",
	NotRegex: "NOT REGEXP", Array: "ARRAY", Range: "RANGE", Cast: "CAST",
	Benchmark: "BENCHMARK", Case: "CASE", When: "WHEN", Then: "THEN",
	Else: "ELSE", End: "END", Into: "INTO", Outfile: "OUTFILE",
	Dumpfile: "DUMPFILE", Lines: "LINES", Fields: "FIELDS",
	Enclosed: "ENCLOSED", Terminated: "TERMINATED", Between: "BETWEEN",
	Symmetric: "SYMMETRIC", Asymmetric: "ASYMMETRIC", In: "IN", Is: "IS",
	Not: "NOT", As: "AS", With: "WITH", Rollup: "ROLLUP", Or: "OR",
	And: "AND", XorKeyword: "XOR", Ascending: "ASC", Descending: "DESC",
	Nulls: "NULLS", First: "FIRST", Last: "LAST", Window: "WINDOW",
	Over: "OVER", Partition: "PARTITION", Interval: "INTERVAL", All: "ALL",
	Some: "SOME", Any: "ANY", True: "TRUE", False: "FALSE", Null: "NULL",
	Symbol: "symbol", GlobalVariable: "global variable", String: "string",
	Integer: "integer", Float: "float",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=", Equal: "=",
	Bang: "!", BangEqual: "!=", LessGreater: "<>", NullSafeEqual: "<=>",
	Contains: "@>", ContainedBy: "<@", LeftParen: "(", RightParen: ")",
	LeftBracket: "[", RightBracket: "]", OrOr: "||", AndAnd: "&&",
	BitwiseNot: "~", BitwiseXor: "^|", BitwiseOr: "|", BitwiseAnd: "&",
	BitwiseRightShift: ">>", BitwiseLeftShift: "<<", Colon: ":",
	ColonColon: "::", ColonEqual: ":=", Plus: "+", Minus: "-", Star: "*",
	Slash: "/", Percentage: "%", Caret: "^", Comma: ",", Dot: ".",
	Semicolon: ";", EOF: "<eof>",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps the lower-cased spelling of every reserved word to its
// Kind. Identifiers are case-folded to lowercase before this lookup runs,
// so `SELECT`, `Select` and `select` all resolve to the same Kind, while a
// backtick-quoted identifier bypasses this table entirely and is always a
// Symbol.
var Keywords = map[string]Kind{
	"do": Do, "set": Set, "select": Select, "distinct": Distinct, "on": On,
	"from": From, "join": Join, "left": Left, "right": Right, "cross": Cross,
	"inner": Inner, "outer": Outer, "group": Group, "by": By, "having": Having,
	"qualify": Qualify, "where": Where, "limit": Limit, "offset": Offset,
	"order": Order, "using": Using, "like": Like, "glob": Glob,
	"describe": Describe, "show": Show, "tables": Tables, "regexp": Regex,
	"array": Array, "range": Range, "cast": Cast, "benchmark": Benchmark,
	"case": Case, "when": When, "then": Then, "else": Else, "end": End,
	"into": Into, "outfile": Outfile, "dumpfile": Dumpfile, "lines": Lines,
	"fields": Fields, "enclosed": Enclosed, "terminated": Terminated,
	"between": Between, "symmetric": Symmetric, "asymmetric": Asymmetric,
	"in": In, "is": Is, "not": Not, "as": As, "with": With, "rollup": Rollup,
	"or": Or, "and": And, "xor": XorKeyword, "asc": Ascending,
	"desc": Descending, "nulls": Nulls, "first": First, "last": Last,
	"window": Window, "over": Over, "partition": Partition,
	"interval": Interval, "all": All, "some": Some, "any": Any,
	"true": True, "false": False, "null": Null,
}

// SourceLocation pins a diagnostic to a span of source text.
type SourceLocation struct {
	LineStart   int
	LineEnd     int
	ColumnStart int
	ColumnEnd   int
}

// ExpandUntil destructively widens loc to also cover other, producing a
// single span that covers both. Used to merge adjacent token spans into
// one span for composite-keyword error messages (e.g. "GROUP BY").
func (loc *SourceLocation) ExpandUntil(other SourceLocation) {
	if other.LineEnd > loc.LineEnd {
		loc.LineEnd = other.LineEnd
	}
	loc.ColumnEnd = other.ColumnEnd
}

// Token is one lexical unit of source text.
type Token struct {
	Kind     Kind
	Location SourceLocation

	// Literal holds the token's textual spelling for Symbol/GlobalVariable
	// tokens and the unescaped contents for String tokens.
	Literal string
	// IntegerValue is populated when Kind == Integer.
	IntegerValue int64
	// FloatValue is populated when Kind == Float.
	FloatValue float64
}

func (t Token) String() string {
	switch t.Kind {
	case Symbol, GlobalVariable, String:
		return t.Literal
	case Integer:
		return fmt.Sprintf("%d", t.IntegerValue)
	case Float:
		return fmt.Sprintf("%v", t.FloatValue)
	default:
		return t.Kind.String()
	}
}
