// Package environment owns everything the parser and evaluator need to
// share about one query session: the table schema, the three function
// registries (standard/aggregation/window), the current lexical scope,
// and the @global variable store that survives across queries.
package environment

import (
	"strings"

	"github.com/gqlengine/gql/function"
	"github.com/gqlengine/gql/internal/similartext"
	"github.com/gqlengine/gql/internal/text_distance"
	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnknownGlobal is returned by ResolveType for an undeclared @name.
var ErrUnknownGlobal = errors.NewKind("unknown global variable @%s")

// ErrUnknownSymbol is returned by ResolveType for an unbound identifier.
var ErrUnknownSymbol = errors.NewKind("unknown symbol %s")

// Schema lists every table's ordered column names and their types.
type Schema struct {
	// Tables maps table name -> ordered column names.
	Tables map[string][]string
	// Columns maps table name -> column name -> type.
	Columns map[string]map[string]types.Type
}

// NewSchema builds an empty Schema ready for AddTable calls.
func NewSchema() *Schema {
	return &Schema{Tables: map[string][]string{}, Columns: map[string]map[string]types.Type{}}
}

// AddTable registers one table's column layout, in projection order.
func (s *Schema) AddTable(name string, columns []string, colTypes map[string]types.Type) {
	s.Tables[name] = columns
	s.Columns[name] = colTypes
}

// HasTable reports whether name is a known table.
func (s *Schema) HasTable(name string) bool {
	_, ok := s.Tables[name]
	return ok
}

// HasColumn reports whether table.column is known.
func (s *Schema) HasColumn(table, column string) bool {
	cols, ok := s.Columns[table]
	if !ok {
		return false
	}
	_, ok = cols[column]
	return ok
}

// TableNames lists every known table, for did-you-mean suggestions.
func (s *Schema) TableNames() []string {
	out := make([]string, 0, len(s.Tables))
	for t := range s.Tables {
		out = append(out, t)
	}
	return out
}

// ColumnNames lists a table's columns, for did-you-mean suggestions.
func (s *Schema) ColumnNames(table string) []string {
	cols := s.Tables[table]
	out := make([]string, len(cols))
	copy(out, cols)
	return out
}

// Signature, StandardFunc, AggregationFunc and WindowFunc are aliases
// onto the function package's registry-shape types, kept under these
// names here since that's how the rest of this package already spelled
// them before the shapes were pulled out into their own package.
type (
	Signature       = function.Signature
	StandardFunc    = function.Standard
	AggregationFunc = function.Aggregation
	WindowFunc      = function.Window
)

// standardEntry, aggregationEntry and windowEntry each pair a signature
// with its callable; the three registries below hold function-kind-specific
// callables but share this shape.
type standardEntry struct {
	Signature Signature
	Call      StandardFunc
}

type aggregationEntry struct {
	Signature Signature
	Call      AggregationFunc
}

type windowEntry struct {
	Signature Signature
	Call      WindowFunc
}

// Environment is the single mutable actor shared between the parser
// (writes scopes, defines hidden aggregation/window columns) and the
// evaluator (reads functions, reads/writes globals).
type Environment struct {
	Schema *Schema

	standard     map[string]standardEntry
	aggregation  map[string]aggregationEntry
	window       map[string]windowEntry

	// globals persist across queries in a session; SET @x := expr writes
	// here and ClearSession must not touch them.
	globals      map[string]value.Value
	globalsTypes map[string]types.Type

	// scopes is the current query's identifier -> type lexical scope,
	// emptied by ClearSession between queries.
	scopes map[string]types.Type
}

// New builds an Environment over schema with empty function tables and
// globals.
func New(schema *Schema) *Environment {
	return &Environment{
		Schema:       schema,
		standard:     map[string]standardEntry{},
		aggregation:  map[string]aggregationEntry{},
		window:       map[string]windowEntry{},
		globals:      map[string]value.Value{},
		globalsTypes: map[string]types.Type{},
		scopes:       map[string]types.Type{},
	}
}

func foldName(name string) string { return strings.ToLower(name) }

// RegisterStandard installs a scalar function under name (case-insensitive).
func (e *Environment) RegisterStandard(name string, sig Signature, fn StandardFunc) {
	e.standard[foldName(name)] = standardEntry{sig, fn}
}

// RegisterAggregation installs an aggregation function under name.
func (e *Environment) RegisterAggregation(name string, sig Signature, fn AggregationFunc) {
	e.aggregation[foldName(name)] = aggregationEntry{sig, fn}
}

// RegisterWindow installs a window function under name.
func (e *Environment) RegisterWindow(name string, sig Signature, fn WindowFunc) {
	e.window[foldName(name)] = windowEntry{sig, fn}
}

// LookupStandard returns a standard function's signature/callable.
func (e *Environment) LookupStandard(name string) (Signature, StandardFunc, bool) {
	entry, ok := e.standard[foldName(name)]
	return entry.Signature, entry.Call, ok
}

// LookupAggregation returns an aggregation function's signature/callable.
func (e *Environment) LookupAggregation(name string) (Signature, AggregationFunc, bool) {
	entry, ok := e.aggregation[foldName(name)]
	return entry.Signature, entry.Call, ok
}

// LookupWindow returns a window function's signature/callable.
func (e *Environment) LookupWindow(name string) (Signature, WindowFunc, bool) {
	entry, ok := e.window[foldName(name)]
	return entry.Signature, entry.Call, ok
}

// IsAggregation reports whether name is registered as an aggregation
// function, used by the parser to decide whether a Call expression needs
// hidden-column hoisting.
func (e *Environment) IsAggregation(name string) bool {
	_, ok := e.aggregation[foldName(name)]
	return ok
}

// IsWindow reports whether name is registered as a window function.
func (e *Environment) IsWindow(name string) bool {
	_, ok := e.window[foldName(name)]
	return ok
}

// FunctionNames lists every registered name across all three registries,
// for did-you-mean suggestions on an unknown call.
func (e *Environment) FunctionNames() []string {
	out := make([]string, 0, len(e.standard)+len(e.aggregation)+len(e.window))
	for n := range e.standard {
		out = append(out, n)
	}
	for n := range e.aggregation {
		out = append(out, n)
	}
	for n := range e.window {
		out = append(out, n)
	}
	return out
}

// DefineScope binds name -> t in the current query's lexical scope.
func (e *Environment) DefineScope(name string, t types.Type) { e.scopes[name] = t }

// ResolveScope looks up name in the current query's lexical scope only.
func (e *Environment) ResolveScope(name string) (types.Type, bool) {
	t, ok := e.scopes[name]
	return t, ok
}

// ScopeNames lists every bound identifier in the current scope, for
// did-you-mean suggestions on an unresolved symbol.
func (e *Environment) ScopeNames() []string {
	out := make([]string, 0, len(e.scopes))
	for n := range e.scopes {
		out = append(out, n)
	}
	return out
}

// SetGlobal records @name's value and type; used by SET @name := expr.
func (e *Environment) SetGlobal(name string, v value.Value, t types.Type) {
	e.globals[name] = v
	e.globalsTypes[name] = t
}

// Global returns @name's current value.
func (e *Environment) Global(name string) (value.Value, bool) {
	v, ok := e.globals[name]
	return v, ok
}

// ResolveType implements the Environment.resolve_type(name) contract:
// "@name" resolves against globalsTypes, everything else against the
// current scope.
func (e *Environment) ResolveType(name string) (types.Type, error) {
	if strings.HasPrefix(name, "@") {
		bare := strings.TrimPrefix(name, "@")
		if t, ok := e.globalsTypes[bare]; ok {
			return t, nil
		}
		names := make([]string, 0, len(e.globalsTypes))
		for n := range e.globalsTypes {
			names = append(names, n)
		}
		suggestion := text_distance.FindSimilarName(names, bare)
		err := ErrUnknownGlobal.New(bare)
		if suggestion != "" {
			return nil, &hintedError{err: err, hint: "maybe you mean @" + suggestion + "?"}
		}
		return nil, err
	}
	if t, ok := e.scopes[name]; ok {
		return t, nil
	}
	err := ErrUnknownSymbol.New(name)
	if hint := similartext.Find(e.ScopeNames(), name); hint != "" {
		return nil, &hintedError{err: err, hint: strings.TrimPrefix(strings.TrimSuffix(hint, "?"), ", ")}
	}
	return nil, err
}

// hintedError appends a did-you-mean suggestion to an underlying typed
// error without losing errors.As/Is compatibility via Unwrap.
type hintedError struct {
	err  error
	hint string
}

func (h *hintedError) Error() string { return h.err.Error() + ", " + h.hint }
func (h *hintedError) Unwrap() error { return h.err }

// ClearSession empties the current query's lexical scope. Globals and
// their types survive, per spec §4.6.
func (e *Environment) ClearSession() {
	e.scopes = map[string]types.Type{}
}

// RegisterBuiltins installs the function package's reference
// COUNT/SUM/AVG/MIN/MAX/ABS/ROW_NUMBER implementations. Embedders that
// bring their own function library can skip this and register only
// their own functions.
func (e *Environment) RegisterBuiltins() {
	for name, b := range function.StandardBuiltins {
		e.RegisterStandard(name, b.Signature, b.Call)
	}
	for name, b := range function.AggregationBuiltins {
		e.RegisterAggregation(name, b.Signature, b.Call)
	}
	for name, b := range function.WindowBuiltins {
		e.RegisterWindow(name, b.Signature, b.Call)
	}
}
