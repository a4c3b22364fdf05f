// Package gql is the embeddable query engine: wire up a schema and a
// provider.DataProvider, then run source text through Engine.Query.
package gql

import (
	"github.com/opentracing/opentracing-go"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/evaluator"
	"github.com/gqlengine/gql/lexer"
	"github.com/gqlengine/gql/parser"
	"github.com/gqlengine/gql/provider"
	"github.com/gqlengine/gql/types"
)

// Engine ties one schema, one DataProvider and one function environment
// together into something that can run query text end to end.
type Engine struct {
	env      *environment.Environment
	provider provider.DataProvider
	log      *logrus.Entry
}

// New builds an Engine over schema and provider, with the reference
// COUNT/SUM/AVG/MIN/MAX/ABS/ROW_NUMBER functions already registered.
// Call Engine.Env to register additional functions before the first
// Query call.
func New(schema *environment.Schema, dp provider.DataProvider) *Engine {
	env := environment.New(schema)
	env.RegisterBuiltins()
	return &Engine{
		env:      env,
		provider: dp,
		log:      logrus.WithField("component", "gql.Engine"),
	}
}

// SetLogger replaces the engine's logger, for embedders that want
// Query's per-call entries routed through their own logrus instance
// (shared output, hooks, levels) instead of the package-level default.
func (e *Engine) SetLogger(l *logrus.Logger) { e.log = l.WithField("component", "gql.Engine") }

// Env exposes the underlying Environment, for registering embedder
// functions or inspecting/writing @global variables between queries.
func (e *Engine) Env() *environment.Environment { return e.env }

// Result is one query's outcome: Value holds it for every statement kind
// (a SELECT's result object, DO's expression values, SET's assigned
// value, DESCRIBE's column rows, SHOW TABLES' table names).
type Result struct {
	Query ast.Query
	Value interface{}
}

// Query lexes, parses and evaluates source, which may hold several
// semicolon-separated statements, returning one Result per statement in
// source order. Evaluation of a later statement still runs even if an
// earlier one's result depends on state (e.g. a SET) a prior statement
// wrote; a parse error aborts before any statement evaluates, since
// parsing type-checks the whole program up front.
func (e *Engine) Query(source string) ([]Result, error) {
	queryID, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	log := e.log.WithField("query_id", queryID.String())

	span := opentracing.StartSpan("gql.Query")
	span.SetTag("query_id", queryID.String())
	defer span.Finish()

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		log.WithError(err).Debug("lex failed")
		span.SetTag("error", true)
		return nil, err
	}

	p := parser.New(tokens, e.env)
	queries, err := p.ParsePrograms()
	if err != nil {
		log.WithError(err).Debug("parse failed")
		span.SetTag("error", true)
		return nil, err
	}
	log.WithField("statements", len(queries)).Debug("parsed")

	results := make([]Result, len(queries))
	for i, q := range queries {
		v, err := evaluator.Execute(q, e.env, e.provider)
		if err != nil {
			log.WithError(err).WithField("statement", i).Debug("evaluation failed")
			span.SetTag("error", true)
			return nil, err
		}
		results[i] = Result{Query: q, Value: v}
	}
	return results, nil
}

// AddTable is a convenience wrapper over Schema.AddTable for callers that
// built an Engine before finishing their schema.
func (e *Engine) AddTable(name string, columns []string, colTypes map[string]types.Type) {
	e.env.Schema.AddTable(name, columns, colTypes)
}
