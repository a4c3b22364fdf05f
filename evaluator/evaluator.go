// Package evaluator is the tree-walking executor that turns a parsed
// query plus a provider.DataProvider into a result: an *object.Object
// for SELECT, a plain value/slice for the other query kinds.
package evaluator

import (
	"fmt"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/object"
	"github.com/gqlengine/gql/plan"
	"github.com/gqlengine/gql/provider"
	"github.com/gqlengine/gql/value"
)

// DescribeRow is one line of a DESCRIBE table result.
type DescribeRow struct {
	Column string
	Type   string
}

// Execute dispatches over every top-level query kind the parser
// produces, running it to completion.
func Execute(q ast.Query, env *environment.Environment, dp provider.DataProvider) (interface{}, error) {
	switch n := q.(type) {
	case *ast.DoStatement:
		return evalDo(n, env)
	case *ast.SetStatement:
		return evalSet(n, env)
	case *plan.SelectQuery:
		return ExecuteSelect(n, env, dp)
	case *ast.DescribeStatement:
		return evalDescribe(n, env)
	case *ast.ShowTablesStatement:
		return env.Schema.TableNames(), nil
	default:
		return nil, fmt.Errorf("evaluator: unsupported query type %T", q)
	}
}

// evalDo runs a `DO expr, expr, ...` statement purely for side effects
// (global assignment, volatile function calls), returning each
// expression's value in source order.
func evalDo(n *ast.DoStatement, env *environment.Environment) ([]value.Value, error) {
	out := make([]value.Value, len(n.Exprs))
	for i, e := range n.Exprs {
		v, err := evalExpr(e, row{}, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// evalSet runs `SET @name (= | :=) expr`, completing the two-phase
// global write parser.parseSet started (it could only register the
// static type; this fills in the actual value).
func evalSet(n *ast.SetStatement, env *environment.Environment) (value.Value, error) {
	v, err := evalExpr(n.Value, row{}, env)
	if err != nil {
		return nil, err
	}
	env.SetGlobal(n.Name, v, n.Value.ExprType())
	return v, nil
}

func evalDescribe(n *ast.DescribeStatement, env *environment.Environment) ([]DescribeRow, error) {
	cols := env.Schema.ColumnNames(n.Table)
	out := make([]DescribeRow, len(cols))
	for i, c := range cols {
		out[i] = DescribeRow{Column: c, Type: env.Schema.Columns[n.Table][c].Name()}
	}
	return out, nil
}

// ExecuteSelect runs the full SELECT pipeline: materialize FROM/JOIN,
// then walk plan.CanonicalOrder's remaining clauses against the row set
// they were parsed into, finishing with the user projection (and its
// DISTINCT/DISTINCT ON reduction) and an INTO OUTFILE/DUMPFILE write if
// present.
//
// plan.CanonicalOrder lists "select" first since that's where the
// FROM/JOIN/Projections/Distinct declaration lives in the clause map,
// not because projection runs first: materializing FROM/JOIN happens
// before WHERE as that ordering implies, but the projection step itself
// runs last, after ORDER/OFFSET/LIMIT and before INTO, matching standard
// SQL's conceptual execution order (and letting ORDER BY/QUALIFY see
// hidden aggregation/window columns that haven't been projected away
// yet).
func ExecuteSelect(q *plan.SelectQuery, env *environment.Environment, dp provider.DataProvider) (*object.Object, error) {
	sel := q.Select()

	titles, rawRows, err := materialize(q, env, dp)
	if err != nil {
		return nil, err
	}
	rows := make([]object.Row, len(rawRows))
	for i, v := range rawRows {
		rows[i] = object.Row{Values: v}
	}

	if ws, ok := q.Statements[plan.ClauseWhere].(*ast.WhereStatement); ok {
		rows, err = filterRows(ws.Predicate, titles, rows, env)
		if err != nil {
			return nil, err
		}
	}

	obj := &object.Object{Titles: titles, Groups: []object.Group{{Rows: rows}}}

	if gb, ok := q.Statements[plan.ClauseGroup].(*ast.GroupByStatement); ok {
		obj, err = partitionRows(gb, obj, env)
		if err != nil {
			return nil, err
		}
	}

	if ag, ok := q.Statements[plan.ClauseAggregation].(*ast.AggregationsStatement); ok {
		obj, err = computeAggregations(ag, obj, env)
		if err != nil {
			return nil, err
		}
	}

	obj.Flat()

	if wf, ok := q.Statements[plan.ClauseWindowFunctions].(*ast.WindowFunctionsStatement); ok {
		obj, err = computeWindowFunctions(wf, obj, env)
		if err != nil {
			return nil, err
		}
	}

	if hv, ok := q.Statements[plan.ClauseHaving].(*ast.HavingStatement); ok {
		obj.Flat()
		obj.Groups[0].Rows, err = filterRows(hv.Predicate, obj.Titles, obj.Groups[0].Rows, env)
		if err != nil {
			return nil, err
		}
	}

	if ql, ok := q.Statements[plan.ClauseQualify].(*ast.QualifyStatement); ok {
		obj.Flat()
		obj.Groups[0].Rows, err = filterRows(ql.Predicate, obj.Titles, obj.Groups[0].Rows, env)
		if err != nil {
			return nil, err
		}
	}

	if ob, ok := q.Statements[plan.ClauseOrder].(*ast.OrderByStatement); ok {
		if err := orderRows(ob.Terms, obj, env); err != nil {
			return nil, err
		}
	}

	var offsetExpr, limitCount, limitOffset ast.Expression
	if os, ok := q.Statements[plan.ClauseOffset].(*ast.OffsetStatement); ok {
		offsetExpr = os.Count
	}
	if ls, ok := q.Statements[plan.ClauseLimit].(*ast.LimitStatement); ok {
		limitCount = ls.Count
		limitOffset = ls.Offset
	}
	if offsetExpr != nil || limitCount != nil {
		if err := sliceRows(offsetExpr, limitCount, limitOffset, obj, env); err != nil {
			return nil, err
		}
	}

	projected, err := project(sel, obj, env)
	if err != nil {
		return nil, err
	}

	if into, ok := q.Statements[plan.ClauseInto].(*ast.IntoStatement); ok {
		if err := writeInto(into, projected); err != nil {
			return nil, err
		}
	}

	return projected, nil
}

// project evaluates sel's projection list against every row of obj,
// producing the final user-visible result set, then applies
// DISTINCT/DISTINCT ON over that projected tuple.
func project(sel *ast.SelectStatement, obj *object.Object, env *environment.Environment) (*object.Object, error) {
	obj.Flat()

	titles := make([]string, len(sel.Projections))
	for i, p := range sel.Projections {
		titles[i] = p.Title
	}

	out := object.New(titles)
	projectedRows := make([]object.Row, 0, len(obj.Groups[0].Rows))
	for _, r := range obj.Groups[0].Rows {
		values := make([]value.Value, len(sel.Projections))
		for i, p := range sel.Projections {
			v, err := evalExpr(p.Expr, row{titles: obj.Titles, values: r.Values}, env)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		projectedRows = append(projectedRows, object.Row{Values: values})
	}

	var dedupErr error
	switch sel.Distinct {
	case ast.DistinctAll:
		projectedRows, dedupErr = dedupRows(projectedRows, nil)
	case ast.DistinctOn:
		idxs := make([]int, 0, len(sel.DistinctOn))
		for _, name := range sel.DistinctOn {
			if idx := out.ColumnIndex(name); idx >= 0 {
				idxs = append(idxs, idx)
			}
		}
		projectedRows, dedupErr = dedupRows(projectedRows, idxs)
	}
	if dedupErr != nil {
		return nil, dedupErr
	}

	out.Groups[0].Rows = projectedRows
	return out, nil
}

// dedupRows drops rows that repeat an earlier row's key, preserving
// first-seen order. A nil idxs compares the whole tuple (DISTINCT);
// non-nil compares only those column positions (DISTINCT ON).
func dedupRows(rows []object.Row, idxs []int) ([]object.Row, error) {
	seen := map[string]bool{}
	out := rows[:0:0]
	for _, r := range rows {
		vals := r.Values
		if idxs != nil {
			vals = make([]value.Value, len(idxs))
			for i, idx := range idxs {
				vals[i] = r.Values[idx]
			}
		}
		key, err := hashValues(vals)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out, nil
}
