package evaluator

import (
	"fmt"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/gqlerrors"
	"github.com/gqlengine/gql/plan"
	"github.com/gqlengine/gql/provider"
	"github.com/gqlengine/gql/token"
	"github.com/gqlengine/gql/value"
)

// materialize runs the FROM/JOIN clause: pulls each table's rows from dp
// and nested-loop joins them into one combined row set, filtering each
// join by its ON predicate as it goes.
func materialize(q *plan.SelectQuery, env *environment.Environment, dp provider.DataProvider) ([]string, [][]value.Value, error) {
	sel := q.Select()
	if len(sel.Tables) == 0 {
		return nil, [][]value.Value{{}}, nil
	}

	first := sel.Tables[0]
	titles, rows, err := provide(dp, first.Table, first.Columns)
	if err != nil {
		return nil, nil, err
	}

	for _, j := range sel.Joins {
		rt, ok := tableSelectionFor(sel, j.Right)
		if !ok {
			return nil, nil, fmt.Errorf("evaluator: join references unknown table %q", j.Right)
		}
		rTitles, rRows, err := provide(dp, rt.Table, rt.Columns)
		if err != nil {
			return nil, nil, err
		}
		titles, rows, err = applyJoin(j, titles, rows, rTitles, rRows, env)
		if err != nil {
			return nil, nil, err
		}
	}
	return titles, rows, nil
}

func provide(dp provider.DataProvider, table string, columns []string) ([]string, [][]value.Value, error) {
	providerRows, err := dp.Provide(table, columns)
	if err != nil {
		return nil, nil, gqlerrors.New(gqlerrors.ErrProviderFailure.New(table, err.Error()), token.SourceLocation{})
	}
	rows := make([][]value.Value, len(providerRows))
	for i, pr := range providerRows {
		rows[i] = pr.Values
	}
	return append([]string(nil), columns...), rows, nil
}

func tableSelectionFor(sel *ast.SelectStatement, key string) (ast.TableSelection, bool) {
	for _, t := range sel.Tables {
		name := t.Alias
		if name == "" {
			name = t.Table
		}
		if name == key {
			return t, true
		}
	}
	return ast.TableSelection{}, false
}

func nullRow(n int) []value.Value {
	out := make([]value.Value, n)
	for i := range out {
		out[i] = value.NullValue{}
	}
	return out
}

func evalOn(on ast.Expression, titles []string, values []value.Value, env *environment.Environment) (bool, error) {
	if on == nil {
		return true, nil
	}
	v, err := evalExpr(on, row{titles: titles, values: values}, env)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.BoolValue)
	return ok && bool(b), nil
}

// applyJoin combines leftRows (aligned with leftTitles) against rightRows
// (aligned with rightTitles) per j.Kind, evaluating j.On against the
// concatenated row on each candidate pair.
func applyJoin(j ast.Join, leftTitles []string, leftRows [][]value.Value, rightTitles []string, rightRows [][]value.Value, env *environment.Environment) ([]string, [][]value.Value, error) {
	titles := append(append([]string(nil), leftTitles...), rightTitles...)
	var out [][]value.Value

	rightMatched := make([]bool, len(rightRows))

	for _, lv := range leftRows {
		matched := false
		for ri, rv := range rightRows {
			combined := append(append([]value.Value(nil), lv...), rv...)
			ok, err := evalOn(j.On, titles, combined, env)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				continue
			}
			matched = true
			rightMatched[ri] = true
			out = append(out, combined)
		}
		if !matched && (j.Kind == ast.JoinLeft || j.Kind == ast.JoinOuter) {
			out = append(out, append(append([]value.Value(nil), lv...), nullRow(len(rightTitles))...))
		}
	}

	if j.Kind == ast.JoinRight || j.Kind == ast.JoinOuter {
		for ri, rv := range rightRows {
			if rightMatched[ri] {
				continue
			}
			out = append(out, append(nullRow(len(leftTitles)), rv...))
		}
	}

	return titles, out, nil
}
