package evaluator

import (
	"sort"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/gqlerrors"
	"github.com/gqlengine/gql/object"
	"github.com/gqlengine/gql/value"
)

// computeAggregations collapses each of obj's groups down to a single
// row, filling in one hidden column per hoisted aggregation call. A
// projection referencing the original call (now a SymbolExpr naming the
// hidden column, per parser/expr.go's hoisting) reads the value straight
// off the collapsed row.
func computeAggregations(ag *ast.AggregationsStatement, obj *object.Object, env *environment.Environment) (*object.Object, error) {
	if len(ag.Aggregations) == 0 {
		return obj, nil
	}

	names := make([]string, 0, len(ag.Aggregations))
	for name := range ag.Aggregations {
		names = append(names, name)
	}
	sort.Strings(names)

	indices := make(map[string]int, len(names))
	for _, name := range names {
		indices[name] = obj.EnsureColumn(name, value.NullValue{})
	}

	newGroups := make([]object.Group, len(obj.Groups))
	for gi, g := range obj.Groups {
		rowValues := make([]value.Value, len(obj.Titles))
		if len(g.Rows) > 0 {
			copy(rowValues, g.Rows[0].Values)
		} else {
			for i := range rowValues {
				rowValues[i] = value.NullValue{}
			}
		}

		for _, name := range names {
			call := ag.Aggregations[name]
			argRows := make([][]value.Value, len(g.Rows))
			for ri, r := range g.Rows {
				args := make([]value.Value, len(call.Args))
				for ai, a := range call.Args {
					v, err := evalExpr(a, row{titles: obj.Titles, values: r.Values}, env)
					if err != nil {
						return nil, err
					}
					args[ai] = v
				}
				argRows[ri] = args
			}
			_, fn, ok := env.LookupAggregation(call.Name)
			if !ok {
				return nil, runtimeErr(call, "unknown aggregation function %s", call.Name)
			}
			v, err := fn(argRows)
			if err != nil {
				return nil, gqlerrors.New(err, call.Location())
			}
			rowValues[indices[name]] = v
		}

		newGroups[gi] = object.Group{Rows: []object.Row{{Values: rowValues}}}
	}
	obj.Groups = newGroups
	return obj, nil
}

// computeWindowFunctions fills in one hidden column per hoisted window
// call, without changing the row count: each call's frame is its own
// PARTITION BY bucket (the whole row set if none), ordered per its
// ORDER BY, handed to the registered function.Window. A "pure" window
// function (result length == partition length) assigns one value per
// row in partition order; an "aggregated" one (result length == 1) is
// broadcast across every row of the partition.
func computeWindowFunctions(wf *ast.WindowFunctionsStatement, obj *object.Object, env *environment.Environment) (*object.Object, error) {
	if len(wf.Calls) == 0 {
		return obj, nil
	}
	obj.Flat()
	rows := obj.Groups[0].Rows

	names := make([]string, 0, len(wf.Calls))
	for name := range wf.Calls {
		names = append(names, name)
	}
	sort.Strings(names)

	indices := make(map[string]int, len(names))
	for _, name := range names {
		indices[name] = obj.EnsureColumn(name, value.NullValue{})
	}

	for _, name := range names {
		wc := wf.Calls[name]

		partitions, err := windowPartitions(wc.Def, obj.Titles, rows, env)
		if err != nil {
			return nil, err
		}

		for _, part := range partitions {
			if err := sortPartition(wc.Def.OrderBy, obj.Titles, rows, part, env); err != nil {
				return nil, err
			}

			argRows := make([][]value.Value, len(part))
			for pi, idx := range part {
				args := make([]value.Value, len(wc.Call.Args))
				for ai, a := range wc.Call.Args {
					v, err := evalExpr(a, row{titles: obj.Titles, values: rows[idx].Values}, env)
					if err != nil {
						return nil, err
					}
					args[ai] = v
				}
				argRows[pi] = args
			}

			_, fn, ok := env.LookupWindow(wc.Call.Name)
			if !ok {
				return nil, runtimeErr(wc.Call, "unknown window function %s", wc.Call.Name)
			}
			results, err := fn(argRows)
			if err != nil {
				return nil, gqlerrors.New(err, wc.Call.Location())
			}

			switch len(results) {
			case len(part):
				for pi, idx := range part {
					rows[idx].Values[indices[name]] = results[pi]
				}
			case 1:
				for _, idx := range part {
					rows[idx].Values[indices[name]] = results[0]
				}
			default:
				return nil, runtimeErr(wc.Call, "window function %s returned %d values for a partition of %d rows", wc.Call.Name, len(results), len(part))
			}
		}
	}

	return obj, nil
}

// windowPartitions groups row indices by def.PartitionBy, preserving
// first-seen order; with no PARTITION BY every row is one partition.
func windowPartitions(def ast.WindowDef, titles []string, rows []object.Row, env *environment.Environment) ([][]int, error) {
	if len(def.PartitionBy) == 0 {
		all := make([]int, len(rows))
		for i := range rows {
			all[i] = i
		}
		return [][]int{all}, nil
	}

	order := []string{}
	buckets := map[string][]int{}
	for i, r := range rows {
		key, err := groupKey(def.PartitionBy, titles, r, env)
		if err != nil {
			return nil, err
		}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], i)
	}
	out := make([][]int, len(order))
	for i, key := range order {
		out[i] = buckets[key]
	}
	return out, nil
}

// sortPartition stably sorts a partition's row indices (in place) per
// terms, the same ordering semantics as orderRows.
func sortPartition(terms []ast.OrderTerm, titles []string, rows []object.Row, part []int, env *environment.Environment) error {
	if len(terms) == 0 {
		return nil
	}

	type keyed struct {
		idx  int
		vals []value.Value
	}
	ks := make([]keyed, len(part))
	for pi, idx := range part {
		vals := make([]value.Value, len(terms))
		for ti, t := range terms {
			v, err := evalExpr(t.Expr, row{titles: titles, values: rows[idx].Values}, env)
			if err != nil {
				return err
			}
			vals[ti] = v
		}
		ks[pi] = keyed{idx: idx, vals: vals}
	}

	var sortErr error
	sort.SliceStable(ks, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		for ti, t := range terms {
			a, b := ks[i].vals[ti], ks[j].vals[ti]
			aNull, bNull := isNull(a), isNull(b)
			if aNull || bNull {
				if aNull == bNull {
					continue
				}
				nullsFirst := t.Nulls == ast.NullsFirst || (t.Nulls == ast.NullsDefault && t.Descending)
				if aNull {
					return nullsFirst
				}
				return !nullsFirst
			}
			ord, ok := a.Compare(b)
			if !ok {
				continue
			}
			if ord == value.Equal {
				continue
			}
			less := ord == value.Less
			if t.Descending {
				less = !less
			}
			return less
		}
		return false
	})
	if sortErr != nil {
		return sortErr
	}

	for pi, k := range ks {
		part[pi] = k.idx
	}
	return nil
}
