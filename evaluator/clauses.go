package evaluator

import (
	"fmt"
	"sort"

	"github.com/gqlengine/gql/ast"
	"github.com/gqlengine/gql/environment"
	"github.com/gqlengine/gql/object"
	"github.com/gqlengine/gql/value"
	"github.com/mitchellh/hashstructure"
)

// filterRows keeps only the rows for which pred evaluates truthy,
// implementing WHERE/HAVING/QUALIFY's shared boolean-filter shape.
func filterRows(pred ast.Expression, titles []string, rows []object.Row, env *environment.Environment) ([]object.Row, error) {
	if pred == nil {
		return rows, nil
	}
	out := rows[:0:0]
	for _, r := range rows {
		v, err := evalExpr(pred, row{titles: titles, values: r.Values}, env)
		if err != nil {
			return nil, err
		}
		if b, ok := v.(value.BoolValue); ok && bool(b) {
			out = append(out, r)
		}
	}
	return out, nil
}

// groupKey evaluates exprs against r and hashes the resulting tuple into
// a single comparable bucket key.
func groupKey(exprs []ast.Expression, titles []string, r object.Row, env *environment.Environment) (string, error) {
	vals := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, err := evalExpr(e, row{titles: titles, values: r.Values}, env)
		if err != nil {
			return "", err
		}
		vals[i] = v
	}
	return hashValues(vals)
}

// hashValues hashes a tuple of runtime values into a stable string key,
// used everywhere a row needs bucketing by value (GROUP BY, PARTITION
// BY, DISTINCT/DISTINCT ON) without a usable Value.Hash method of its
// own.
func hashValues(vals []value.Value) (string, error) {
	reps := make([]string, len(vals))
	for i, v := range vals {
		reps[i] = fmt.Sprintf("%T:%s", v, v.String())
	}
	h, err := hashstructure.Hash(reps, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h), nil
}

// partitionRows buckets obj's flat row set by gb's grouping expressions,
// preserving first-seen bucket order. WITH ROLLUP adds, after the
// per-value buckets, the buckets of every shorter grouping-expression
// prefix, longest first: one bucket per distinct prefix value, ending
// with the empty prefix's single bucket (the grand total) holding every
// row, the way MySQL's ROLLUP super-aggregate rows work.
func partitionRows(gb *ast.GroupByStatement, obj *object.Object, env *environment.Environment) (*object.Object, error) {
	obj.Flat()
	rows := obj.Groups[0].Rows

	order := make([]string, 0, len(rows))
	buckets := map[string][]object.Row{}
	for _, r := range rows {
		key, err := groupKey(gb.Exprs, obj.Titles, r, env)
		if err != nil {
			return nil, err
		}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], r)
	}

	groups := make([]object.Group, 0, len(order)+len(gb.Exprs)+1)
	for _, key := range order {
		groups = append(groups, object.Group{Rows: buckets[key]})
	}

	if gb.WithRollup {
		for n := len(gb.Exprs) - 1; n >= 0; n-- {
			prefix := gb.Exprs[:n]
			rollupOrder := []string{}
			rollupBuckets := map[string][]object.Row{}
			for _, r := range rows {
				key, err := groupKey(prefix, obj.Titles, r, env)
				if err != nil {
					return nil, err
				}
				if _, ok := rollupBuckets[key]; !ok {
					rollupOrder = append(rollupOrder, key)
				}
				rollupBuckets[key] = append(rollupBuckets[key], r)
			}
			for _, key := range rollupOrder {
				groups = append(groups, object.Group{Rows: rollupBuckets[key]})
			}
		}
	}

	obj.Groups = groups
	return obj, nil
}

// orderRows sorts obj's flat row set per terms, in place.
func orderRows(terms []ast.OrderTerm, obj *object.Object, env *environment.Environment) error {
	obj.Flat()
	rows := obj.Groups[0].Rows

	type keyed struct {
		row  object.Row
		vals []value.Value
	}
	ks := make([]keyed, len(rows))
	for i, r := range rows {
		vals := make([]value.Value, len(terms))
		for ti, t := range terms {
			v, err := evalExpr(t.Expr, row{titles: obj.Titles, values: r.Values}, env)
			if err != nil {
				return err
			}
			vals[ti] = v
		}
		ks[i] = keyed{row: r, vals: vals}
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

	out := make([]object.Row, len(ks))
	for i, k := range ks {
		out[i] = k.row
	}
	obj.Groups[0].Rows = out
	return nil
}

// sliceRows applies OFFSET and/or LIMIT (with LIMIT's own comma-form
// offset) to obj's flat row set.
func sliceRows(offset, limitCount, limitOffset ast.Expression, obj *object.Object, env *environment.Environment) error {
	obj.Flat()
	rows := obj.Groups[0].Rows

	start := 0
	if offset != nil {
		n, err := evalIntExpr(offset, env)
		if err != nil {
			return err
		}
		start = n
	}
	if limitOffset != nil {
		n, err := evalIntExpr(limitOffset, env)
		if err != nil {
			return err
		}
		start = n
	}
	if start < 0 {
		start = 0
	}
	if start > len(rows) {
		start = len(rows)
	}
	rows = rows[start:]

	if limitCount != nil {
		n, err := evalIntExpr(limitCount, env)
		if err != nil {
			return err
		}
		if n < 0 {
			n = 0
		}
		if n < len(rows) {
			rows = rows[:n]
		}
	}

	obj.Groups[0].Rows = rows
	return nil
}

func evalIntExpr(e ast.Expression, env *environment.Environment) (int, error) {
	v, err := evalExpr(e, row{}, env)
	if err != nil {
		return 0, err
	}
	i, ok := v.(value.IntValue)
	if !ok {
		return 0, runtimeErr(e, "expected an integer, got %s", v.Type().Name())
	}
	return int(i), nil
}
