package function

import (
	"fmt"

	"github.com/gqlengine/gql/types"
	"github.com/gqlengine/gql/value"
)

// Builtin is one registry entry ready for Environment.RegisterXxx.
type Builtin struct {
	Name      string
	Signature Signature
}

// Count implements COUNT(*) / COUNT(expr): the group's row count,
// ignoring the argument's value entirely (spec (I8)).
func Count(rows [][]value.Value) (value.Value, error) {
	return value.IntValue(int64(len(rows))), nil
}

// Sum implements SUM(expr) over an Int or Float column; the empty-group
// sum is 0, per spec (I8).
func Sum(rows [][]value.Value) (value.Value, error) {
	var acc value.Value = value.IntValue(0)
	for i, r := range rows {
		if len(r) != 1 {
			return nil, fmt.Errorf("SUM expects exactly one argument")
		}
		if _, isNull := r[0].(value.NullValue); isNull {
			continue
		}
		if i == 0 {
			acc = r[0]
			continue
		}
		switch a := acc.(type) {
		case value.IntValue:
			next, err := a.Add(r[0])
			if err != nil {
				return nil, err
			}
			acc = next
		case value.FloatValue:
			next, err := a.Add(r[0])
			if err != nil {
				return nil, err
			}
			acc = next
		default:
			return nil, fmt.Errorf("SUM requires Int or Float, got %s", acc.Type().Name())
		}
	}
	return acc, nil
}

// Avg implements AVG(expr); an empty group is NULL, per spec (I8)'s
// "consistent NULL-or-error" choice — NULL was picked so AVG composes
// cleanly with further arithmetic in a HAVING clause.
func Avg(rows [][]value.Value) (value.Value, error) {
	if len(rows) == 0 {
		return value.NullValue{}, nil
	}
	sum, err := Sum(rows)
	if err != nil {
		return nil, err
	}
	count := value.FloatValue(float64(len(rows)))
	switch s := sum.(type) {
	case value.IntValue:
		return value.FloatValue(s).Div(count)
	case value.FloatValue:
		return s.Div(count)
	default:
		return nil, fmt.Errorf("AVG requires Int or Float")
	}
}

// Min implements MIN(expr), keeping the row whose value compares Less
// than every other (spec's fixed compare(a,b) = Less iff a<b
// convention).
func Min(rows [][]value.Value) (value.Value, error) {
	return extreme(rows, value.Less)
}

// Max implements MAX(expr), keeping the row whose value compares
// Greater than every other.
func Max(rows [][]value.Value) (value.Value, error) {
	return extreme(rows, value.Greater)
}

// extreme keeps whichever row's value is "want"-ward of the current
// best under Value.Compare, skipping NULLs.
func extreme(rows [][]value.Value, want value.Ordering) (value.Value, error) {
	var best value.Value
	for _, r := range rows {
		if len(r) != 1 {
			return nil, fmt.Errorf("MIN/MAX expects exactly one argument")
		}
		if _, isNull := r[0].(value.NullValue); isNull {
			continue
		}
		if best == nil {
			best = r[0]
			continue
		}
		ord, ok := best.Compare(r[0])
		if !ok {
			continue
		}
		if ord != want && ord != value.Equal {
			best = r[0]
		}
	}
	if best == nil {
		return value.NullValue{}, nil
	}
	return best, nil
}

// Abs is a Standard function demonstrating a Dynamic return type: "same
// type as the argument".
func Abs(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("ABS expects exactly one argument")
	}
	switch a := args[0].(type) {
	case value.IntValue:
		if a < 0 {
			return -a, nil
		}
		return a, nil
	case value.FloatValue:
		if a < 0 {
			return -a, nil
		}
		return a, nil
	default:
		return nil, fmt.Errorf("ABS requires Int or Float")
	}
}

// RowNumber is a pure Window function: 1-based position within the
// frame, ignoring arguments entirely.
func RowNumber(rows [][]value.Value) ([]value.Value, error) {
	out := make([]value.Value, len(rows))
	for i := range rows {
		out[i] = value.IntValue(int64(i + 1))
	}
	return out, nil
}

var numericVariant = types.VariantType{Members: []types.Type{types.Int, types.Float}}

// StandardBuiltins lists the built-in standard-function registrations ready for
// Environment.RegisterStandard.
var StandardBuiltins = map[string]struct {
	Signature Signature
	Call      Standard
}{
	"abs": {
		Signature{Parameters: []types.Type{numericVariant}, Return: types.Dynamic(func(args []types.Type) types.Type {
			if len(args) == 1 {
				return args[0]
			}
			return types.Undefined
		})},
		Abs,
	},
}

// AggregationBuiltins lists the built-in aggregation-function
// registrations ready for Environment.RegisterAggregation.
var AggregationBuiltins = map[string]struct {
	Signature Signature
	Call      Aggregation
}{
	"count": {Signature{Parameters: []types.Type{types.OptionalType{Inner: types.AnyType{}}}, Return: types.Int}, Count},
	"sum":   {Signature{Parameters: []types.Type{numericVariant}, Return: numericVariant}, Sum},
	"avg":   {Signature{Parameters: []types.Type{numericVariant}, Return: types.Float}, Avg},
	"min":   {Signature{Parameters: []types.Type{numericVariant}, Return: types.Dynamic(func(args []types.Type) types.Type {
		if len(args) == 1 {
			return args[0]
		}
		return types.Undefined
	})}, Min},
	"max": {Signature{Parameters: []types.Type{numericVariant}, Return: types.Dynamic(func(args []types.Type) types.Type {
		if len(args) == 1 {
			return args[0]
		}
		return types.Undefined
	})}, Max},
}

// WindowBuiltins lists the built-in window-function registrations ready
// for Environment.RegisterWindow.
var WindowBuiltins = map[string]struct {
	Signature Signature
	Call      Window
}{
	"row_number": {Signature{Return: types.Int}, RowNumber},
}
