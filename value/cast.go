package value

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gqlengine/gql/types"
)

// Cast converts v to target, implementing both the implicit casts the
// parser inserted (Text literal -> Time/Date/DateTime/Bool) and the
// explicit CAST/:: conversions types.CanPerformExplicitCastTo allows.
// Parse failures are runtime errors (spec §7's CAST failure category),
// not type errors, since the source text isn't known until execution.
func Cast(v Value, target types.Type) (Value, error) {
	if _, ok := v.(NullValue); ok {
		return NullValue{}, nil
	}
	switch target {
	case types.Int:
		switch x := v.(type) {
		case IntValue:
			return x, nil
		case FloatValue:
			return IntValue(int64(x)), nil
		case TextValue:
			n, err := strconv.ParseInt(string(x), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to Int: %w", string(x), err)
			}
			return IntValue(n), nil
		case BoolValue:
			if x {
				return IntValue(1), nil
			}
			return IntValue(0), nil
		}
	case types.Float:
		switch x := v.(type) {
		case FloatValue:
			return x, nil
		case IntValue:
			return FloatValue(float64(x)), nil
		case TextValue:
			f, err := strconv.ParseFloat(string(x), 64)
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to Float: %w", string(x), err)
			}
			return FloatValue(f), nil
		}
	case types.Text:
		return TextValue(v.String()), nil
	case types.Bool:
		switch x := v.(type) {
		case BoolValue:
			return x, nil
		case TextValue:
			switch string(x) {
			case "true", "TRUE":
				return BoolValue(true), nil
			case "false", "FALSE":
				return BoolValue(false), nil
			}
			return nil, fmt.Errorf("cannot cast %q to Bool", string(x))
		case IntValue:
			return BoolValue(x != 0), nil
		}
	case types.Date:
		if x, ok := v.(TextValue); ok {
			t, err := time.Parse("2006-01-02", string(x))
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to Date: %w", string(x), err)
			}
			return DateValue(t.Unix()), nil
		}
	case types.Time:
		if x, ok := v.(TextValue); ok {
			return TimeValue(x), nil
		}
	case types.DateTime:
		if x, ok := v.(TextValue); ok {
			t, err := time.Parse("2006-01-02 15:04:05", string(x))
			if err != nil {
				return nil, fmt.Errorf("cannot cast %q to DateTime: %w", string(x), err)
			}
			return DateTimeValue(t.Unix()), nil
		}
	}
	return nil, fmt.Errorf("cannot cast %s to %s", v.Type().Name(), target.Name())
}
