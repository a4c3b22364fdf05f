package value

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// FromGo converts an embedder's native Go value into the engine's
// runtime Value. It exists for DataProvider implementations backed by
// existing Go structs/maps/database drivers, which hand back
// interface{} column values in whatever concrete numeric/string/time
// type their own source produces; FromGo saves them from hand-rolling a
// Value literal per field and per source type.
func FromGo(x interface{}) (Value, error) {
	switch v := x.(type) {
	case nil:
		return NullValue{}, nil
	case Value:
		return v, nil
	case bool:
		return BoolValue(v), nil
	case string:
		return TextValue(v), nil
	case time.Time:
		return DateTimeValue(v.UTC().Unix()), nil
	case float32, float64:
		f, _ := cast.ToFloat64E(v)
		return FloatValue(f), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		i, _ := cast.ToInt64E(v)
		return IntValue(i), nil
	}

	// Exotic numeric-ish types (json.Number, sql.NullInt64, etc.): try an
	// integer reading first, then fall back to float, then string.
	if i, err := cast.ToInt64E(x); err == nil {
		return IntValue(i), nil
	}
	if f, err := cast.ToFloat64E(x); err == nil {
		return FloatValue(f), nil
	}
	if s, err := cast.ToStringE(x); err == nil {
		return TextValue(s), nil
	}
	return nil, fmt.Errorf("value: can't convert %T to a runtime value", x)
}
