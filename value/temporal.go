package value

import (
	"fmt"
	"time"

	"github.com/gqlengine/gql/types"
)

// DateValue is a Unix-seconds timestamp truncated to midnight UTC.
type DateValue int64

func (v DateValue) Type() types.Type { return types.Date }
func (v DateValue) String() string {
	return time.Unix(int64(v), 0).UTC().Format("2006-01-02")
}
func (v DateValue) Eq(other Value) bool {
	o, ok := other.(DateValue)
	return ok && v == o
}
func (v DateValue) Compare(other Value) (Ordering, bool) {
	o, ok := other.(DateValue)
	if !ok {
		return Equal, false
	}
	switch {
	case v < o:
		return Less, true
	case v > o:
		return Greater, true
	default:
		return Equal, true
	}
}
func (v DateValue) Add(other Value) (Value, error) {
	o, ok := other.(IntervalValue)
	if !ok {
		return nil, fmt.Errorf("+ requires Interval")
	}
	return DateValue(o.applyTo(int64(v))), nil
}
func (v DateValue) Sub(other Value) (Value, error) {
	o, ok := other.(IntervalValue)
	if !ok {
		return nil, fmt.Errorf("- requires Interval")
	}
	return DateValue(o.negate().applyTo(int64(v))), nil
}

// TimeValue is a "HH:MM:SS[.SSS]" wall-clock value stored verbatim.
type TimeValue string

func (v TimeValue) Type() types.Type { return types.Time }
func (v TimeValue) String() string   { return string(v) }
func (v TimeValue) Eq(other Value) bool {
	o, ok := other.(TimeValue)
	return ok && v == o
}
func (v TimeValue) Compare(other Value) (Ordering, bool) {
	o, ok := other.(TimeValue)
	if !ok {
		return Equal, false
	}
	switch {
	case v < o:
		return Less, true
	case v > o:
		return Greater, true
	default:
		return Equal, true
	}
}

// DateTimeValue is a Unix-seconds timestamp with time-of-day.
type DateTimeValue int64

func (v DateTimeValue) Type() types.Type { return types.DateTime }
func (v DateTimeValue) String() string {
	return time.Unix(int64(v), 0).UTC().Format("2006-01-02 15:04:05")
}
func (v DateTimeValue) Eq(other Value) bool {
	o, ok := other.(DateTimeValue)
	return ok && v == o
}
func (v DateTimeValue) Compare(other Value) (Ordering, bool) {
	o, ok := other.(DateTimeValue)
	if !ok {
		return Equal, false
	}
	switch {
	case v < o:
		return Less, true
	case v > o:
		return Greater, true
	default:
		return Equal, true
	}
}
func (v DateTimeValue) Add(other Value) (Value, error) {
	o, ok := other.(IntervalValue)
	if !ok {
		return nil, fmt.Errorf("+ requires Interval")
	}
	return DateTimeValue(o.applyTo(int64(v))), nil
}
func (v DateTimeValue) Sub(other Value) (Value, error) {
	o, ok := other.(IntervalValue)
	if !ok {
		return nil, fmt.Errorf("- requires Interval")
	}
	return DateTimeValue(o.negate().applyTo(int64(v))), nil
}

// IntervalValue is a calendar interval used as the RHS of Date/DateTime
// arithmetic. Months are applied via Go's calendar-aware AddDate so that
// e.g. adding one month to Jan 31 behaves the way time.Time defines it;
// days/hours/minutes/seconds are applied as a flat duration.
type IntervalValue struct {
	Months, Days, Hours, Minutes, Seconds int
}

func (v IntervalValue) Type() types.Type { return types.Interval }
func (v IntervalValue) String() string {
	return fmt.Sprintf("INTERVAL %d MONTH %d DAY %d HOUR %d MINUTE %d SECOND",
		v.Months, v.Days, v.Hours, v.Minutes, v.Seconds)
}
func (v IntervalValue) Eq(other Value) bool {
	o, ok := other.(IntervalValue)
	return ok && v == o
}
func (v IntervalValue) Compare(Value) (Ordering, bool) { return Equal, false }

func (v IntervalValue) negate() IntervalValue {
	return IntervalValue{-v.Months, -v.Days, -v.Hours, -v.Minutes, -v.Seconds}
}

func (v IntervalValue) applyTo(unixSeconds int64) int64 {
	t := time.Unix(unixSeconds, 0).UTC()
	t = t.AddDate(0, v.Months, v.Days)
	t = t.Add(time.Duration(v.Hours)*time.Hour + time.Duration(v.Minutes)*time.Minute + time.Duration(v.Seconds)*time.Second)
	return t.Unix()
}
