package dataset

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// NewCell coerces a JSON friendly value into a cell of kind, unit is the
// duration of one step of an integer encoded timestamp. Values that do not
// fit kind are kept as KindOther.
func NewCell(raw any, kind Kind, unit time.Duration) Cell {
	raw, isNil := deref(raw)
	if isNil {
		return Null()
	}

	var value Value
	var ok bool
	switch kind {
	case KindInteger:
		value.Int, ok = toInt64(raw)
	case KindFloat:
		value.Float, ok = toFloat64(raw)
	case KindBoolean:
		value.Bool, ok = toBool(raw)
	case KindText:
		value.Text, ok = toText(raw)
	case KindTimestamp:
		value.Time, ok = toTime(raw, unit)
	}

	if !ok {
		return Some(Value{Kind: KindOther, Raw: raw})
	}
	value.Kind = kind
	return Some(value)
}

// deref follows pointers and interfaces, the second return value tells if a
// nil was reached.
func deref(raw any) (any, bool) {
	if raw == nil {
		return nil, true
	}
	rv := reflect.ValueOf(raw)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, true
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil, true
		}
	}
	return rv.Interface(), false
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return wholeFloat(float64(v))
	case float64:
		return wholeFloat(v)
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i, err == nil
	}
	return 0, false
}

func wholeFloat(f float64) (int64, bool) {
	// float64(math.MaxInt64) rounds up to 2^63
	if f != math.Trunc(f) || f < math.MinInt64 || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}

func toFloat64(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	if i, ok := toInt64(raw); ok {
		return float64(i), true
	}
	return 0, false
}

func toBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	}
	return false, false
}

func toText(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case json.Number:
		return v.String(), true
	}
	return "", false
}

func toTime(raw any, unit time.Duration) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		t, err := dateparse.ParseIn(strings.TrimSpace(v), time.UTC)
		return t, err == nil
	}

	if unit <= 0 {
		return time.Time{}, false
	}
	i, ok := toInt64(raw)
	if !ok {
		return time.Time{}, false
	}
	// whole seconds first so that day based dates do not overflow nanoseconds
	perSecond := int64(time.Second / unit)
	if perSecond == 0 {
		return time.Unix(i*int64(unit/time.Second), 0).UTC(), true
	}
	return time.Unix(i/perSecond, (i%perSecond)*int64(unit)).UTC(), true
}
