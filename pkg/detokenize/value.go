package detokenize

import (
	"math"
	"strconv"
	"strings"
)

// Stringify coerces a replacement value to its output text.
//
// Strings are returned as is. Integers are formatted in decimal. Floats use
// the shortest representation that round-trips, switching to exponent form
// outside [1e-6, 1e21). Any other type returns *UnsupportedValueError.
func Stringify(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return formatFloat(float64(val), 32), nil
	case float64:
		return formatFloat(val, 64), nil
	default:
		return "", &UnsupportedValueError{Value: v}
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, bitSize)
		// Drop the exponent's leading zero: 1e-07 -> 1e-7.
		return strings.Replace(strings.Replace(s, "e-0", "e-", 1), "e+0", "e+", 1)
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

// join concatenates resolved segment contents in order.
func join(segments []Segment) (string, error) {
	var sb strings.Builder
	for _, seg := range segments {
		if !seg.Substituted {
			sb.WriteString(seg.Text)
			continue
		}
		if _, ok := seg.Value.(Deferred); ok {
			return "", ErrDeferredValue
		}
		s, err := Stringify(seg.Value)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}
