package survey

import (
	"fmt"
	"strconv"
)

// IsMissing reports whether an answer counts as absent for estimation:
// nil or the empty string. Zero is a real answer.
func IsMissing(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

// NumericValue coerces an answer to float64. Booleans are not numeric here;
// they estimate as two-category variables.
func NumericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// NumericValues coerces a whole value set. It succeeds only when every value
// is numeric; one categorical answer makes the variable categorical.
func NumericValues(values []interface{}) ([]float64, bool) {
	nums := make([]float64, len(values))
	for i, v := range values {
		n, ok := NumericValue(v)
		if !ok {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}

// CategoryLabel renders an answer as a category key. Strings pass through,
// numbers use their shortest decimal form, everything else falls back to the
// fmt representation (lists become one combined category).
func CategoryLabel(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'g', -1, 32)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
