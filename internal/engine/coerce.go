package engine

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultDurationMinutes applies when a session has no usable duration.
	DefaultDurationMinutes = 60.0
	// DefaultBodyWeightKg applies when the user has no usable body weight.
	DefaultBodyWeightKg = 70.0
)

// ParseFloat converts v to a float64, returning def for nil, NaN, infinities
// and anything that does not parse.
func ParseFloat(v any, def float64) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return def
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return def
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// ParseInt converts v to an int, returning def when it cannot. Floats are
// truncated toward zero; strings must hold an integer.
func ParseInt(v any, def int) int {
	switch x := v.(type) {
	case nil:
		return def
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return def
		}
		return int(x)
	case float32:
		return ParseInt(float64(x), def)
	case json.Number:
		n, err := strconv.Atoi(x.String())
		if err != nil {
			return def
		}
		return n
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// NormalizeDuration returns minutes, or DefaultDurationMinutes when minutes is
// not positive.
func NormalizeDuration(minutes float64) float64 {
	if math.IsNaN(minutes) || minutes <= 0 {
		return DefaultDurationMinutes
	}
	return minutes
}

// NormalizeBodyWeight returns kg, or DefaultBodyWeightKg when kg is not positive.
func NormalizeBodyWeight(kg float64) float64 {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg <= 0 {
		return DefaultBodyWeightKg
	}
	return kg
}
