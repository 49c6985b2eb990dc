// Package convert provides loose numeric coercion for host-supplied
// flow-card arguments, which arrive as float64, json.Number or string
// depending on how the flow was authored.
package convert

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ToFloat64 converts various numeric representations to float64.
// The second return value reports whether the input was numeric.
func ToFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ToFloat64Ptr is ToFloat64 for optional arguments: nil and empty
// strings map to a nil pointer rather than a zero value.
func ToFloat64Ptr(v any) *float64 {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	f, ok := ToFloat64(v)
	if !ok {
		return nil
	}
	return &f
}
