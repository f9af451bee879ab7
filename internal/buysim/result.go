package buysim

import (
	"encoding/json"
	"fmt"
)

// Result is the structured content of a remote call. Missing or mistyped
// fields read as zero values so decision logic can treat them as "unknown"
// instead of branching on transport failures.
type Result map[string]any

// Empty reports whether the call produced no structured content, which is
// how gateway failures surface to callers.
func (r Result) Empty() bool {
	return len(r) == 0
}

// Str returns the string value for key, or "" when absent.
func (r Result) Str(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Float returns the numeric value for key, or 0 when absent. JSON decoding
// produces float64 for all numbers; integer values are accepted for results
// built in-process.
func (r Result) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Int returns the integer value for key, truncating fractional parts, or 0
// when absent.
func (r Result) Int(key string) int64 {
	return int64(r.Float(key))
}

// Decode unmarshals the result into target via a JSON round trip. Fields
// absent from the result keep their zero values.
func (r Result) Decode(target any) error {
	data, err := json.Marshal(map[string]any(r))
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	return nil
}
