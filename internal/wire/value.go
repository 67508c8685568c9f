// Package wire converts the dynamic values produced by the msgpack decoder.
// Integers may arrive as any signed or unsigned width, strings as string or
// []byte, and maps keyed by string or by any.
package wire

import "math"

// Int64 accepts any integer width that fits in an int64.
func Int64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// Number accepts floats and integers.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	if i, ok := Int64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// String accepts string or raw bytes.
func String(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func Array(v any) ([]any, bool) {
	arr, ok := v.([]any)
	return arr, ok
}

// Map normalises either map shape to string keys, dropping non-string keys.
func Map(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if key, ok := String(k); ok {
				out[key] = val
			}
		}
		return out, true
	}
	return nil, false
}

// At returns args[i] or nil when out of range.
func At(args []any, i int) any {
	if i < 0 || i >= len(args) {
		return nil
	}
	return args[i]
}
