package tools

// Argument accessors for raw JSON-decoded tool arguments. JSON numbers arrive
// as float64 and arrays as []any; these helpers coerce without panicking on
// mistyped input.

// StringArg returns a string argument and whether it was present and a string.
func StringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// StringArgOr returns a string argument or the default when absent or empty.
func StringArgOr(args map[string]any, key, def string) string {
	if s, ok := StringArg(args, key); ok && s != "" {
		return s
	}
	return def
}

// IntArg returns an integer argument. JSON numbers decode as float64.
func IntArg(args map[string]any, key string) (int64, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// IntArgOr returns an integer argument or the default when absent or mistyped.
func IntArgOr(args map[string]any, key string, def int64) int64 {
	if n, ok := IntArg(args, key); ok {
		return n
	}
	return def
}

// FloatArg returns a numeric argument.
func FloatArg(args map[string]any, key string) (float64, bool) {
	v, ok := args[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// BoolArgOr returns a boolean argument or the default when absent or mistyped.
func BoolArgOr(args map[string]any, key string, def bool) bool {
	if v, ok := args[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// MapArg returns an object argument, or an empty map when absent.
func MapArg(args map[string]any, key string) (map[string]any, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return map[string]any{}, true
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// StringListArg returns a list-of-strings argument.
func StringListArg(args map[string]any, key string) ([]string, bool) {
	v, ok := args[key]
	if !ok {
		return nil, false
	}
	raw, ok := v.([]any)
	if !ok {
		// Already-typed slices appear when handlers are invoked directly.
		if ss, ok := v.([]string); ok {
			return ss, true
		}
		return nil, false
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}

// VectorArg returns a list-of-numbers argument as float32.
func VectorArg(args map[string]any, key string) ([]float32, bool) {
	v, ok := args[key]
	if !ok {
		return nil, false
	}
	return ToVector(v)
}

// ToVector coerces a JSON array of numbers into a float32 vector.
func ToVector(v any) ([]float32, bool) {
	switch raw := v.(type) {
	case []float32:
		return raw, true
	case []float64:
		out := make([]float32, len(raw))
		for i, f := range raw {
			out[i] = float32(f)
		}
		return out, true
	case []any:
		out := make([]float32, len(raw))
		for i, item := range raw {
			f, ok := item.(float64)
			if !ok {
				return nil, false
			}
			out[i] = float32(f)
		}
		return out, true
	}
	return nil, false
}
