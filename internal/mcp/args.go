package mcp

import "fmt"

// arguments wraps the argument map of a tool call. MCP clients send JSON, so
// numbers arrive as float64 and arrays as []interface{}.
type arguments map[string]interface{}

// String returns a string argument. Missing or empty required arguments and
// values of another type are errors.
func (a arguments) String(key string, required bool) (string, error) {
	val, ok := a[key]
	if !ok {
		if required {
			return "", fmt.Errorf("%s parameter is required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}
	return str, nil
}

// clamp limits val to [min, max]. Zero means def.
func clamp(val, def, min, max int) int {
	if val == 0 {
		val = def
	}
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
