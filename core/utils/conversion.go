package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ToString converts a decoded JSON value to its string form.
// Numbers keep their shortest decimal form (1, 2.5), nil becomes "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ParseJSONSelection decodes a JSON object into parameter assignments.
// Non-string values are converted with ToString; null values are dropped.
// An empty input is the empty selection.
func ParseJSONSelection(raw string) (map[string]string, error) {
	out := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("selection must be a JSON object: %w", err)
	}
	for name, val := range obj {
		if val == nil {
			continue
		}
		out[name] = ToString(val)
	}
	return out, nil
}

// ParsePairs parses name=value arguments. Later repeats of a name win.
func ParsePairs(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected name=value", arg)
		}
		out[name] = value
	}
	return out, nil
}
