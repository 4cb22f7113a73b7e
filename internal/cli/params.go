package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wesleyorama2/restful/restful"
)

// parseParams turns key=value arguments into call-time params. Dotted keys
// build nested maps (filter.name=ada) and values that parse as JSON keep
// their type (limit=10, active=true, ids=[1,2]).
func parseParams(args []string) (restful.Params, error) {
	params := restful.Params{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}

		parts := strings.Split(key, ".")
		target := map[string]any(params)
		for _, part := range parts[:len(parts)-1] {
			if part == "" {
				return nil, fmt.Errorf("invalid parameter key %q", key)
			}
			next, ok := target[part].(map[string]any)
			if !ok {
				next = map[string]any{}
				target[part] = next
			}
			target = next
		}

		last := parts[len(parts)-1]
		if last == "" {
			return nil, fmt.Errorf("invalid parameter key %q", key)
		}
		target[last] = parseValue(value)
	}
	return params, nil
}

func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}

// parseExtracts parses repeated name=$.path flags.
func parseExtracts(flags []string) (map[string]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	paths := make(map[string]string, len(flags))
	for _, flag := range flags {
		name, path, ok := strings.Cut(flag, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid extract %q, expected name=$.path", flag)
		}
		paths[name] = path
	}
	return paths, nil
}
