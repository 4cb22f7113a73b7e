// Package jsonpath evaluates simple JSONPath expressions ($.a.b[0].c)
// against decoded response data, backed by gjson.
package jsonpath

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNotFound is returned when a path matches nothing.
var ErrNotFound = errors.New("path not found")

// Lookup evaluates path against data and returns the matched value in
// decoded form. data may be raw JSON ([]byte or json.RawMessage) or any
// value encoding/json can marshal.
func Lookup(data any, path string) (any, error) {
	res, err := get(data, path)
	if err != nil {
		return nil, err
	}
	return res.Value(), nil
}

// Extract evaluates path against data and returns the match as text.
// JSON null is rendered as "null".
func Extract(data any, path string) (string, error) {
	res, err := get(data, path)
	if err != nil {
		return "", err
	}
	if res.Type == gjson.Null {
		return "null", nil
	}
	return res.String(), nil
}

// ExtractAll evaluates every named path. Matches are returned even when
// some paths fail; the error then lists every failure.
func ExtractAll(data any, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(paths))
	var failures []string
	for _, name := range names {
		value, err := Extract(data, paths[name])
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(failures) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}
	return results, nil
}

// Transform returns a function that replaces data with the value at path,
// or with nil when the path does not match.
func Transform(path string) func(any) any {
	return func(data any) any {
		v, err := Lookup(data, path)
		if err != nil {
			return nil
		}
		return v
	}
}

// Check reports whether path is an expression this package understands.
func Check(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("empty JSONPath expression")
	}
	if !strings.HasPrefix(path, "$") {
		return fmt.Errorf("JSONPath %q must start with $", path)
	}
	if strings.Count(path, "[") != strings.Count(path, "]") {
		return fmt.Errorf("JSONPath %q has unbalanced brackets", path)
	}
	return nil
}

func get(data any, path string) (gjson.Result, error) {
	if err := Check(path); err != nil {
		return gjson.Result{}, err
	}

	var raw []byte
	switch v := data.(type) {
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("encode data: %w", err)
		}
		raw = b
	}
	if len(raw) == 0 {
		return gjson.Result{}, fmt.Errorf("empty JSON document")
	}

	res := gjson.GetBytes(raw, ToGJSON(path))
	if !res.Exists() {
		return gjson.Result{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return res, nil
}

// ToGJSON converts a JSONPath expression to gjson syntax:
// $.users[0]['first.name'] becomes users.0.first\.name.
func ToGJSON(path string) string {
	p := strings.TrimPrefix(strings.TrimSpace(path), "$")
	p = strings.TrimPrefix(p, ".")
	if p == "" {
		return "@this"
	}

	var b strings.Builder
	for i := 0; i < len(p); i++ {
		if p[i] != '[' {
			b.WriteByte(p[i])
			continue
		}
		end := strings.IndexByte(p[i:], ']')
		if end < 0 {
			b.WriteString(p[i:])
			break
		}
		key := strings.Trim(p[i+1:i+end], `'"`)
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strings.ReplaceAll(key, ".", `\.`))
		i += end
	}
	return b.String()
}
