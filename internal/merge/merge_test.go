package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	tests := []struct {
		name     string
		base     map[string]any
		override map[string]any
		expected map[string]any
	}{
		{
			name:     "Both empty",
			expected: map[string]any{},
		},
		{
			name:     "Override adds keys",
			base:     map[string]any{"limit": 10},
			override: map[string]any{"page": 2},
			expected: map[string]any{"limit": 10, "page": 2},
		},
		{
			name:     "Override wins on scalars",
			base:     map[string]any{"limit": 10, "sort": "asc"},
			override: map[string]any{"limit": 50},
			expected: map[string]any{"limit": 50, "sort": "asc"},
		},
		{
			name:     "Nested maps combine",
			base:     map[string]any{"filter": map[string]any{"status": "active"}},
			override: map[string]any{"filter": map[string]any{"role": "admin"}},
			expected: map[string]any{"filter": map[string]any{"status": "active", "role": "admin"}},
		},
		{
			name:     "Typed base map combines with untyped override",
			base:     map[string]any{"filter": map[string]string{"a": "1"}},
			override: map[string]any{"filter": map[string]any{"b": "2"}},
			expected: map[string]any{"filter": map[string]any{"a": "1", "b": "2"}},
		},
		{
			name:     "Untyped base map combines with typed override",
			base:     map[string]any{"filter": map[string]any{"a": 1}},
			override: map[string]any{"filter": map[string]int{"a": 5, "b": 2}},
			expected: map[string]any{"filter": map[string]any{"a": 5, "b": 2}},
		},
		{
			name:     "Typed slice replaces wholesale",
			base:     map[string]any{"ids": []any{1, 2, 3}},
			override: map[string]any{"ids": []int{9}},
			expected: map[string]any{"ids": []any{9}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Params(tt.base, tt.override)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParams_DoesNotModifyInputs(t *testing.T) {
	base := map[string]any{"filter": map[string]any{"status": "active"}}
	override := map[string]any{"filter": map[string]any{"role": "admin"}, "page": 3}

	_, err := Params(base, override)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"filter": map[string]any{"status": "active"}}, base)
	assert.Equal(t, map[string]any{"filter": map[string]any{"role": "admin"}, "page": 3}, override)
}

func TestInto_Struct(t *testing.T) {
	type options struct {
		Method  string
		Headers map[string]string
	}

	dst := options{Headers: map[string]string{"Accept": "application/json", "X-Env": "dev"}}
	src := options{Method: "POST", Headers: map[string]string{"X-Env": "prod"}}

	require.NoError(t, Into(&dst, src))
	assert.Equal(t, "POST", dst.Method)
	assert.Equal(t, map[string]string{"Accept": "application/json", "X-Env": "prod"}, dst.Headers)
}

func TestClone_Deep(t *testing.T) {
	orig := map[string]any{
		"nested": map[string]any{"a": 1},
		"list":   []any{map[string]any{"b": 2}},
	}
	c := Clone(orig)
	c["nested"].(map[string]any)["a"] = 99
	c["list"].([]any)[0].(map[string]any)["b"] = 99

	assert.Equal(t, 1, orig["nested"].(map[string]any)["a"])
	assert.Equal(t, 2, orig["list"].([]any)[0].(map[string]any)["b"])
	assert.NotNil(t, Clone(nil))
}

func TestClone_NormalizesTypedContainers(t *testing.T) {
	orig := map[string]any{
		"tags":   []string{"a", "b"},
		"matrix": [][]int{{1, 2}},
		"labels": map[string]string{"env": "dev"},
		"codes":  map[int]string{1: "x"},
		"raw":    []byte("abc"),
	}
	c := Clone(orig)

	assert.Equal(t, []any{"a", "b"}, c["tags"])
	assert.Equal(t, []any{[]any{1, 2}}, c["matrix"])
	assert.Equal(t, map[string]any{"env": "dev"}, c["labels"])
	assert.Equal(t, map[int]string{1: "x"}, c["codes"])
	assert.Equal(t, []byte("abc"), c["raw"])

	c["raw"].([]byte)[0] = 'z'
	assert.Equal(t, []byte("abc"), orig["raw"])
}

func TestValue(t *testing.T) {
	assert.Equal(t, map[string]any{"name": "Ada"}, Value(map[string]string{"name": "Ada"}))
	assert.Equal(t, "plain", Value("plain"))
	assert.Nil(t, Value(nil))
}
