package mcputils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for CoerceBindArguments:
// - Values already of the right type bind unchanged
// - JSON arrays, booleans and numbers sent as strings are converted
// - Comma-separated strings fall back to slices
// - Null, empty and missing values leave zero values
// - JSON objects sent as strings decode into maps
// - Unconvertible values are errors

// mockArgumentGetter implements ArgumentGetter for testing
type mockArgumentGetter struct {
	args map[string]interface{}
}

func (m *mockArgumentGetter) GetArguments() map[string]interface{} {
	return m.args
}

// searchArgs mirrors the arguments of a class search tool.
type searchArgs struct {
	Keyword string   `json:"keyword"`
	Nested  bool     `json:"nested"`
	Limit   int      `json:"limit,omitempty"`
	Paths   []string `json:"paths,omitempty"`
}

func bind(t *testing.T, args map[string]interface{}) searchArgs {
	t.Helper()
	var result searchArgs
	require.NoError(t, CoerceBindArguments(&mockArgumentGetter{args: args}, &result))
	return result
}

func TestCoerceBindArguments(t *testing.T) {
	t.Parallel()

	t.Run("proper types", func(t *testing.T) {
		result := bind(t, map[string]interface{}{
			"keyword": "Animal",
			"nested":  true,
			"limit":   25.0,
			"paths":   []interface{}{"zoo", "people.py"},
		})
		assert.Equal(t, searchArgs{Keyword: "Animal", Nested: true, Limit: 25, Paths: []string{"zoo", "people.py"}}, result)
	})

	t.Run("everything as strings", func(t *testing.T) {
		result := bind(t, map[string]interface{}{
			"keyword": "Animal",
			"nested":  "true",
			"limit":   "10",
			"paths":   `["zoo/birds", "lib"]`,
		})
		assert.Equal(t, searchArgs{Keyword: "Animal", Nested: true, Limit: 10, Paths: []string{"zoo/birds", "lib"}}, result)
	})

	t.Run("false and empty array", func(t *testing.T) {
		result := bind(t, map[string]interface{}{
			"keyword": "Animal",
			"nested":  "false",
			"paths":   "[]",
		})
		assert.False(t, result.Nested)
		assert.Empty(t, result.Paths)
	})

	t.Run("comma-separated fallback", func(t *testing.T) {
		result := bind(t, map[string]interface{}{"paths": "zoo,lib"})
		assert.Equal(t, []string{"zoo", "lib"}, result.Paths)
	})

	t.Run("null and missing", func(t *testing.T) {
		result := bind(t, map[string]interface{}{
			"keyword": "Animal",
			"limit":   nil,
			"paths":   "",
		})
		assert.Equal(t, "Animal", result.Keyword)
		assert.Equal(t, 0, result.Limit)
		assert.Empty(t, result.Paths)
		assert.False(t, result.Nested)
	})
}

func TestCoerceBindArguments_JSONObject(t *testing.T) {
	t.Parallel()

	type filterArgs struct {
		Filter map[string]interface{} `json:"filter"`
	}

	var result filterArgs
	err := CoerceBindArguments(&mockArgumentGetter{args: map[string]interface{}{
		"filter": `{"public": true, "depth": 2}`,
	}}, &result)
	require.NoError(t, err)

	assert.Equal(t, true, result.Filter["public"])
	assert.Equal(t, float64(2), result.Filter["depth"]) // JSON numbers decode as float64
}

func TestCoerceBindArguments_Invalid(t *testing.T) {
	t.Parallel()

	var result searchArgs
	err := CoerceBindArguments(&mockArgumentGetter{args: map[string]interface{}{
		"limit": "many",
	}}, &result)
	assert.Error(t, err)
}
