package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for tool arguments:
// - String enforces presence and non-emptiness only when required
// - String rejects values of another type
// - clamp substitutes the default for zero and bounds the result

func TestArguments_String(t *testing.T) {
	t.Parallel()

	t.Run("required string present", func(t *testing.T) {
		result, err := arguments{"keyword": "Animal"}.String("keyword", true)
		require.NoError(t, err)
		assert.Equal(t, "Animal", result)
	})

	t.Run("required string missing", func(t *testing.T) {
		_, err := arguments{}.String("keyword", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "keyword parameter is required")
	})

	t.Run("required string empty", func(t *testing.T) {
		_, err := arguments{"keyword": ""}.String("keyword", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "keyword cannot be empty")
	})

	t.Run("optional string missing", func(t *testing.T) {
		result, err := arguments{}.String("keyword", false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := arguments{"keyword": 42.0}.String("keyword", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "keyword must be a string")
	})
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10, clamp(0, 10, 1, 100))
	assert.Equal(t, 1, clamp(-3, 10, 1, 100))
	assert.Equal(t, 100, clamp(1000, 10, 1, 100))
	assert.Equal(t, 50, clamp(50, 10, 1, 100))
}
