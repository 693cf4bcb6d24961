package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseRegistry(t *testing.T) {
	short := func(key string, _ int, _ map[string]int) error {
		if len(key) > 8 {
			return fmt.Errorf("'%s' is too long", key)
		}
		return nil
	}
	r := NewBaseRegistry[string, int]("kind", NotEmptyKeyValidator[int]("kind"), NoDuplicateValidator[string, int]("kind"), short)

	require.NoError(t, r.Register("store", 1))
	require.NoError(t, r.Register("index", 2))

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"empty key", "", "kind registry: kind cannot be empty"},
		{"duplicate", "store", "kind registry: kind 'store' is already registered"},
		{"custom validator", "destroyall", "kind registry: 'destroyall' is too long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, r.Register(tt.key, 0), tt.expected)
		})
	}

	value, ok := r.Get("index")
	require.True(t, ok)
	assert.Equal(t, 2, value)
	assert.True(t, r.Has("store"))
	assert.False(t, r.Has("show"))
	assert.Equal(t, []string{"store", "index"}, r.List())
}
