package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSingle tests the found and not-found shapes of Single.
func TestSingle(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s := NewSingle("hello")
		assert.True(t, s.Found())

		v, ok := s.Value()
		assert.True(t, ok)
		assert.Equal(t, "hello", v)

		v, err := s.OrErr()
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	})

	t.Run("not_found", func(t *testing.T) {
		var s Single[string]
		assert.False(t, s.Found())

		v, ok := s.Value()
		assert.False(t, ok)
		assert.Zero(t, v)

		_, err := s.OrErr()
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
