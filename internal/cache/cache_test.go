package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache(t *testing.T) {
	c := NewTTLCache[string, int]()

	t.Run("set and get", func(t *testing.T) {
		c.Set("a", 1, time.Minute)
		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := c.Get("missing")
		assert.False(t, ok)
	})

	t.Run("expiry", func(t *testing.T) {
		c.Set("b", 2, 5*time.Millisecond)
		time.Sleep(20 * time.Millisecond)
		_, ok := c.Get("b")
		assert.False(t, ok)
	})

	t.Run("non-positive ttl is not stored", func(t *testing.T) {
		c.Set("c", 3, 0)
		_, ok := c.Get("c")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		c.Set("d", 4, time.Minute)
		c.Delete("d")
		_, ok := c.Get("d")
		assert.False(t, ok)
	})
}
