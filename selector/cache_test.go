package selector_test

import (
	"sync"
	"testing"

	"github.com/lmmx/bisque/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns the same compiled selector for the same string", func(t *testing.T) {
		t.Parallel()

		c := selector.NewCache()
		s1, err := c.Get("div.item > a[href]")
		require.NoError(t, err)
		s2, err := c.Get("div.item > a[href]")
		require.NoError(t, err)
		assert.Same(t, s1, s2)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("propagates compile errors without caching them", func(t *testing.T) {
		t.Parallel()

		c := selector.NewCache()
		_, err := c.Get("div >")
		require.Error(t, err)
		assert.Equal(t, 0, c.Len())

		var serr *selector.SyntaxError
		assert.ErrorAs(t, err, &serr)
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		c := selector.NewCache()
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := c.Get("ul > li:nth-child(odd)")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, c.Len())
	})
}
