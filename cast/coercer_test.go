package cast_test

import (
	"testing"
	"time"

	"github.com/lmmx/bisque"
	"github.com/lmmx/bisque/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoercer_Coerce(t *testing.T) {
	t.Parallel()

	c := cast.NewCoercer()

	t.Run("string trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		got, err := c.Coerce("  Go Proverbs\n\t", bisque.TypeString)
		require.NoError(t, err)
		assert.Equal(t, "Go Proverbs", got)
	})

	t.Run("int yields int64", func(t *testing.T) {
		t.Parallel()

		got, err := c.Coerce(" 1234 ", bisque.TypeInt)
		require.NoError(t, err)
		assert.Equal(t, int64(1234), got)
	})

	t.Run("float yields float64", func(t *testing.T) {
		t.Parallel()

		got, err := c.Coerce("4.5", bisque.TypeFloat)
		require.NoError(t, err)
		assert.Equal(t, 4.5, got)
	})

	t.Run("bool accepts common spellings", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"true", "1", "T"} {
			got, err := c.Coerce(raw, bisque.TypeBool)
			require.NoError(t, err, raw)
			assert.Equal(t, true, got, raw)
		}
	})

	t.Run("time parses common layouts", func(t *testing.T) {
		t.Parallel()

		got, err := c.Coerce("2026-08-31T12:00:00Z", bisque.TypeTime)
		require.NoError(t, err)
		want := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		assert.True(t, got.(time.Time).Equal(want))
	})

	t.Run("failures carry EUNPROCESSABLE", func(t *testing.T) {
		t.Parallel()

		for _, tt := range []struct {
			raw string
			typ bisque.FieldType
		}{
			{"not a number", bisque.TypeInt},
			{"4.5.6", bisque.TypeFloat},
			{"maybe", bisque.TypeBool},
			{"yesterday-ish", bisque.TypeTime},
		} {
			_, err := c.Coerce(tt.raw, tt.typ)
			require.Error(t, err, tt.raw)
			assert.Equal(t, bisque.EUNPROCESSABLE, bisque.ErrorCode(err), tt.raw)
			assert.Contains(t, bisque.ErrorMessage(err), tt.raw)
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := c.Coerce("x", bisque.FieldType("decimal"))
		require.Error(t, err)
		assert.Equal(t, bisque.EINVALID, bisque.ErrorCode(err))
	})
}
