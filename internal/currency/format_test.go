package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Run("known code", func(t *testing.T) {
		got, err := Format(12.5, "USD", "en-US")
		require.NoError(t, err)
		assert.Contains(t, got, "12.50")
		assert.Contains(t, got, "$")
	})

	t.Run("code is case insensitive", func(t *testing.T) {
		upper, err := Format(1, "EUR", "en")
		require.NoError(t, err)
		lower, err := Format(1, "eur", "en")
		require.NoError(t, err)
		assert.Equal(t, upper, lower)
	})

	t.Run("unknown code fails", func(t *testing.T) {
		_, err := Format(1, "NOPE", "en")
		require.Error(t, err)
		assert.True(t, IsUnknownCurrency(err))
	})

	t.Run("empty code fails", func(t *testing.T) {
		_, err := Format(1, "", "en")
		require.Error(t, err)
		assert.True(t, IsUnknownCurrency(err))
	})

	t.Run("bad locale falls back to english", func(t *testing.T) {
		got, err := Format(12.5, "USD", "not a locale")
		require.NoError(t, err)
		assert.Contains(t, got, "12.50")
	})
}
