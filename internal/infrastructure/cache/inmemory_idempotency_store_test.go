package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_Claim(t *testing.T) {
	ctx := context.Background()

	t.Run("first claim wins", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		claimed, err := store.Claim(ctx, "payment:callback:order_1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)

		claimed, err = store.Claim(ctx, "payment:callback:order_1", time.Minute)
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("different keys do not contend", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		claimed, err := store.Claim(ctx, "payment:callback:order_1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)

		claimed, err = store.Claim(ctx, "wallet:callback:order_1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("expired claim can be re-claimed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		claimed, err := store.Claim(ctx, "payment:callback:order_1", -time.Second)
		require.NoError(t, err)
		assert.True(t, claimed)

		claimed, err = store.Claim(ctx, "payment:callback:order_1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("released claim can be re-claimed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		claimed, err := store.Claim(ctx, "payment:callback:order_1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)

		require.NoError(t, store.Release(ctx, "payment:callback:order_1"))

		claimed, err = store.Claim(ctx, "payment:callback:order_1", time.Minute)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("cleanup drops expired claims", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.Claim(ctx, "a", -time.Second)
		require.NoError(t, err)
		_, err = store.Claim(ctx, "b", time.Minute)
		require.NoError(t, err)

		store.cleanup()
		assert.Equal(t, 1, store.Size())
	})
}
