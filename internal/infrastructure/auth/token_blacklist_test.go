package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown JTI is not blacklisted", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})

	t.Run("added JTI is blacklisted until the TTL passes", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("expired entry is treated as not blacklisted", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", -time.Second))

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})
}
