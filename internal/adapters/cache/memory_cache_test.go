package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Shubhamprana/Shabari-sub003/internal/core"
)

func testEntry(key string, ttl time.Duration) *core.CacheEntry {
	now := time.Now()
	return &core.CacheEntry{
		Key:             key,
		IsFraud:         true,
		RiskLevel:       "HIGH",
		RiskScore:       72,
		ConfidenceScore: 85,
		Summary:         "Multiple fraud indicators detected",
		LastSeen:        now,
		ExpiresAt:       now.Add(ttl),
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Minute)
	defer c.Stop()
	ctx := context.Background()

	entry := testEntry("digest-1", time.Minute)
	require.NoError(t, c.Set(ctx, entry))

	got, err := c.Get(ctx, "digest-1")
	require.NoError(t, err)
	assert.Equal(t, entry.Key, got.Key)
	assert.True(t, got.IsFraud)
	assert.Equal(t, "HIGH", got.RiskLevel)
	assert.Equal(t, 72, got.RiskScore)
	assert.Equal(t, 85, got.ConfidenceScore)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Minute)
	defer c.Stop()

	_, err := c.Get(context.Background(), "no-such-digest")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, testEntry("digest-2", -time.Second)))

	_, err := c.Get(ctx, "digest-2")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Minute)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, testEntry("digest-3", time.Minute)))
	require.NoError(t, c.Delete(ctx, "digest-3"))

	_, err := c.Get(ctx, "digest-3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, testEntry("live", time.Minute)))
	require.NoError(t, c.Set(ctx, testEntry("dead", -time.Second)))
	require.NoError(t, c.Cleanup(ctx))

	_, err := c.Get(ctx, "live")
	assert.NoError(t, err)

	// After cleanup the expired entry is gone entirely, not just expired.
	_, err = c.Get(ctx, "dead")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCacheOverwrite(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Minute)
	defer c.Stop()
	ctx := context.Background()

	first := testEntry("digest-4", time.Minute)
	require.NoError(t, c.Set(ctx, first))

	second := testEntry("digest-4", time.Minute)
	second.IsFraud = false
	second.RiskLevel = "LOW"
	require.NoError(t, c.Set(ctx, second))

	got, err := c.Get(ctx, "digest-4")
	require.NoError(t, err)
	assert.False(t, got.IsFraud)
	assert.Equal(t, "LOW", got.RiskLevel)
}
