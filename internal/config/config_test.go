package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	ml := cfg.GetML()
	assert.Equal(t, "none", ml.Provider)
	assert.False(t, ml.Enabled)
	assert.Equal(t, 5*time.Second, ml.Timeout)

	assert.Equal(t, "http", cfg.GetString("server.frontend_type"))
	assert.Equal(t, "0.0.0.0:8440", cfg.GetString("server.listen_address"))
	assert.Equal(t, []string{"*"}, cfg.GetStringSlice("server.allowed_origins"))

	assert.True(t, cfg.GetBool("cache.enabled"))
	assert.Equal(t, "memory", cfg.GetString("cache.type"))
	ttl, err := cfg.GetDuration("cache.ttl")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	assert.True(t, cfg.GetBool("reputation.enabled"))
	assert.Empty(t, cfg.GetStringSlice("reputation.blocked_domains"))

	assert.Equal(t, "info", cfg.GetString("logging.level"))
	assert.Equal(t, "json", cfg.GetString("logging.format"))
}

func TestGetContextDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	cc := cfg.GetContext()
	assert.Equal(t, 10*time.Minute, cc.ActiveWindow)
	assert.Equal(t, 5*time.Minute, cc.OTPWindow)
	assert.Equal(t, 3, cc.BurstThreshold)
}

func TestGetContextFallsBackOnBadDuration(t *testing.T) {
	v := NewEmptyViper()
	v.Set("context.active_window", "not-a-duration")
	cfg := NewFromViper(v)

	cc := cfg.GetContext()
	assert.Equal(t, 10*time.Minute, cc.ActiveWindow)
}

func TestGetMLOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("ml.provider", "gemini")
	v.Set("ml.enabled", true)
	v.Set("ml.timeout", "2s")
	cfg := NewFromViper(v)

	ml := cfg.GetML()
	assert.Equal(t, "gemini", ml.Provider)
	assert.True(t, ml.Enabled)
	assert.Equal(t, 2*time.Second, ml.Timeout)
}

func TestGetProviderSections(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	bedrock := cfg.GetBedrock()
	assert.Equal(t, "ap-south-1", bedrock.Region)
	assert.Equal(t, "anthropic.claude-v2", bedrock.ModelID)
	assert.Equal(t, 500, bedrock.MaxTokens)
	assert.InDelta(t, 0.1, bedrock.Temperature, 1e-6)
	assert.Equal(t, 4096, bedrock.MaxBodySize)

	gemini := cfg.GetGemini()
	assert.Equal(t, "gemini-pro", gemini.ModelName)
	assert.Empty(t, gemini.APIKey)

	openai := cfg.GetOpenAI()
	assert.Equal(t, "gpt-4o-mini", openai.ModelName)
	assert.Empty(t, openai.APIKey)
}

func TestGetDurationRejectsGarbage(t *testing.T) {
	v := NewEmptyViper()
	v.Set("cache.ttl", "soon")
	cfg := NewFromViper(v)

	_, err := cfg.GetDuration("cache.ttl")
	assert.Error(t, err)
}
