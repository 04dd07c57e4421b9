package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("SEATMAP_MAX_SEATS_PER_ROW", "")
	t.Setenv("SEATMAP_MAX_UPLOAD_BYTES", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "")

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30, cfg.MaxSeatsPerRow)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.False(t, cfg.DBEnabled())
	assert.Empty(t, cfg.AMQPURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("SEATMAP_LOCALE", "en")
	t.Setenv("SEATMAP_MAX_SEATS_PER_ROW", "12")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "seatmap")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://broker/")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 12, cfg.MaxSeatsPerRow)
	assert.True(t, cfg.DBEnabled())
	assert.Equal(t, "amqp://broker/", cfg.AMQPURL)
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_DOCUMENT_TTL", "bogus")

	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.Equal(t, time.Second, cfg.DocumentTTL)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(Config{Env: "prod", LogLevel: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	_, err = NewLogger(Config{Env: "dev", LogLevel: "loud"})
	assert.Error(t, err)
}
