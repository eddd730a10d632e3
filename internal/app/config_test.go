package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/imprenta-pos/imprenta-pos/internal/testing/guard"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "http://127.0.0.1:4000", cfg.SalesAPIURL)
	assert.Equal(t, 15*time.Second, cfg.SalesAPITimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "*/15 * * * *", cfg.LedgerRefreshCron)
	assert.False(t, cfg.IsProduction())
}

func TestCacheEnabledFollowsRedisAddr(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.CacheEnabled())

	cfg.RedisAddr = "127.0.0.1:6379"
	assert.True(t, cfg.CacheEnabled())

	var nilCfg *Config
	assert.False(t, nilCfg.CacheEnabled())
	assert.False(t, nilCfg.IsProduction())
}

func TestInTestModeHonorsEnv(t *testing.T) {
	t.Setenv(testModeEnv, "1")
	RefreshTestMode()
	assert.True(t, InTestMode())

	t.Setenv(testModeEnv, "")
	RefreshTestMode()
	assert.False(t, InTestMode())
}
