package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("LOOKUP_CACHE_SIZE", "")
	t.Setenv("SITEURL", "https://jamjournal.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "5432", cfg.DbPort)
	assert.Equal(t, 10, cfg.DbMaxConn)
	assert.Equal(t, 4096, cfg.LookupCacheSize)
	assert.Equal(t, "https://jamjournal.com", cfg.SiteURL)
}

func TestLoadConfig_BadNumber(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "many")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_CONNS")
}

func TestValidate(t *testing.T) {
	cfg := &Config{DbHost: "localhost", DbUser: "blog", DbName: "blog", DbMaxConn: 5}

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, 4096, cfg.LookupCacheSize)
	assert.Equal(t, 1, cfg.EmailWorkers)

	_, err = (&Config{DbMaxConn: 5}).Validate()
	assert.Error(t, err)
}

func TestGetDSNSafe_HidesPassword(t *testing.T) {
	cfg := &Config{DbUser: "blog", DbPass: "secret", DbHost: "db", DbPort: "5432", DbName: "blog", DbSSLMode: "disable", DbMaxConn: 4}

	assert.Contains(t, cfg.GetDSN(), "secret")
	assert.NotContains(t, cfg.GetDSNSafe(), "secret")
	assert.Contains(t, cfg.GetDSN(), "pool_max_conns=4")
}
