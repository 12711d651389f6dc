package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pubqr/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFromMergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port": "9000", "admin_pin": "1111", "order_reprice": true}`)
	envPath := writeFile(t, dir, ".env", "ADMIN_PIN=\"4321\"\nSTORE_DRIVER=mongo\n# comment\n")

	require.NoError(t, config.LoadFrom(jsonPath, envPath))
	t.Cleanup(func() { _ = config.LoadFrom("", "") })

	assert.Equal(t, "9000", config.AppPort())
	assert.Equal(t, "4321", config.AdminPIN())
	assert.Equal(t, "mongo", config.StoreDriver())
	assert.True(t, config.RepriceOrders())
}

func TestEnvironmentWins(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "TOKEN_TTL=1h\n")
	t.Setenv("TOKEN_TTL", "30m")

	require.NoError(t, config.LoadFrom(filepath.Join(dir, "missing.json"), envPath))
	t.Cleanup(func() { _ = config.LoadFrom("", "") })

	assert.Equal(t, 30*time.Minute, config.TokenTTL())
}

func TestDefaultsAndFallbacks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.LoadFrom(filepath.Join(dir, "none.json"), filepath.Join(dir, "none.env")))

	assert.Equal(t, "1234", config.AdminPIN())
	assert.Equal(t, "memory", config.StoreDriver())
	assert.Equal(t, 7*24*time.Hour, config.TokenTTL())
	assert.False(t, config.StrictTransitions())
	assert.False(t, config.RepriceOrders())
	assert.Equal(t, 200, config.RateLimitPerMinute())

	config.Set("STORE_DRIVER", "cassandra")
	assert.Equal(t, "memory", config.StoreDriver())
	config.Set("CATALOG_CACHE_TTL", "nonsense")
	assert.Equal(t, time.Minute, config.CatalogCacheTTL())
	config.Set("DB_DRIVER", "postgres")
	assert.Contains(t, config.DatabaseDSN(), "dbname=pubqr")
}
