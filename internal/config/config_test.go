package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Load tests --

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9446", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.Services.User)
	assert.Equal(t, "http://localhost:8086", cfg.Services.Savings)
	assert.Equal(t, 10*time.Second, cfg.GatewayTimeout)
	assert.True(t, cfg.BaselineCapital.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 3*time.Second, cfg.NotificationWindow)
	assert.Equal(t, 64, cfg.ChartCacheSize)
	assert.Equal(t, 15*time.Minute, cfg.ChartCacheTTL)
	assert.Equal(t, 1, cfg.OperatorWorkers)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.CORSOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("FINANCE_HTTP_PORT", "8000")
	t.Setenv("FINANCE_USER_SERVICE_URL", "http://users.internal:9000")
	t.Setenv("FINANCE_CAPITAL_BASELINE", "2500.50")
	t.Setenv("FINANCE_NOTIFICATION_WINDOW", "5s")
	t.Setenv("FINANCE_CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "http://users.internal:9000", cfg.Services.User)
	assert.True(t, cfg.BaselineCapital.Equal(decimal.RequireFromString("2500.50")))
	assert.Equal(t, 5*time.Second, cfg.NotificationWindow)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoad_YAMLFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finance.yaml")
	content := "log:\n  level: debug\nhttp:\n  port: \"7000\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("FINANCE_CONFIG_FILE", path)
	t.Setenv("FINANCE_HTTP_PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "7001", cfg.Port)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("FINANCE_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidBaseline(t *testing.T) {
	t.Setenv("FINANCE_CAPITAL_BASELINE", "lots")

	_, err := Load()
	assert.ErrorContains(t, err, "capital.baseline")
}

// -- Validate tests --

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Port = "not-a-port"
	cfg.Services.Debt = "localhost:8085"
	cfg.BaselineCapital = decimal.NewFromInt(-1)
	cfg.ChartCacheSize = 0
	cfg.ChartCacheCleanup = "every so often"

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "http.port")
	assert.ErrorContains(t, err, "debt.service.url")
	assert.ErrorContains(t, err, "capital.baseline")
	assert.ErrorContains(t, err, "chart.cache.size")
	assert.ErrorContains(t, err, "chart.cache.cleanup")
}
