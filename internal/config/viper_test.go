package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(original) })
}

func TestInitializeConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := InitializeConfig()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Import.AutoDetectInvestments)
	assert.False(t, cfg.Import.IgnoreTransfers)
	assert.Equal(t, "debit", cfg.Import.DefaultPaymentMethod)
	assert.Empty(t, cfg.Categories.File)
	assert.Empty(t, cfg.Supabase.URL)
}

func TestInitializeConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `log:
  level: debug
  format: json
import:
  auto_detect_investments: false
  ignore_transfers: true
  default_payment_method: pix
categories:
  file: /etc/extrato/categories.yaml
supabase:
  url: https://example.supabase.co
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	chdir(t, dir)

	cfg, err := InitializeConfig()

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Import.AutoDetectInvestments)
	assert.True(t, cfg.Import.IgnoreTransfers)
	assert.Equal(t, "pix", cfg.Import.DefaultPaymentMethod)
	assert.Equal(t, "/etc/extrato/categories.yaml", cfg.Categories.File)
	assert.Equal(t, "https://example.supabase.co", cfg.Supabase.URL)
}

func TestInitializeConfigEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("EXTRATO_LOG_LEVEL", "warn")
	t.Setenv("EXTRATO_ACCESS_TOKEN", "secret-token")
	t.Setenv("EXTRATO_ANON_KEY", "anon-key")

	cfg, err := InitializeConfig()

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "secret-token", cfg.Supabase.AccessToken)
	assert.Equal(t, "anon-key", cfg.Supabase.AnonKey)
}

func TestInitializeConfigInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"Bad log level", "EXTRATO_LOG_LEVEL", "loud"},
		{"Bad log format", "EXTRATO_LOG_FORMAT", "xml"},
		{"Bad payment method", "EXTRATO_IMPORT_DEFAULT_PAYMENT_METHOD", "check"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := InitializeConfig()
			assert.Error(t, err)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestConfigureLoggingFromConfigInvalidLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "nope"
	cfg.Log.Format = "text"

	logger := ConfigureLoggingFromConfig(cfg)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
