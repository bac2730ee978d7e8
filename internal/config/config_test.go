package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv изолирует тест от переменных окружения машины
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH", "DATABASE_URL", "SERVER_PORT", "SERVER_ENV", "SESSION_SECRET",
		"IDP_SECRET", "SMTP_HOST", "STORAGE_TYPE", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFileWithDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  env: production
database:
  url: postgres://localhost/consultbr
auth:
  session_secret: s3cret
identity_provider:
  secret: idp
  login_url: https://id.example.com/login
storage:
  type: local
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://localhost/consultbr", cfg.Database.DSN)
	assert.Equal(t, "connect.sid", cfg.Auth.CookieName)
	assert.Equal(t, "./uploads", cfg.Storage.BasePath)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxSize)
	assert.InDelta(t, 0.1, cfg.Payments.CommissionRate, 1e-9)
	assert.False(t, cfg.EmailEnabled())
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://file/db
auth:
  session_secret: from-file
identity_provider:
  secret: idp
`)
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env/db", cfg.Database.DSN)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.EmailEnabled())
}

func TestMissingFileUsesEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("SESSION_SECRET", "x")
	t.Setenv("IDP_SECRET", "y")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Storage.Type)
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestValidateReportsMissingValues(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 1\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url")
	assert.Contains(t, err.Error(), "auth.session_secret")
}
