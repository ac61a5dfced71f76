package configsenv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, StoreDatabase, cfg.Storage.AssignmentStore)
	assert.Equal(t, KVMemory, cfg.Storage.KVBackend)
	assert.Equal(t, uint(1), cfg.Auth.AdminUserID)
	assert.Equal(t, 720*time.Hour, cfg.Card.ShareDefaultTTL)
	assert.Equal(t, cfg.App.BaseURL, cfg.Card.ShareLinkOrigin)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	content := "VCARD_APP_PORT=8088\nVCARD_APP_BASE_URL=https://cards.example.org/\nVCARD_KV_BACKEND=file\nVCARD_ADMIN_USER_ID=42\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"VCARD_APP_PORT", "VCARD_APP_BASE_URL", "VCARD_KV_BACKEND", "VCARD_ADMIN_USER_ID"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.App.Port)
	assert.Equal(t, "https://cards.example.org", cfg.App.BaseURL)
	assert.Equal(t, KVFile, cfg.Storage.KVBackend)
	assert.Equal(t, uint(42), cfg.Auth.AdminUserID)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("VCARD_APP_ENV", "production")
	t.Setenv("VCARD_JWT_SECRET", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable TimeZone=UTC", pg.ConnectionString())

	lite := DatabaseConfig{Driver: "sqlite"}
	assert.Equal(t, "vcard.db", lite.ConnectionString())

	explicit := DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"}
	assert.Equal(t, "file::memory:", explicit.ConnectionString())
}
