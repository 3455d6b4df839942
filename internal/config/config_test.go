package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://u:p@localhost/chat")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, int32(4), cfg.DBMaxConns)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, 5*time.Minute, cfg.ProfileCacheTTL)
	require.Empty(t, cfg.RedisURL)
}

func TestLoad_MissingDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	_ = os.Unsetenv("DB_URL")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER=sqlite\nDB_URL=/tmp/chat.db\nNOTIFY_TIMEOUT=250ms\n"), 0o600))
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_URL", "")
	t.Setenv("NOTIFY_TIMEOUT", "")
	for _, k := range []string{"DB_DRIVER", "DB_URL", "NOTIFY_TIMEOUT"} {
		_ = os.Unsetenv(k)
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, "/tmp/chat.db", cfg.DBURL)
	require.Equal(t, 250*time.Millisecond, cfg.NotifyTimeout)
}

func TestValidate(t *testing.T) {
	cfg := Config{DBDriver: "mysql", RequestTimeout: time.Second, StorageTimeout: time.Second, NotifyTimeout: time.Second}
	require.Error(t, cfg.Validate())

	cfg.DBDriver = "sqlite"
	require.NoError(t, cfg.Validate())

	cfg.NotifyTimeout = 0
	require.Error(t, cfg.Validate())
}
