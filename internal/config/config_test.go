package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyquest/progression/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Endpoint)
	assert.Equal(t, "v1", cfg.Profile.Namespace)
	assert.Equal(t, "local", cfg.Profile.Default)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ConnMaxIdleTime)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
redis:
  endpoint: "10.0.0.5:6380"
  pool_size: 8
profile:
  default: "kiosk"
content:
  catalogue_path: "content/codex.yaml"
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5:6380", cfg.Redis.Endpoint)
	assert.Equal(t, 8, cfg.Redis.PoolSize)
	assert.Equal(t, "kiosk", cfg.Profile.Default)
	assert.Equal(t, "v1", cfg.Profile.Namespace, "unset fields keep defaults")
	assert.Equal(t, "content/codex.yaml", cfg.Content.CataloguePath)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("redis: ["), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}
