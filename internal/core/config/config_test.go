package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Load(writeConfig(t, "app:\n  name: test\n"))

	require.Equal(t, "test", c.App.Name)
	require.Equal(t, 8080, c.App.HTTP.Port)
	require.Equal(t, "info", c.Log.Level)
	require.Equal(t, "http://127.0.0.1:3000", c.Backend.BaseURL)
	require.Equal(t, 720, c.Session.TTLMin)
	require.Equal(t, "admin_session", c.Session.CookieName)
	require.Equal(t, 15, c.Stats.CacheTTLSec)
	require.Equal(t, float64(1), c.Limits.LoginRPS)
}

func TestAssetBaseURLFallsBackToBaseURL(t *testing.T) {
	c := Load(writeConfig(t, "backend:\n  base_url: http://api:3000\n"))
	require.Equal(t, "http://api:3000", c.Backend.AssetBaseURL)

	c = Load(writeConfig(t, "backend:\n  base_url: http://api:3000\n  asset_base_url: http://cdn:9000\n"))
	require.Equal(t, "http://cdn:9000", c.Backend.AssetBaseURL)
}

func TestOverrides(t *testing.T) {
	c := Load(writeConfig(t, `
app:
  env: prod
  http:
    port: 9090
session:
  secret: s3cret
redis:
  addr: 127.0.0.1:6379
limits:
  rps: 50
`))
	require.Equal(t, "prod", c.App.Env)
	require.Equal(t, 9090, c.App.HTTP.Port)
	require.Equal(t, "s3cret", c.Session.Secret)
	require.Equal(t, "127.0.0.1:6379", c.Redis.Addr)
	require.Equal(t, float64(50), c.Limits.RPS)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}
