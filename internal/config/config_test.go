package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		ConfigPathEnv, "SERVER_HOST", "SERVER_PORT", "SERVER_RELOAD", "RELOAD_INTERVAL",
		"RELOAD_WATCH_PATHS", "SERVER_DEBUG_MODE", "LOG_FORMAT", "FRONTEND_URL",
		"CORS_ALLOW_CREDENTIALS", "CORS_ALLOWED_METHODS", "CORS_ALLOWED_HEADERS",
		"CORS_MAX_AGE", "ENABLE_HSTS", "REQUEST_TIMEOUT", "METRICS_ENABLED",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.True(t, cfg.ServerReload)
	assert.Equal(t, time.Second, cfg.ReloadInterval)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.OTELEnabled)

	policy := cfg.CORSPolicy()
	assert.Equal(t, []string{"http://localhost:5173"}, policy.AllowedOrigins)
	assert.True(t, policy.AllowCredentials)
	assert.Equal(t, []string{"*"}, policy.AllowedMethods)
	assert.Equal(t, []string{"*"}, policy.AllowedHeaders)
	assert.Equal(t, 600, policy.MaxAge)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_RELOAD", "false")
	t.Setenv("FRONTEND_URL", "http://localhost:5173, http://localhost:3000, http://localhost:5173")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "no")
	t.Setenv("CORS_ALLOWED_METHODS", "GET,POST")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("RELOAD_WATCH_PATHS", "/tmp/a,/tmp/b")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.False(t, cfg.ServerReload)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.CORSAllowCredentials)
	assert.Equal(t, []string{"GET", "POST"}, cfg.CORSAllowedMethods)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"/tmp/a", "/tmp/b"}, cfg.ReloadWatchPaths)
}

func TestLoad_InvalidDurationKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("RELOAD_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.ReloadInterval)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port not numeric", map[string]string{"SERVER_PORT": "http"}},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}},
		{"origin without scheme", map[string]string{"FRONTEND_URL": "localhost:5173"}},
		{"origin with path", map[string]string{"FRONTEND_URL": "http://localhost:5173/app"}},
		{"origin with trailing slash", map[string]string{"FRONTEND_URL": "http://localhost:5173/"}},
		{"unknown log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"negative max age", map[string]string{"CORS_MAX_AGE": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "wifi-api.yaml")
	content := `server_port: "8100"
server_reload: false
reload_interval: 250ms
allowed_origins:
  - http://localhost:5173
  - https://planner.example.com
cors_max_age: 120
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8100", cfg.Addr())
	assert.False(t, cfg.ServerReload)
	assert.Equal(t, 250*time.Millisecond, cfg.ReloadInterval)
	assert.Equal(t, []string{"http://localhost:5173", "https://planner.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 120, cfg.CORSMaxAge)
	assert.True(t, cfg.CORSAllowCredentials, "keys absent from the file keep their defaults")
}

func TestLoadFile_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "wifi-api.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_port: \"8100\"\n"), 0o600))
	t.Setenv("SERVER_PORT", "8200")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "8200", cfg.ServerPort)
}

func TestLoadFile_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allowed_origins: [unterminated"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestSplitList(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "https://a.example.com", []string{"https://a.example.com"}},
		{"comma", "https://a.com, https://b.com", []string{"https://a.com", "https://b.com"}},
		{"dedup", "x, x, y", []string{"x", "y"}},
		{"trim", "  a  ,  b  ", []string{"a", "b"}},
		{"only separators", " , ,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SplitList(tt.raw))
		})
	}
}
