package main

import (
	"testing"

	"github.com/benvon/wifi-api/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestReloadCount(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 0},
		{"3", 3},
		{"-1", 0},
		{"many", 0},
	}
	for _, tt := range tests {
		t.Setenv(reloadCountEnv, tt.value)
		assert.Equal(t, tt.want, reloadCount(), tt.value)
	}
}

func TestEnvWith(t *testing.T) {
	t.Parallel()

	env := []string{"PATH=/bin", reloadCountEnv + "=1", "HOME=/root"}
	got := envWith(env, reloadCountEnv, "2")

	assert.Equal(t, []string{"PATH=/bin", "HOME=/root", reloadCountEnv + "=2"}, got)
	assert.Equal(t, reloadCountEnv+"=1", env[1], "input is not modified")
}

func TestWatchPaths(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.ReloadWatchPaths = []string{"./internal", "./cmd"}

	paths := watchPaths(cfg, zap.NewNop())

	assert.Len(t, paths, 3)
	assert.Equal(t, []string{"./internal", "./cmd"}, paths[1:])
}
