package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benvon/wifi-api/internal/config"
	"go.uber.org/zap"
)

// reloadCountEnv carries the number of reloads across re-executions
const reloadCountEnv = "WIFI_API_RELOAD_COUNT"

func reloadCount() int {
	n, err := strconv.Atoi(os.Getenv(reloadCountEnv))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// watchPaths is the running executable plus any configured paths
func watchPaths(cfg *config.Config, log *zap.Logger) []string {
	var paths []string
	if exe, err := executablePath(); err != nil {
		log.Warn("reload_cannot_resolve_executable", zap.Error(err))
	} else {
		paths = append(paths, exe)
	}
	return append(paths, cfg.ReloadWatchPaths...)
}

func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

// envWith returns env with key set to value, replacing any previous entry
func envWith(env []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	return append(out, prefix+value)
}
