//go:build unix

package main

import (
	"fmt"
	"os"
	"strconv"
	"syscall"
)

// restartProcess replaces the current process with a fresh copy of the
// executable, keeping arguments and environment
func restartProcess(reloads int) error {
	exe, err := executablePath()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	env := envWith(os.Environ(), reloadCountEnv, strconv.Itoa(reloads))
	return syscall.Exec(exe, os.Args, env)
}
