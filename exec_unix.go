//go:build !windows

package main

import (
	"os"
	"os/exec"
	"syscall"
)

// execProxy replaces the current process so signals reach the proxy
// directly.
func execProxy(argv []string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return cliError{err, "Could not find the proxy interpreter."}
	}
	//nolint: wrapcheck
	return syscall.Exec(path, argv, os.Environ())
}
