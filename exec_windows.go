//go:build windows

package main

import (
	"os"
	"os/exec"
)

// execProxy runs the proxy as a child, there is no exec on Windows.
func execProxy(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	//nolint: wrapcheck
	return cmd.Run()
}
