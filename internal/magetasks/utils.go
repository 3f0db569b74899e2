package magetasks

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/magefile/mage/sh"
)

// IsCommandNotFound checks if the error indicates the command was not found.
// This handles exec.ErrNotFound and platform-specific string fallbacks.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "executable file not found") ||
		strings.Contains(errStr, "no such file or directory")
}

// run prints a section header and runs cmd with output attached to the terminal.
func run(title, cmd string, args ...string) error {
	PrintH2Header(title)
	if err := sh.RunV(cmd, args...); err != nil {
		PrintError(title + " failed")
		return err
	}
	return nil
}
