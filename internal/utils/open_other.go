//go:build !windows

package utils

import (
	"os/exec"
	"runtime"
)

// OpenFolder opens a directory in the desktop file browser
func OpenFolder(path string) error {
	if runtime.GOOS == "darwin" {
		return exec.Command("open", path).Run()
	}

	return exec.Command("xdg-open", path).Run()
}
