//go:build windows

package utils

import (
	"golang.org/x/sys/windows"
)

// OpenFolder opens a directory in Windows Explorer
func OpenFolder(path string) error {
	return windows.ShellExecute(0, windows.StringToUTF16Ptr("open"), windows.StringToUTF16Ptr(path), nil, nil, windows.SW_SHOWNORMAL)
}
