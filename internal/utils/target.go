package utils

import "strings"

// Target describes a Unity standalone build platform
type Target struct {
	// Canonical name used in configuration (win64, win32)
	Name string

	// Value passed to the editor's -buildTarget switch
	BuildTarget string

	// Editor switch that builds a player to a given executable path
	PlayerSwitch string
}

var (
	Win64 = Target{Name: "win64", BuildTarget: "Win64", PlayerSwitch: "-buildWindows64Player"}
	Win32 = Target{Name: "win32", BuildTarget: "Win", PlayerSwitch: "-buildWindowsPlayer"}
)

var targetAliases = map[string]Target{
	"win64":     Win64,
	"x64":       Win64,
	"windows64": Win64,
	"win32":     Win32,
	"x86":       Win32,
	"windows":   Win32,
}

// ParseTarget parses a target platform name, case-insensitive
func ParseTarget(t string) (Target, bool) {
	target, ok := targetAliases[strings.ToLower(strings.TrimSpace(t))]
	return target, ok
}
