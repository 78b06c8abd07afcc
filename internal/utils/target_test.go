package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		input    string
		expected Target
		ok       bool
	}{
		{"win64", Win64, true},
		{"Win64", Win64, true},
		{"x64", Win64, true},
		{" windows64 ", Win64, true},
		{"win32", Win32, true},
		{"x86", Win32, true},
		{"WINDOWS", Win32, true},
		{"", Target{}, false},
		{"linux64", Target{}, false},
		{"osx", Target{}, false},
	}

	for _, test := range tests {
		result, ok := ParseTarget(test.input)
		assert.Equal(t, test.ok, ok, "ParseTarget(%q)", test.input)
		assert.Equal(t, test.expected, result, "ParseTarget(%q)", test.input)
	}
}

func TestTargetSwitches(t *testing.T) {
	assert.Equal(t, "Win64", Win64.BuildTarget)
	assert.Equal(t, "-buildWindows64Player", Win64.PlayerSwitch)
	assert.Equal(t, "Win", Win32.BuildTarget)
	assert.Equal(t, "-buildWindowsPlayer", Win32.PlayerSwitch)
}
