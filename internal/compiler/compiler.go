package compiler

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

type ShellCommand struct {
	Path string
	Args []string
}

// String renders the command the way it would be typed in a console
func (s *ShellCommand) String() string {
	parts := []string{strconv.Quote(s.Path)}
	for _, arg := range s.Args {
		parts = append(parts, strconv.Quote(arg))
	}

	return strings.Join(parts, " ")
}

// GetCompileCommand returns the ISCC invocation for a rendered script.
// The script path is the only argument.
func GetCompileCommand(compilerPath, scriptPath string) (*ShellCommand, error) {
	if compilerPath == "" {
		return nil, fmt.Errorf("compiler path not specified")
	}

	if scriptPath == "" {
		return nil, fmt.Errorf("script path not specified")
	}

	absScript, err := filepath.Abs(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", scriptPath, err)
	}

	return &ShellCommand{
		Path: compilerPath,
		Args: []string{absScript},
	}, nil
}
