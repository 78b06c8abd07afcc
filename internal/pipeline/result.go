package pipeline

import (
	"time"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/Norgate-AV/issbuild/internal/config"
)

// Warning is a non-fatal problem raised during a run
type Warning struct {
	Kind    codes.ErrorKind
	Message string
}

// Result describes one finished pipeline run
type Result struct {
	// Success is true when the run reached Done
	Success bool

	// State is the terminal state, Done or Failed
	State State

	// FailedIn is the state the run failed from, Idle on success
	FailedIn State

	BuildOutputPath     string
	InstallerScriptPath string

	// InstallerOutputDir is set only when the folder exists after compiling
	InstallerOutputDir string

	// ErrorKind classifies the failure, empty on success
	ErrorKind codes.ErrorKind

	// Err carries the failure details, nil on success
	Err error

	// Validation holds every configuration problem when validation failed
	Validation config.ValidationResult

	Warnings []Warning

	// CompilerExitCode is the installer compiler's exit code, -1 if it never ran
	CompilerExitCode int

	Started  time.Time
	Duration time.Duration
}

// HasWarning reports whether a warning of the given kind was raised
func (r Result) HasWarning(kind codes.ErrorKind) bool {
	for _, w := range r.Warnings {
		if w.Kind == kind {
			return true
		}
	}

	return false
}

// ExitCode maps the result to the CLI process exit code
func (r Result) ExitCode() int {
	if r.Success {
		return codes.ExitSuccess
	}

	return r.ErrorKind.ExitCode()
}
