package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents one recorded pipeline run
type Entry struct {
	// ID is a time-ordered UUIDv7, also used as the database key
	ID uuid.UUID `json:"id"`

	// Timestamp when the run started
	Timestamp time.Time `json:"timestamp"`

	// Duration of the whole run
	Duration time.Duration `json:"duration"`

	// Project metadata snapshot used for the run
	ProductName string `json:"product_name"`
	Version     string `json:"version"`
	CompanyName string `json:"company_name"`

	// Target is the build platform (win64, win32)
	Target string `json:"target"`

	// Success indicates if the run reached the final state
	Success bool `json:"success"`

	// ErrorKind is the failure classification, empty on success
	ErrorKind string `json:"error_kind,omitempty"`

	// Error is the failure message, empty on success
	Error string `json:"error,omitempty"`

	// Warnings raised during the run
	Warnings []string `json:"warnings,omitempty"`

	// ExitCode of the installer compiler, -1 if it never ran
	ExitCode int `json:"exit_code"`

	// BuildOutputPath is the native build directory
	BuildOutputPath string `json:"build_output_path"`

	// ScriptPath is the rendered installer script
	ScriptPath string `json:"script_path"`

	// ScriptHash is the SHA-256 of the rendered script
	ScriptHash string `json:"script_hash,omitempty"`

	// InstallerOutputDir is the compiler output folder, empty if it was missing
	InstallerOutputDir string `json:"installer_output_dir,omitempty"`

	// Installers lists the files found in the output folder
	Installers []string `json:"installers,omitempty"`
}
