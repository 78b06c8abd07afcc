package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/Norgate-AV/issbuild/internal/utils"
)

// ValidationError is a single configuration problem found before a build
type ValidationError struct {
	Kind    codes.ErrorKind
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationResult holds every problem found, in check order
type ValidationResult struct {
	Errors []ValidationError
}

// Valid reports whether no problems were found
func (r ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Kinds returns the error kinds in check order
func (r ValidationResult) Kinds() []codes.ErrorKind {
	kinds := make([]codes.ErrorKind, 0, len(r.Errors))
	for _, e := range r.Errors {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

// Has reports whether the result contains the given kind
func (r ValidationResult) Has(kind codes.ErrorKind) bool {
	for _, e := range r.Errors {
		if e.Kind == kind {
			return true
		}
	}

	return false
}

// Err joins all problems into one error, or returns nil when valid
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}

	errs := make([]error, 0, len(r.Errors))
	for _, e := range r.Errors {
		errs = append(errs, e)
	}

	return errors.Join(errs...)
}

// Validate runs every pre-build check without stopping at the first failure
func (c *Config) Validate() ValidationResult {
	var result ValidationResult

	if !utils.IsValidFile(c.CompilerPath, CompilerFilename) {
		result.Errors = append(result.Errors, ValidationError{
			Kind:    codes.MissingCompiler,
			Message: "please verify the path to " + CompilerFilename,
		})
	}

	if !utils.IsValidFile(c.TemplatePath, TemplateFilename) {
		result.Errors = append(result.Errors, ValidationError{
			Kind:    codes.MissingTemplate,
			Message: "please verify the path to " + TemplateFilename,
		})
	}

	if c.UseSetupIcon && c.SetupIconPath == "" {
		result.Errors = append(result.Errors, ValidationError{
			Kind:    codes.MissingIconPath,
			Message: "custom setup icon is enabled, but no icon path is set",
		})
	}

	if c.IncludeEULA && c.EULAPath == "" {
		result.Errors = append(result.Errors, ValidationError{
			Kind:    codes.MissingLicensePath,
			Message: "EULA file is enabled, but no EULA file path is set",
		})
	}

	return result
}

// Warnings returns non-fatal configuration issues
func (c *Config) Warnings() []string {
	var warnings []string

	if c.UseSetupIcon && c.SetupIconPath != "" && !strings.EqualFold(filepath.Ext(c.SetupIconPath), ".ico") {
		warnings = append(warnings, "setup icon is not an .ico file: "+c.SetupIconPath)
	}

	return warnings
}
