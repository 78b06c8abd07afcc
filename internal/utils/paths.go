package utils

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// BuildsDirName is the directory, relative to the working directory, holding native builds
	BuildsDirName = "Builds"

	// ScriptFilename is the rendered installer script, written next to the template
	ScriptFilename = "BuildScript.iss"

	// OutputFolderName is the folder the compiler writes installers to, next to the rendered script
	OutputFolderName = "OutputInstaller"

	uniqueSuffixLayout = "20060102-150405"
)

// BuildDir returns Builds/<product>_<version> under workDir
func BuildDir(workDir, product, version string) string {
	return filepath.Join(workDir, BuildsDirName, product+"_"+version)
}

// UniqueBuildDir returns BuildDir with a timestamp suffix
func UniqueBuildDir(workDir, product, version string, now time.Time) string {
	return BuildDir(workDir, product, version) + "_" + now.Format(uniqueSuffixLayout)
}

// OutputDir returns the installer output folder for a rendered script
func OutputDir(scriptPath string) string {
	return filepath.Join(filepath.Dir(scriptPath), OutputFolderName)
}

// ExecutablePath returns the player executable path inside a build directory
func ExecutablePath(buildDir, product string) string {
	return filepath.Join(buildDir, product+".exe")
}

// IsValidFile reports whether path is an existing regular file named expected (case-insensitive)
func IsValidFile(path, expected string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	return strings.EqualFold(filepath.Base(path), expected)
}

// DirExists reports whether path is an existing directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
