package config

import (
	"os"
	"path/filepath"
)

// LocalConfigName is the base name of a project-local settings file
const LocalConfigName = ".issbuild"

var configExtensions = []string{"yml", "yaml", "json", "toml"}

// FindLocalConfig finds local config file by walking up directories
func FindLocalConfig(dir string) string {
	for {
		for _, ext := range configExtensions {
			path := filepath.Join(dir, LocalConfigName+"."+ext)

			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

// GlobalConfigDir returns the per-user settings directory, or "" when APPDATA is not set
func GlobalConfigDir() string {
	appdata := os.Getenv("APPDATA")
	if appdata == "" {
		return ""
	}

	return filepath.Join(appdata, "issbuild")
}

// FindGlobalConfig returns the first existing per-user settings file
func FindGlobalConfig() string {
	dir := GlobalConfigDir()
	if dir == "" {
		return ""
	}

	for _, ext := range configExtensions {
		path := filepath.Join(dir, "config."+ext)

		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
