package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SettingsPath returns where settings are saved: the per-user file when global
// is set, otherwise a local file in projectDir
func SettingsPath(global bool, projectDir string) (string, error) {
	if global {
		dir := GlobalConfigDir()
		if dir == "" {
			return "", fmt.Errorf("APPDATA is not set, cannot locate global settings")
		}

		return filepath.Join(dir, "config.yml"), nil
	}

	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project directory: %w", err)
	}

	return filepath.Join(abs, LocalConfigName+".yml"), nil
}

// Save writes the persisted settings of cfg to path, replacing any existing file
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	v := viper.New()
	for key, value := range cfg.Settings() {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// Reset removes the settings file at path. A missing file is not an error.
func Reset(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove settings: %w", err)
	}

	return nil
}
