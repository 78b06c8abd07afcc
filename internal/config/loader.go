package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flag names to settings keys
var flagKeys = map[string]string{
	"compiler":        KeyCompilerPath,
	"template":        KeyTemplatePath,
	"icon":            KeySetupIconPath,
	"eula":            KeyEULAPath,
	"unity":           KeyUnityPath,
	"target":          KeyTarget,
	"timeout":         KeyTimeout,
	"unique":          KeyUnique,
	"silent":          KeySilent,
	"verbose":         KeyVerbose,
	"no-reveal":       KeyNoReveal,
	"no-history":      KeyNoHistory,
	"product-name":    KeyProductName,
	"company-name":    KeyCompanyName,
	"product-version": KeyVersion,
}

// Loader handles configuration loading from various sources
type Loader struct {
	files []string

	// baseDirs maps path settings to the directory of the file that set them
	baseDirs map[string]string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{baseDirs: make(map[string]string)}
}

// LoadForBuild loads configuration specifically for build operations.
// Precedence, lowest first: defaults, global settings, local settings, flags.
func (l *Loader) LoadForBuild(cmd *cobra.Command, args []string) (*Config, error) {
	l.setupViperDefaults()
	l.loadGlobalConfig()
	l.loadLocalConfig(args)
	l.bindCommandFlags(cmd)

	if len(args) > 0 {
		viper.Set(KeyProjectPath, args[0])
		delete(l.baseDirs, KeyProjectPath)
	}

	return load(l.baseDirs)
}

// Files returns the settings files that were read, in load order
func (l *Loader) Files() []string {
	return l.files
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault(KeyCompilerPath, DefaultCompilerPath)
	viper.SetDefault(KeyUnityPath, DefaultUnityPath)
	viper.SetDefault(KeyProjectPath, DefaultProjectPath)
	viper.SetDefault(KeyTarget, DefaultTarget)
	viper.SetDefault(KeyTimeout, DefaultTimeout)
	viper.SetDefault(KeySilent, DefaultSilent)
	viper.SetDefault(KeyVerbose, DefaultVerbose)
}

// loadGlobalConfig loads global configuration from APPDATA
func (l *Loader) loadGlobalConfig() {
	globalPath := FindGlobalConfig()
	if globalPath == "" {
		return
	}

	viper.SetConfigFile(globalPath)
	if err := viper.ReadInConfig(); err != nil {
		slog.Warn("failed to read global config", "file", globalPath, "error", err)
		return
	}

	l.files = append(l.files, globalPath)
	l.recordBaseDirs(globalPath)
}

// loadLocalConfig merges local configuration found from the project directory upwards
func (l *Loader) loadLocalConfig(args []string) {
	dir, err := os.Getwd()
	if len(args) > 0 {
		dir, err = filepath.Abs(args[0])
	}

	if err != nil {
		return // silently ignore, config.Load() will handle validation
	}

	localPath := FindLocalConfig(dir)
	if localPath == "" {
		return
	}

	viper.SetConfigFile(localPath)
	if err := viper.MergeInConfig(); err != nil {
		slog.Warn("failed to read local config", "file", localPath, "error", err)
		return
	}

	l.files = append(l.files, localPath)
	l.recordBaseDirs(localPath)
}

// recordBaseDirs notes the directory of path for every path setting the file
// sets. A later file replaces the base recorded by an earlier one.
func (l *Loader) recordBaseDirs(path string) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return
	}

	for _, key := range pathKeys {
		if v.IsSet(key) {
			l.baseDirs[key] = dir
		}
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}

		_ = viper.BindPFlag(key, flag)

		// Paths given on the command line are relative to the working directory
		if flag.Changed {
			delete(l.baseDirs, key)
		}
	}

	// Supplying a path on the command line switches the matching option on
	if flag := cmd.Flags().Lookup("icon"); flag != nil && flag.Changed {
		viper.Set(KeyUseSetupIcon, true)
	}

	if flag := cmd.Flags().Lookup("eula"); flag != nil && flag.Changed {
		viper.Set(KeyIncludeEULA, true)
	}
}
