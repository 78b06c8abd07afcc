package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Norgate-AV/issbuild/internal/utils"
	"github.com/spf13/viper"
)

// Default configuration values
const (
	DefaultCompilerPath = "C:/Program Files (x86)/Inno Setup 6/ISCC.exe"
	DefaultUnityPath    = "C:/Program Files/Unity/Editor/Unity.exe"
	DefaultProjectPath  = "."
	DefaultTarget       = "win64"
	DefaultTimeout      = time.Duration(0)
	MinTimeout          = time.Second
	DefaultSilent       = false
	DefaultVerbose      = false
)

// Expected file names for the compiler and the script template
const (
	CompilerFilename = "ISCC.exe"
	TemplateFilename = "BuildScriptTemplate.iss"
)

// Settings keys, shared by viper and the persisted settings file
const (
	KeyCompilerPath  = "compiler_path"
	KeyTemplatePath  = "template_path"
	KeyUseSetupIcon  = "use_setup_icon"
	KeySetupIconPath = "setup_icon_path"
	KeyIncludeEULA   = "include_eula"
	KeyEULAPath      = "eula_path"
	KeyUnityPath     = "unity_path"
	KeyProjectPath   = "project_path"
	KeyTarget        = "target"
	KeyTimeout       = "timeout"
	KeyUnique        = "unique"
	KeySilent        = "silent"
	KeyVerbose       = "verbose"
	KeyNoReveal      = "no_reveal"
	KeyNoHistory     = "no_history"
	KeyProductName   = "product_name"
	KeyCompanyName   = "company_name"
	KeyVersion       = "version"
)

// Holds the configuration options for issbuild
type Config struct {
	// Path to the Inno Setup command-line compiler (ISCC.exe)
	CompilerPath string

	// Path to the installer script template (BuildScriptTemplate.iss)
	TemplatePath string

	// Custom installer icon
	UseSetupIcon  bool
	SetupIconPath string

	// End user license agreement shown by the installer
	IncludeEULA bool
	EULAPath    string

	// Path to the Unity editor executable
	UnityPath string

	// Unity project directory
	ProjectPath string

	// Build platform (win64, win32)
	Target string

	// Maximum time the installer compiler may run, zero means no limit
	Timeout time.Duration

	// Append a timestamp to the build output directory
	Unique bool

	// Suppress console output from the Unity editor and the compiler
	Silent bool

	// Enable verbose output
	Verbose bool

	// Do not open the installer output folder after a build
	NoReveal bool

	// Do not record the run in the build history
	NoHistory bool

	// Project metadata overrides, read from the Unity project when empty
	ProductName string
	CompanyName string
	Version     string
}

// pathKeys are the settings that hold file system paths
var pathKeys = []string{
	KeyCompilerPath,
	KeyTemplatePath,
	KeySetupIconPath,
	KeyEULAPath,
	KeyUnityPath,
	KeyProjectPath,
}

// Load reads the configuration from viper. Relative paths are resolved
// against the current working directory.
func Load() (*Config, error) {
	return load(nil)
}

// load reads the configuration from viper, resolving each relative path
// against baseDirs[key] when set
func load(baseDirs map[string]string) (*Config, error) {
	cfg := &Config{
		CompilerPath:  viper.GetString(KeyCompilerPath),
		TemplatePath:  viper.GetString(KeyTemplatePath),
		UseSetupIcon:  viper.GetBool(KeyUseSetupIcon),
		SetupIconPath: viper.GetString(KeySetupIconPath),
		IncludeEULA:   viper.GetBool(KeyIncludeEULA),
		EULAPath:      viper.GetString(KeyEULAPath),
		UnityPath:     viper.GetString(KeyUnityPath),
		ProjectPath:   viper.GetString(KeyProjectPath),
		Target:        viper.GetString(KeyTarget),
		Timeout:       viper.GetDuration(KeyTimeout),
		Unique:        viper.GetBool(KeyUnique),
		Silent:        viper.GetBool(KeySilent),
		Verbose:       viper.GetBool(KeyVerbose),
		NoReveal:      viper.GetBool(KeyNoReveal),
		NoHistory:     viper.GetBool(KeyNoHistory),
		ProductName:   viper.GetString(KeyProductName),
		CompanyName:   viper.GetString(KeyCompanyName),
		Version:       viper.GetString(KeyVersion),
	}

	// Apply defaults if not set
	if cfg.ProjectPath == "" {
		cfg.ProjectPath = DefaultProjectPath
	}

	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}

	if err := cfg.ResolveFrom(baseDirs); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve makes every configured path absolute against the working directory
// and checks the build target. Empty paths are left empty so Validate can
// report them.
func (c *Config) Resolve() error {
	return c.ResolveFrom(nil)
}

// ResolveFrom is Resolve with a base directory per settings key. A relative
// path whose key has a base is joined to it, so paths written in a settings
// file are relative to that file.
func (c *Config) ResolveFrom(baseDirs map[string]string) error {
	paths := map[string]*string{
		KeyCompilerPath:  &c.CompilerPath,
		KeyTemplatePath:  &c.TemplatePath,
		KeySetupIconPath: &c.SetupIconPath,
		KeyEULAPath:      &c.EULAPath,
		KeyUnityPath:     &c.UnityPath,
		KeyProjectPath:   &c.ProjectPath,
	}

	for key, p := range paths {
		if *p == "" {
			continue
		}

		if base := baseDirs[key]; base != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}

		abs, err := filepath.Abs(*p)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", *p, err)
		}

		*p = abs
	}

	if _, ok := utils.ParseTarget(c.Target); !ok {
		return fmt.Errorf("invalid target platform: %s", c.Target)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}

	// A bare number in a settings file is read as nanoseconds
	if c.Timeout > 0 && c.Timeout < MinTimeout {
		return fmt.Errorf("invalid timeout: %s is below %s, give a unit such as 300s or 5m", c.Timeout, MinTimeout)
	}

	return nil
}

// ScriptPath returns the rendered script path, next to the template
func (c *Config) ScriptPath() string {
	if c.TemplatePath == "" {
		return ""
	}

	return filepath.Join(filepath.Dir(c.TemplatePath), utils.ScriptFilename)
}

// IconToken returns the value substituted for the setup icon marker
func (c *Config) IconToken() string {
	if c.UseSetupIcon {
		return c.SetupIconPath
	}

	return ""
}

// EULAToken returns the value substituted for the license file marker
func (c *Config) EULAToken() string {
	if c.IncludeEULA {
		return c.EULAPath
	}

	return ""
}

// Settings returns the effective configuration keyed by setting name
func (c *Config) Settings() map[string]any {
	return map[string]any{
		KeyCompilerPath:  c.CompilerPath,
		KeyTemplatePath:  c.TemplatePath,
		KeyUseSetupIcon:  c.UseSetupIcon,
		KeySetupIconPath: c.SetupIconPath,
		KeyIncludeEULA:   c.IncludeEULA,
		KeyEULAPath:      c.EULAPath,
		KeyUnityPath:     c.UnityPath,
		KeyProjectPath:   c.ProjectPath,
		KeyTarget:        c.Target,
		KeyTimeout:       c.Timeout.String(),
		KeyUnique:        c.Unique,
		KeySilent:        c.Silent,
		KeyVerbose:       c.Verbose,
		KeyNoReveal:      c.NoReveal,
		KeyNoHistory:     c.NoHistory,
		KeyProductName:   c.ProductName,
		KeyCompanyName:   c.CompanyName,
		KeyVersion:       c.Version,
	}
}
