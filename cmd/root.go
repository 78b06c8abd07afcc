package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/Norgate-AV/issbuild/internal/config"
	"github.com/Norgate-AV/issbuild/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "issbuild [project]",
	Short: "Unity installer builder",
	Long: `Build a Unity player for Windows and package it into an installer
with the Inno Setup command-line compiler.`,
	RunE:         runBuild,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogging(verbose)
	},
}

// exitError carries the process exit code for a failed command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitCode returns the process exit code for an error returned by a command
func exitCode(err error) int {
	if err == nil {
		return codes.ExitSuccess
	}

	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}

	return codes.ExitFailure
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.Version = version.String()
	addBuildFlags(rootCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(openCmd)
}

// addBuildFlags registers the flags that override persisted settings
func addBuildFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("compiler", "", "Path to the Inno Setup compiler (ISCC.exe)")
	flags.String("template", "", "Path to the installer script template (BuildScriptTemplate.iss)")
	flags.String("icon", "", "Custom setup icon, enables the icon option")
	flags.String("eula", "", "EULA file shown by the installer, enables the EULA option")
	flags.String("unity", "", "Path to the Unity editor executable")
	flags.StringP("target", "t", "", "Target platform (win64, win32)")
	flags.Duration("timeout", config.DefaultTimeout, "Maximum time the installer compiler may run (0 for no limit)")
	flags.Bool("unique", false, "Append a timestamp to the build directory")
	flags.BoolP("silent", "s", false, "Suppress console output from Unity and the compiler")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.Bool("no-reveal", false, "Do not open the installer output folder")
	flags.Bool("no-history", false, "Do not record the run in the build history")
	flags.String("product-name", "", "Override the product name from the project settings")
	flags.String("company-name", "", "Override the company name from the project settings")
	flags.String("product-version", "", "Override the version from the project settings")
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
