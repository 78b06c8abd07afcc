package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/Norgate-AV/issbuild/internal/compiler"
	"github.com/Norgate-AV/issbuild/internal/config"
	"github.com/Norgate-AV/issbuild/internal/history"
	"github.com/Norgate-AV/issbuild/internal/pipeline"
	"github.com/Norgate-AV/issbuild/internal/unity"
	"github.com/Norgate-AV/issbuild/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [project]",
	Short: "Build the player and the installer",
	Long: `Build the Unity player into Builds/<Product>_<Version>, render the
installer script from its template and compile it with Inno Setup.`,
	RunE:         runBuild,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

var newNativeBuilder = func(cfg *config.Config, logger *slog.Logger) pipeline.NativeBuilder {
	return unity.NewBuilder(cfg.UnityPath, cfg.ProjectPath, cfg.Silent, logger)
}

var newCompiler = func(cfg *config.Config, logger *slog.Logger) pipeline.Compiler {
	return compiler.NewInvoker(cfg.Silent, logger)
}

var revealFolder = utils.OpenFolder

func runBuild(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader()

	cfg, err := loader.LoadForBuild(cmd, args)
	if err != nil {
		return withExitCode(codes.ExitConfigError, fmt.Errorf("failed to load configuration: %w", err))
	}

	if cfg.Verbose {
		setupLogging(true)
	}

	logger := slog.Default()
	for _, file := range loader.Files() {
		logger.Debug("using config file", "file", file)
	}

	meta, err := loadProject(cfg)
	if err != nil {
		return withExitCode(codes.ExitConfigError, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	opts := pipeline.Options{
		WorkDir: cfg.ProjectPath,
		Logger:  logger,
	}

	if !cfg.NoReveal {
		opts.Revealer = pipeline.RevealFunc(revealFolder)
	}

	p := pipeline.New(newNativeBuilder(cfg, logger), newCompiler(cfg, logger), opts)

	result, err := p.Run(ctx, cfg, meta)
	if err != nil {
		return err
	}

	if !cfg.NoHistory {
		if err := recordHistory(cfg, meta, result); err != nil {
			logger.Warn("failed to record build history", "error", err)
		}
	}

	printSummary(cmd.OutOrStdout(), result)

	if !result.Success {
		return withExitCode(result.ExitCode(), fmt.Errorf("build failed (%s): %w", result.ErrorKind, result.Err))
	}

	return nil
}

// loadProject reads the project metadata and applies the configured overrides
func loadProject(cfg *config.Config) (unity.ProjectMetadata, error) {
	meta, err := unity.LoadMetadata(cfg.ProjectPath)
	if err != nil {
		return meta, fmt.Errorf("failed to read Unity project: %w", err)
	}

	meta = meta.WithOverrides(cfg.ProductName, cfg.CompanyName, cfg.Version)
	if err := meta.Validate(); err != nil {
		return meta, fmt.Errorf("invalid project settings: %w", err)
	}

	return meta, nil
}

func historyDir(projectPath string) string {
	return filepath.Join(projectPath, history.DefaultDir)
}

func recordHistory(cfg *config.Config, meta unity.ProjectMetadata, result pipeline.Result) error {
	store, err := history.Open(historyDir(cfg.ProjectPath))
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(newHistoryEntry(cfg, meta, result))
}

func newHistoryEntry(cfg *config.Config, meta unity.ProjectMetadata, result pipeline.Result) *history.Entry {
	entry := &history.Entry{
		Timestamp:          result.Started,
		Duration:           result.Duration,
		ProductName:        meta.ProductName,
		Version:            meta.Version,
		CompanyName:        meta.CompanyName,
		Target:             cfg.Target,
		Success:            result.Success,
		ErrorKind:          result.ErrorKind.String(),
		ExitCode:           result.CompilerExitCode,
		BuildOutputPath:    result.BuildOutputPath,
		ScriptPath:         result.InstallerScriptPath,
		InstallerOutputDir: result.InstallerOutputDir,
	}

	if result.Err != nil {
		entry.Error = result.Err.Error()
	}

	for _, w := range result.Warnings {
		entry.Warnings = append(entry.Warnings, w.Message)
	}

	if result.InstallerScriptPath != "" {
		if hash, err := history.HashFile(result.InstallerScriptPath); err == nil {
			entry.ScriptHash = hash
		}
	}

	if result.InstallerOutputDir != "" {
		if outputs, err := history.CollectOutputs(result.InstallerOutputDir); err == nil {
			entry.Installers = outputs
		}
	}

	return entry
}

func printSummary(w io.Writer, result pipeline.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "%s %s\n", yellow("⚠"), warning.Message)
	}

	if !result.Success {
		fmt.Fprintf(w, "%s Build failed in %s: %s\n", red("❌"), result.FailedIn, result.ErrorKind)

		for _, e := range result.Validation.Errors {
			fmt.Fprintf(w, "   - %s\n", e.Message)
		}

		return
	}

	fmt.Fprintf(w, "%s Build complete in %s\n", green("✅"), result.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "   Player:    %s\n", result.BuildOutputPath)
	fmt.Fprintf(w, "   Script:    %s\n", result.InstallerScriptPath)

	if result.InstallerOutputDir != "" {
		fmt.Fprintf(w, "   Installer: %s\n", result.InstallerOutputDir)
	}
}
