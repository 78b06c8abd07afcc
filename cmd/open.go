package cmd

import (
	"fmt"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/Norgate-AV/issbuild/internal/config"
	"github.com/Norgate-AV/issbuild/internal/utils"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:          "open [project]",
	Short:        "Open the installer output folder",
	Long:         `Open the OutputInstaller folder next to the installer script template.`,
	RunE:         runOpen,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForBuild(cmd, args)
	if err != nil {
		return withExitCode(codes.ExitConfigError, fmt.Errorf("failed to load configuration: %w", err))
	}

	scriptPath := cfg.ScriptPath()
	if scriptPath == "" {
		return withExitCode(codes.ExitConfigError, fmt.Errorf("no installer script template configured"))
	}

	dir := utils.OutputDir(scriptPath)
	if !utils.DirExists(dir) {
		return fmt.Errorf("installer output folder not found: %s", dir)
	}

	if err := revealFolder(dir); err != nil {
		return fmt.Errorf("failed to open output folder: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}
