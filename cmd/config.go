package cmd

import (
	"fmt"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/Norgate-AV/issbuild/internal/config"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, save or reset persisted settings",
}

var configShowCmd = &cobra.Command{
	Use:          "show [project]",
	Short:        "Print the effective settings as YAML",
	RunE:         runConfigShow,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

var configSaveCmd = &cobra.Command{
	Use:   "save [project]",
	Short: "Save the effective settings",
	Long: `Save the effective settings, including any flags given, to .issbuild.yml
in the project directory, or to the per-user settings file with --global.`,
	RunE:         runConfigSave,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

var configResetCmd = &cobra.Command{
	Use:          "reset [project]",
	Short:        "Delete the saved settings file",
	RunE:         runConfigReset,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

func init() {
	configSaveCmd.Flags().Bool("global", false, "Use the per-user settings file")
	configResetCmd.Flags().Bool("global", false, "Use the per-user settings file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
	configCmd.AddCommand(configResetCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader()

	cfg, err := loader.LoadForBuild(cmd, args)
	if err != nil {
		return withExitCode(codes.ExitConfigError, fmt.Errorf("failed to load configuration: %w", err))
	}

	out := cmd.OutOrStdout()
	for _, file := range loader.Files() {
		fmt.Fprintf(out, "# %s\n", file)
	}

	data, err := yaml.Marshal(cfg.Settings())
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	_, err = out.Write(data)
	return err
}

func runConfigSave(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForBuild(cmd, args)
	if err != nil {
		return withExitCode(codes.ExitConfigError, fmt.Errorf("failed to load configuration: %w", err))
	}

	path, err := settingsPath(cmd, cfg.ProjectPath)
	if err != nil {
		return err
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Settings saved to %s\n", path)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	path, err := settingsPath(cmd, projectDir)
	if err != nil {
		return err
	}

	if err := config.Reset(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Settings removed from %s\n", path)
	return nil
}

func settingsPath(cmd *cobra.Command, projectDir string) (string, error) {
	global, _ := cmd.Flags().GetBool("global")
	return config.SettingsPath(global, projectDir)
}
