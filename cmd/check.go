package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/Norgate-AV/issbuild/internal/config"
	"github.com/Norgate-AV/issbuild/internal/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [project]",
	Short: "Check the build configuration without building",
	Long: `Run every pre-build check and report all problems at once. Also reports
markers in the template that will not be replaced and the project values
the build would use.`,
	RunE:         runCheck,
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
}

type checkPrinter struct {
	w    io.Writer
	ok   func(a ...any) string
	bad  func(a ...any) string
	warn func(a ...any) string
}

func newCheckPrinter(w io.Writer) *checkPrinter {
	return &checkPrinter{
		w:    w,
		ok:   color.New(color.FgGreen).SprintFunc(),
		bad:  color.New(color.FgRed).SprintFunc(),
		warn: color.New(color.FgYellow).SprintFunc(),
	}
}

func (p *checkPrinter) line(passed bool, label, detail string) {
	mark := p.ok("✅")
	if !passed {
		mark = p.bad("❌")
	}

	fmt.Fprintf(p.w, "%s %-10s %s\n", mark, label, detail)
}

func (p *checkPrinter) warning(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.warn("⚠"), msg)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForBuild(cmd, args)
	if err != nil {
		return withExitCode(codes.ExitConfigError, fmt.Errorf("failed to load configuration: %w", err))
	}

	out := newCheckPrinter(cmd.OutOrStdout())
	result := cfg.Validate()

	out.line(!result.Has(codes.MissingCompiler), "Compiler", cfg.CompilerPath)
	out.line(!result.Has(codes.MissingTemplate), "Template", cfg.TemplatePath)

	if cfg.UseSetupIcon {
		out.line(!result.Has(codes.MissingIconPath), "Icon", cfg.SetupIconPath)
	}

	if cfg.IncludeEULA {
		out.line(!result.Has(codes.MissingLicensePath), "EULA", cfg.EULAPath)
	}

	for _, w := range cfg.Warnings() {
		out.warning(w)
	}

	if !result.Has(codes.MissingTemplate) {
		if unknown, err := unknownMarkers(cfg.TemplatePath); err != nil {
			out.warning(err.Error())
		} else if len(unknown) > 0 {
			out.warning("template markers that will not be replaced: " + strings.Join(unknown, ", "))
		}
	}

	meta, projectErr := loadProject(cfg)
	if projectErr != nil {
		out.line(false, "Project", projectErr.Error())
	} else {
		out.line(true, "Project", fmt.Sprintf("%s %s by %s, %d scene(s)", meta.ProductName, meta.Version, meta.CompanyName, len(meta.Scenes)))
	}

	if !result.Valid() {
		return withExitCode(codes.ExitConfigError, result.Err())
	}

	if projectErr != nil {
		return withExitCode(codes.ExitConfigError, projectErr)
	}

	return nil
}

// unknownMarkers returns markers left in the template after substituting
// every known token
func unknownMarkers(templatePath string) ([]string, error) {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	tokens := template.NewTokenMap(template.Values{})
	return template.Unconsumed(template.Render(string(data), tokens)), nil
}
