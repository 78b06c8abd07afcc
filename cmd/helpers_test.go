package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/Norgate-AV/issbuild/internal/compiler"
	"github.com/Norgate-AV/issbuild/internal/config"
	"github.com/Norgate-AV/issbuild/internal/pipeline"
	"github.com/Norgate-AV/issbuild/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const projectSettings = `%YAML 1.1
%TAG !u! tag:unity3d.com,2011:
--- !u!129 &1
PlayerSettings:
  companyName: Acme
  productName: Demo
  bundleVersion: 1.0
`

const editorBuildSettings = `%YAML 1.1
%TAG !u! tag:unity3d.com,2011:
--- !u!1045 &1
EditorBuildSettings:
  m_Scenes:
  - enabled: 1
    path: Assets/Scenes/Main.unity
`

const scriptTemplate = `[Setup]
AppName={PRODUCT_NAME}
AppVersion={VERSION}
AppPublisher={COMPANY_NAME}
SetupIconFile={SETUP_ICON}

[Files]
Source: "{#BUILD_PATH}\*"; DestDir: "{app}"
`

// testProject is a Unity project with an installer template and a stub compiler
type testProject struct {
	dir          string
	compilerPath string
	templatePath string
}

func newTestProject(t *testing.T) *testProject {
	t.Helper()

	// Keep the developer's own settings out of the tests
	t.Setenv("APPDATA", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	settings := filepath.Join(dir, "ProjectSettings")
	installer := filepath.Join(dir, "Installer")
	require.NoError(t, os.MkdirAll(settings, 0o755))
	require.NoError(t, os.MkdirAll(installer, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(settings, "ProjectSettings.asset"), []byte(projectSettings), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(settings, "EditorBuildSettings.asset"), []byte(editorBuildSettings), 0o644))

	p := &testProject{
		dir:          dir,
		compilerPath: filepath.Join(dir, "Tools", "ISCC.exe"),
		templatePath: filepath.Join(installer, "BuildScriptTemplate.iss"),
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(p.compilerPath), 0o755))
	require.NoError(t, os.WriteFile(p.compilerPath, []byte("stub"), 0o755))
	require.NoError(t, os.WriteFile(p.templatePath, []byte(scriptTemplate), 0o644))

	return p
}

// flags returns the flags pointing the build at the project's tools
func (p *testProject) flags(extra ...string) []string {
	return append([]string{
		"--compiler", p.compilerPath,
		"--template", p.templatePath,
	}, extra...)
}

// newTestCommand returns a command with the build flags parsed from args
func newTestCommand(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	cmd := &cobra.Command{}
	addBuildFlags(cmd)
	cmd.Flags().Bool("global", false, "")
	cmd.Flags().IntP("limit", "n", 10, "")
	require.NoError(t, cmd.ParseFlags(args))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	return cmd, &out
}

type stubBuilder struct {
	err error
}

func (b stubBuilder) Build(_ context.Context, _ []string, exePath string, _ utils.Target) (string, error) {
	if b.err != nil {
		return "", b.err
	}

	return exePath, os.WriteFile(exePath, []byte("MZ"), 0o644)
}

type stubCompiler struct {
	code     int
	noOutput bool
}

func (c stubCompiler) Compile(_ context.Context, _, scriptPath string) (compiler.Outcome, error) {
	if c.code != 0 {
		return compiler.Outcome{ExitCode: c.code}, &compiler.ExitError{Code: c.code, Message: codes.GetErrorMessage(c.code)}
	}

	if !c.noOutput {
		dir := utils.OutputDir(scriptPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return compiler.Outcome{ExitCode: -1}, err
		}

		if err := os.WriteFile(filepath.Join(dir, "DemoSetup.exe"), []byte("installer"), 0o644); err != nil {
			return compiler.Outcome{ExitCode: -1}, err
		}
	}

	return compiler.Outcome{}, nil
}

// useStubs replaces the external tools for the duration of a test and
// returns the folders passed to the revealer
func useStubs(t *testing.T, b stubBuilder, c stubCompiler) *[]string {
	t.Helper()

	origBuilder, origCompiler, origReveal := newNativeBuilder, newCompiler, revealFolder
	t.Cleanup(func() {
		newNativeBuilder, newCompiler, revealFolder = origBuilder, origCompiler, origReveal
	})

	var revealed []string

	newNativeBuilder = func(*config.Config, *slog.Logger) pipeline.NativeBuilder { return b }
	newCompiler = func(*config.Config, *slog.Logger) pipeline.Compiler { return c }
	revealFolder = func(path string) error {
		revealed = append(revealed, path)
		return nil
	}

	return &revealed
}
