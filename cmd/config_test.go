package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Norgate-AV/issbuild/internal/config"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigShow(t *testing.T) {
	project := newTestProject(t)

	local := filepath.Join(project.dir, ".issbuild.yml")
	require.NoError(t, os.WriteFile(local, []byte("target: win32\n"), 0o644))

	cmd, out := newTestCommand(t, project.flags("--timeout", "90s")...)
	require.NoError(t, runConfigShow(cmd, []string{project.dir}))

	assert.Contains(t, out.String(), "# "+local)

	var settings map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &settings))
	assert.Equal(t, project.compilerPath, settings[config.KeyCompilerPath])
	assert.Equal(t, project.templatePath, settings[config.KeyTemplatePath])
	assert.Equal(t, "win32", settings[config.KeyTarget])
	assert.Equal(t, "1m30s", settings[config.KeyTimeout])
}

func TestRunConfigSaveAndReset(t *testing.T) {
	project := newTestProject(t)

	cmd, out := newTestCommand(t, project.flags("--icon", "art/setup.ico")...)
	require.NoError(t, runConfigSave(cmd, []string{project.dir}))

	path := filepath.Join(project.dir, ".issbuild.yml")
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var saved map[string]any
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, project.compilerPath, saved[config.KeyCompilerPath])
	assert.Equal(t, true, saved[config.KeyUseSetupIcon])

	cmd, _ = newTestCommand(t)
	require.NoError(t, runConfigReset(cmd, []string{project.dir}))
	assert.NoFileExists(t, path)
}

func TestRunConfigSave_Global(t *testing.T) {
	project := newTestProject(t)
	appdata := os.Getenv("APPDATA")

	cmd, _ := newTestCommand(t, project.flags("--global")...)
	require.NoError(t, runConfigSave(cmd, []string{project.dir}))

	assert.FileExists(t, filepath.Join(appdata, "issbuild", "config.yml"))
	assert.NoFileExists(t, filepath.Join(project.dir, ".issbuild.yml"))

	cmd, _ = newTestCommand(t, "--global")
	require.NoError(t, runConfigReset(cmd, nil))
	assert.NoFileExists(t, filepath.Join(appdata, "issbuild", "config.yml"))
}
