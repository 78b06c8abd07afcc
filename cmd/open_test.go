package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOpen(t *testing.T) {
	project := newTestProject(t)
	revealed := useStubs(t, stubBuilder{}, stubCompiler{})

	outputDir := filepath.Join(filepath.Dir(project.templatePath), "OutputInstaller")
	require.NoError(t, os.Mkdir(outputDir, 0o755))

	cmd, out := newTestCommand(t, project.flags()...)
	require.NoError(t, runOpen(cmd, []string{project.dir}))

	assert.Equal(t, []string{outputDir}, *revealed)
	assert.Equal(t, outputDir+"\n", out.String())
}

func TestRunOpen_FolderMissing(t *testing.T) {
	project := newTestProject(t)
	revealed := useStubs(t, stubBuilder{}, stubCompiler{})

	cmd, _ := newTestCommand(t, project.flags()...)

	err := runOpen(cmd, []string{project.dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "installer output folder not found")
	assert.Equal(t, codes.ExitFailure, exitCode(err))
	assert.Empty(t, *revealed)
}

func TestRunOpen_NoTemplate(t *testing.T) {
	project := newTestProject(t)
	useStubs(t, stubBuilder{}, stubCompiler{})

	cmd, _ := newTestCommand(t)

	err := runOpen(cmd, []string{project.dir})
	require.Error(t, err)
	assert.Equal(t, codes.ExitConfigError, exitCode(err))
}
