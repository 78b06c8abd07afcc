package unity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/Norgate-AV/issbuild/internal/utils"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

type exitCoder interface {
	ExitCode() int
}

// Builder runs a player build through the Unity editor in batch mode
type Builder struct {
	execCommand func(ctx context.Context, name string, args ...string) Commander
	unityPath   string
	projectPath string
	silent      bool
	logger      *slog.Logger
}

// NewBuilder creates a builder for the project at projectPath using the
// editor executable at unityPath
func NewBuilder(unityPath, projectPath string, silent bool, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}

	return &Builder{
		execCommand: func(ctx context.Context, name string, args ...string) Commander {
			return exec.CommandContext(ctx, name, args...)
		},
		unityPath:   unityPath,
		projectPath: projectPath,
		silent:      silent,
		logger:      logger,
	}
}

// BuildArgs returns the editor arguments for a player build
func (b *Builder) BuildArgs(exePath string, target utils.Target) []string {
	return []string{
		"-batchmode",
		"-quit",
		"-nographics",
		"-projectPath", b.projectPath,
		"-buildTarget", target.BuildTarget,
		target.PlayerSwitch, exePath,
		"-logFile", "-",
	}
}

// Build builds the player executable at exePath and blocks until the editor
// exits. The editor builds the scenes enabled in the project's build
// settings; scenes is the snapshot of that list taken for this run.
func (b *Builder) Build(ctx context.Context, scenes []string, exePath string, target utils.Target) (string, error) {
	if len(scenes) == 0 {
		return "", fmt.Errorf("no enabled scenes in build settings")
	}

	if b.unityPath == "" {
		return "", fmt.Errorf("unity editor path not specified")
	}

	args := b.BuildArgs(exePath, target)
	b.logger.Debug("running unity build",
		"editor", b.unityPath,
		"args", strings.Join(args, " "),
		"scenes", scenes,
	)

	c := b.execCommand(ctx, b.unityPath, args...)
	if cmd, ok := c.(*exec.Cmd); ok && !b.silent {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := c.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("unity build did not finish: %w", ctx.Err())
		}

		var ec exitCoder
		if errors.As(err, &ec) {
			return "", fmt.Errorf("unity build failed (exit code %d)", ec.ExitCode())
		}

		return "", fmt.Errorf("failed to launch unity editor: %w", err)
	}

	if _, err := os.Stat(exePath); err != nil {
		return "", fmt.Errorf("unity build produced no executable at %s", exePath)
	}

	return exePath, nil
}
