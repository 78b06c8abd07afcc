package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/Norgate-AV/issbuild/internal/codes"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// exitCoder is satisfied by *exec.ExitError and by test doubles
type exitCoder interface {
	ExitCode() int
}

// Outcome describes a finished compiler process
type Outcome struct {
	ExitCode int
}

// ExitError reports a compiler process that ran but exited unsuccessfully
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("compilation failed (exit code %d): %s", e.Code, e.Message)
}

// Invoker launches the installer compiler
type Invoker struct {
	execCommand func(ctx context.Context, name string, args ...string) Commander
	silent      bool
	logger      *slog.Logger
}

// NewInvoker creates a new compiler invoker. When silent is set the
// compiler's console output is discarded.
func NewInvoker(silent bool, logger *slog.Logger) *Invoker {
	if logger == nil {
		logger = slog.Default()
	}

	return &Invoker{
		execCommand: func(ctx context.Context, name string, args ...string) Commander {
			cmd := exec.CommandContext(ctx, name, args...)
			hideWindow(cmd)
			return cmd
		},
		silent: silent,
		logger: logger,
	}
}

// Compile runs the compiler against scriptPath and blocks until it exits or
// ctx is done. Cancelling ctx kills the compiler process.
func (inv *Invoker) Compile(ctx context.Context, compilerPath, scriptPath string) (Outcome, error) {
	shell, err := GetCompileCommand(compilerPath, scriptPath)
	if err != nil {
		return Outcome{ExitCode: -1}, err
	}

	inv.logger.Debug("running installer compiler", "command", shell.String())

	c := inv.execCommand(ctx, shell.Path, shell.Args...)
	if cmd, ok := c.(*exec.Cmd); ok && !inv.silent {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err = c.Run()
	if err != nil && ctx.Err() != nil {
		return Outcome{ExitCode: -1}, fmt.Errorf("compiler did not finish: %w", ctx.Err())
	}

	if err != nil {
		var ec exitCoder
		if errors.As(err, &ec) {
			code := ec.ExitCode()
			if codes.IsSuccess(code) {
				return Outcome{ExitCode: code}, nil
			}

			return Outcome{ExitCode: code}, &ExitError{Code: code, Message: codes.GetErrorMessage(code)}
		}

		return Outcome{ExitCode: -1}, fmt.Errorf("failed to launch compiler: %w", err)
	}

	return Outcome{ExitCode: 0}, nil
}
