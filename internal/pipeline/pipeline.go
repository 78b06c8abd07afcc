// Package pipeline sequences a full installer build: validate the
// configuration, build the player with the Unity editor, render the installer
// script and compile it with Inno Setup.
//
// A run moves through the states Idle, Validating, NativeBuilding, Rendering,
// Compiling, RevealingOutput and Done. Any of the middle four stages can end
// the run in Failed. Nothing is written to disk before validation passes, and
// the installer script is never written when the player build fails.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Norgate-AV/issbuild/internal/codes"
	"github.com/Norgate-AV/issbuild/internal/compiler"
	"github.com/Norgate-AV/issbuild/internal/config"
	"github.com/Norgate-AV/issbuild/internal/template"
	"github.com/Norgate-AV/issbuild/internal/unity"
	"github.com/Norgate-AV/issbuild/internal/utils"
)

// ErrBusy is returned when Run is called while another run is in progress
var ErrBusy = errors.New("a build is already in progress")

// NativeBuilder produces the player executable
type NativeBuilder interface {
	Build(ctx context.Context, scenes []string, exePath string, target utils.Target) (string, error)
}

// Compiler turns the rendered script into an installer
type Compiler interface {
	Compile(ctx context.Context, compilerPath, scriptPath string) (compiler.Outcome, error)
}

// Revealer shows a folder to the user
type Revealer interface {
	Reveal(path string) error
}

// RevealFunc adapts a function to the Revealer interface
type RevealFunc func(path string) error

func (f RevealFunc) Reveal(path string) error {
	return f(path)
}

// Options configures a Pipeline. Every field is optional.
type Options struct {
	// WorkDir is the directory the Builds folder is created in.
	// Defaults to the current working directory.
	WorkDir string

	// Revealer opens the installer output folder. When nil the folder is
	// only reported in the result.
	Revealer Revealer

	// OnStateChange is called on every transition, including the final one
	OnStateChange func(State)

	Logger *slog.Logger

	// Now returns the current time, used for unique build directories
	Now func() time.Time
}

// Pipeline runs installer builds. A Pipeline may be reused but runs one
// build at a time.
type Pipeline struct {
	builder  NativeBuilder
	compiler Compiler
	opts     Options
	logger   *slog.Logger
	running  atomic.Bool
}

// New creates a pipeline using the given player builder and compiler
func New(builder NativeBuilder, comp Compiler, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Pipeline{
		builder:  builder,
		compiler: comp,
		opts:     opts,
		logger:   logger,
	}
}

// run holds the state of a single pipeline run
type run struct {
	p      *Pipeline
	state  State
	result Result
}

func (r *run) enter(s State) {
	r.p.logger.Debug("pipeline state", "from", r.state, "to", s)
	r.state = s

	if r.p.opts.OnStateChange != nil {
		r.p.opts.OnStateChange(s)
	}
}

func (r *run) fail(kind codes.ErrorKind, err error) Result {
	r.p.logger.Error("build failed", "stage", r.state, "kind", kind, "error", err)

	r.result.FailedIn = r.state
	r.result.ErrorKind = kind
	r.result.Err = err
	r.enter(Failed)

	return r.finish()
}

func (r *run) finish() Result {
	r.result.State = r.state
	r.result.Success = r.state == Done
	r.result.Duration = r.p.opts.Now().Sub(r.result.Started)

	return r.result
}

func (r *run) warn(kind codes.ErrorKind, msg string) {
	r.p.logger.Warn(msg, "kind", kind)
	r.result.Warnings = append(r.result.Warnings, Warning{Kind: kind, Message: msg})
}

// Run executes one build. Failures are reported through the returned Result;
// the error is non-nil only when another run is already in progress.
func (p *Pipeline) Run(ctx context.Context, cfg *config.Config, meta unity.ProjectMetadata) (Result, error) {
	if !p.running.CompareAndSwap(false, true) {
		return Result{State: Idle, CompilerExitCode: -1}, ErrBusy
	}
	defer p.running.Store(false)

	r := &run{
		p:     p,
		state: Idle,
		result: Result{
			Started:          p.opts.Now(),
			CompilerExitCode: -1,
		},
	}

	// Validating
	r.enter(Validating)

	validation := cfg.Validate()
	if !validation.Valid() {
		r.result.Validation = validation
		return r.fail(validation.Errors[0].Kind, validation.Err()), nil
	}

	for _, w := range cfg.Warnings() {
		r.warn(codes.None, w)
	}

	target, ok := utils.ParseTarget(cfg.Target)
	if !ok {
		target = utils.Win64
	}

	// NativeBuilding
	r.enter(NativeBuilding)

	buildDir, err := p.buildDir(cfg, meta)
	if err != nil {
		return r.fail(codes.NativeBuildFailed, err), nil
	}

	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return r.fail(codes.NativeBuildFailed, fmt.Errorf("failed to create build directory: %w", err)), nil
	}

	r.result.BuildOutputPath = buildDir

	exePath := utils.ExecutablePath(buildDir, meta.ProductName)
	p.logger.Info("building player", "product", meta.ProductName, "version", meta.Version, "target", target.Name, "output", buildDir)

	if _, err := p.builder.Build(ctx, meta.Scenes, exePath, target); err != nil {
		return r.fail(codes.NativeBuildFailed, fmt.Errorf("player build failed: %w", err)), nil
	}

	p.logger.Info("player build complete", "output", buildDir)

	// Rendering
	r.enter(Rendering)

	scriptPath := cfg.ScriptPath()
	tokens := template.NewTokenMap(template.Values{
		ProductName: meta.ProductName,
		CompanyName: meta.CompanyName,
		Version:     meta.Version,
		BuildPath:   buildDir,
		SetupIcon:   cfg.IconToken(),
		EULAFile:    cfg.EULAToken(),
	})

	rendered, err := template.RenderFile(cfg.TemplatePath, scriptPath, tokens)
	if err != nil {
		return r.fail(codes.RenderFailed, err), nil
	}

	r.result.InstallerScriptPath = scriptPath
	p.logger.Info("updated installer script", "path", scriptPath)

	if left := template.Unconsumed(rendered); len(left) > 0 {
		p.logger.Debug("unreplaced markers in installer script", "markers", left)
	}

	// Compiling
	r.enter(Compiling)

	outcome, err := p.compile(ctx, cfg, scriptPath)
	r.result.CompilerExitCode = outcome.ExitCode
	if err != nil {
		return r.fail(codes.ProcessLaunchFailed, err), nil
	}

	p.logger.Info("installer compiled", "script", scriptPath)

	// RevealingOutput
	r.enter(RevealingOutput)

	outDir := utils.OutputDir(scriptPath)
	if utils.DirExists(outDir) {
		r.result.InstallerOutputDir = outDir
		p.logger.Info("installer output", "path", outDir)

		if p.opts.Revealer != nil {
			if err := p.opts.Revealer.Reveal(outDir); err != nil {
				p.logger.Warn("failed to open output folder", "path", outDir, "error", err)
			}
		}
	} else {
		r.warn(codes.OutputFolderMissing, "installer output folder not found: "+outDir)
	}

	r.enter(Done)

	return r.finish(), nil
}

func (p *Pipeline) buildDir(cfg *config.Config, meta unity.ProjectMetadata) (string, error) {
	workDir := p.opts.WorkDir
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}

		workDir = cwd
	}

	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("invalid working directory: %w", err)
	}

	if cfg.Unique {
		return utils.UniqueBuildDir(workDir, meta.ProductName, meta.Version, p.opts.Now()), nil
	}

	return utils.BuildDir(workDir, meta.ProductName, meta.Version), nil
}

func (p *Pipeline) compile(ctx context.Context, cfg *config.Config, scriptPath string) (compiler.Outcome, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	return p.compiler.Compile(ctx, cfg.CompilerPath, scriptPath)
}
