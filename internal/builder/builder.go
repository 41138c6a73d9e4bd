package builder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/zpdzap/muslambda/internal/config"
	"github.com/zpdzap/muslambda/internal/engine"
	"github.com/zpdzap/muslambda/internal/recipe"
)

const (
	// ArtifactName is the archive the builder target leaves in /opt/app.
	ArtifactName = "bootstrap.zip"

	// The copy source always names the container "lambda", whatever
	// --container-name says. The recipe and existing users depend on it.
	artifactSource = "lambda:/opt/app/" + ArtifactName

	// PortMapping exposes the runtime's invoke endpoint on host port 9000.
	PortMapping = "9000:8080"

	// TargetBuilder is the recipe stage that produces the archive.
	TargetBuilder = "builder"
	// TargetRunner is the recipe stage that serves the local invoke endpoint.
	TargetRunner = "runner"
)

// ProgressFunc is called before each engine step.
type ProgressFunc func(step engine.Step, detail string)

// Builder owns the rendered recipe and sequences engine invocations for one
// configuration.
type Builder struct {
	opts   config.Options
	runner engine.Runner
	recipe *recipe.File

	dir      string
	logger   *slog.Logger
	progress ProgressFunc
	getenv   func(string) string
	newTag   func() string
	notify   NotifyFunc

	mu    sync.Mutex
	state State
	tag   string

	interrupted atomic.Bool
}

// Option customises a Builder.
type Option func(*Builder)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithProgress registers a callback invoked before every step.
func WithProgress(fn ProgressFunc) Option {
	return func(b *Builder) { b.progress = fn }
}

// WithGetenv replaces os.Getenv for reading CI.
func WithGetenv(fn func(string) string) Option {
	return func(b *Builder) { b.getenv = fn }
}

// WithTagFunc replaces the image tag generator.
func WithTagFunc(fn func() string) Option {
	return func(b *Builder) { b.newTag = fn }
}

// WithNotify replaces the interrupt registration used in run mode.
func WithNotify(fn NotifyFunc) Option {
	return func(b *Builder) { b.notify = fn }
}

// WithDir sets where the recipe is written. It must be the build context,
// which is the working directory by default.
func WithDir(dir string) Option {
	return func(b *Builder) { b.dir = dir }
}

// New validates opts and renders the recipe. The caller must call Execute,
// which releases the recipe, or Close.
func New(opts config.Options, runner engine.Runner, options ...Option) (*Builder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	b := &Builder{
		opts:   opts,
		runner: runner,
		dir:    ".",
		logger: slog.Default(),
		getenv: os.Getenv,
		newTag: uuid.NewString,
		notify: notifyInterrupt,
	}
	for _, o := range options {
		o(b)
	}

	var src string
	if opts.Recipe != "" {
		var err error
		if src, err = recipe.Load(opts.Recipe); err != nil {
			return nil, err
		}
	}

	f, err := recipe.Write(b.dir, src, recipe.Data{Path: opts.Path, Bin: opts.Bin})
	if err != nil {
		return nil, err
	}
	b.recipe = f
	b.logger.Debug("rendered recipe", "file", f.Path(), "path", opts.Path, "bin", opts.Bin)
	return b, nil
}

// RecipePath returns the rendered recipe file.
func (b *Builder) RecipePath() string {
	return b.recipe.Path()
}

// State returns the current step state.
func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Tag returns the image tag of the most recent build step, if any.
func (b *Builder) Tag() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tag
}

func (b *Builder) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// Interrupted reports whether a run was ended by an interrupt, in which case
// the container has already been removed.
func (b *Builder) Interrupted() bool {
	return b.interrupted.Load()
}

// Close releases the rendered recipe without running anything.
func (b *Builder) Close() error {
	return b.recipe.Close()
}

// Execute runs the pipeline for the configured command. The rendered recipe
// is removed before Execute returns, whatever the outcome.
func (b *Builder) Execute(ctx context.Context) (err error) {
	defer func() {
		err = combine(err, b.recipe.Close())
		if err != nil {
			b.setState(StateError)
		}
	}()

	switch b.opts.Command {
	case config.CommandBuild:
		return b.build(ctx)
	case config.CommandRun:
		return b.run(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", config.ErrConfig, b.opts.Command)
	}
}

func (b *Builder) build(ctx context.Context) error {
	if err := b.buildAndCreate(ctx, TargetBuilder); err != nil {
		return err
	}

	cp := engine.NewCommand(engine.StepCopy).Arg(artifactSource, b.opts.OutputPath)
	if err := b.step(ctx, cp, "to "+b.opts.OutputPath); err != nil {
		return err
	}
	b.setState(StateCopied)

	rm := engine.NewCommand(engine.StepRemove).Arg(b.opts.ContainerName)
	if err := b.step(ctx, rm, b.opts.ContainerName); err != nil {
		return err
	}

	return b.readback()
}

func (b *Builder) run(ctx context.Context) error {
	if err := b.buildAndCreate(ctx, TargetRunner); err != nil {
		return err
	}
	return b.startAttached(ctx)
}

// buildAndCreate runs the build and create steps shared by both modes.
func (b *Builder) buildAndCreate(ctx context.Context, target string) error {
	tag := b.newTag()
	b.mu.Lock()
	b.tag = tag
	b.mu.Unlock()

	ci := b.getenv("CI") == "true"
	build := engine.NewCommand(engine.StepBuild).
		Arg(".", "-f", b.recipe.Path(), "--target", target, "-t", tag).
		ArgIf(ci, "--cache-to", "type=gha,mode=max", "--cache-from", "type=gha")
	if err := b.step(ctx, build, "target="+target+" tag="+tag); err != nil {
		return err
	}
	b.setState(StateBuilt)

	b.checkEnvFile()

	create := engine.NewCommand(engine.StepCreate).
		Arg("--name", b.opts.ContainerName, "-p", PortMapping).
		Opt("--env-file", b.opts.EnvFile).
		Opt("--volume", b.opts.Volume).
		Arg(tag)
	if err := b.step(ctx, create, b.opts.ContainerName); err != nil {
		return err
	}
	b.setState(StateCreated)
	return nil
}

func (b *Builder) step(ctx context.Context, cmd *engine.Command, detail string) error {
	if b.progress != nil {
		b.progress(cmd.Step, detail)
	}
	return b.runner.Run(ctx, cmd)
}

// checkEnvFile reports on the env file before it is handed to the engine.
// The engine decides whether the file is usable, so problems are warnings.
func (b *Builder) checkEnvFile() {
	if b.opts.EnvFile == "" {
		return
	}
	vars, err := godotenv.Read(b.opts.EnvFile)
	if err != nil {
		b.logger.Warn("env file could not be read, passing it through", "path", b.opts.EnvFile, "err", err)
		return
	}
	b.logger.Debug("env file", "path", b.opts.EnvFile, "vars", len(vars))
}

// readback confirms the archive landed on the host.
func (b *Builder) readback() error {
	path := artifactPath(b.opts.OutputPath)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrArtifact, path)
	}
	b.logger.Info("artifact extracted", "path", path, "size", humanize.Bytes(uint64(info.Size())))
	return nil
}

// artifactPath mirrors docker cp: a directory destination receives the
// archive under its own name.
func artifactPath(output string) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, ArtifactName)
	}
	return output
}
