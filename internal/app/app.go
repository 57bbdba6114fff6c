// Package app implements the application layer for darkmagic.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/darkmagic/internal/core/ports"
	"go.trai.ch/darkmagic/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.InputResolver
	storeOpener  ports.StoreOpener
	scheduler    *scheduler.Scheduler
	telemetry    ports.Telemetry
	progress     ports.ProgressView
	logger       ports.Logger
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.InputResolver,
	opener ports.StoreOpener,
	sched *scheduler.Scheduler,
	telemetry ports.Telemetry,
	progress ports.ProgressView,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		storeOpener:  opener,
		scheduler:    sched,
		telemetry:    telemetry,
		progress:     progress,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithOutput sets the writer results are printed to.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// SetVerbosity maps the number of -v flags to the logger level.
func (a *App) SetVerbosity(n int) {
	a.logger.SetLevel(domain.LevelFromVerbosity(n))
}

// ReadOptions configuration for the Read method.
type ReadOptions struct {
	// Output overrides the configured output format when set.
	Output string
	// NoCache skips cache lookups. Fresh results are still stored.
	NoCache bool
	// Jobs overrides the configured parallelism when positive.
	Jobs int
	// ConfigPath names an explicit config file.
	ConfigPath string
	// Progress draws a live progress view on standard error.
	Progress bool
}

// Read extracts the metadata of every file named by args and prints it.
//
// Files that fail are logged and left out of the output. If any file failed
// the returned error matches domain.ErrExtractionFailed.
func (a *App) Read(ctx context.Context, args []string, opts ReadOptions) error {
	if len(args) == 0 {
		return domain.ErrNoInputFiles
	}

	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}

	// 1. Load the configuration
	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	format := cfg.Output
	if opts.Output != "" {
		f, ok := domain.ParseOutputFormat(opts.Output)
		if !ok {
			return zerr.With(domain.ErrUnknownFormat, "format", opts.Output)
		}
		format = f
	}

	jobs := cfg.Jobs
	if opts.Jobs > 0 {
		jobs = opts.Jobs
	}

	// 2. Resolve inputs
	paths, err := a.resolver.ResolveInputs(args, cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve inputs")
	}
	if len(paths) == 0 {
		return domain.ErrNoInputFiles
	}

	names := paths
	paths = make([]string, len(names))
	for i, name := range names {
		paths[i] = name
		if !filepath.IsAbs(name) {
			paths[i] = filepath.Join(cwd, name)
		}
	}

	// 3. Open the cache
	store := a.openStore(cfg.Cache)

	// 4. Run the scheduler
	wait := a.startProgress(ctx, opts.Progress)

	results, runErr := a.scheduler.Run(ctx, paths, store, scheduler.Options{
		Parallelism: jobs,
		ReadCache:   !opts.NoCache,
		WriteCache:  true,
	})

	if err := a.telemetry.Close(); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to close telemetry: %v", err))
	}
	if err := wait(); err != nil {
		a.logger.Warn(fmt.Sprintf("progress view failed: %v", err))
	}

	for i := range results {
		if i < len(names) {
			results[i].Name = names[i]
		}
	}

	for _, r := range results {
		if r.Err != nil {
			a.logger.Error(r.Err)
		}
	}

	// 5. Print
	if err := WriteResults(a.stdout, format, results); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}

	return runErr
}

// startProgress starts the progress view when requested and possible. The
// returned function waits for the view to finish.
func (a *App) startProgress(ctx context.Context, enabled bool) func() error {
	if !enabled {
		return func() error { return nil }
	}
	if !a.progress.Interactive() {
		a.logger.Warn("standard error is not a terminal, progress view disabled")
		return func() error { return nil }
	}
	return a.progress.Start(ctx)
}

func (a *App) openStore(cfg domain.CacheConfig) ports.MetadataStore {
	if !cfg.Enabled {
		a.logger.Debug("metadata cache disabled")
		return nil
	}
	store, err := a.storeOpener.Open(cfg.Path)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("metadata cache unavailable, continuing without it: %v", err))
		return nil
	}
	a.logger.Debug("using metadata cache at " + cfg.Path)
	return store
}

// Clean removes the metadata cache named by the configuration.
func (a *App) Clean(_ context.Context, configPath string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}

	cfg, err := a.configLoader.Load(cwd, configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if err := a.storeOpener.Remove(cfg.Cache.Path); err != nil {
		return zerr.Wrap(err, "failed to clean metadata cache")
	}

	a.logger.Info("removed metadata cache at " + cfg.Cache.Path)
	return nil
}
