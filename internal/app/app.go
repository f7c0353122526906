// Package app implements the application layer for reqs.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrmachine/reqs/internal/adapters/config"
	"github.com/mrmachine/reqs/internal/adapters/reqfile"
	progrockad "github.com/mrmachine/reqs/internal/adapters/telemetry/progrock"
	"github.com/mrmachine/reqs/internal/core/domain"
	"github.com/mrmachine/reqs/internal/core/ports"
	"github.com/mrmachine/reqs/internal/engine/planner"
	"github.com/mrmachine/reqs/internal/engine/resolver"
	"github.com/mrmachine/reqs/internal/tui"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// EngineFactory builds a resolver and planner for the given settings, index
// URL and telemetry. The application rebuilds its engine when configuration
// is reloaded, when a manifest pins its own index, or when progress
// recording needs its own tape.
type EngineFactory func(settings *config.Settings, indexURL string, tel ports.Telemetry) (*resolver.Resolver, *planner.Planner, error)

// RunOptions adjust how resolution commands execute.
type RunOptions struct {
	// Progress renders live resolution progress in a terminal UI.
	Progress bool
}

// App represents the main application logic.
type App struct {
	loader    ports.ManifestLoader
	locks     ports.LockfileStore
	logger    ports.Logger
	telemetry ports.Telemetry
	settings  *config.Settings
	resolver  *resolver.Resolver
	planner   *planner.Planner
	engine    EngineFactory
	out       io.Writer
	teaOpts   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	locks ports.LockfileStore,
	logger ports.Logger,
	telemetry ports.Telemetry,
	settings *config.Settings,
	res *resolver.Resolver,
	plan *planner.Planner,
	engine EngineFactory,
) *App {
	return &App{
		loader:    loader,
		locks:     locks,
		logger:    logger,
		telemetry: telemetry,
		settings:  settings,
		resolver:  res,
		planner:   plan,
		engine:    engine,
		out:       os.Stdout,
	}
}

// SetOutput redirects command output. Used for testing.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// WithTeaOptions sets Bubble Tea options for the progress view. Used for
// testing.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) {
	a.teaOpts = opts
}

// ReloadSettings re-reads configuration from the given path and rebuilds the
// engine accordingly. An empty path keeps the current settings.
func (a *App) ReloadSettings(path string) error {
	if path == "" {
		return nil
	}

	settings, err := config.Load(path)
	if err != nil {
		return err
	}

	res, plan, err := a.engine(settings, settings.IndexURL, a.telemetry)
	if err != nil {
		return err
	}

	a.settings = settings
	a.resolver = res
	a.planner = plan
	return nil
}

// indexURLFor returns the index to query for the manifest, honoring an
// "--index-url" option the manifest declares itself.
func (a *App) indexURLFor(m *domain.Manifest) string {
	if m.IndexURL != "" {
		return m.IndexURL
	}
	return a.settings.IndexURL
}

// engineFor returns the resolver and planner to use for the manifest.
func (a *App) engineFor(m *domain.Manifest) (*resolver.Resolver, *planner.Planner, error) {
	if m.IndexURL == "" || m.IndexURL == a.settings.IndexURL {
		return a.resolver, a.planner, nil
	}
	a.logger.Info("using manifest index", "url", m.IndexURL)
	return a.engine(a.settings, m.IndexURL, a.telemetry)
}

// Parse reads the manifest and prints its entries without touching the
// network. It is the fast syntax check.
func (a *App) Parse(path string) error {
	manifest, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	tw := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	for i := range manifest.Requirements {
		req := &manifest.Requirements[i]

		constraint := req.Specifiers.String()
		if !req.Source.IsZero() {
			constraint = req.Source.String()
		}

		comment := ""
		if req.Comment != "" {
			comment = "# " + req.Comment
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", req.RawName, constraint, comment)
	}
	if err := tw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write parse report")
	}

	a.logger.Info("manifest parsed", "path", path, "entries", len(manifest.Requirements))
	return nil
}

// Check resolves every requirement against the index and prints the version
// each one would pin to. Nothing is written to disk.
func (a *App) Check(ctx context.Context, path string, opts RunOptions) error {
	manifest, pinned, _, err := a.resolve(ctx, path, opts)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	for _, pin := range pinned {
		ref := pin.Version
		if pin.Source != "" {
			ref = pin.Source
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", pin.Name, ref)
	}
	if err := tw.Flush(); err != nil {
		return zerr.Wrap(err, "failed to write check report")
	}

	a.logger.Info("check complete", "path", path, "packages", len(manifest.Requirements))
	return nil
}

// Lock resolves the manifest and writes a lockfile to the output path.
func (a *App) Lock(ctx context.Context, path, output string, opts RunOptions) error {
	manifest, pinned, _, err := a.resolve(ctx, path, opts)
	if err != nil {
		return err
	}

	lock := &domain.Lockfile{
		Version:      domain.LockfileVersion,
		ManifestHash: manifest.Fingerprint(),
		Pinned:       pinned,
	}
	if err := a.locks.Write(output, lock); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}

	a.logger.Info("lockfile written", "path", output, "packages", len(pinned))
	return nil
}

// Verify checks that the lockfile still matches the manifest. It never
// touches the network.
func (a *App) Verify(path, lockPath string) error {
	manifest, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	lock, err := a.locks.Read(lockPath)
	if err != nil {
		return zerr.Wrap(err, "failed to read lockfile")
	}

	if !lock.Matches(manifest.Fingerprint()) {
		return zerr.With(zerr.With(
			domain.ErrLockfileStale,
			"manifest", path),
			"lockfile", lockPath)
	}

	_, _ = fmt.Fprintf(a.out, "%s is up to date with %s\n", lockPath, path)
	return nil
}

// Graph resolves the manifest, builds the dependency graph between its
// packages and prints them in install order.
func (a *App) Graph(ctx context.Context, path string, opts RunOptions) error {
	manifest, pinned, plan, err := a.resolve(ctx, path, opts)
	if err != nil {
		return err
	}

	graph, err := plan.BuildGraph(ctx, manifest, pinned)
	if err != nil {
		return zerr.Wrap(err, "failed to build dependency graph")
	}

	for _, node := range planner.InstallOrder(graph) {
		if node.Version != "" {
			_, _ = fmt.Fprintf(a.out, "%s %s\n", node.Name, node.Version)
		} else {
			_, _ = fmt.Fprintf(a.out, "%s\n", node.Name)
		}
		for _, dep := range node.Dependencies {
			_, _ = fmt.Fprintf(a.out, "  requires %s\n", dep)
		}
	}
	return nil
}

// Format prints the manifest in normalized form: one entry per line,
// comments re-attached, option lines first.
func (a *App) Format(path string) error {
	manifest, err := a.loader.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	if err := reqfile.Write(a.out, manifest); err != nil {
		return zerr.Wrap(err, "failed to write manifest")
	}
	return nil
}

// Close flushes telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func (a *App) resolve(ctx context.Context, path string, opts RunOptions) (*domain.Manifest, []domain.Pinned, *planner.Planner, error) {
	manifest, err := a.loader.Load(path)
	if err != nil {
		return nil, nil, nil, zerr.Wrap(err, "failed to load manifest")
	}

	if opts.Progress {
		pinned, plan, err := a.resolveWithProgress(ctx, manifest)
		if err != nil {
			return nil, nil, nil, err
		}
		return manifest, pinned, plan, nil
	}

	res, plan, err := a.engineFor(manifest)
	if err != nil {
		return nil, nil, nil, err
	}

	pinned, err := res.Resolve(ctx, manifest)
	if err != nil {
		return nil, nil, nil, zerr.Wrap(err, "resolution failed")
	}
	return manifest, pinned, plan, nil
}

// resolveWithProgress runs resolution on its own telemetry tape and renders
// it live until the tape ends. Resolution and the view run under one
// errgroup: a resolution failure tears the view down, and quitting the view
// before resolution finishes cancels it and fails the command.
func (a *App) resolveWithProgress(ctx context.Context, manifest *domain.Manifest) ([]domain.Pinned, *planner.Planner, error) {
	feed := progrockad.NewFeed()
	recorder := progrockad.NewRecorder(feed)

	res, plan, err := a.engine(a.settings, a.indexURLFor(manifest), recorder)
	if err != nil {
		return nil, nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	opts := append([]tea.ProgramOption{tea.WithContext(gctx)}, a.teaOpts...)
	program := tea.NewProgram(tui.NewModel(feed), opts...)

	var pinned []domain.Pinned
	var resolveErr error
	var finished atomic.Bool

	g.Go(func() error {
		pinned, resolveErr = res.Resolve(gctx, manifest)
		finished.Store(true)
		// Ending the tape quits the progress view.
		_ = recorder.Close()
		return resolveErr
	})

	g.Go(func() error {
		if _, err := program.Run(); err != nil {
			if gctx.Err() != nil {
				// The view was torn down because resolution already
				// failed or the command was interrupted.
				return nil
			}
			return zerr.Wrap(err, "progress display failed")
		}
		if !finished.Load() {
			// Quitting the view cancels resolution; a partial result
			// must never look like a complete one.
			return zerr.Wrap(context.Canceled, "resolution canceled")
		}
		return nil
	})

	waitErr := g.Wait()
	if resolveErr != nil {
		return nil, nil, zerr.Wrap(resolveErr, "resolution failed")
	}
	if waitErr != nil {
		return nil, nil, waitErr
	}
	return pinned, plan, nil
}
