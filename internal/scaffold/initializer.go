// Package scaffold creates new hexo sites. Initialize populates an empty folder from a
// starter repository or the bundled starter, strips git metadata and installs dependencies.
package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/guorant/hexo/internal/assets"
	"github.com/guorant/hexo/internal/config"
	"github.com/guorant/hexo/internal/git"
	"github.com/guorant/hexo/internal/progress"
	"github.com/guorant/hexo/internal/runner"
)

// Options configures an Initializer. Zero values select the defaults noted per field.
type Options struct {
	// BaseDir resolves relative target paths (default: working directory).
	BaseDir string
	// RepositoryURL is cloned when no URL is given (default: config.DefaultRepositoryURL).
	RepositoryURL string
	// Assets is copied when cloning is disabled or fails (default: assets.FS()).
	Assets fs.FS
	// Runner executes git and the package managers (default: runner.NewExecRunner()).
	Runner runner.Runner
	// Cloner fetches the starter repository (default: git.CLICloner over Runner).
	Cloner git.Cloner
	// PackageManagers is the detection order (default: yarn, pnpm, npm).
	PackageManagers []string
	Logger          *slog.Logger
	Progress        progress.Reporter
}

// Args are the per-invocation inputs of 'hexo init'.
type Args struct {
	// RepositoryURL, when set, overrides both the positional URL and the default.
	RepositoryURL string
	// Paths are the positional arguments: [<repository-url>] [<target>].
	Paths []string
	// Install and Clone default to true when nil.
	Install *bool
	Clone   *bool
}

// Initializer runs the init pipeline: validate target, populate, clean up, install.
type Initializer struct {
	baseDir         string
	repositoryURL   string
	assets          fs.FS
	runner          runner.Runner
	cloner          git.Cloner
	packageManagers []string
	logger          *slog.Logger
	progress        progress.Reporter
}

// New creates an Initializer from opts.
func New(opts Options) *Initializer {
	in := &Initializer{
		baseDir:         opts.BaseDir,
		repositoryURL:   opts.RepositoryURL,
		assets:          opts.Assets,
		runner:          opts.Runner,
		cloner:          opts.Cloner,
		packageManagers: opts.PackageManagers,
		logger:          opts.Logger,
		progress:        opts.Progress,
	}
	if in.repositoryURL == "" {
		in.repositoryURL = config.DefaultRepositoryURL
	}
	if in.assets == nil {
		in.assets = assets.FS()
	}
	if in.runner == nil {
		in.runner = runner.NewExecRunner()
	}
	if in.cloner == nil {
		in.cloner = &git.CLICloner{Runner: in.runner}
	}
	if len(in.packageManagers) == 0 {
		in.packageManagers = config.DefaultPackageManagers
	}
	if in.logger == nil {
		in.logger = slog.Default()
	}
	if in.progress == nil {
		in.progress = progress.Discard
	}
	return in
}

// Initialize creates a site as described by args.
// It fails without side effects when the target exists and is not empty.
// A failed clone falls back to the bundled assets and a failed install only warns.
func (in *Initializer) Initialize(ctx context.Context, args Args) error {
	target, err := in.ResolveTarget(args.Paths)
	if err != nil {
		return err
	}
	url := in.ResolveRepositoryURL(args)

	if err := in.validateTarget(ctx, target); err != nil {
		return err
	}

	in.logger.Info("Cloning hexo-starter", "url", url)
	if err := in.populate(ctx, url, target, boolOr(args.Clone, true)); err != nil {
		return err
	}

	if err := Cleanup(ctx, target); err != nil {
		return fmt.Errorf("%w: %w", ErrCleanup, err)
	}

	if !boolOr(args.Install, true) {
		return nil
	}
	in.logger.Info("Install dependencies")
	in.install(ctx, target)
	return nil
}

// ResolveTarget returns the absolute folder to initialize: the last positional
// path resolved against the base directory, or the base directory itself.
func (in *Initializer) ResolveTarget(paths []string) (string, error) {
	base := in.baseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}

	if len(paths) == 0 || paths[0] == "" {
		return base, nil
	}
	last := paths[len(paths)-1]
	if filepath.IsAbs(last) {
		return filepath.Clean(last), nil
	}
	return filepath.Join(base, last), nil
}

// ResolveRepositoryURL returns the starter repository: the explicit URL, else the
// first positional when a target follows it, else the configured default.
func (in *Initializer) ResolveRepositoryURL(args Args) string {
	if args.RepositoryURL != "" {
		return args.RepositoryURL
	}
	if len(args.Paths) >= 2 && args.Paths[1] != "" {
		return args.Paths[0]
	}
	return in.repositoryURL
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
