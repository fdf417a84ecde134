package cli

import (
	stderrors "errors"
	"io"
	"io/fs"

	"github.com/guorant/hexo/internal/assets"
	"github.com/guorant/hexo/internal/config"
	herrors "github.com/guorant/hexo/internal/errors"
	"github.com/guorant/hexo/internal/git"
	"github.com/guorant/hexo/internal/progress"
	"github.com/guorant/hexo/internal/scaffold"
	"github.com/spf13/cobra"
)

type initOptions struct {
	noInstall  bool
	noClone    bool
	repository string
}

func newInitCmd(root *rootOptions) *cobra.Command {
	opts := &initOptions{}
	cmd := &cobra.Command{
		Use:   "init [<repository-url>] [<folder>]",
		Short: "Create a new Hexo folder",
		Long: `Create a new Hexo folder at the specified path or the current directory.

The starter template is cloned with git (submodules included, depth 1). If the
clone fails, or --no-clone is given, the starter bundled with hexo is copied
instead. Git metadata is removed and dependencies are installed with yarn,
pnpm or npm, whichever is found first.

The folder must be missing or empty.`,
		Example: `  # Initialize the current directory
  hexo init

  # Initialize ./blog
  hexo init blog

  # Use a custom starter repository
  hexo init https://github.com/me/starter.git blog
  hexo init blog --repository git@github.com:me/starter.git

  # Copy the bundled starter and skip dependency installation
  hexo init blog --no-clone --no-install`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(2)(cmd, args); err != nil {
				return herrors.TooManyArguments(len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, root, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.noInstall, "no-install", false, "Skip npm install")
	cmd.Flags().BoolVar(&opts.noClone, "no-clone", false, "Copy files instead of cloning from GitHub")
	cmd.Flags().StringVarP(&opts.repository, "repository", "r", "", "Starter repository to clone")
	return cmd
}

func runInit(cmd *cobra.Command, root *rootOptions, opts *initOptions, args []string) error {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		BaseDir:           root.cwd,
		ProjectConfigPath: root.configPath,
	})
	if err != nil {
		return herrors.ConfigParseError(configLabel(root), err)
	}

	logger := root.logger
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	r := root.newRunner(cmd.InOrStdin(), stdout, stderr, logger)

	var cloneProgress io.Writer
	if root.debug {
		cloneProgress = stderr
	}
	cloner, err := git.NewCloner(cfg.Git.Backend, r, cloneProgress)
	if err != nil {
		return herrors.InvalidGitBackend(cfg.Git.Backend)
	}

	starter, err := starterAssets(cfg.AssetDir)
	if err != nil {
		return err
	}

	in := scaffold.New(scaffold.Options{
		BaseDir:         root.cwd,
		RepositoryURL:   cfg.RepositoryURL,
		Assets:          starter,
		Runner:          r,
		Cloner:          cloner,
		PackageManagers: cfg.PackageManagers,
		Logger:          logger,
		Progress:        progress.NewSpinner(stdout, root.caps),
	})

	install := cfg.Install && !opts.noInstall
	clone := cfg.Clone && !opts.noClone
	err = in.Initialize(cmd.Context(), scaffold.Args{
		RepositoryURL: opts.repository,
		Paths:         args,
		Install:       &install,
		Clone:         &clone,
	})
	if err == nil {
		return nil
	}

	target, _ := in.ResolveTarget(args)
	return initError(target, err)
}

func starterAssets(dir string) (fs.FS, error) {
	if dir == "" {
		return assets.FS(), nil
	}
	fsys, err := assets.Dir(dir)
	if err != nil {
		return nil, herrors.AssetDirNotFound(dir)
	}
	return fsys, nil
}

// initError attaches remediation to the errors 'hexo init' can explain.
func initError(target string, err error) error {
	var notEmpty *scaffold.TargetNotEmptyError
	var notDir *scaffold.TargetNotDirectoryError
	switch {
	case stderrors.As(err, &notEmpty):
		return herrors.TargetNotEmpty(notEmpty.Display, err)
	case stderrors.As(err, &notDir):
		return herrors.TargetNotDirectory(notDir.Display, err)
	case stderrors.Is(err, scaffold.ErrCleanup):
		return herrors.CleanupFailed(target, err)
	default:
		return herrors.Wrap(err, herrors.Runtime, "Run again with --debug to see each git and install command")
	}
}

func configLabel(root *rootOptions) string {
	if root.configPath != "" {
		return root.configPath
	}
	return config.ProjectConfigPath(root.cwd)
}
