// Package cli implements the hexo command line: the root command, init and version.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"os/signal"

	herrors "github.com/guorant/hexo/internal/errors"
	"github.com/guorant/hexo/internal/logging"
	"github.com/guorant/hexo/internal/progress"
	"github.com/guorant/hexo/internal/runner"
	"github.com/guorant/hexo/internal/scaffold"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags and the collaborators shared by subcommands.
type rootOptions struct {
	debug      bool
	configPath string
	cwd        string

	// newRunner builds the command runner once output streams are known.
	newRunner func(stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) runner.Runner
	// caps describes the output terminal; it decides colour and spinner use.
	caps   progress.TerminalCapabilities
	logger *slog.Logger
}

// defaultRunner builds an ExecRunner on the command's streams.
func defaultRunner(stdin io.Reader, stdout, stderr io.Writer, logger *slog.Logger) runner.Runner {
	return runner.NewExecRunner(
		runner.WithStdin(stdin),
		runner.WithStdout(stdout),
		runner.WithStderr(stderr),
		runner.WithLogger(logger),
	)
}

// NewRootCmd builds the hexo command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{
		newRunner: defaultRunner,
		caps:      progress.DetectTerminalCapabilities(),
	})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hexo",
		Short: "A fast, simple and powerful blog framework",
		Long: `Hexo is a fast, simple and powerful blog framework.

Use 'hexo init' to create a new site from the starter template.`,
		Example: `  # Create a site in ./blog
  hexo init blog

  # Create a site from a custom starter
  hexo init https://github.com/me/starter.git blog`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.debug, opts.caps.SupportsColor)
			slog.SetDefault(opts.logger)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Project config file (default: <cwd>/_hexo.yml)")
	cmd.PersistentFlags().StringVar(&opts.cwd, "cwd", "", "Base directory for the site (default: current directory)")

	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newLogger(w io.Writer, debug, colored bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(w, &logging.Options{Level: level, Color: colored})
}

// Execute runs the root command with os.Args and returns the process exit code.
// Ctrl-C cancels the running subprocess through the command context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCmd()
	return run(ctx, cmd)
}

func run(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	// Target rejections are already logged as FATAL by the initializer.
	if !stderrors.Is(err, scaffold.ErrTargetNotEmpty) && !stderrors.Is(err, scaffold.ErrTargetNotDirectory) {
		herrors.FprintAny(cmd.ErrOrStderr(), err)
	}
	return ExitCode(err)
}
