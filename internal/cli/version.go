package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/guorant/hexo/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for hexo",
		Example: `  # Show version info
  hexo version

  # Plain output (for scripts)
  hexo version --plain`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout(), plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")
	return cmd
}

func printVersion(w io.Writer, plain bool) {
	label := fmt.Sprint
	if !plain {
		label = color.New(color.FgCyan, color.Bold).SprintFunc()
	}
	fmt.Fprintf(w, "%s %s\n", label("hexo"), version.Version)
	fmt.Fprintf(w, "%s %s\n", label("commit:"), version.ShortCommit())
	fmt.Fprintf(w, "%s %s\n", label("built:"), version.BuildDate)
	fmt.Fprintf(w, "%s %s\n", label("go:"), runtime.Version())
	fmt.Fprintf(w, "%s %s/%s\n", label("platform:"), runtime.GOOS, runtime.GOARCH)
}
