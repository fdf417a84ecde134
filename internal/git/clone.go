// Package git clones template repositories for new sites. The default backend
// shells out to the git CLI; the go-git backend clones in-process for machines
// without a git binary.
package git

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/guorant/hexo/internal/runner"
)

// Backend names accepted by NewCloner (config key git.backend).
const (
	BackendCLI   = "cli"
	BackendGoGit = "go-git"
)

// CloneOptions describes a clone of URL into Dir.
type CloneOptions struct {
	URL string
	Dir string
	// Depth limits history; 0 means full history.
	Depth             int
	RecurseSubmodules bool
	Quiet             bool
}

// Cloner clones a repository into a directory.
type Cloner interface {
	Clone(ctx context.Context, opts CloneOptions) error
}

// ShallowTemplate returns the options used for template clones:
// depth 1, submodules included, no progress output.
func ShallowTemplate(url, dir string) CloneOptions {
	return CloneOptions{
		URL:               url,
		Dir:               dir,
		Depth:             1,
		RecurseSubmodules: true,
		Quiet:             true,
	}
}

// NewCloner returns the Cloner for backend. An empty backend selects the CLI.
// progress receives go-git output when the clone is not quiet.
func NewCloner(backend string, r runner.Runner, progress io.Writer) (Cloner, error) {
	switch backend {
	case "", BackendCLI:
		return &CLICloner{Runner: r}, nil
	case BackendGoGit:
		return &GoGitCloner{Progress: progress}, nil
	default:
		return nil, fmt.Errorf("unknown git backend %q", backend)
	}
}

// CLICloner runs `git clone` through a Runner so the child inherits the terminal.
type CLICloner struct {
	Runner runner.Runner
}

// Clone runs git clone with the flags derived from opts.
func (c *CLICloner) Clone(ctx context.Context, opts CloneOptions) error {
	if err := c.Runner.Run(ctx, CloneCommand(opts)); err != nil {
		return fmt.Errorf("git clone %s: %w", opts.URL, err)
	}
	return nil
}

// CloneCommand builds the git CLI invocation for opts.
func CloneCommand(opts CloneOptions) runner.Command {
	args := []string{"clone"}
	if opts.RecurseSubmodules {
		args = append(args, "--recurse-submodules")
	}
	if opts.Depth > 0 {
		args = append(args, "--depth="+strconv.Itoa(opts.Depth))
	}
	if opts.Quiet {
		args = append(args, "--quiet")
	}
	args = append(args, opts.URL, opts.Dir)
	return runner.Command{Name: "git", Args: args}
}
