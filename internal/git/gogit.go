package git

import (
	"context"
	"fmt"
	"io"

	gogit "github.com/go-git/go-git/v5"
)

// GoGitCloner clones with go-git and needs no git binary on PATH.
type GoGitCloner struct {
	// Progress receives the remote's progress messages unless the clone is quiet.
	Progress io.Writer
}

// Clone clones opts.URL into opts.Dir in-process.
func (c *GoGitCloner) Clone(ctx context.Context, opts CloneOptions) error {
	cloneOpts := &gogit.CloneOptions{
		URL:   opts.URL,
		Depth: opts.Depth,
	}
	if opts.RecurseSubmodules {
		cloneOpts.RecurseSubmodules = gogit.DefaultSubmoduleRecursionDepth
	}
	if !opts.Quiet && c.Progress != nil {
		cloneOpts.Progress = c.Progress
	}

	if _, err := gogit.PlainCloneContext(ctx, opts.Dir, false, cloneOpts); err != nil {
		return fmt.Errorf("git clone %s: %w", opts.URL, err)
	}
	return nil
}
