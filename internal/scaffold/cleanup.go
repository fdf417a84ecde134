package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Cleanup strips version-control metadata from a freshly populated site.
// RemoveGitDirs and RemoveGitModules run concurrently; the first error wins.
func Cleanup(ctx context.Context, target string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return RemoveGitDirs(ctx, target)
	})
	g.Go(func() error {
		return RemoveGitModules(target)
	})
	return g.Wait()
}

// RemoveGitDirs removes dir/.git and the .git entry of every directory below it.
// Subdirectories are walked concurrently. Symlinks are not followed and entries
// that disappear while walking are ignored.
func RemoveGitDirs(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gitPath := filepath.Join(dir, ".git")
	info, err := os.Lstat(gitPath)
	switch {
	case err == nil && info.IsDir():
		if err := os.RemoveAll(gitPath); err != nil {
			return fmt.Errorf("removing %s: %w", gitPath, err)
		}
	case err == nil:
		if err := os.Remove(gitPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", gitPath, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking %s: %w", gitPath, err)
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		// ReadDir reports the entry's own type, so a symlink to a directory is skipped.
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			return RemoveGitDirs(ctx, sub)
		})
	}
	return g.Wait()
}

// RemoveGitModules removes target/.gitmodules if present.
func RemoveGitModules(target string) error {
	path := filepath.Join(target, ".gitmodules")
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
