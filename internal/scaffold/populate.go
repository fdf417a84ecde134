package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/guorant/hexo/internal/assets"
	"github.com/guorant/hexo/internal/git"
	"github.com/guorant/hexo/internal/logging"
)

// validateTarget accepts a missing folder or an empty one.
func (in *Initializer) validateTarget(ctx context.Context, target string) error {
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", target, err)
	}

	display := Tildify(target)
	if !info.IsDir() {
		tErr := &TargetNotDirectoryError{Path: target, Display: display}
		logging.Fatal(ctx, in.logger, tErr.Error())
		return tErr
	}

	empty, err := isEmptyDir(target)
	if err != nil {
		return fmt.Errorf("reading %s: %w", target, err)
	}
	if !empty {
		tErr := &TargetNotEmptyError{Path: target, Display: display}
		logging.Fatal(ctx, in.logger, tErr.Error())
		return tErr
	}
	return nil
}

func isEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// populate fills target from the starter repository, or from the bundled assets
// when clone is false or the clone fails.
func (in *Initializer) populate(ctx context.Context, url, target string, clone bool) error {
	if !clone {
		return in.copyAssets(target)
	}

	err := in.cloner.Clone(ctx, git.ShallowTemplate(url, target))
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	in.logger.Warn("git clone failed. Copying data instead")
	in.logger.Debug("clone error", "error", err)

	// The folder was empty or missing before the clone; drop whatever a
	// partial clone left so the copy starts from the same state.
	if err := clearDir(target); err != nil {
		return fmt.Errorf("clearing %s after failed clone: %w", target, err)
	}
	return in.copyAssets(target)
}

func (in *Initializer) copyAssets(target string) error {
	in.progress.Start("Copying starter files")
	if err := assets.CopyFS(in.assets, target); err != nil {
		in.progress.Fail("Copying starter files")
		return fmt.Errorf("copying starter files to %s: %w", target, err)
	}
	in.progress.Success("Copied starter files")
	return nil
}

func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
