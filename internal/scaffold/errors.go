package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrTargetNotEmpty is returned when the folder to initialize already has entries.
	ErrTargetNotEmpty = errors.New("target not empty")
	// ErrTargetNotDirectory is returned when the folder to initialize is a file.
	ErrTargetNotDirectory = errors.New("target is not a directory")
	// ErrCleanup wraps failures to strip git metadata from a populated site.
	ErrCleanup = errors.New("cleanup failed")
)

// TargetNotEmptyError names the non-empty folder. It matches ErrTargetNotEmpty.
type TargetNotEmptyError struct {
	// Path is the absolute folder.
	Path string
	// Display is Path with the home directory shortened to ~.
	Display string
}

func (e *TargetNotEmptyError) Error() string {
	return fmt.Sprintf("%s not empty, please run `hexo init` on an empty folder and then copy your files into it", e.Display)
}

func (e *TargetNotEmptyError) Unwrap() error {
	return ErrTargetNotEmpty
}

// TargetNotDirectoryError names a target path that is occupied by a file.
type TargetNotDirectoryError struct {
	Path    string
	Display string
}

func (e *TargetNotDirectoryError) Error() string {
	return fmt.Sprintf("%s is not a directory", e.Display)
}

func (e *TargetNotDirectoryError) Unwrap() error {
	return ErrTargetNotDirectory
}

// Tildify shortens a path under the home directory to ~/rest.
func Tildify(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	home = filepath.Clean(home)
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return path
}
