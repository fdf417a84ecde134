// Package assets holds the starter site bundled into the hexo binary and copies
// asset trees into new site directories.
package assets

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// starterFS embeds the starter site. The all: prefix keeps dot-files and
// _-prefixed files such as _config.yml.
//
//go:embed all:starter
var starterFS embed.FS

// FS returns the bundled starter site rooted at its top directory.
func FS() fs.FS {
	sub, err := fs.Sub(starterFS, "starter")
	if err != nil {
		// starter is embedded at build time, so Sub cannot fail.
		panic(err)
	}
	return sub
}

// Dir returns an asset tree read from dir on disk, used when the bundled
// starter is overridden by configuration.
func Dir(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}
	return os.DirFS(dir), nil
}

// CopyFS copies every entry of src, hidden files included, into dst.
// dst is created if needed; existing files are overwritten.
// Directories are created 0o755; files keep their executable bit.
func CopyFS(src fs.FS, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	return fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}
		target := filepath.Join(dst, filepath.FromSlash(path))

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
			return nil
		case d.Type().IsRegular():
			return copyFile(src, path, target, d)
		default:
			// Symlinks and devices are not part of a starter tree.
			return nil
		}
	})
}

func copyFile(src fs.FS, path, target string, d fs.DirEntry) error {
	mode := fs.FileMode(0o644)
	if info, err := d.Info(); err == nil && info.Mode().Perm()&0o111 != 0 {
		mode = 0o755
	}

	in, err := src.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", path, err)
	}
	return out.Close()
}
