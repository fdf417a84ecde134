package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigFile is the name of the per-site config file read from the base directory.
const ProjectConfigFile = "_hexo.yml"

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/hexo/config.yml
// - macOS: ~/Library/Application Support/hexo/config.yml
// - Windows: %APPDATA%\hexo\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "hexo"), nil
}

// ProjectConfigPath returns the project-level config file inside baseDir.
// An empty baseDir means the current directory.
func ProjectConfigPath(baseDir string) string {
	return filepath.Join(baseDir, ProjectConfigFile)
}
