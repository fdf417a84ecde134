// Package config provides hierarchical configuration for hexo using koanf.
// Configuration is loaded with priority: environment variables (HEXO_*) > project config
// (_hexo.yml in the site's base directory) > user config (~/.config/hexo/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "HEXO_"

// Configuration represents the hexo CLI configuration.
type Configuration struct {
	// RepositoryURL is the starter template cloned by 'hexo init' when no URL is given.
	RepositoryURL string `koanf:"repository_url" validate:"required"`

	// AssetDir replaces the bundled starter site used when cloning is skipped or fails.
	// Empty uses the starter compiled into the binary.
	AssetDir string `koanf:"asset_dir"`

	// Install runs the package manager after populating the site.
	Install bool `koanf:"install"`
	// Clone populates the site from RepositoryURL instead of the bundled assets.
	Clone bool `koanf:"clone"`

	Git GitConfig `koanf:"git"`

	// PackageManagers is the detection order for dependency installation.
	PackageManagers []string `koanf:"package_managers" validate:"required,min=1,dive,oneof=yarn pnpm npm"`
}

// GitConfig selects how starter repositories are cloned.
type GitConfig struct {
	// Backend is "cli" (git binary) or "go-git" (in-process).
	Backend string `koanf:"backend" validate:"oneof=cli go-git"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// BaseDir is the directory searched for the project config (default: current directory).
	BaseDir string
	// ProjectConfigPath overrides the project config path (default: <BaseDir>/_hexo.yml).
	ProjectConfigPath string
	// UserConfigPath overrides the user config path. Used by tests.
	UserConfigPath string
	// SkipUserConfig ignores the user-level config entirely.
	SkipUserConfig bool
}

// LoadWithOptions loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		p, err := UserConfigPath()
		if err != nil {
			// No resolvable config dir (e.g. $HOME unset); defaults still apply.
			return nil
		}
		path = p
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project-level config. An explicit path must exist;
// the default _hexo.yml is optional.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions) error {
	path := opts.ProjectConfigPath
	explicit := path != ""
	if !explicit {
		path = ProjectConfigPath(opts.BaseDir)
	}

	if !fileExists(path) {
		if explicit {
			return &ValidationError{FilePath: path, Message: "file not found"}
		}
		return nil
	}
	if err := loadYAMLConfig(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
// HEXO_PACKAGE_MANAGERS is a comma-separated list.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	provider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = envTransform(key)
		if key == "package_managers" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, err
	}

	cfg.AssetDir = expandHomePath(cfg.AssetDir)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: HEXO_GIT_BACKEND -> git.backend, HEXO_REPOSITORY_URL -> repository_url
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range []string{"git"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
