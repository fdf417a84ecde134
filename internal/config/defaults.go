package config

// DefaultRepositoryURL is the starter template cloned by 'hexo init'.
const DefaultRepositoryURL = "https://github.com/guorant/hexo-site.git"

// DefaultPackageManagers is the detection order used for dependency installation.
var DefaultPackageManagers = []string{"yarn", "pnpm", "npm"}

// GetDefaults returns the default configuration values keyed by koanf path.
func GetDefaults() map[string]interface{} {
	managers := make([]string, len(DefaultPackageManagers))
	copy(managers, DefaultPackageManagers)

	return map[string]interface{}{
		"repository_url":   DefaultRepositoryURL,
		"asset_dir":        "",
		"install":          true,
		"clone":            true,
		"git.backend":      "cli",
		"package_managers": managers,
	}
}
