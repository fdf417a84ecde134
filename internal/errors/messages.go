package errors

import "fmt"

// Common error messages for the hexo CLI.

// TargetNotEmpty creates an error for an init target that already has content.
// path should be the display form of the directory (e.g. "~/blog").
func TargetNotEmpty(path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("%s not empty", path),
		Remediation: []string{
			"Run 'hexo init' on an empty folder and then copy your files into it",
			"Or pass a new directory: hexo init <folder>",
		},
		Err: cause,
	}
}

// TargetNotDirectory creates an error for an init target that is a regular file.
func TargetNotDirectory(path string, cause error) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Message:  fmt.Sprintf("%s is not a directory", path),
		Remediation: []string{
			"Choose a folder name that does not clash with an existing file",
		},
		Err: cause,
	}
}

// TooManyArguments creates an error for extra positional arguments to init.
func TooManyArguments(got int) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("accepts at most 2 arguments, received %d", got),
		"hexo init [<repository-url>] [<folder>]",
		"Pass the template repository first and the folder second",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("failed to load config: %s", path),
		"Check the file for YAML syntax errors",
		"Remove the file to fall back to defaults",
	)
}

// InvalidGitBackend creates an error for an unknown git.backend value.
func InvalidGitBackend(backend string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("unknown git backend %q", backend),
		"Set git.backend to 'cli' or 'go-git'",
		"Or unset HEXO_GIT_BACKEND",
	)
}

// AssetDirNotFound creates an error when the configured asset directory is missing.
func AssetDirNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("asset directory not found: %s", path),
		"Fix asset_dir in your config or remove it to use the bundled starter",
	)
}

// CleanupFailed creates an error when version-control metadata could not be removed.
func CleanupFailed(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("failed to clean up %s", path),
		"Check file permissions: ls -la "+path,
		"Remove the .git folders manually before committing the new site",
	)
}
