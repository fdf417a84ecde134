package scaffold

import (
	"context"
	"fmt"
	"strings"

	"github.com/guorant/hexo/internal/runner"
)

// Package managers known to InstallCommand.
const (
	Yarn = "yarn"
	Pnpm = "pnpm"
	Npm  = "npm"
)

// InstallCommand returns the production install command of manager, run in dir.
func InstallCommand(manager, dir string) runner.Command {
	var args []string
	switch manager {
	case Yarn:
		args = []string{"install", "--ignore-optional", "--silent"}
	case Pnpm:
		args = []string{"install", "--prod", "--no-optional", "--silent"}
	default:
		manager = Npm
		args = []string{"install", "--only=production", "--optional=false", "--silent"}
	}
	return runner.Command{Name: manager, Args: args, Dir: dir}
}

// DetectPackageManager returns the first configured manager found on PATH, or npm.
func (in *Initializer) DetectPackageManager() string {
	for _, name := range in.packageManagers {
		if in.runner.LookPath(name) {
			return name
		}
	}
	return Npm
}

// install installs dependencies in target. Failure is reported, never returned.
func (in *Initializer) install(ctx context.Context, target string) {
	if err := in.installDependencies(ctx, target); err != nil {
		in.logger.Debug("install failed", "error", err)
		in.logger.Warn(fmt.Sprintf("Failed to install dependencies. Please run 'npm install' in \"%s\" folder.", target))
		return
	}
	in.logger.Info("Start blogging with Hexo!")
}

func (in *Initializer) installDependencies(ctx context.Context, target string) error {
	manager := in.DetectPackageManager()

	if manager == Yarn {
		in.progress.Start("Checking yarn version")
		version, err := in.runner.Output(ctx, runner.Command{Name: Yarn, Args: []string{"--version"}, Dir: target})
		in.progress.Stop()
		if err != nil {
			return err
		}
		if !strings.HasPrefix(version, "1") {
			in.logger.Debug("Skipping yarn without classic install flags, using npm", "yarn_version", version)
			manager = Npm
		}
	}

	return in.runner.Run(ctx, InstallCommand(manager, target))
}
