package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	herrors "github.com/guorant/hexo/internal/errors"
	"github.com/guorant/hexo/internal/runner"
	"github.com/guorant/hexo/internal/scaffold"
	"github.com/guorant/hexo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_Flags(t *testing.T) {
	t.Parallel()

	cmd, _, err := NewRootCmd().Find([]string{"init"})
	require.NoError(t, err)

	for _, name := range []string{"no-install", "no-clone", "repository"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s should exist", name)
	}
	assert.Equal(t, "r", cmd.Flags().Lookup("repository").Shorthand)
}

func TestInitCmd_CopiesBundledStarter(t *testing.T) {
	mock := testutil.NewMockRunnerBuilder(t).WithBinaries("git", "yarn").Build()
	base := t.TempDir()

	res := execute(t, mock, "init", "blog", "--no-clone", "--no-install", "--cwd", base)

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	target := filepath.Join(base, "blog")
	for _, name := range []string{"_config.yml", "package.json", ".gitignore", "scaffolds/post.md", "source/_posts/hello-world.md"} {
		assert.FileExists(t, filepath.Join(target, filepath.FromSlash(name)))
	}
	assert.NoDirExists(t, filepath.Join(target, ".git"))
	assert.Empty(t, mock.Executed(), "no subprocess")
	assert.Contains(t, res.stderr, "INFO  Cloning hexo-starter")
}

func TestInitCmd_ClonesRepositoryFlag(t *testing.T) {
	mock := testutil.NewMockRunnerBuilder(t).
		WithHook("git", func(cmd runner.Command) error {
			testutil.WriteFiles(t, cmd.Args[len(cmd.Args)-1], map[string]string{
				"_config.yml": "title: Custom\n",
				".git/HEAD":   "ref: refs/heads/main\n",
			})
			return nil
		}).
		Build()
	base := t.TempDir()

	res := execute(t, mock, "init", "blog", "-r", "https://example.com/starter.git", "--no-install", "--cwd", base)

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	calls := mock.CallsFor("git")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Command.Args, "https://example.com/starter.git")
	assert.Equal(t, map[string]string{"_config.yml": "title: Custom\n"}, testutil.ReadTree(t, filepath.Join(base, "blog")))
}

func TestInitCmd_InstallsWithDetectedManager(t *testing.T) {
	mock := testutil.NewMockRunnerBuilder(t).WithBinaries("pnpm").Build()
	base := t.TempDir()

	res := execute(t, mock, "init", "blog", "--no-clone", "--cwd", base)

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	executed := mock.Executed()
	require.Len(t, executed, 1)
	assert.Equal(t, scaffold.InstallCommand(scaffold.Pnpm, filepath.Join(base, "blog")), executed[0].Command)
	assert.Contains(t, res.stderr, "Start blogging with Hexo!")
}

func TestInitCmd_InstallFailureStillSucceeds(t *testing.T) {
	mock := testutil.NewMockRunnerBuilder(t).WithError("npm", &runner.ExitError{ExitCode: 1}).Build()
	base := t.TempDir()

	res := execute(t, mock, "init", "blog", "--no-clone", "--cwd", base)

	assert.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stderr, "WARN  Failed to install dependencies")
}

func TestInitCmd_TargetNotEmpty(t *testing.T) {
	mock := testutil.NewMockRunnerBuilder(t).Build()
	base := t.TempDir()
	testutil.WriteFiles(t, base, map[string]string{"blog/index.md": "hi\n"})

	res := execute(t, mock, "init", "blog", "--cwd", base)

	assert.Equal(t, ExitTargetNotEmpty, res.code)
	assert.Contains(t, res.stderr, "FATAL")
	assert.Equal(t, 1, strings.Count(res.stderr, "not empty"), "reported once: %s", res.stderr)
	assert.NotContains(t, res.stderr, "Prerequisite Error")
	assert.Empty(t, mock.Executed())
	assert.Equal(t, map[string]string{"index.md": "hi\n"}, testutil.ReadTree(t, filepath.Join(base, "blog")))
}

func TestInitCmd_TargetIsFile(t *testing.T) {
	mock := testutil.NewMockRunnerBuilder(t).Build()
	base := t.TempDir()
	testutil.WriteFiles(t, base, map[string]string{"blog": "file\n"})

	res := execute(t, mock, "init", "blog", "--cwd", base)

	assert.Equal(t, ExitFailure, res.code)
	assert.Equal(t, 1, strings.Count(res.stderr, "is not a directory"), "reported once: %s", res.stderr)
	assert.Empty(t, mock.Executed())
}

func TestInitCmd_TooManyArguments(t *testing.T) {
	res := execute(t, testutil.NewMockRunnerBuilder(t).Build(), "init", "a", "b", "c")

	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "accepts at most 2 arguments, received 3")
	assert.Contains(t, res.stderr, "Usage:")
}

func TestInitCmd_Config(t *testing.T) {
	assetDir := t.TempDir()
	testutil.WriteFiles(t, assetDir, map[string]string{"custom.md": "from asset_dir\n"})

	tests := map[string]struct {
		config   string
		wantCode int
		wantErr  string
		wantTree map[string]string
	}{
		"config disables clone and install": {
			config:   "clone: false\ninstall: false\nasset_dir: " + assetDir + "\n",
			wantCode: ExitSuccess,
			wantTree: map[string]string{"custom.md": "from asset_dir\n"},
		},
		"unknown git backend": {
			config:   "git:\n  backend: svn\n",
			wantCode: ExitConfig,
			wantErr:  "Configuration Error",
		},
		"invalid yaml": {
			config:   "clone: [\n",
			wantCode: ExitConfig,
			wantErr:  "failed to load config",
		},
		"missing asset dir": {
			config:   "clone: false\nasset_dir: " + filepath.Join(assetDir, "missing") + "\n",
			wantCode: ExitConfig,
			wantErr:  "asset directory not found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			mock := testutil.NewMockRunnerBuilder(t).Build()
			base := t.TempDir()
			testutil.WriteFiles(t, base, map[string]string{"_hexo.yml": tt.config})

			res := execute(t, mock, "init", "blog", "--cwd", base)

			assert.Equal(t, tt.wantCode, res.code, res.stderr)
			if tt.wantErr != "" {
				assert.Contains(t, res.stderr, tt.wantErr)
			}
			if tt.wantTree != nil {
				assert.Equal(t, tt.wantTree, testutil.ReadTree(t, filepath.Join(base, "blog")))
				assert.Empty(t, mock.Executed())
			}
		})
	}
}

func TestInitCmd_ExplicitConfigFlag(t *testing.T) {
	base := t.TempDir()
	configPath := filepath.Join(t.TempDir(), "site.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("repository_url: https://example.com/from-config.git\ninstall: false\n"), 0o644))
	mock := testutil.NewMockRunnerBuilder(t).Build()

	res := execute(t, mock, "init", "blog", "--cwd", base, "--config", configPath)

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	calls := mock.CallsFor("git")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Command.Args, "https://example.com/from-config.git")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	notEmpty := &scaffold.TargetNotEmptyError{Path: "/tmp/blog", Display: "/tmp/blog"}
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":                {err: nil, want: ExitSuccess},
		"target not empty":   {err: notEmpty, want: ExitTargetNotEmpty},
		"wrapped not empty":  {err: herrors.TargetNotEmpty("/tmp/blog", notEmpty), want: ExitTargetNotEmpty},
		"configuration":      {err: herrors.InvalidGitBackend("svn"), want: ExitConfig},
		"wrapped config":     {err: fmt.Errorf("loading: %w", herrors.AssetDirNotFound("x")), want: ExitConfig},
		"argument":           {err: herrors.TooManyArguments(3), want: ExitFailure},
		"plain":              {err: errors.New("boom"), want: ExitFailure},
		"cleanup is runtime": {err: herrors.CleanupFailed("/tmp/blog", scaffold.ErrCleanup), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestInitError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          error
		wantCategory herrors.ErrorCategory
		wantMessage  string
	}{
		"not empty": {
			err:          &scaffold.TargetNotEmptyError{Path: "/home/u/blog", Display: "~/blog"},
			wantCategory: herrors.Prerequisite,
			wantMessage:  "~/blog not empty",
		},
		"not a directory": {
			err:          &scaffold.TargetNotDirectoryError{Path: "/srv/blog", Display: "/srv/blog"},
			wantCategory: herrors.Prerequisite,
			wantMessage:  "/srv/blog is not a directory",
		},
		"cleanup": {
			err:          fmt.Errorf("%w: %w", scaffold.ErrCleanup, errors.New("permission denied")),
			wantCategory: herrors.Runtime,
			wantMessage:  "failed to clean up /srv/blog",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := herrors.AsCLIError(initError("/srv/blog", tt.err))
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Contains(t, got.Message, tt.wantMessage)
			assert.True(t, errors.Is(got, tt.err))
		})
	}

	cause := errors.New("disk full")
	plain := herrors.AsCLIError(initError("/srv/blog", cause))
	require.NotNil(t, plain)
	assert.Equal(t, herrors.Runtime, plain.Category)
	assert.Equal(t, "disk full", plain.Message)
	assert.NotEmpty(t, plain.Remediation)
	assert.True(t, errors.Is(plain, cause))
}
