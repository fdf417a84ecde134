package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/guorant/hexo/internal/runner"
	"github.com/guorant/hexo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// execute runs the command tree against mock with an isolated user config dir.
// Callers must not be parallel: the user config dir is set through the environment.
func execute(t *testing.T, mock runner.Runner, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := newRootCmd(&rootOptions{
		newRunner: func(io.Reader, io.Writer, io.Writer, *slog.Logger) runner.Runner { return mock },
	})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	code := run(context.Background(), cmd)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	assert.Equal(t, "hexo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotEmpty(t, cmd.Example)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	for _, name := range []string{"debug", "config", "cwd"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s should exist", name)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args []string
		want string
	}{
		"init":          {args: []string{"init"}, want: "init"},
		"version":       {args: []string{"version"}, want: "version"},
		"version alias": {args: []string{"v"}, want: "version"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			found, _, err := NewRootCmd().Find(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, found.Name())
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	res := execute(t, testutil.NewMockRunnerBuilder(t).Build(), "deploy")

	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "unknown command")
}

func TestRun_DebugFlagEnablesDebugLogs(t *testing.T) {
	mock := testutil.NewMockRunnerBuilder(t).WithBinaries("yarn").WithOutput("yarn", "4.0.2").Build()
	base := t.TempDir()

	res := execute(t, mock, "init", "blog", "--no-clone", "--cwd", base, "--debug")

	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "DEBUG")
	assert.Contains(t, res.stderr, "yarn_version=4.0.2")
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args []string
	}{
		"plain":  {args: []string{"version", "--plain"}},
		"styled": {args: []string{"version"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cmd := NewRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			assert.Contains(t, out.String(), "hexo")
			assert.Contains(t, out.String(), "dev")
			assert.Contains(t, out.String(), "platform:")
		})
	}
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"version", "extra"})
	assert.Error(t, cmd.Execute())
}
