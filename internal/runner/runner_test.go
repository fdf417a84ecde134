package runner_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/guorant/hexo/internal/runner"
	"github.com/guorant/hexo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess is re-executed by the tests below as a fake subprocess.
func TestHelperProcess(t *testing.T) {
	testutil.TestHelperProcess(t)
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cmd  runner.Command
		want string
	}{
		"no args": {
			cmd:  runner.Command{Name: "npm"},
			want: "npm",
		},
		"with args": {
			cmd:  runner.Command{Name: "git", Args: []string{"clone", "--depth=1", "url", "dir"}},
			want: "git clone --depth=1 url dir",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}

func TestExecRunner_Run(t *testing.T) {
	tests := map[string]struct {
		config     testutil.HelperProcessConfig
		stdin      string
		wantErr    bool
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		"success streams stdout": {
			config:     testutil.HelperProcessConfig{Stdout: "added 42 packages"},
			wantStdout: "added 42 packages",
		},
		"stdin is attached": {
			config:     testutil.HelperProcessConfig{Stdout: "Username: ", EchoStdin: true},
			stdin:      "octocat\n",
			wantStdout: "Username: octocat\n",
		},
		"failure returns exit error": {
			config:     testutil.HelperProcessConfig{ExitCode: 128, Stderr: "fatal: repository not found"},
			wantErr:    true,
			wantCode:   128,
			wantStderr: "fatal: repository not found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			r := runner.NewExecRunner(
				runner.WithStdin(strings.NewReader(tt.stdin)),
				runner.WithStdout(&stdout),
				runner.WithStderr(&stderr),
			)
			cmd := testutil.HelperCommand(t, "TestHelperProcess", tt.config)

			err := r.Run(context.Background(), cmd)
			if tt.wantErr {
				var exitErr *runner.ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tt.wantCode, exitErr.ExitCode)
				assert.Equal(t, cmd, exitErr.Command)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}

func TestExecRunner_Output(t *testing.T) {
	r := runner.NewExecRunner(runner.WithStderr(&bytes.Buffer{}))
	cmd := testutil.HelperCommand(t, "TestHelperProcess", testutil.HelperProcessConfig{Stdout: "1.22.19\n"})

	out, err := r.Output(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, "1.22.19", out)
}

func TestExecRunner_Output_Failure(t *testing.T) {
	r := runner.NewExecRunner(runner.WithStderr(&bytes.Buffer{}))
	cmd := testutil.HelperCommand(t, "TestHelperProcess", testutil.HelperProcessConfig{Stdout: "partial", ExitCode: 1})

	out, err := r.Output(context.Background(), cmd)
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	r := runner.NewExecRunner()
	name := "hexo-definitely-not-installed-binary"

	assert.False(t, r.LookPath(name))

	err := r.Run(context.Background(), runner.Command{Name: name})
	require.Error(t, err)
	assert.True(t, runner.IsNotFound(err))

	var exitErr *runner.ExitError
	assert.False(t, errors.As(err, &exitErr), "spawn failures are not exit errors")
}

func TestExecRunner_CanceledContext(t *testing.T) {
	r := runner.NewExecRunner(runner.WithStderr(&bytes.Buffer{}))
	cmd := testutil.HelperCommand(t, "TestHelperProcess", testutil.HelperProcessConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, r.Run(ctx, cmd))
}
