// Package runner runs external commands (git, yarn, pnpm, npm) on behalf of the CLI.
// The Runner interface lets callers detect binaries on PATH and run them without
// depending on os/exec directly, so tests can substitute a recording mock.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external process invocation.
type Command struct {
	// Name is the executable to run (looked up on PATH).
	Name string
	// Args are the arguments passed to the executable.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// String renders the command as it would be typed in a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner detects and runs external commands.
type Runner interface {
	// LookPath reports whether name resolves to an executable on PATH.
	LookPath(name string) bool
	// Run executes cmd with its output attached to the runner's streams.
	Run(ctx context.Context, cmd Command) error
	// Output executes cmd and returns its trimmed stdout.
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExitError reports a command that started but exited with a non-zero status.
type ExitError struct {
	Command  Command
	ExitCode int
	Err      error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the executable could not be found.
func IsNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	// lookPath is swapped in tests.
	lookPath func(string) (string, error)
}

// Option configures an ExecRunner.
type Option func(*ExecRunner)

// WithStdout sets the writer that receives stdout from Run.
func WithStdout(w io.Writer) Option {
	return func(r *ExecRunner) {
		r.stdout = w
	}
}

// WithStderr sets the writer that receives stderr from Run and Output.
func WithStderr(w io.Writer) Option {
	return func(r *ExecRunner) {
		r.stderr = w
	}
}

// WithStdin sets the reader attached to stdin for Run.
func WithStdin(rd io.Reader) Option {
	return func(r *ExecRunner) {
		r.stdin = rd
	}
}

// WithLogger sets the logger used for debug output of each invocation.
func WithLogger(l *slog.Logger) Option {
	return func(r *ExecRunner) {
		r.logger = l
	}
}

// NewExecRunner creates an ExecRunner attached to the process's standard streams.
func NewExecRunner(opts ...Option) *ExecRunner {
	r := &ExecRunner{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		logger:   slog.Default(),
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LookPath reports whether name is an executable on PATH.
func (r *ExecRunner) LookPath(name string) bool {
	path, err := r.lookPath(name)
	r.logger.Debug("look path", "name", name, "path", path, "found", err == nil)
	return err == nil
}

// Run executes cmd with stdio attached to the runner's streams.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := r.command(ctx, cmd)
	c.Stdin = r.stdin
	c.Stdout = r.stdout
	c.Stderr = r.stderr

	r.logger.Debug("run", "cmd", cmd.String(), "dir", cmd.Dir)
	return wrapErr(cmd, c.Run())
}

// Output executes cmd and returns its stdout with surrounding whitespace removed.
func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := r.command(ctx, cmd)
	var stdout bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = r.stderr

	r.logger.Debug("output", "cmd", cmd.String(), "dir", cmd.Dir)
	if err := c.Run(); err != nil {
		return "", wrapErr(cmd, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (r *ExecRunner) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	return c
}

// wrapErr converts exec errors into ExitError when the process ran and failed.
func wrapErr(cmd Command, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: cmd, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return fmt.Errorf("starting %s: %w", cmd.Name, err)
}
