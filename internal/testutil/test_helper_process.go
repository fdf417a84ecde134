package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/guorant/hexo/internal/runner"
)

// HelperProcessConfig configures the behavior of TestHelperProcess.
type HelperProcessConfig struct {
	// ExitCode is the exit code to return (default 0).
	ExitCode int `json:"exit_code"`
	// Stdout is the content to write to stdout.
	Stdout string `json:"stdout"`
	// Stderr is the content to write to stderr.
	Stderr string `json:"stderr"`
	// EchoStdin copies stdin to stdout after Stdout is written.
	EchoStdin bool `json:"echo_stdin"`
}

// Environment variable names used by TestHelperProcess.
const (
	// EnvWantHelperProcess signals that the test binary should run as a helper process.
	EnvWantHelperProcess = "GO_WANT_HELPER_PROCESS"
	// EnvHelperProcessConfig contains JSON-encoded HelperProcessConfig.
	EnvHelperProcessConfig = "GO_HELPER_PROCESS_CONFIG"
)

// TestHelperProcess turns the test binary into a fake subprocess when
// GO_WANT_HELPER_PROCESS=1. Call it from a test function:
//
//	func TestHelperProcess(t *testing.T) {
//	    testutil.TestHelperProcess(t)
//	}
//
// Without the environment variable it returns immediately.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	config := HelperProcessConfig{}
	if raw := os.Getenv(EnvHelperProcessConfig); raw != "" {
		// Ignore parse errors; use defaults on failure
		_ = json.Unmarshal([]byte(raw), &config)
	}

	if config.Stdout != "" {
		fmt.Fprint(os.Stdout, config.Stdout)
	}
	if config.EchoStdin {
		_, _ = io.Copy(os.Stdout, os.Stdin)
	}
	if config.Stderr != "" {
		fmt.Fprint(os.Stderr, config.Stderr)
	}
	os.Exit(config.ExitCode)
}

// HelperCommand returns a runner.Command that re-executes the test binary as a
// helper process. The helper configuration is exported through t.Setenv, so
// tests using it must not call t.Parallel.
func HelperCommand(t *testing.T, testName string, config HelperProcessConfig, args ...string) runner.Command {
	t.Helper()

	testBinary, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}

	raw, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("encoding helper config: %v", err)
	}
	t.Setenv(EnvWantHelperProcess, "1")
	t.Setenv(EnvHelperProcessConfig, string(raw))

	return runner.Command{
		Name: testBinary,
		Args: append([]string{"-test.run=^" + testName + "$", "--"}, args...),
	}
}
