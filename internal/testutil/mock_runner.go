// Package testutil provides test utilities and helpers for hexo tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/guorant/hexo/internal/runner"
)

// CallRecord captures a single invocation made through a MockRunner.
type CallRecord struct {
	// Method is "LookPath", "Run" or "Output".
	Method    string
	Command   runner.Command
	Timestamp time.Time
	// Response is the stdout returned by Output.
	Response string
	Error    error
}

// Response configures what the mock returns for a given command name.
type Response struct {
	Output string
	Err    error
	// Hook runs before the response is returned, e.g. to create files the
	// real command would have produced.
	Hook func(cmd runner.Command) error
}

// MockRunner is a runner.Runner that records calls and returns canned responses.
// It is safe for concurrent use.
type MockRunner struct {
	mu        sync.Mutex
	binaries  map[string]bool
	responses map[string]Response
	calls     []CallRecord
}

var _ runner.Runner = (*MockRunner)(nil)

// MockRunnerBuilder builds a MockRunner fluently.
type MockRunnerBuilder struct {
	t    *testing.T
	mock *MockRunner
}

// NewMockRunnerBuilder starts a builder for a MockRunner with no binaries on PATH.
func NewMockRunnerBuilder(t *testing.T) *MockRunnerBuilder {
	t.Helper()
	return &MockRunnerBuilder{
		t: t,
		mock: &MockRunner{
			binaries:  make(map[string]bool),
			responses: make(map[string]Response),
		},
	}
}

// WithBinaries marks the given executables as present on PATH.
func (b *MockRunnerBuilder) WithBinaries(names ...string) *MockRunnerBuilder {
	for _, name := range names {
		b.mock.binaries[name] = true
	}
	return b
}

// WithOutput makes Output return out for commands named name.
func (b *MockRunnerBuilder) WithOutput(name, out string) *MockRunnerBuilder {
	resp := b.mock.responses[name]
	resp.Output = out
	b.mock.responses[name] = resp
	return b
}

// WithError makes Run and Output fail with err for commands named name.
func (b *MockRunnerBuilder) WithError(name string, err error) *MockRunnerBuilder {
	resp := b.mock.responses[name]
	resp.Err = err
	b.mock.responses[name] = resp
	return b
}

// WithHook registers a function executed for every call to a command named name.
func (b *MockRunnerBuilder) WithHook(name string, hook func(cmd runner.Command) error) *MockRunnerBuilder {
	resp := b.mock.responses[name]
	resp.Hook = hook
	b.mock.responses[name] = resp
	return b
}

// Build returns the configured MockRunner. When the test fails, the recorded
// calls are logged as YAML.
func (b *MockRunnerBuilder) Build() *MockRunner {
	b.t.Helper()
	t, mock := b.t, b.mock
	t.Cleanup(func() {
		if !t.Failed() {
			return
		}
		if data, err := FormatCallLog(mock.GetCalls()); err == nil {
			t.Logf("runner calls:\n%s", data)
		}
	})
	return mock
}

// LookPath reports whether name was registered with WithBinaries.
func (m *MockRunner) LookPath(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, CallRecord{
		Method:    "LookPath",
		Command:   runner.Command{Name: name},
		Timestamp: time.Now(),
	})
	return m.binaries[name]
}

// Run records cmd and returns the configured error, if any.
func (m *MockRunner) Run(ctx context.Context, cmd runner.Command) error {
	_, err := m.call(ctx, "Run", cmd)
	return err
}

// Output records cmd and returns the configured output and error.
func (m *MockRunner) Output(ctx context.Context, cmd runner.Command) (string, error) {
	return m.call(ctx, "Output", cmd)
}

func (m *MockRunner) call(ctx context.Context, method string, cmd runner.Command) (string, error) {
	m.mu.Lock()
	resp := m.responses[cmd.Name]
	m.mu.Unlock()

	var out string
	err := ctx.Err()
	if err == nil && resp.Hook != nil {
		err = resp.Hook(cmd)
	}
	if err == nil {
		err = resp.Err
	}
	if err == nil && method == "Output" {
		out = resp.Output
	}

	m.mu.Lock()
	m.calls = append(m.calls, CallRecord{
		Method:    method,
		Command:   cmd,
		Timestamp: time.Now(),
		Response:  out,
		Error:     err,
	})
	m.mu.Unlock()
	return out, err
}

// GetCalls returns a copy of every recorded call in order.
func (m *MockRunner) GetCalls() []CallRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]CallRecord, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Executed returns the Run and Output calls, skipping PATH lookups.
func (m *MockRunner) Executed() []CallRecord {
	var out []CallRecord
	for _, c := range m.GetCalls() {
		if c.Method != "LookPath" {
			out = append(out, c)
		}
	}
	return out
}

// CallsFor returns the executed calls whose command name equals name.
func (m *MockRunner) CallsFor(name string) []CallRecord {
	var out []CallRecord
	for _, c := range m.Executed() {
		if c.Command.Name == name {
			out = append(out, c)
		}
	}
	return out
}
