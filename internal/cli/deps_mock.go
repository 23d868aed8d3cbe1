package cli

import (
	"github.com/spf13/afero"

	"github.com/PiliPili-Team/emby-proxy-cli/internal/executor"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/fsops"
	"github.com/PiliPili-Team/emby-proxy-cli/internal/input"
)

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
	fs   afero.Fs
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults:
// empty stdin, a recording executor, and an in-memory filesystem.
func NewMockDeps() *MockDependenciesBuilder {
	fs := afero.NewMemMapFs()
	b := &MockDependenciesBuilder{
		deps: &Dependencies{
			Reader:   input.NewStringReader(),
			Executor: &executor.MockExecutor{},
		},
		fs: fs,
	}
	b.deps.NewWriter = func(dryRun bool) *fsops.Writer {
		return fsops.NewWithFs(fs, dryRun)
	}
	return b
}

// WithStdinInput scripts the interactive input, one string per line
// (each including its trailing newline)
func (b *MockDependenciesBuilder) WithStdinInput(inputs ...string) *MockDependenciesBuilder {
	b.deps.Reader = input.NewStringReader(inputs...)
	return b
}

// WithExecutor sets the executor for the mock
func (b *MockDependenciesBuilder) WithExecutor(exec executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = exec
	return b
}

// WithFs sets the filesystem backing NewWriter
func (b *MockDependenciesBuilder) WithFs(fs afero.Fs) *MockDependenciesBuilder {
	b.fs = fs
	b.deps.NewWriter = func(dryRun bool) *fsops.Writer {
		return fsops.NewWithFs(fs, dryRun)
	}
	return b
}

// Fs returns the filesystem backing NewWriter
func (b *MockDependenciesBuilder) Fs() afero.Fs {
	return b.fs
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// installMockDeps swaps the package dependencies for the test's and
// restores the originals on cleanup.
func installMockDeps(t interface {
	Helper()
	Cleanup(func())
}, b *MockDependenciesBuilder) {
	t.Helper()
	old := deps
	SetDeps(b.Build())
	t.Cleanup(func() {
		deps = old
	})
}
