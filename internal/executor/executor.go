package executor

import (
	"os"
	"os/exec"
	"strings"
)

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Execute runs a command with the given name and arguments and
	// returns its combined output
	Execute(name string, args ...string) ([]byte, error)

	// Run runs a command with extra environment variables, streaming
	// stdout and stderr to the terminal. Used for long-running tools
	// like acme.sh whose progress the user should see live.
	Run(name string, env []string, args ...string) error

	// RunWithInput runs a command with the given stdin contents
	RunWithInput(input string, name string, args ...string) error

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

// Run runs a command with inherited stdio and extra environment variables
func (e *SystemExecutor) Run(name string, env []string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// RunWithInput runs a command feeding input on stdin
func (e *SystemExecutor) RunWithInput(input string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc  func(name string, args ...string) ([]byte, error)
	RunFunc      func(name string, env []string, args ...string) error
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name  string
	Args  []string
	Env   []string
	Input string
}

// Execute calls the mock function
func (m *MockExecutor) Execute(name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// Run calls the mock function
func (m *MockExecutor) Run(name string, env []string, args ...string) error {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args, Env: env})
	if m.RunFunc != nil {
		return m.RunFunc(name, env, args...)
	}
	return nil
}

// RunWithInput records the call and delegates to RunFunc
func (m *MockExecutor) RunWithInput(input string, name string, args ...string) error {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args, Input: input})
	if m.RunFunc != nil {
		return m.RunFunc(name, nil, args...)
	}
	return nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}
