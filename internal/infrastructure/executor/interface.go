package executor

import (
	"context"
)

// CommandExecutor abstracts external process execution so toolchains can be
// tested without a compiler installed.
//
// Only the exit status of a command is meaningful to callers. The combined
// stdout/stderr is returned for display and is never parsed.
type CommandExecutor interface {
	// Execute runs name with args and blocks until the process exits.
	//
	// Returns:
	//   - Combined stdout and stderr output
	//   - *exec.ExitError if the command exits with a non-zero status
	//   - exec.Error if the command cannot be found or started
	//
	// The process is killed if ctx is cancelled.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecutorFunc adapts an ordinary function to CommandExecutor.
type ExecutorFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Execute calls f(ctx, name, args...).
func (f ExecutorFunc) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}
