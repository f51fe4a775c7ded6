package executor

import (
	"context"
	"io"
	"os/exec"
	"sync"
)

// OSCommandExecutor implements CommandExecutor using the os/exec package.
//
// Output of each finished command is copied to Output as a single block, so
// diagnostics from compile tasks running in parallel do not interleave.
//
// Usage in production:
//
//	exec := executor.NewOSCommandExecutor(os.Stderr)
//	out, err := exec.Execute(ctx, "c++", "-c", "-o", "a.o", "a.cpp")
type OSCommandExecutor struct {
	output io.Writer
	mu     sync.Mutex
}

// NewOSCommandExecutor creates a command executor that echoes process output
// to out. A nil out discards it.
func NewOSCommandExecutor(out io.Writer) *OSCommandExecutor {
	if out == nil {
		out = io.Discard
	}
	return &OSCommandExecutor{output: out}
}

// Execute runs the command through exec.CommandContext and returns its
// combined output.
func (e *OSCommandExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if len(out) > 0 {
		e.mu.Lock()
		_, _ = e.output.Write(out)
		e.mu.Unlock()
	}
	return out, err
}

// Ensure OSCommandExecutor implements CommandExecutor.
var _ CommandExecutor = (*OSCommandExecutor)(nil)
