package toolchain

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// UnsupportedModeError is returned when a toolchain is asked for a build mode
// it does not implement. It is terminal for the whole build.
type UnsupportedModeError struct {
	Toolchain string
	Mode      string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("toolchain %s does not support %s mode", e.Toolchain, e.Mode)
}

// IsUnsupportedMode returns true if err is or wraps an UnsupportedModeError.
func IsUnsupportedMode(err error) bool {
	var target *UnsupportedModeError
	return errors.As(err, &target)
}

// ExternalProcessError is returned when a compiler or linker invocation fails.
type ExternalProcessError struct {
	Operation string // "compile", "link" or "compile shared"
	Command   string
	Args      []string
	ExitCode  int // -1 when the process never ran
	Err       error
}

func (e *ExternalProcessError) Error() string {
	cmdline := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s failed: %s exited with status %d", e.Operation, cmdline, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %s: %v", e.Operation, cmdline, e.Err)
}

func (e *ExternalProcessError) Unwrap() error {
	return e.Err
}

// IsExternalProcess returns true if err is or wraps an ExternalProcessError.
func IsExternalProcess(err error) bool {
	var target *ExternalProcessError
	return errors.As(err, &target)
}

func newProcessError(op, name string, args []string, err error) *ExternalProcessError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ExternalProcessError{
		Operation: op,
		Command:   name,
		Args:      args,
		ExitCode:  code,
		Err:       err,
	}
}
