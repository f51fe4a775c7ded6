package output

import "io"

// LoggerInterface defines the CLI logging interface.
// This allows for dependency injection and easier testing.
type LoggerInterface interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Success(format string, args ...interface{})
	Bold(format string, args ...interface{})

	SetVerbose(verbose bool)
	SetNoColor(noColor bool)
	SetJSONMode(jsonMode bool)
	IsVerbose() bool

	Writer() io.Writer
	ErrWriter() io.Writer

	PrintCommandError(info *CommandErrorInfo)
}

// Verify that Logger implements LoggerInterface at compile time.
var _ LoggerInterface = (*Logger)(nil)
