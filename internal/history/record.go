package history

import "time"

// Build outcomes.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Record describes one finished build, successful or not.
type Record struct {
	ID         string        `json:"id" yaml:"id"`
	SourceDir  string        `json:"source_dir" yaml:"source_dir"`
	Toolchain  string        `json:"toolchain" yaml:"toolchain"`
	Jobs       int           `json:"jobs" yaml:"jobs"`
	Units      int           `json:"units" yaml:"units"`
	Shared     bool          `json:"shared" yaml:"shared"`
	Status     string        `json:"status" yaml:"status"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
	Executable string        `json:"executable,omitempty" yaml:"executable,omitempty"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// Succeeded reports whether the build produced an executable.
func (r *Record) Succeeded() bool {
	return r.Status == StatusSucceeded
}
