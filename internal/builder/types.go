package builder

import (
	"fmt"
	"runtime"
	"time"

	"github.com/altuslabsxyz/objbuild/internal/paths"
)

// Config is the resolved configuration of one build.
type Config struct {
	BuildID    string   // generated when empty
	SourceDir  string   // directory scanned for compilation units
	BuildDir   string   // defaults to <SourceDir>.b
	SourceExt  string   // defaults to .cpp
	Executable string   // executable base name, defaults to "program"
	Jobs       int      // parallel compile tasks; 0 means runtime.NumCPU()
	UseShared  bool     // units import the shared std artifact
	ExtraArgs  []string // forwarded to every compile, never to link
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.SourceDir == "" {
		return &ConfigError{Field: "SourceDir", Message: "source directory is required"}
	}
	if c.Jobs < 0 {
		return &ConfigError{Field: "Jobs", Message: fmt.Sprintf("must not be negative, got %d", c.Jobs)}
	}
	return nil
}

// withDefaults returns a copy of c with empty fields filled in.
func (c Config) withDefaults() Config {
	if c.BuildDir == "" {
		c.BuildDir = paths.BuildDir(c.SourceDir)
	}
	if c.SourceExt == "" {
		c.SourceExt = paths.DefaultSourceExt
	}
	if c.Executable == "" {
		c.Executable = paths.ExecutableName
	}
	if c.Jobs == 0 {
		c.Jobs = runtime.NumCPU()
	}
	return c
}

// Result describes a successful build.
type Result struct {
	BuildID    string        `json:"build_id" yaml:"build_id"`
	Toolchain  string        `json:"toolchain" yaml:"toolchain"`
	SourceDir  string        `json:"source_dir" yaml:"source_dir"`
	BuildDir   string        `json:"build_dir" yaml:"build_dir"`
	Units      []string      `json:"units" yaml:"units"`
	Objects    []string      `json:"objects" yaml:"objects"` // in link order, shared artifact included
	Shared     string        `json:"shared,omitempty" yaml:"shared,omitempty"`
	Executable string        `json:"executable" yaml:"executable"`
	Jobs       int           `json:"jobs" yaml:"jobs"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
}
