// Package prereq checks that the external tools a build needs are available.
package prereq

import (
	"fmt"
	"os"
	"os/exec"
)

// PrereqResult contains the result of a prerequisite check.
type PrereqResult struct {
	Name       string `json:"name" yaml:"name"`
	Required   bool   `json:"required" yaml:"required"`
	Found      bool   `json:"found" yaml:"found"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

type check struct {
	name       string
	target     string
	isFile     bool
	required   bool
	suggestion string
}

// Checker performs prerequisite checks.
type Checker struct {
	lookPath func(string) (string, error)
	checks   []check
	results  []PrereqResult
}

// NewChecker creates a new prerequisite Checker that resolves commands
// through PATH.
func NewChecker() *Checker {
	return &Checker{lookPath: exec.LookPath}
}

// WithLookPath replaces the PATH lookup, for tests.
func (c *Checker) WithLookPath(fn func(string) (string, error)) *Checker {
	c.lookPath = fn
	return c
}

// RequireCommand marks an executable as required.
func (c *Checker) RequireCommand(name, suggestion string) *Checker {
	c.checks = append(c.checks, check{name: name, target: name, required: true, suggestion: suggestion})
	return c
}

// RequireFile marks a file as required.
func (c *Checker) RequireFile(name, path, suggestion string) *Checker {
	c.checks = append(c.checks, check{name: name, target: path, isFile: true, required: true, suggestion: suggestion})
	return c
}

// Check performs all prerequisite checks and returns the results. The error
// names the first required check that failed.
func (c *Checker) Check() ([]PrereqResult, error) {
	c.results = make([]PrereqResult, 0, len(c.checks))
	for _, ch := range c.checks {
		if ch.isFile {
			c.results = append(c.results, c.checkFile(ch))
		} else {
			c.results = append(c.results, c.checkCommand(ch))
		}
	}

	for _, result := range c.results {
		if result.Required && !result.Found {
			return c.results, fmt.Errorf("prerequisite not met: %s - %s", result.Name, result.Message)
		}
	}
	return c.results, nil
}

func (c *Checker) checkCommand(ch check) PrereqResult {
	result := PrereqResult{Name: ch.name, Required: ch.required}

	path, err := c.lookPath(ch.target)
	if err != nil {
		result.Message = fmt.Sprintf("%s is not installed or not in PATH", ch.target)
		result.Suggestion = ch.suggestion
		return result
	}
	result.Found = true
	result.Path = path
	result.Message = fmt.Sprintf("%s is available", ch.target)
	return result
}

func (c *Checker) checkFile(ch check) PrereqResult {
	result := PrereqResult{Name: ch.name, Required: ch.required, Path: ch.target}

	info, err := os.Stat(ch.target)
	if err != nil || info.IsDir() {
		result.Message = fmt.Sprintf("%s not found", ch.target)
		result.Suggestion = ch.suggestion
		return result
	}
	result.Found = true
	result.Message = fmt.Sprintf("%s exists", ch.target)
	return result
}

// AllPassed returns true if all required checks passed.
func (c *Checker) AllPassed() bool {
	return len(c.FailedChecks()) == 0
}

// FailedChecks returns only the failed required checks.
func (c *Checker) FailedChecks() []PrereqResult {
	failed := make([]PrereqResult, 0)
	for _, result := range c.results {
		if result.Required && !result.Found {
			failed = append(failed, result)
		}
	}
	return failed
}
