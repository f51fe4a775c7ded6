package toolchain

import (
	"context"
	"log/slog"

	"github.com/altuslabsxyz/objbuild/internal/infrastructure/executor"
)

// DefaultUnixCompiler is the compiler driver used when none is configured.
var DefaultUnixCompiler = []string{"c++"}

// Direct is a Unix-style toolchain where one driver both compiles and links.
// It has no support for the shared artifact.
type Direct struct {
	driver    []string
	exeSuffix string
	exec      executor.CommandExecutor
	logger    *slog.Logger
}

// DirectOptions configures a Direct toolchain.
type DirectOptions struct {
	Driver    []string // compiler driver and leading args, e.g. ["ccache", "c++"]
	ExeSuffix string
	Executor  executor.CommandExecutor
	Logger    *slog.Logger
}

// NewDirect creates a Direct toolchain.
func NewDirect(opts DirectOptions) *Direct {
	driver := opts.Driver
	if len(driver) == 0 {
		driver = DefaultUnixCompiler
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Direct{
		driver:    driver,
		exeSuffix: opts.ExeSuffix,
		exec:      opts.Executor,
		logger:    logger,
	}
}

// Name returns "unix".
func (d *Direct) Name() string { return "unix" }

// SupportsSharedArtifact returns false.
func (d *Direct) SupportsSharedArtifact() bool { return false }

// Tools returns the executables this toolchain invokes.
func (d *Direct) Tools() []string { return []string{d.driver[0]} }

// Compile runs `<driver> -Wall -c -o <object> <unit> <extra...>`.
func (d *Direct) Compile(ctx context.Context, req CompileRequest) (Artifacts, error) {
	if req.UseShared {
		return Artifacts{}, &UnsupportedModeError{Toolchain: d.Name(), Mode: ModeSharedArtifact}
	}

	args := append([]string{}, d.driver[1:]...)
	args = append(args, "-Wall", "-c", "-o", req.Object, req.Unit)
	args = append(args, req.ExtraArgs...)

	d.logger.Debug("compiling", "unit", req.Unit, "object", req.Object)
	if _, err := d.exec.Execute(ctx, d.driver[0], args...); err != nil {
		return Artifacts{}, newProcessError("compile", d.driver[0], args, err)
	}
	return Artifacts{Object: req.Object}, nil
}

// Link runs `<driver> -o <exe> <objects...>`.
func (d *Direct) Link(ctx context.Context, req LinkRequest) (string, error) {
	return linkReplacing(req.Output+d.exeSuffix, func(tmp string) error {
		args := append([]string{}, d.driver[1:]...)
		args = append(args, "-o", tmp)
		args = append(args, req.Objects...)

		d.logger.Debug("linking", "objects", len(req.Objects), "output", tmp)
		if _, err := d.exec.Execute(ctx, d.driver[0], args...); err != nil {
			return newProcessError("link", d.driver[0], args, err)
		}
		return nil
	})
}

var _ Toolchain = (*Direct)(nil)
