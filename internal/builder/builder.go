// Package builder compiles a directory of compilation units and links them
// into one executable.
package builder

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/altuslabsxyz/objbuild/internal/paths"
	"github.com/altuslabsxyz/objbuild/internal/toolchain"
)

// ProgressFunc is called from compile workers after each unit compiles.
type ProgressFunc func(unit string, total int)

// Builder runs builds against an already selected toolchain.
type Builder struct {
	tc       toolchain.Toolchain
	cfg      Config
	logger   *slog.Logger
	progress ProgressFunc
}

// New creates a Builder. The configuration is validated by Build.
func New(tc toolchain.Toolchain, cfg Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{tc: tc, cfg: cfg, logger: logger}
}

// OnUnitCompiled registers fn to be called after each successful compile.
// fn must be safe for concurrent use.
func (b *Builder) OnUnitCompiled(fn ProgressFunc) *Builder {
	b.progress = fn
	return b
}

// Build compiles every unit of the source directory and links them.
//
// Any compile or link failure aborts the build. Artifacts written before the
// failure stay in the build directory, and a previous executable is left
// untouched.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	cfg := b.cfg.withDefaults()
	if cfg.BuildID == "" {
		cfg.BuildID = uuid.NewString()
	}
	started := time.Now()
	logger := b.logger.With("buildID", cfg.BuildID)

	if cfg.UseShared && !b.tc.SupportsSharedArtifact() {
		return nil, &toolchain.UnsupportedModeError{Toolchain: b.tc.Name(), Mode: toolchain.ModeSharedArtifact}
	}

	if info, err := os.Stat(cfg.SourceDir); err != nil {
		return nil, &DiscoveryError{Path: cfg.SourceDir, Message: "cannot read source directory", Err: err}
	} else if !info.IsDir() {
		return nil, &DiscoveryError{Path: cfg.SourceDir, Message: "not a directory:"}
	}

	if err := os.MkdirAll(cfg.BuildDir, 0755); err != nil {
		return nil, &DiscoveryError{Path: cfg.BuildDir, Message: "cannot create build directory", Err: err}
	}

	host, _ := os.Hostname()
	if err := writeMarker(cfg.BuildDir, Marker{
		BuildID:   cfg.BuildID,
		PID:       os.Getpid(),
		Host:      host,
		Toolchain: b.tc.Name(),
		StartedAt: started,
	}); err != nil {
		logger.Warn("failed to write build marker", "error", err)
	}

	units, err := Discover(cfg.SourceDir, cfg.SourceExt)
	if err != nil {
		return nil, err
	}

	logger.Info("compiling",
		"units", len(units),
		"jobs", cfg.Jobs,
		"toolchain", b.tc.Name(),
		"shared", cfg.UseShared,
	)

	tasks := dispatch(ctx, cfg.Jobs, units, func(ctx context.Context, unit string) (toolchain.Artifacts, error) {
		art, err := b.tc.Compile(ctx, toolchain.CompileRequest{
			Unit:      unit,
			Object:    paths.ObjectPath(cfg.BuildDir, unit),
			BuildDir:  cfg.BuildDir,
			UseShared: cfg.UseShared,
			ExtraArgs: cfg.ExtraArgs,
		})
		if err != nil {
			return art, err
		}
		logger.Debug("compiled", "unit", unit, "object", art.Object)
		if b.progress != nil {
			b.progress(unit, len(units))
		}
		return art, nil
	})

	objects, shared, err := collect(tasks)
	if err != nil {
		logger.Error("compile failed", "error", err)
		return nil, err
	}

	exe, err := b.tc.Link(ctx, toolchain.LinkRequest{
		BuildDir: cfg.BuildDir,
		Objects:  objects,
		Output:   paths.ExecutablePath(cfg.BuildDir, cfg.Executable),
	})
	if err != nil {
		logger.Error("link failed", "error", err)
		return nil, err
	}

	result := &Result{
		BuildID:    cfg.BuildID,
		Toolchain:  b.tc.Name(),
		SourceDir:  cfg.SourceDir,
		BuildDir:   cfg.BuildDir,
		Units:      units,
		Objects:    objects,
		Shared:     shared,
		Executable: exe,
		Jobs:       cfg.Jobs,
		StartedAt:  started,
		Duration:   time.Since(started),
	}
	logger.Info("build completed",
		"executable", exe,
		"objects", len(objects),
		"duration", result.Duration,
	)
	return result, nil
}
