package toolchain

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/altuslabsxyz/objbuild/internal/infrastructure/executor"
	"github.com/altuslabsxyz/objbuild/internal/paths"
)

// Default Windows-style tools.
var (
	DefaultMSVCCompiler = []string{"cl"}
	DefaultMSVCLinker   = []string{"link"}
)

// msvcFlags are passed to every cl invocation.
var msvcFlags = []string{"/nologo", "/EHsc", "/std:c++latest"}

// Gated is a Windows-style toolchain with separate compiler and linker that
// can build the std module once and share it across compilation units.
type Gated struct {
	compiler  []string
	linker    []string
	root      string
	exeSuffix string
	exec      executor.CommandExecutor
	logger    *slog.Logger

	mu    sync.Mutex
	gates map[string]*SharedArtifactGate
}

// GatedOptions configures a Gated toolchain.
type GatedOptions struct {
	Compiler  []string
	Linker    []string
	Root      string // toolchain install root holding modules/std.ixx
	ExeSuffix string
	Executor  executor.CommandExecutor
	Logger    *slog.Logger
}

// NewGated creates a Gated toolchain.
func NewGated(opts GatedOptions) *Gated {
	compiler := opts.Compiler
	if len(compiler) == 0 {
		compiler = DefaultMSVCCompiler
	}
	linker := opts.Linker
	if len(linker) == 0 {
		linker = DefaultMSVCLinker
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gated{
		compiler:  compiler,
		linker:    linker,
		root:      opts.Root,
		exeSuffix: opts.ExeSuffix,
		exec:      opts.Executor,
		logger:    logger,
		gates:     make(map[string]*SharedArtifactGate),
	}
}

// Name returns "msvc".
func (g *Gated) Name() string { return "msvc" }

// SupportsSharedArtifact returns true.
func (g *Gated) SupportsSharedArtifact() bool { return true }

// Tools returns the executables this toolchain invokes.
func (g *Gated) Tools() []string { return []string{g.compiler[0], g.linker[0]} }

// StdModuleSource returns the std module interface source compiled into the
// shared artifact.
func (g *Gated) StdModuleSource() string {
	return filepath.Join(g.root, "modules", "std.ixx")
}

// Compile builds the shared artifact first when the unit needs it, then
// compiles the unit itself.
func (g *Gated) Compile(ctx context.Context, req CompileRequest) (Artifacts, error) {
	var result Artifacts

	args := append([]string{}, g.compiler[1:]...)
	args = append(args, msvcFlags...)
	args = append(args, "/c", req.Unit, "/Fo"+req.Object)

	if req.UseShared {
		fp := Fingerprint(g.root, req.ExtraArgs)
		shared, err := g.gate(paths.SharedObjectPath(req.BuildDir, fp), req.ExtraArgs).Resolve(ctx)
		if err != nil {
			return Artifacts{}, err
		}
		result.Shared = shared
		args = append(args, "/reference", "std="+interfacePath(shared))
	}
	args = append(args, req.ExtraArgs...)

	g.logger.Debug("compiling", "unit", req.Unit, "object", req.Object, "shared", result.Shared)
	if _, err := g.exec.Execute(ctx, g.compiler[0], args...); err != nil {
		return Artifacts{}, newProcessError("compile", g.compiler[0], args, err)
	}
	result.Object = req.Object
	return result, nil
}

// Link runs `link /nologo /OUT:<exe> <objects...>`.
func (g *Gated) Link(ctx context.Context, req LinkRequest) (string, error) {
	return linkReplacing(req.Output+g.exeSuffix, func(tmp string) error {
		args := append([]string{}, g.linker[1:]...)
		args = append(args, "/nologo", "/OUT:"+tmp)
		args = append(args, req.Objects...)

		g.logger.Debug("linking", "objects", len(req.Objects), "output", tmp)
		if _, err := g.exec.Execute(ctx, g.linker[0], args...); err != nil {
			return newProcessError("link", g.linker[0], args, err)
		}
		return nil
	})
}

// SharedBuilds returns how many times the shared artifact was constructed
// across all build directories this toolchain has served.
func (g *Gated) SharedBuilds() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := 0
	for _, gate := range g.gates {
		n += gate.Builds()
	}
	return n
}

// gate returns the single gate for path, creating it on first use.
func (g *Gated) gate(path string, extraArgs []string) *SharedArtifactGate {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gate, ok := g.gates[path]; ok {
		return gate
	}
	gate := NewSharedArtifactGate(path, func(ctx context.Context, out string) error {
		return g.buildShared(ctx, out, extraArgs)
	})
	g.gates[path] = gate
	return gate
}

func (g *Gated) buildShared(ctx context.Context, out string, extraArgs []string) error {
	src := g.StdModuleSource()

	args := append([]string{}, g.compiler[1:]...)
	args = append(args, msvcFlags...)
	args = append(args, "/c", src, "/Fo"+out, "/ifcOutput", interfacePath(out))
	args = append(args, extraArgs...)

	g.logger.Info("building shared std module", "output", out)
	if _, err := g.exec.Execute(ctx, g.compiler[0], args...); err != nil {
		return newProcessError("compile shared", g.compiler[0], args, err)
	}
	return nil
}

// interfacePath returns the module interface file produced next to the
// shared object.
func interfacePath(sharedObject string) string {
	return filepath.Join(filepath.Dir(sharedObject), paths.SharedInterface)
}

var _ Toolchain = (*Gated)(nil)
