package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// BuildFunc constructs the shared artifact at path. path sits in a staging
// directory; files written next to it are published together with it.
type BuildFunc func(ctx context.Context, path string) error

// SharedArtifactGate makes sure the shared artifact at one path is built at
// most once, however many compile tasks ask for it concurrently.
//
// Construction happens in a staging directory. The artifact is renamed into
// place only after a successful build, after its siblings, so existence of
// the path is a safe lock-free fast path.
type SharedArtifactGate struct {
	path  string
	build BuildFunc

	mu      sync.Mutex
	lastErr error // result of the latest finished attempt, guarded by mu

	builds   atomic.Int32
	finished atomic.Uint64
}

// NewSharedArtifactGate creates a gate guarding construction of path.
func NewSharedArtifactGate(path string, build BuildFunc) *SharedArtifactGate {
	return &SharedArtifactGate{path: path, build: build}
}

// Path returns the guarded artifact location.
func (g *SharedArtifactGate) Path() string {
	return g.path
}

// Builds returns how many times this gate ran the build function.
func (g *SharedArtifactGate) Builds() int {
	return int(g.builds.Load())
}

// Resolve returns the artifact path, building it first if it does not exist.
//
// Callers that were waiting while an attempt failed get that attempt's error
// instead of repeating it. A call made after the failure was reported builds
// again.
func (g *SharedArtifactGate) Resolve(ctx context.Context) (string, error) {
	if ok, err := exists(g.path); err != nil {
		return "", err
	} else if ok {
		return g.path, nil
	}

	seen := g.finished.Load()

	g.mu.Lock()
	defer g.mu.Unlock()

	// Another caller may have finished while we waited for the lock.
	if ok, err := exists(g.path); err != nil {
		return "", err
	} else if ok {
		return g.path, nil
	}
	if g.finished.Load() != seen && g.lastErr != nil {
		return "", g.lastErr
	}

	g.builds.Add(1)
	err := g.construct(ctx)
	g.lastErr = err
	g.finished.Add(1)
	if err != nil {
		return "", err
	}
	return g.path, nil
}

// construct runs the build in a fresh staging directory and publishes its
// output next to g.path. The staging directory is always removed.
func (g *SharedArtifactGate) construct(ctx context.Context) error {
	dir := filepath.Dir(g.path)
	stage := g.path + ".tmp"

	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0755); err != nil {
		return fmt.Errorf("failed to create shared artifact directory: %w", err)
	}
	defer os.RemoveAll(stage)

	primary := filepath.Base(g.path)
	if err := g.build(ctx, filepath.Join(stage, primary)); err != nil {
		return err
	}

	entries, err := os.ReadDir(stage)
	if err != nil {
		return fmt.Errorf("failed to read staging directory: %w", err)
	}
	built := false
	for _, e := range entries {
		if e.Name() == primary {
			built = true
			continue
		}
		if err := os.Rename(filepath.Join(stage, e.Name()), filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("failed to publish %s: %w", e.Name(), err)
		}
	}
	if !built {
		return fmt.Errorf("shared artifact build produced no %s", primary)
	}
	if err := os.Rename(filepath.Join(stage, primary), g.path); err != nil {
		return fmt.Errorf("failed to publish %s: %w", primary, err)
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}
