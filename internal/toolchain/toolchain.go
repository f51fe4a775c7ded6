// Package toolchain drives external compilers and linkers.
//
// A Toolchain turns one compilation unit into an object file and links a set
// of object files into an executable. Variants that support the shared std
// module build it at most once per build directory through a
// SharedArtifactGate.
package toolchain

import (
	"context"
	"fmt"
	"os"
)

// ModeSharedArtifact names the build mode in which compilation units import a
// shared, build-once dependency artifact.
const ModeSharedArtifact = "shared-artifact"

// CompileRequest describes one compile task.
type CompileRequest struct {
	Unit      string   // source file
	Object    string   // object file to produce
	BuildDir  string   // build directory owning Object and the shared artifact
	UseShared bool     // the unit imports the shared artifact
	ExtraArgs []string // forwarded verbatim to the compiler
}

// Artifacts is what a compile task produced.
type Artifacts struct {
	Object string
	Shared string // shared artifact location, empty if unused
}

// LinkRequest describes the link step.
type LinkRequest struct {
	BuildDir string
	Objects  []string
	Output   string // executable path without platform suffix
}

// Toolchain is the capability set every compiler/linker pair implements.
type Toolchain interface {
	// Name identifies the toolchain in logs and errors.
	Name() string

	// SupportsSharedArtifact reports whether Compile accepts UseShared.
	SupportsSharedArtifact() bool

	// Compile produces req.Object from req.Unit.
	Compile(ctx context.Context, req CompileRequest) (Artifacts, error)

	// Link produces the executable and returns its final path, with the
	// platform suffix applied. An existing executable is only replaced when
	// the linker succeeds.
	Link(ctx context.Context, req LinkRequest) (string, error)
}

// linkReplacing runs link against a temporary output next to final and
// renames it into place only on success.
func linkReplacing(final string, link func(tmp string) error) (string, error) {
	tmp := final + ".tmp"
	_ = os.Remove(tmp)
	if err := link(tmp); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, final); err != nil {
		return "", fmt.Errorf("failed to replace executable %s: %w", final, err)
	}
	return final, nil
}
