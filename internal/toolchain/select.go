package toolchain

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/altuslabsxyz/objbuild/internal/infrastructure/executor"
)

// Toolchain kinds accepted by Select.
const (
	KindAuto = "auto"
	KindUnix = "unix"
	KindMSVC = "msvc"
)

// RootEnvVar is consulted for the MSVC install root when none is configured.
const RootEnvVar = "VCToolsInstallDir"

// Options selects and configures a toolchain.
type Options struct {
	Kind     string   // auto, unix or msvc
	Compiler []string // compiler driver override
	Linker   []string // linker override, msvc only
	Root     string   // toolchain install root, msvc only
	Executor executor.CommandExecutor
	Logger   *slog.Logger
}

// Select returns the toolchain for the host identified by goos. With kind
// "auto" windows hosts get the msvc toolchain and everything else the unix one.
func Select(goos string, opts Options) (Toolchain, error) {
	if opts.Executor == nil {
		return nil, fmt.Errorf("toolchain: executor is required")
	}

	exeSuffix := ""
	if goos == "windows" {
		exeSuffix = ".exe"
	}

	kind := opts.Kind
	if kind == "" || kind == KindAuto {
		kind = KindUnix
		if goos == "windows" {
			kind = KindMSVC
		}
	}

	switch kind {
	case KindUnix:
		return NewDirect(DirectOptions{
			Driver:    opts.Compiler,
			ExeSuffix: exeSuffix,
			Executor:  opts.Executor,
			Logger:    opts.Logger,
		}), nil
	case KindMSVC:
		root := opts.Root
		if root == "" {
			root = os.Getenv(RootEnvVar)
		}
		return NewGated(GatedOptions{
			Compiler:  opts.Compiler,
			Linker:    opts.Linker,
			Root:      root,
			ExeSuffix: ".exe",
			Executor:  opts.Executor,
			Logger:    opts.Logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown toolchain %q (want %s, %s or %s)", kind, KindAuto, KindUnix, KindMSVC)
	}
}
