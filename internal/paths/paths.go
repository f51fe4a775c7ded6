// Package paths provides centralized path management for objbuild.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Build directory layout constants.
const (
	BuildDirSuffix  = ".b"
	ObjectSuffix    = ".o"
	MarkerFile      = ".objbuild.lock"
	ExecutableName  = "program"
	SharedUnitName  = "std"
	SharedObject    = SharedUnitName + ObjectSuffix
	SharedInterface = SharedUnitName + ".ifc"
)

// Source conventions.
const (
	DefaultSourceExt = ".cpp"

	// SharedModeSuffix marks source directories whose units import the
	// shared std module.
	SharedModeSuffix = "istd"
)

// Home directory layout.
const (
	DefaultHomeDirName = ".objbuild"
	ConfigFile         = "config.toml"
	ProjectConfigFile  = "objbuild.toml"
	HistoryFile        = "history.db"
)

// DefaultHomeDir returns $HOME/.objbuild or falls back to the current directory.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultHomeDirName
	}
	return filepath.Join(home, DefaultHomeDirName)
}

// BuildDir returns the build directory owned by builds of srcDir.
func BuildDir(srcDir string) string {
	return filepath.Clean(srcDir) + BuildDirSuffix
}

// ObjectPath returns the artifact path for a compilation unit.
func ObjectPath(buildDir, unit string) string {
	return filepath.Join(buildDir, filepath.Base(unit)+ObjectSuffix)
}

// MarkerPath returns the advisory build marker path.
func MarkerPath(buildDir string) string {
	return filepath.Join(buildDir, MarkerFile)
}

// ExecutablePath returns the link output path, without platform suffix.
func ExecutablePath(buildDir, name string) string {
	if name == "" {
		name = ExecutableName
	}
	return filepath.Join(buildDir, name)
}

// SharedDir returns the directory holding the shared artifact built with
// the given configuration fingerprint.
func SharedDir(buildDir, fingerprint string) string {
	if fingerprint == "" {
		return buildDir
	}
	return filepath.Join(buildDir, fingerprint)
}

// SharedObjectPath returns the shared artifact location for a fingerprint.
func SharedObjectPath(buildDir, fingerprint string) string {
	return filepath.Join(SharedDir(buildDir, fingerprint), SharedObject)
}

// WantsSharedArtifact reports whether srcDir follows the naming convention
// for sources that import the shared std module.
func WantsSharedArtifact(srcDir string) bool {
	return strings.HasSuffix(filepath.Clean(srcDir), SharedModeSuffix)
}

// HistoryPath returns the build history database path.
func HistoryPath(homeDir string) string {
	return filepath.Join(homeDir, HistoryFile)
}

// HomeConfigPath returns the user-level config file path.
func HomeConfigPath(homeDir string) string {
	return filepath.Join(homeDir, ConfigFile)
}
