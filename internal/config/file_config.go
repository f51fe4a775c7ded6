package config

// FileConfig represents the raw contents of an objbuild TOML config file.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Global settings
	Home    *string `toml:"home"`
	NoColor *bool   `toml:"no_color"`
	Verbose *bool   `toml:"verbose"`

	// Toolchain settings
	Toolchain     *string  `toml:"toolchain"`      // auto, unix or msvc
	ToolchainRoot *string  `toml:"toolchain_root"` // msvc install root holding modules/std.ixx
	Compiler      []string `toml:"compiler"`       // compiler driver and leading args
	Linker        []string `toml:"linker"`         // msvc only

	// Build settings
	Jobs       *int     `toml:"jobs"`
	ImportStd  *string  `toml:"import_std"` // auto, on or off
	ExtraArgs  []string `toml:"extra_args"`
	SourceExt  *string  `toml:"source_ext"`
	Executable *string  `toml:"executable"`
}

// IsEmpty returns true if no configuration values are set.
func (f *FileConfig) IsEmpty() bool {
	return f.Home == nil &&
		f.NoColor == nil &&
		f.Verbose == nil &&
		f.Toolchain == nil &&
		f.ToolchainRoot == nil &&
		f.Compiler == nil &&
		f.Linker == nil &&
		f.Jobs == nil &&
		f.ImportStd == nil &&
		f.ExtraArgs == nil &&
		f.SourceExt == nil &&
		f.Executable == nil
}

// knownKeys lists the TOML keys FileConfig understands.
var knownKeys = map[string]bool{
	"home":           true,
	"no_color":       true,
	"verbose":        true,
	"toolchain":      true,
	"toolchain_root": true,
	"compiler":       true,
	"linker":         true,
	"jobs":           true,
	"import_std":     true,
	"extra_args":     true,
	"source_ext":     true,
	"executable":     true,
}
