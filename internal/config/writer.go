package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/altuslabsxyz/objbuild/internal/paths"
)

// ConfigWriter handles writing configuration to homeDir/config.toml.
type ConfigWriter struct {
	homeDir string
}

// NewConfigWriter creates a new ConfigWriter for the given home directory.
func NewConfigWriter(homeDir string) *ConfigWriter {
	return &ConfigWriter{homeDir: homeDir}
}

// Path returns the full path to config.toml in homeDir.
func (w *ConfigWriter) Path() string {
	return paths.HomeConfigPath(w.homeDir)
}

// Exists returns true if config.toml already exists in homeDir.
func (w *ConfigWriter) Exists() bool {
	return fileExists(w.Path())
}

// Write saves cfg to homeDir/config.toml, creating homeDir if needed.
// Unset values are written as commented-out defaults.
func (w *ConfigWriter) Write(cfg *FileConfig) error {
	if err := os.MkdirAll(w.homeDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.homeDir, err)
	}
	if err := os.WriteFile(w.Path(), []byte(w.render(cfg)), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (w *ConfigWriter) render(cfg *FileConfig) string {
	var b strings.Builder

	b.WriteString("# objbuild configuration file\n")
	b.WriteString("# Priority: default < config file < environment < CLI flag\n")
	b.WriteString("#\n")
	fmt.Fprintf(&b, "# Location: %s\n", w.Path())
	fmt.Fprintf(&b, "# Per-project overrides: ./%s\n\n", paths.ProjectConfigFile)

	b.WriteString("# Global settings\n")
	writeString(&b, "home", cfg.Home, "~/"+paths.DefaultHomeDirName)
	writeBool(&b, "verbose", cfg.Verbose)
	writeBool(&b, "no_color", cfg.NoColor)

	b.WriteString("\n# Toolchain settings\n")
	writeString(&b, "toolchain", cfg.Toolchain, "auto")
	writeString(&b, "toolchain_root", cfg.ToolchainRoot, "")
	writeList(&b, "compiler", cfg.Compiler, `["c++"]`)
	writeList(&b, "linker", cfg.Linker, `["link"]`)

	b.WriteString("\n# Build settings\n")
	if cfg.Jobs != nil {
		fmt.Fprintf(&b, "jobs = %d\n", *cfg.Jobs)
	} else {
		b.WriteString("# jobs = 0  # 0 uses every CPU\n")
	}
	writeString(&b, "import_std", cfg.ImportStd, ImportStdAuto)
	writeList(&b, "extra_args", cfg.ExtraArgs, `["-O2"]`)
	writeString(&b, "source_ext", cfg.SourceExt, paths.DefaultSourceExt)
	writeString(&b, "executable", cfg.Executable, paths.ExecutableName)

	return b.String()
}

func writeString(b *strings.Builder, key string, v *string, example string) {
	if v != nil {
		fmt.Fprintf(b, "%s = %q\n", key, *v)
		return
	}
	fmt.Fprintf(b, "# %s = %q\n", key, example)
}

func writeBool(b *strings.Builder, key string, v *bool) {
	if v != nil && *v {
		fmt.Fprintf(b, "%s = true\n", key)
		return
	}
	fmt.Fprintf(b, "# %s = false\n", key)
}

func writeList(b *strings.Builder, key string, v []string, example string) {
	if v == nil {
		fmt.Fprintf(b, "# %s = %s\n", key, example)
		return
	}
	quoted := make([]string, len(v))
	for i, s := range v {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	fmt.Fprintf(b, "%s = [%s]\n", key, strings.Join(quoted, ", "))
}
