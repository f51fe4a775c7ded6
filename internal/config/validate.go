package config

import (
	"fmt"
	"strings"

	"github.com/altuslabsxyz/objbuild/internal/toolchain"
)

// Validate validates the EffectiveConfig values against allowed ranges and types.
func (c *EffectiveConfig) Validate() error {
	if err := validateToolchain(c.Toolchain.Value); err != nil {
		return err
	}
	if c.Jobs.Value < 0 {
		return fmt.Errorf("invalid jobs: %d (must be 0 or more)", c.Jobs.Value)
	}
	if err := validateImportStd(c.ImportStd.Value); err != nil {
		return err
	}
	if err := validateSourceExt(c.SourceExt.Value); err != nil {
		return err
	}
	return validateExecutable(c.Executable.Value)
}

// ValidateFileConfig validates the FileConfig values before merging.
// This is called when loading a config file to provide early error messages.
func ValidateFileConfig(cfg *FileConfig) error {
	if cfg == nil {
		return nil
	}
	if cfg.Toolchain != nil {
		if err := validateToolchain(*cfg.Toolchain); err != nil {
			return err
		}
	}
	if cfg.Jobs != nil && *cfg.Jobs < 0 {
		return fmt.Errorf("invalid jobs: %d (must be 0 or more)", *cfg.Jobs)
	}
	if cfg.ImportStd != nil {
		if err := validateImportStd(*cfg.ImportStd); err != nil {
			return err
		}
	}
	if cfg.SourceExt != nil {
		if err := validateSourceExt(*cfg.SourceExt); err != nil {
			return err
		}
	}
	if cfg.Executable != nil {
		if err := validateExecutable(*cfg.Executable); err != nil {
			return err
		}
	}
	if cfg.Compiler != nil && len(cfg.Compiler) == 0 {
		return fmt.Errorf("invalid compiler: must not be an empty list")
	}
	if cfg.Linker != nil && len(cfg.Linker) == 0 {
		return fmt.Errorf("invalid linker: must not be an empty list")
	}
	return nil
}

func validateToolchain(kind string) error {
	switch kind {
	case toolchain.KindAuto, toolchain.KindUnix, toolchain.KindMSVC:
		return nil
	}
	return fmt.Errorf("invalid toolchain: %s (must be '%s', '%s' or '%s')",
		kind, toolchain.KindAuto, toolchain.KindUnix, toolchain.KindMSVC)
}

func validateImportStd(mode string) error {
	switch mode {
	case ImportStdAuto, ImportStdOn, ImportStdOff:
		return nil
	}
	return fmt.Errorf("invalid import_std: %s (must be 'auto', 'on' or 'off')", mode)
}

func validateSourceExt(ext string) error {
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return fmt.Errorf("invalid source_ext: %q (must start with '.')", ext)
	}
	return nil
}

func validateExecutable(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid executable: %q (must be a plain file name)", name)
	}
	return nil
}
