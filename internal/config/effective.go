package config

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/altuslabsxyz/objbuild/internal/paths"
	"github.com/altuslabsxyz/objbuild/internal/toolchain"
)

// import_std modes.
const (
	ImportStdAuto = "auto"
	ImportStdOn   = "on"
	ImportStdOff  = "off"
)

// EffectiveConfig represents the final merged configuration after applying
// the priority chain default < config file < environment < flag.
type EffectiveConfig struct {
	// Global settings
	Home    StringValue
	NoColor BoolValue
	Verbose BoolValue

	// Toolchain settings
	Toolchain     StringValue
	ToolchainRoot StringValue
	Compiler      StringsValue
	Linker        StringsValue

	// Build settings
	Jobs       IntValue
	ImportStd  StringValue
	ExtraArgs  StringsValue
	SourceExt  StringValue
	Executable StringValue

	// Metadata
	ConfigFilePath string // Path to loaded config file (empty if none)
}

// NewEffectiveConfig creates a new EffectiveConfig with default values.
func NewEffectiveConfig(defaultHomeDir string) *EffectiveConfig {
	return &EffectiveConfig{
		Home:          NewStringValue(defaultHomeDir),
		NoColor:       NewBoolValue(false),
		Verbose:       NewBoolValue(false),
		Toolchain:     NewStringValue(toolchain.KindAuto),
		ToolchainRoot: NewStringValue(""),
		Compiler:      NewStringsValue(nil),
		Linker:        NewStringsValue(nil),
		Jobs:          NewIntValue(0),
		ImportStd:     NewStringValue(ImportStdAuto),
		ExtraArgs:     NewStringsValue(nil),
		SourceExt:     NewStringValue(paths.DefaultSourceExt),
		Executable:    NewStringValue(paths.ExecutableName),
	}
}

// ApplyFile copies every value set in f into c, marking it as coming from
// the config file.
func (c *EffectiveConfig) ApplyFile(f *FileConfig, path string) {
	if f == nil {
		return
	}
	c.ConfigFilePath = path
	setString(&c.Home, f.Home)
	setBool(&c.NoColor, f.NoColor)
	setBool(&c.Verbose, f.Verbose)
	setString(&c.Toolchain, f.Toolchain)
	setString(&c.ToolchainRoot, f.ToolchainRoot)
	setStrings(&c.Compiler, f.Compiler)
	setStrings(&c.Linker, f.Linker)
	if f.Jobs != nil {
		c.Jobs = IntValue{Value: *f.Jobs, Source: SourceConfigFile}
	}
	setString(&c.ImportStd, f.ImportStd)
	setStrings(&c.ExtraArgs, f.ExtraArgs)
	setString(&c.SourceExt, f.SourceExt)
	setString(&c.Executable, f.Executable)
}

// UseShared resolves the import_std mode for a source directory. In auto
// mode, directories named with the istd suffix import the shared std module.
func (c *EffectiveConfig) UseShared(srcDir string) bool {
	switch c.ImportStd.Value {
	case ImportStdOn:
		return true
	case ImportStdOff:
		return false
	default:
		return paths.WantsSharedArtifact(srcDir)
	}
}

// ToTable writes the configuration as a formatted table.
func (c *EffectiveConfig) ToTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	fmt.Fprintf(tw, "home\t%s\t%s\n", c.Home.Value, c.Home.Source)
	fmt.Fprintf(tw, "no_color\t%t\t%s\n", c.NoColor.Value, c.NoColor.Source)
	fmt.Fprintf(tw, "verbose\t%t\t%s\n", c.Verbose.Value, c.Verbose.Source)
	fmt.Fprintf(tw, "toolchain\t%s\t%s\n", c.Toolchain.Value, c.Toolchain.Source)
	fmt.Fprintf(tw, "toolchain_root\t%s\t%s\n", orUnset(c.ToolchainRoot.Value), c.ToolchainRoot.Source)
	fmt.Fprintf(tw, "compiler\t%s\t%s\n", orUnset(strings.Join(c.Compiler.Value, " ")), c.Compiler.Source)
	fmt.Fprintf(tw, "linker\t%s\t%s\n", orUnset(strings.Join(c.Linker.Value, " ")), c.Linker.Source)
	fmt.Fprintf(tw, "jobs\t%d\t%s\n", c.Jobs.Value, c.Jobs.Source)
	fmt.Fprintf(tw, "import_std\t%s\t%s\n", c.ImportStd.Value, c.ImportStd.Source)
	fmt.Fprintf(tw, "extra_args\t%s\t%s\n", orUnset(strings.Join(c.ExtraArgs.Value, " ")), c.ExtraArgs.Source)
	fmt.Fprintf(tw, "source_ext\t%s\t%s\n", c.SourceExt.Value, c.SourceExt.Source)
	fmt.Fprintf(tw, "executable\t%s\t%s\n", c.Executable.Value, c.Executable.Source)
	tw.Flush()
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func setString(dst *StringValue, v *string) {
	if v != nil {
		*dst = StringValue{Value: *v, Source: SourceConfigFile}
	}
}

func setBool(dst *BoolValue, v *bool) {
	if v != nil {
		*dst = BoolValue{Value: *v, Source: SourceConfigFile}
	}
}

func setStrings(dst *StringsValue, v []string) {
	if v != nil {
		*dst = StringsValue{Value: v, Source: SourceConfigFile}
	}
}
