package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvHome    = "OBJBUILD_HOME"
	EnvJobs    = "OBJBUILD_JOBS"
	EnvNoColor = "NO_COLOR"
)

// ApplyEnv applies environment overrides on top of config file values.
// lookup is usually os.LookupEnv.
func (c *EffectiveConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHome); ok && v != "" {
		c.Home = StringValue{Value: v, Source: SourceEnvironment}
	}
	if v, ok := lookup(EnvJobs); ok && v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %q is not a number", EnvJobs, v)
		}
		c.Jobs = IntValue{Value: jobs, Source: SourceEnvironment}
	}
	// Any value of NO_COLOR disables color.
	if _, ok := lookup(EnvNoColor); ok {
		c.NoColor = BoolValue{Value: true, Source: SourceEnvironment}
	}
	return nil
}

// ApplyStringFlag overrides dst with value if the flag was explicitly set.
func ApplyStringFlag(cmd *cobra.Command, flagName string, dst *StringValue, value string) {
	if flagChanged(cmd, flagName) {
		*dst = StringValue{Value: value, Source: SourceFlag}
	}
}

// ApplyIntFlag overrides dst with value if the flag was explicitly set.
func ApplyIntFlag(cmd *cobra.Command, flagName string, dst *IntValue, value int) {
	if flagChanged(cmd, flagName) {
		*dst = IntValue{Value: value, Source: SourceFlag}
	}
}

// ApplyBoolFlag overrides dst with value if the flag was explicitly set.
// Without this check a default false flag would override a true config value.
func ApplyBoolFlag(cmd *cobra.Command, flagName string, dst *BoolValue, value bool) {
	if flagChanged(cmd, flagName) {
		*dst = BoolValue{Value: value, Source: SourceFlag}
	}
}

// ApplyStringsFlag overrides dst with value if the flag was explicitly set.
func ApplyStringsFlag(cmd *cobra.Command, flagName string, dst *StringsValue, value []string) {
	if flagChanged(cmd, flagName) {
		*dst = StringsValue{Value: value, Source: SourceFlag}
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
