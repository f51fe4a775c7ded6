package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/objbuild/internal/config"
	"github.com/altuslabsxyz/objbuild/internal/output"
	"github.com/altuslabsxyz/objbuild/internal/paths"
)

// Command group IDs for organized help output.
const (
	GroupMain  = "main"
	GroupOther = "other"
)

// Local variables for flag binding (Cobra requires pointers to local vars)
var (
	homeDir    string
	noColor    bool
	verbose    bool
	configPath string

	// effective is the merged configuration, set by persistentPreRunE.
	effective *config.EffectiveConfig
)

// NewRootCmd creates the root command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "objbuild",
		Short: "Compile a directory of C++ units and link them into one executable",
		Long: `objbuild compiles every compilation unit of a source directory in parallel
and links the resulting objects into a single executable.

Build outputs go to <sourcedir>.b. Source directories whose name ends in
"istd" import the standard library module, which is built once per build
directory and shared by every unit.

Examples:
  # Build examples/hello with one job per CPU
  objbuild build examples/hello

  # Four jobs, extra compiler flags after the source directory
  objbuild build -j 4 examples/hello -O2 -DNDEBUG

  # Machine-readable report
  objbuild build -o json examples/hello

  # Recent builds
  objbuild history`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: persistentPreRunE,
	}

	cmd.PersistentFlags().StringVarP(&homeDir, "home", "H", paths.DefaultHomeDir(),
		"Directory for objbuild config and build history")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to an additional config file (highest priority)")

	cmd.AddGroup(&cobra.Group{ID: GroupMain, Title: "Main Commands:"})
	cmd.AddGroup(&cobra.Group{ID: GroupOther, Title: "Other Commands:"})

	registerCommands(cmd)
	return cmd
}

// persistentPreRunE loads configuration and sets up global output state.
// Priority: default < config file < env < flag.
func persistentPreRunE(cmd *cobra.Command, args []string) error {
	logger := output.DefaultLogger

	loader := config.NewConfigLoader(homeDir, configPath, logger)
	fileCfg, configFilePath, err := loader.LoadFileConfig()
	if err != nil {
		return err
	}

	effective = config.NewEffectiveConfig(paths.DefaultHomeDir())
	effective.ApplyFile(fileCfg, configFilePath)
	if err := effective.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}
	config.ApplyStringFlag(cmd, "home", &effective.Home, homeDir)
	config.ApplyBoolFlag(cmd, "no-color", &effective.NoColor, noColor)
	config.ApplyBoolFlag(cmd, "verbose", &effective.Verbose, verbose)

	homeDir = effective.Home.Value
	verbose = effective.Verbose.Value
	noColor = !output.ShouldColor(os.Stdout, effective.NoColor.Value)

	logger.SetNoColor(noColor)
	logger.SetVerbose(verbose)

	if configFilePath != "" {
		logger.Debug("Using config file: %s", configFilePath)
	}
	return nil
}

// registerCommands registers all subcommands with their groups.
func registerCommands(rootCmd *cobra.Command) {
	buildCmd := NewBuildCmd()
	buildCmd.GroupID = GroupMain
	cleanCmd := NewCleanCmd()
	cleanCmd.GroupID = GroupMain
	historyCmd := NewHistoryCmd()
	historyCmd.GroupID = GroupMain

	doctorCmd := NewDoctorCmd()
	doctorCmd.GroupID = GroupOther
	configCmd := NewConfigCmd()
	configCmd.GroupID = GroupOther
	versionCmd := NewVersionCmd()
	versionCmd.GroupID = GroupOther

	rootCmd.AddCommand(buildCmd, cleanCmd, historyCmd, doctorCmd, configCmd, versionCmd)
}
