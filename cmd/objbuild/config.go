package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/objbuild/internal/config"
	"github.com/altuslabsxyz/objbuild/internal/output"
)

var configInitForce bool

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create objbuild configuration",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and where each value comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if effective.ConfigFilePath != "" {
				output.DefaultLogger.Info("Config file: %s\n", effective.ConfigFilePath)
			}
			effective.ToTable(output.DefaultLogger.Writer())
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented config.toml to the home directory",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"Overwrite an existing config file")

	cmd.AddCommand(showCmd, initCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	w := config.NewConfigWriter(homeDir)
	if w.Exists() && !configInitForce {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", w.Path())
	}
	if err := w.Write(&config.FileConfig{}); err != nil {
		return err
	}
	output.DefaultLogger.Success("Wrote %s", w.Path())
	return nil
}
