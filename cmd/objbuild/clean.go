package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/objbuild/internal/output"
	"github.com/altuslabsxyz/objbuild/internal/paths"
)

func NewCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <sourcedir>",
		Short: "Remove the build directory of a source directory",
		Long: `Remove <sourcedir>.b with every object, shared artifact and executable
in it. The source directory itself is never touched.`,
		Args: cobra.ExactArgs(1),
		RunE: runClean,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	logger := output.DefaultLogger
	buildDir := paths.BuildDir(args[0])

	info, err := os.Stat(buildDir)
	if os.IsNotExist(err) {
		logger.Info("Nothing to clean: %s does not exist", buildDir)
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a build directory", buildDir)
	}

	if err := os.RemoveAll(buildDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", buildDir, err)
	}
	logger.Success("Removed %s", buildDir)
	return nil
}
