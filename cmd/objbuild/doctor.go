package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/objbuild/internal/infrastructure/executor"
	"github.com/altuslabsxyz/objbuild/internal/output"
	"github.com/altuslabsxyz/objbuild/internal/prereq"
	"github.com/altuslabsxyz/objbuild/internal/toolchain"
)

var doctorOutput string

func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the configured toolchain is installed",
		Long: `Check that the compiler and linker of the configured toolchain can be
found in PATH and, for msvc, that the std module source exists under the
toolchain root.`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
	cmd.Flags().StringVarP(&doctorOutput, "output", "o", output.FormatText,
		"Output format: text, json or yaml")
	return cmd
}

func runDoctor(cmd *cobra.Command, args []string) error {
	logger := output.DefaultLogger
	if err := output.ValidateFormat(doctorOutput); err != nil {
		return err
	}
	if err := effective.Validate(); err != nil {
		return err
	}

	tc, err := toolchain.Select(runtime.GOOS, toolchain.Options{
		Kind:     effective.Toolchain.Value,
		Compiler: effective.Compiler.Value,
		Linker:   effective.Linker.Value,
		Root:     effective.ToolchainRoot.Value,
		Executor: executor.NewOSCommandExecutor(nil),
	})
	if err != nil {
		return err
	}

	checker := prereq.NewChecker()
	switch t := tc.(type) {
	case *toolchain.Gated:
		for _, tool := range t.Tools() {
			checker.RequireCommand(tool, "Run from a developer command prompt or set compiler/linker in config.toml")
		}
		checker.RequireFile("std module", t.StdModuleSource(),
			fmt.Sprintf("Set toolchain_root or %s to the MSVC tools directory", toolchain.RootEnvVar))
	case *toolchain.Direct:
		for _, tool := range t.Tools() {
			checker.RequireCommand(tool, "Install a C++ compiler or set compiler in config.toml")
		}
	}

	results, checkErr := checker.Check()
	err = output.WriteReport(logger.Writer(), doctorOutput, results, func(w io.Writer) error {
		logger.Bold("Toolchain: %s", tc.Name())
		for _, r := range results {
			if r.Found {
				logger.Success("%s", r.Message)
				continue
			}
			logger.Error("%s", r.Message)
			if r.Suggestion != "" {
				logger.Info("  %s", r.Suggestion)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return checkErr
}
