package main

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/objbuild/internal/builder"
	"github.com/altuslabsxyz/objbuild/internal/config"
	"github.com/altuslabsxyz/objbuild/internal/history"
	"github.com/altuslabsxyz/objbuild/internal/infrastructure/executor"
	"github.com/altuslabsxyz/objbuild/internal/output"
	"github.com/altuslabsxyz/objbuild/internal/paths"
	"github.com/altuslabsxyz/objbuild/internal/toolchain"
)

var (
	buildJobs      int
	buildToolchain string
	buildImportStd string
	buildOutput    string
)

func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] <sourcedir> [compiler args...]",
		Short: "Compile and link a source directory",
		Long: `Compile every unit of <sourcedir> and link the objects into
<sourcedir>.b/program.

Arguments after <sourcedir> are passed verbatim to every compile, never to
the link step. Flags must therefore come before <sourcedir>.

The first failing compile stops the build: units not yet started are
skipped and the link step does not run, so a previous executable is kept.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBuild,
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0,
		"Parallel compile jobs (0 = number of CPUs)")
	cmd.Flags().StringVar(&buildToolchain, "toolchain", toolchain.KindAuto,
		"Toolchain: auto, unix or msvc")
	cmd.Flags().StringVar(&buildImportStd, "import-std", config.ImportStdAuto,
		"Import the shared std module: auto, on or off")
	cmd.Flags().StringVarP(&buildOutput, "output", "o", output.FormatText,
		"Report format: text, json or yaml")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := output.DefaultLogger
	srcDir := args[0]

	if err := output.ValidateFormat(buildOutput); err != nil {
		return err
	}
	config.ApplyIntFlag(cmd, "jobs", &effective.Jobs, buildJobs)
	config.ApplyStringFlag(cmd, "toolchain", &effective.Toolchain, buildToolchain)
	config.ApplyStringFlag(cmd, "import-std", &effective.ImportStd, buildImportStd)
	if len(args) > 1 {
		effective.ExtraArgs = config.StringsValue{Value: args[1:], Source: config.SourceFlag}
	}
	if err := effective.Validate(); err != nil {
		return err
	}

	textMode := buildOutput == output.FormatText
	logger.SetJSONMode(!textMode)
	slogger := output.NewSlogLogger(logger.ErrWriter(), verbose, buildOutput == output.FormatJSON)

	tc, err := toolchain.Select(runtime.GOOS, toolchain.Options{
		Kind:     effective.Toolchain.Value,
		Compiler: effective.Compiler.Value,
		Linker:   effective.Linker.Value,
		Root:     effective.ToolchainRoot.Value,
		Executor: executor.NewOSCommandExecutor(logger.ErrWriter()),
		Logger:   slogger,
	})
	if err != nil {
		return err
	}

	cfg := builder.Config{
		BuildID:    uuid.NewString(),
		SourceDir:  srcDir,
		SourceExt:  effective.SourceExt.Value,
		Executable: effective.Executable.Value,
		Jobs:       effective.Jobs.Value,
		UseShared:  effective.UseShared(srcDir),
		ExtraArgs:  effective.ExtraArgs.Value,
	}
	logger.Debug("Building %s with %s toolchain (shared std: %t)", srcDir, tc.Name(), cfg.UseShared)

	progress := output.NewProgress(logger.Writer(), 0)
	progress.SetJSONMode(!textMode)

	started := time.Now()
	res, buildErr := builder.New(tc, cfg, slogger).
		OnUnitCompiled(func(unit string, total int) {
			progress.SetTotal(total)
			progress.Step(filepath.Base(unit))
		}).
		Build(cmd.Context())

	recordBuild(logger, cfg, tc.Name(), started, res, buildErr)
	if buildErr != nil {
		return buildErr
	}

	return output.WriteReport(logger.Writer(), buildOutput, res, func(w io.Writer) error {
		logger.Success("Built %s (%d objects, %s)", res.Executable, len(res.Objects), res.Duration.Round(time.Millisecond))
		return nil
	})
}

// recordBuild appends the build to the history database. History is
// best-effort: failures are reported as warnings only.
func recordBuild(logger *output.Logger, cfg builder.Config, tcName string, started time.Time, res *builder.Result, buildErr error) {
	rec := &history.Record{
		ID:        cfg.BuildID,
		SourceDir: cfg.SourceDir,
		Toolchain: tcName,
		Jobs:      cfg.Jobs,
		Shared:    cfg.UseShared,
		Status:    history.StatusSucceeded,
		StartedAt: started,
		Duration:  time.Since(started),
	}
	if res != nil {
		rec.Jobs = res.Jobs
		rec.Units = len(res.Units)
		rec.Executable = res.Executable
		rec.Duration = res.Duration
	}
	if buildErr != nil {
		rec.Status = history.StatusFailed
		rec.Error = firstLine(buildErr.Error())
	}

	store, err := history.Open(paths.HistoryPath(homeDir))
	if err != nil {
		logger.Warn("Build history unavailable: %v", err)
		return
	}
	defer store.Close()

	if err := store.Put(rec); err != nil {
		logger.Warn("Failed to record build history: %v", err)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// formatDuration renders d for tables.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(10 * time.Millisecond).String()
}
