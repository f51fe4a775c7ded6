package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/objbuild/internal/history"
	"github.com/altuslabsxyz/objbuild/internal/output"
	"github.com/altuslabsxyz/objbuild/internal/paths"
)

var (
	historyLimit  int
	historyOutput string
)

func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent builds",
		Long: `List builds recorded in the local history database, newest first.

Examples:
  objbuild history
  objbuild history -n 5 -o json
  objbuild history show <build-id>
  objbuild history clear`,
		Args: cobra.NoArgs,
		RunE: runHistoryList,
	}

	cmd.PersistentFlags().StringVarP(&historyOutput, "output", "o", output.FormatText,
		"Output format: text, json or yaml")
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"Maximum number of builds to list (0 = all)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <build-id>",
			Short: "Show one recorded build",
			Args:  cobra.ExactArgs(1),
			RunE:  runHistoryShow,
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every recorded build",
			Args:  cobra.NoArgs,
			RunE:  runHistoryClear,
		},
	)
	return cmd
}

func openHistory() (*history.Store, error) {
	return history.Open(paths.HistoryPath(homeDir))
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	if err := output.ValidateFormat(historyOutput); err != nil {
		return err
	}
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(historyLimit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []*history.Record{}
	}

	return output.WriteReport(output.DefaultLogger.Writer(), historyOutput, records, func(w io.Writer) error {
		if len(records) == 0 {
			fmt.Fprintln(w, "No builds recorded.")
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tTOOLCHAIN\tUNITS\tJOBS\tDURATION\tSOURCE")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				r.ID[:min(8, len(r.ID))],
				r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				r.Status,
				r.Toolchain,
				r.Units,
				r.Jobs,
				formatDuration(r.Duration),
				r.SourceDir,
			)
		}
		return tw.Flush()
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if err := output.ValidateFormat(historyOutput); err != nil {
		return err
	}
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Get(args[0])
	if err != nil {
		return err
	}

	return output.WriteReport(output.DefaultLogger.Writer(), historyOutput, r, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
		fmt.Fprintf(tw, "Status:\t%s\n", r.Status)
		fmt.Fprintf(tw, "Source:\t%s\n", r.SourceDir)
		fmt.Fprintf(tw, "Toolchain:\t%s\n", r.Toolchain)
		fmt.Fprintf(tw, "Units:\t%d\n", r.Units)
		fmt.Fprintf(tw, "Jobs:\t%d\n", r.Jobs)
		fmt.Fprintf(tw, "Shared std:\t%t\n", r.Shared)
		fmt.Fprintf(tw, "Started:\t%s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(tw, "Duration:\t%s\n", formatDuration(r.Duration))
		if r.Executable != "" {
			fmt.Fprintf(tw, "Executable:\t%s\n", r.Executable)
		}
		if r.Error != "" {
			fmt.Fprintf(tw, "Error:\t%s\n", r.Error)
		}
		return tw.Flush()
	})
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}
	output.DefaultLogger.Success("Build history cleared")
	return nil
}
