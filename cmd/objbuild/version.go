package main

import (
	"fmt"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/objbuild/internal/output"
)

// Version information - set at build time via ldflags
var (
	Version   = ""
	GitCommit = ""
	BuildDate = ""
)

var versionJSON bool

func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().BoolVar(&versionJSON, "json", false, "Output in JSON format")
	return cmd
}

func buildVersion() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails("objbuild", "Parallel build orchestrator for C++ sources", ""),
		func(i *goversion.Info) {
			if Version != "" {
				i.GitVersion = Version
			}
			if GitCommit != "" {
				i.GitCommit = GitCommit
			}
			if BuildDate != "" {
				i.BuildDate = BuildDate
			}
		},
	)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := buildVersion()
	w := output.DefaultLogger.Writer()

	if versionJSON {
		data, err := info.JSONString()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, data)
		return nil
	}
	fmt.Fprint(w, info.String())
	return nil
}
