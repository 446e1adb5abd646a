package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/fontverify/internal/isolate"
)

// EntryInfo describes a registered entry point.
type EntryInfo struct {
	Name   string `json:"name"`
	Module string `json:"module"`
}

// NewEntriesCommand creates the entries command.
func NewEntriesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "entries",
		Short:         "List entry points that isolate can run",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			eps := isolate.Entries()
			infos := make([]EntryInfo, len(eps))
			for i, ep := range eps {
				infos[i] = EntryInfo{Name: ep.Name, Module: ep.Module}
			}
			if rootOpts.Format == "json" {
				return rootOpts.formatter(cmd).Success(infos)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ENTRY\tMODULE")
			for _, e := range infos {
				fmt.Fprintf(tw, "%s\t%s\n", e.Name, e.Module)
			}
			return tw.Flush()
		},
	}
}
