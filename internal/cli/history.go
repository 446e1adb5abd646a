package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/fontverify/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	RunID string
}

// HistoryResult is a recorded run with its checks.
type HistoryResult struct {
	Run       store.Run               `json:"run"`
	Scenarios []store.ScenarioSummary `json:"scenarios"`
	Checks    []store.Check           `json:"checks"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show results recorded by check --db",
		Long: `Show a run recorded in the results database, the latest one by default.

Prints a pass/fail count per scenario. With --verbose every failed check
is listed with its observed classes and faces.

Examples:
  fontverify history --db results.db
  fontverify history --db results.db --run 0192f0c4-...
  fontverify history --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "results database (default from config)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID (default: latest run)")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command) error {
	dbPath := opts.DB
	if dbPath == "" {
		dbPath = opts.settings().DB
	}
	if dbPath == "" {
		return NewExitError(ExitCommandError, "no results database: pass --db or set db in the config file")
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", dbPath))
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open results database", err)
	}
	defer st.Close()

	var run store.Run
	if opts.RunID != "" {
		run, err = st.ReadRun(ctx, opts.RunID)
	} else {
		run, err = st.LatestRun(ctx)
	}
	switch {
	case errors.Is(err, store.ErrNoRuns):
		if opts.Format == "json" {
			return opts.formatter(cmd).Error(ErrCodeNotFound, "no runs recorded", nil)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	case errors.Is(err, store.ErrRunNotFound):
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.RunID))
	case err != nil:
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	checks, err := st.ReadChecks(ctx, run.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read checks", err)
	}
	summary, err := st.Summarize(ctx, run.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to summarize run", err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(HistoryResult{Run: run, Scenarios: summary, Checks: checks})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run %s (#%d, %s)\n", run.ID, run.StartedSeq, run.Source)
	for _, s := range summary {
		mark := "✓"
		if s.Failed > 0 {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s: %d passed, %d failed\n", mark, s.Scenario, s.Passed, s.Failed)
		if !opts.Verbose {
			continue
		}
		for _, c := range checks {
			if c.Scenario != s.Scenario || c.Pass {
				continue
			}
			fmt.Fprintf(w, "  #%d %s %q [%d, %d) classes=%v faces=%v\n",
				c.Seq, c.Kind, c.Text, c.Beg, c.End, c.Classes, c.Faces)
			if c.Message != "" {
				fmt.Fprintf(w, "    %s\n", c.Message)
			}
		}
	}
	return nil
}
