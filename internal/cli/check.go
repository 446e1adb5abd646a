package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/roach88/fontverify/internal/harness"
	"github.com/roach88/fontverify/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Update    bool   // regenerate golden files
	Filter    string // scenario filter (glob pattern)
	DB        string // results database; overrides config
	GoldenDir string // golden directory; overrides config
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Checks int      `json:"checks"`
	Passed int      `json:"passed"`
	Errors []string `json:"errors,omitempty"`
	Diff   string   `json:"diff,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
	RunID     string           `json:"run_id,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <scenario-file-or-dir>",
		Short: "Run highlighting scenarios",
		Long: `Run highlighting scenarios and compare their attribute maps with golden files.

Each scenario loads its content into a fresh fixture buffer, then verifies
every expectation and assertion in order. When a golden file exists for the
scenario, the per-character attribute map must match it exactly.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  fontverify check ./scenarios
  fontverify check ./scenarios --filter "let*"
  fontverify check ./scenarios --update
  fontverify check ./scenarios --db results.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record results in this SQLite database")
	cmd.Flags().StringVar(&opts.GoldenDir, "golden-dir", "", "directory holding golden files (default: golden/ beside each scenario)")

	return cmd
}

func runCheck(ctx context.Context, opts *CheckOptions, path string, cmd *cobra.Command) error {
	files, err := harness.FindScenarios(path, opts.Filter)
	if err != nil {
		var nf *harness.ScenarioNotFoundError
		if errors.As(err, &nf) {
			return NewExitError(ExitCommandError, fmt.Sprintf("scenario path not found: %s", path))
		}
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	result := CheckResult{
		Scenarios: make([]ScenarioResult, 0, len(files)),
		Total:     len(files),
	}
	if len(files) == 0 {
		if opts.Format == "json" {
			return outputCheckJSON(cmd, result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	rec, err := openRecorder(ctx, opts.dbPath(), path)
	if err != nil {
		return err
	}
	defer rec.close()
	result.RunID = rec.runID()

	h := harness.New(opts.logger())
	for _, file := range files {
		sr, res := runScenario(h, file, opts, cmd)
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		if res != nil {
			if err := rec.record(ctx, sr.Name, res.Checks); err != nil {
				return err
			}
		}
	}

	if opts.Format == "json" {
		return outputCheckJSON(cmd, result)
	}
	return outputCheckText(cmd, result)
}

// runScenario executes a single scenario and returns its summary together
// with the harness result, which is nil when the scenario never ran.
func runScenario(h *harness.Harness, file string, opts *CheckOptions, cmd *cobra.Command) (ScenarioResult, *harness.Result) {
	w := cmd.OutOrStdout()
	text := opts.Format != "json"
	fail := func(name string, errs []string, diff string) ScenarioResult {
		if text {
			fmt.Fprintf(w, "✗ %s\n", name)
			for _, e := range errs {
				fmt.Fprintf(w, "  %s\n", e)
			}
			if diff != "" {
				fmt.Fprint(w, indent(diff, "    "))
			}
		}
		return ScenarioResult{Name: name, File: file, Errors: errs, Diff: diff}
	}

	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return fail(filepath.Base(file), []string{fmt.Sprintf("load error: %v", err)}, ""), nil
	}

	result, err := h.Run(scenario)
	if err != nil {
		return fail(scenario.Name, []string{fmt.Sprintf("execution error: %v", err)}, ""), nil
	}

	summary := func(sr ScenarioResult) ScenarioResult {
		sr.Checks = len(result.Checks)
		sr.Passed = result.Passed()
		return sr
	}

	snap, err := harness.Snapshot(scenario.Name, result.Attributes)
	if err != nil {
		return summary(fail(scenario.Name, []string{fmt.Sprintf("snapshot error: %v", err)}, "")), result
	}
	goldenPath := opts.goldenPath(file, scenario.Name)

	if opts.Update {
		if err := writeGolden(goldenPath, snap); err != nil {
			return summary(fail(scenario.Name, []string{fmt.Sprintf("golden update error: %v", err)}, "")), result
		}
		if !result.Pass {
			return summary(fail(scenario.Name, result.Errors, "")), result
		}
		if text {
			fmt.Fprintf(w, "✓ %s (golden updated)\n", scenario.Name)
		}
		return summary(ScenarioResult{Name: scenario.Name, File: file, Pass: true}), result
	}

	errs := result.Errors
	var diff string
	golden, err := os.ReadFile(goldenPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No golden file; the scenario's own checks decide.
	case err != nil:
		errs = append(errs, fmt.Sprintf("golden read error: %v", err))
	case !bytes.Equal(golden, snap):
		errs = append(errs, "golden file mismatch (run with --update to regenerate)")
		diff = lineDiff(string(golden), string(snap))
	}

	if len(errs) > 0 {
		return summary(fail(scenario.Name, errs, diff)), result
	}
	if text {
		fmt.Fprintf(w, "✓ %s\n", scenario.Name)
	}
	return summary(ScenarioResult{Name: scenario.Name, File: file, Pass: true}), result
}

func (o *CheckOptions) dbPath() string {
	if o.DB != "" {
		return o.DB
	}
	return o.settings().DB
}

// goldenPath returns where the golden file for a scenario lives: the
// configured golden directory, or golden/ next to the scenario file.
func (o *CheckOptions) goldenPath(file, name string) string {
	dir := o.GoldenDir
	if dir == "" {
		dir = o.settings().GoldenDir
	}
	if dir == "" {
		dir = filepath.Join(filepath.Dir(file), "golden")
	}
	return filepath.Join(dir, name+harness.GoldenSuffix)
}

func writeGolden(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// lineDiff lists the lines removed from want ("-") and added in got ("+").
func lineDiff(want, got string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func indent(s, prefix string) string {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		if line != "" {
			sb.WriteString(prefix + line)
		}
	}
	return sb.String()
}

// recorder writes check events to the results database. The zero value
// records nothing.
type recorder struct {
	st  *store.Store
	run store.Run
}

func openRecorder(ctx context.Context, dbPath, source string) (*recorder, error) {
	if dbPath == "" {
		return &recorder{}, nil
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open results database", err)
	}
	run, err := st.WriteRun(ctx, source)
	if err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to record run", err)
	}
	return &recorder{st: st, run: run}, nil
}

func (r *recorder) runID() string { return r.run.ID }

func (r *recorder) record(ctx context.Context, scenario string, checks []harness.CheckEvent) error {
	if r.st == nil {
		return nil
	}
	for _, ev := range checks {
		err := r.st.WriteCheck(ctx, store.Check{
			RunID:    r.run.ID,
			Seq:      ev.Seq,
			Scenario: scenario,
			Kind:     ev.Kind,
			Text:     ev.Text,
			Beg:      ev.Beg,
			End:      ev.End,
			Classes:  ev.Classes,
			Faces:    ev.Faces,
			Pass:     ev.Pass,
			Message:  ev.Message,
		})
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record check", err)
		}
	}
	return nil
}

func (r *recorder) close() {
	if r.st != nil {
		r.st.Close()
	}
}

// outputCheckJSON outputs the check result as JSON.
func outputCheckJSON(cmd *cobra.Command, result CheckResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
		RunID:  result.RunID,
	}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeCheckFailed,
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	f := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
	if err := f.encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// outputCheckText outputs the check summary as text.
func outputCheckText(cmd *cobra.Command, result CheckResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Check Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if result.RunID != "" {
		fmt.Fprintf(w, "Recorded as run %s\n", result.RunID)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
