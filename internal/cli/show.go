package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fontverify/internal/render"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display a file as the mode highlights it",
		Long: `Load a file into a fixture buffer and draw it with one terminal style
per face, followed by a legend of the faces that appear.

Face styles come from the "faces" section of the config file.

Examples:
  fontverify show sample.let
  fontverify show sample.let --lines`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	addLoadFlags(cmd, opts)
	return cmd
}

func runShow(opts *LoadOptions, path string, cmd *cobra.Command) error {
	if opts.Format == "json" {
		return NewExitError(ExitCommandError, "show only supports text output; use dump --format json")
	}
	attrs, err := loadAttributes(opts, path)
	if err != nil {
		return err
	}

	r := render.New(opts.settings().Faces)
	w := cmd.OutOrStdout()
	out := r.Render(attrs)
	fmt.Fprint(w, out)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		fmt.Fprintln(w)
	}
	if legend := r.Legend(attrs); legend != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Faces: %s\n", legend)
	}
	return nil
}
