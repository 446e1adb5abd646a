package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/roach88/fontverify/internal/isolate"
)

// NewIsolateCommand creates the isolate command.
func NewIsolateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "isolate <entry> [args...]",
		Short: "Run an entry point in a fresh process",
		Long: `Run a registered entry point in a new copy of fontverify started without
config files, forwarding the remaining arguments and standard input.

The command exits with the entry point's status. List entry points with
"fontverify entries".

Examples:
  fontverify isolate version
  printf 'let x = 1\n' | fontverify isolate classify
  fontverify isolate classify fundamental < notes.txt`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ep, ok := isolate.Lookup(args[0])
			if !ok {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown entry point %q (see fontverify entries)", args[0]))
			}
			log := rootOpts.logger()

			var code int
			err := isolate.WithIsolatedProcess(ep, func(script string) error {
				log.Debug("running batch script", "entry", ep.Name, "script", script, "args", args[1:])
				c := exec.CommandContext(cmd.Context(), script, args[1:]...)
				c.Stdin = cmd.InOrStdin()
				c.Stdout = cmd.OutOrStdout()
				c.Stderr = cmd.ErrOrStderr()
				var err error
				code, err = isolate.ExitCode(c.Run())
				return err
			})
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to run entry point", err)
			}
			log.Debug("batch process exited", "entry", ep.Name, "code", code)
			if code != ExitSuccess {
				return NewExitError(code, fmt.Sprintf("entry point %s exited with status %d", ep.Name, code))
			}
			return nil
		},
	}

	// Flags after the entry name belong to the entry point.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
