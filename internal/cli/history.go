package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/bindcheck/internal/store"
)

// ErrCodeRunNotFound is reported when history is asked for an unknown run.
const ErrCodeRunNotFound = "E_RUN_NOT_FOUND"

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show runs recorded with --db",
		Long: `List the runs and checks recorded in the --db history, oldest first.
With a run ID, show the steps of that run.

Examples:
  bindcheck --db runs.db run --break init
  bindcheck --db runs.db history
  bindcheck --db runs.db history 01929b2e-7c3a-7d4e-9f10-2b3c4d5e6f70`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.DB == "" {
				return NewExitError(ExitCommandError, "history requires --db")
			}
			s, err := store.Open(rootOpts.DB)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open history", err)
			}
			defer s.Close()

			if len(args) == 1 {
				return showRun(rootOpts, s, args[0], cmd)
			}
			return listRuns(rootOpts, s, cmd)
		},
	}
}

func listRuns(opts *RootOptions, s *store.Store, cmd *cobra.Command) error {
	runs, err := s.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read history", err)
	}

	if opts.Format == "json" {
		return newFormatter(opts, cmd, opts.runID()).Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tRUN\tCOMMAND\tBROKEN\tFAULTS")
	for _, r := range runs {
		broken := strings.Join(r.Broken, ",")
		if broken == "" {
			broken = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d/%d\n", r.Seq, r.ID, r.Command, broken, r.Faults, r.Steps)
	}
	return tw.Flush()
}

func showRun(opts *RootOptions, s *store.Store, id string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd, opts.runID())

	run, err := s.ReadRun(cmd.Context(), id)
	if errors.Is(err, store.ErrRunNotFound) {
		if ferr := f.Error(ErrCodeRunNotFound, err.Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, err.Error())
	}
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read history", err)
	}

	if opts.Format == "json" {
		return f.Success(run)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run %d (%s) %s\n", run.Seq, run.ID, run.Command)
	if run.ParamsFile != "" {
		fmt.Fprintf(w, "Params: %s\n", run.ParamsFile)
	}
	for _, step := range run.Steps {
		variant := "fixed"
		if step.Broken {
			variant = "broken"
		}
		if step.Fault == nil {
			fmt.Fprintf(w, "✓ %s (%s)\n", step.Lesson, variant)
		} else {
			fmt.Fprintf(w, "✗ %s (%s)\n", step.Lesson, variant)
			fmt.Fprintf(w, "  %s: %s\n", step.Fault.Code, step.Fault.Message)
		}
		for _, line := range step.Lines {
			fmt.Fprintf(w, "  | %s\n", line)
		}
	}
	return nil
}
