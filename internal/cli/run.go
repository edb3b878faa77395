package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/bindcheck/internal/binding"
	"github.com/roach88/bindcheck/internal/lesson"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Break []string
}

// RunResult is the JSON payload of the run command.
type RunResult struct {
	Lines []string      `json:"lines"`
	Steps []lesson.Step `json:"steps"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the lesson program",
		Long: `Run the four lessons in order and print each retained value.

Every lesson runs its fixed variant unless named with --break. The first
fault stops the program, like a failing runtime check.

Exit codes:
  0 - Program completed
  1 - A lesson faulted
  2 - Command error (bad params file, unknown lesson)

Examples:
  bindcheck run
  bindcheck run --break ownership
  bindcheck run --break all --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Break, "break", nil, "lessons that run their broken variant (bounds|mutability|ownership|init|all)")

	return cmd
}

func runProgram(opts *RunOptions, cmd *cobra.Command) error {
	traceID := opts.runID()
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr()).With("run_id", traceID)
	f := newFormatter(opts.RootOptions, cmd, traceID)

	prog, err := buildProgram(opts.RootOptions, opts.Break, logger)
	if err != nil {
		return err
	}
	logger.Debug("program starting", "broken", opts.Break, "params", opts.Params)

	// Text output streams lines as lessons complete; JSON collects them.
	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		out = io.Discard
	}
	report, runErr := prog.Run(out)

	fault, isFault := binding.AsFault(runErr)
	if runErr != nil && !isFault {
		return WrapExitError(ExitFailure, "program error", runErr)
	}

	if err := recordRun(cmd.Context(), opts.RootOptions, traceID, "run", prog, report); err != nil {
		return err
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: RunResult{Lines: report.Lines(), Steps: report.Steps}}
		if isFault {
			resp.Status = "error"
			resp.Error = &CLIError{Code: string(fault.Code), Message: fault.Message, Details: fault}
		}
		if err := f.Respond(resp); err != nil {
			return err
		}
	}

	if isFault {
		logger.Debug("program faulted", "code", fault.Code, "binding", fault.Binding)
		return WrapExitError(ExitFailure, "program faulted", fault)
	}

	logger.Debug("program completed", "lines", len(report.Lines()))
	return nil
}
