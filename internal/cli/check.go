package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Break []string
}

// Diagnostic is one fault reported by the check command.
type Diagnostic struct {
	Lesson  string            `json:"lesson"`
	Code    string            `json:"code"`
	Binding string            `json:"binding,omitempty"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
	Lessons     int          `json:"lessons"`
	Faults      int          `json:"faults"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report every binding fault without printing program output",
		Long: `Run every lesson and report all faults instead of stopping at the
first one, the way a compiler lists every diagnostic.

Exit codes:
  0 - No faults
  1 - One or more lessons faulted
  2 - Command error (bad params file, unknown lesson)

Examples:
  bindcheck check --break all
  bindcheck check --break bounds,init --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Break, "break", nil, "lessons that run their broken variant (bounds|mutability|ownership|init|all)")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	traceID := opts.runID()
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr()).With("run_id", traceID)
	f := newFormatter(opts.RootOptions, cmd, traceID)

	prog, err := buildProgram(opts.RootOptions, opts.Break, logger)
	if err != nil {
		return err
	}

	report, err := prog.Check()
	if err != nil {
		return WrapExitError(ExitFailure, "program error", err)
	}
	if err := recordRun(cmd.Context(), opts.RootOptions, traceID, "check", prog, report); err != nil {
		return err
	}

	result := CheckResult{
		Diagnostics: []Diagnostic{},
		Lessons:     len(report.Steps),
	}
	for _, step := range report.Steps {
		if step.Fault == nil {
			continue
		}
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Lesson:  step.Lesson,
			Code:    string(step.Fault.Code),
			Binding: step.Fault.Binding,
			Message: step.Fault.Message,
			Details: step.Fault.Details,
		})
	}
	result.Faults = len(result.Diagnostics)

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if result.Faults > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    ErrCodeCheckFailed,
				Message: fmt.Sprintf("%d fault(s)", result.Faults),
			}
		}
		if err := f.Respond(resp); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, step := range report.Steps {
			if step.Fault == nil {
				fmt.Fprintf(w, "✓ %s\n", step.Lesson)
				continue
			}
			fmt.Fprintf(w, "✗ %s\n", step.Lesson)
			fmt.Fprintf(w, "  %s: %s\n", step.Fault.Code, step.Fault.Message)
			f.VerboseLog("  details: %v", step.Fault.Details)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Check Summary: %d fault(s) in %d lesson(s)\n", result.Faults, result.Lessons)
	}

	if result.Faults > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d fault(s)", result.Faults))
	}
	return nil
}
