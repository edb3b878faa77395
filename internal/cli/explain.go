package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/bindcheck/internal/lesson"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <lesson>",
		Short: "Show the rule, both variants and the unchecked contrast of a lesson",
		Long: `Show one lesson: the rule its guard enforces, the rejected and accepted
source lines, and what happens in a language that checks nothing.

Examples:
  bindcheck explain ownership
  bindcheck explain init --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(rootOpts, args[0], cmd)
		},
	}
}

func runExplain(opts *RootOptions, name string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd, opts.runID())

	l, ok := lesson.Find(name)
	if !ok {
		msg := fmt.Sprintf("unknown lesson %q: must be one of %v", name, lesson.Names())
		if err := f.Error(ErrCodeUnknownLesson, msg, nil); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, msg)
	}

	if opts.Format == "json" {
		info := summarize(l)
		info.Broken = l.Broken
		info.Fixed = l.Fixed
		info.Contrast = l.Contrast
		return f.Success(info)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s (%s)\n\n", l.Title, l.Name)
	fmt.Fprintf(w, "Rule: %s\n", l.Rule)
	fmt.Fprintf(w, "Fault: %s\n\n", l.Fault)
	fmt.Fprintln(w, "Rejected:")
	writeIndented(w, l.Broken)
	fmt.Fprintln(w, "\nAccepted:")
	writeIndented(w, l.Fixed)
	fmt.Fprintf(w, "\nWithout checks: %s\n", l.Contrast)
	return nil
}

func writeIndented(w io.Writer, snippet string) {
	for _, line := range strings.Split(snippet, "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}
