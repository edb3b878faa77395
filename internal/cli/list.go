package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/bindcheck/internal/lesson"
)

// LessonInfo describes a lesson in list and explain output.
type LessonInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Rule     string `json:"rule"`
	Fault    string `json:"fault"`
	Broken   string `json:"broken,omitempty"`
	Fixed    string `json:"fixed,omitempty"`
	Contrast string `json:"contrast,omitempty"`
}

func summarize(l lesson.Lesson) LessonInfo {
	return LessonInfo{
		Name:  l.Name,
		Title: l.Title,
		Rule:  l.Rule,
		Fault: string(l.Fault),
	}
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List the lessons in program order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	lessons := lesson.All()

	if opts.Format == "json" {
		infos := make([]LessonInfo, len(lessons))
		for i, l := range lessons {
			infos[i] = summarize(l)
		}
		return newFormatter(opts, cmd, opts.runID()).Success(infos)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LESSON\tFAULT\tRULE")
	for _, l := range lessons {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Name, l.Fault, l.Rule)
	}
	return tw.Flush()
}
