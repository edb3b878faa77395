package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/bindcheck/internal/lesson"
	"github.com/roach88/bindcheck/internal/params"
	"github.com/roach88/bindcheck/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Params  string // optional CUE override file
	DB      string // optional SQLite run history

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the bindcheck CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around caller-owned
// options, so tests can pin the run ID generator.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bindcheck",
		Short: "bindcheck - binding misuse demonstrations",
		Long: `Demonstrates four binding rules of statically checked systems languages
with runtime guards: bounds checks, mutability control, ownership transfer
and definite assignment. Each lesson has a broken and a fixed variant.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Params, "params", "", "CUE file overriding lesson inputs")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "SQLite file recording run and check history")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newLogger returns a text logger on w, at debug level when verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// buildProgram loads params and toggles into a program.
func buildProgram(opts *RootOptions, breaks []string, logger *slog.Logger) (*lesson.Program, error) {
	p, err := params.Load(opts.Params)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load params", err)
	}
	broken, err := lesson.ParseToggles(breaks)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid --break", err)
	}
	return lesson.NewProgram(p, broken, logger), nil
}

// runID returns a fresh run ID from the configured generator.
func (o *RootOptions) runID() string {
	if o.RunIDs == nil {
		return UUIDv7Generator{}.Generate()
	}
	return o.RunIDs.Generate()
}

// recordRun appends the report to the --db history. Without --db it does nothing.
func recordRun(ctx context.Context, opts *RootOptions, traceID, command string, prog *lesson.Program, report *lesson.Report) error {
	if opts.DB == "" {
		return nil
	}

	s, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history", err)
	}
	defer s.Close()

	broken := []string{}
	for _, name := range lesson.Names() {
		if prog.Broken[name] {
			broken = append(broken, name)
		}
	}

	_, err = s.RecordRun(ctx, store.Run{
		ID:         traceID,
		Command:    command,
		Broken:     broken,
		ParamsFile: opts.Params,
		Steps:      report.Steps,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "failed to record run", err)
	}
	return nil
}
