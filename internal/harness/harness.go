package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/bindcheck/internal/lesson"
	"github.com/roach88/bindcheck/internal/params"
	"github.com/roach88/bindcheck/internal/testutil"
)

// Harness executes scenarios with a deterministic sequence clock.
type Harness struct {
	clock  *testutil.SeqClock
	logger *slog.Logger
}

// New creates a harness. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{
		clock:  testutil.NewSeqClock(),
		logger: logger,
	}
}

// Run executes a scenario with a fresh harness and returns the result.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Load params (defaults, or the scenario's CUE override)
// 2. Resolve toggles into the broken set
// 3. Execute the program in the scenario's mode
// 4. Convert the report into a trace
// 5. Evaluate assertions against the trace
//
// The returned error covers setup problems only; failed assertions are
// reported through Result.Pass and Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	h.clock.Reset()

	p, err := params.Load(scenario.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to load params: %w", err)
	}

	broken, err := lesson.ParseToggles(scenario.Break)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve toggles: %w", err)
	}

	prog := lesson.NewProgram(p, broken, h.logger)

	var report *lesson.Report
	switch scenario.Mode {
	case ModeCheck:
		report, err = prog.Check()
	default:
		report, err = prog.Run(io.Discard)
		// A fault ends the run; it is already recorded on the last step.
		if isRecordedFault(report, err) {
			err = nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute program: %w", err)
	}

	result := NewResult()
	for _, step := range report.Steps {
		for _, line := range step.Lines {
			result.AddLineTrace(step.Lesson, line, h.clock.Next())
		}
		if step.Fault != nil {
			result.AddFaultTrace(step.Lesson, string(step.Fault.Code), step.Fault.Binding, h.clock.Next())
		}
	}

	h.logger.Debug("scenario executed",
		"scenario", scenario.Name,
		"mode", modeOrDefault(scenario.Mode),
		"events", len(result.Trace),
	)

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// isRecordedFault reports whether err is the fault recorded on the report's last step.
func isRecordedFault(report *lesson.Report, err error) bool {
	if err == nil || report == nil || len(report.Steps) == 0 {
		return false
	}
	last := report.Steps[len(report.Steps)-1]
	return last.Fault != nil && error(last.Fault) == err
}

func modeOrDefault(mode string) string {
	if mode == "" {
		return ModeRun
	}
	return mode
}
