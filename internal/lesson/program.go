package lesson

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/bindcheck/internal/binding"
	"github.com/roach88/bindcheck/internal/params"
)

// Step is the outcome of one executed lesson.
type Step struct {
	Lesson string         `json:"lesson"`
	Broken bool           `json:"broken"`
	Lines  []string       `json:"lines"`
	Fault  *binding.Fault `json:"fault,omitempty"`
}

// Report collects the steps of a program execution.
type Report struct {
	Steps []Step `json:"steps"`
}

// Lines returns every printed line in order.
func (r *Report) Lines() []string {
	lines := []string{}
	for _, s := range r.Steps {
		lines = append(lines, s.Lines...)
	}
	return lines
}

// Faults returns every raised fault in order.
func (r *Report) Faults() []*binding.Fault {
	var faults []*binding.Fault
	for _, s := range r.Steps {
		if s.Fault != nil {
			faults = append(faults, s.Fault)
		}
	}
	return faults
}

// OK reports whether no step faulted.
func (r *Report) OK() bool {
	return len(r.Faults()) == 0
}

// Program runs lessons in order as one linear sequence of statements.
type Program struct {
	Lessons []Lesson
	Params  params.Params

	// Broken selects the lessons that run their broken variant.
	Broken map[string]bool

	// Logger receives per-lesson diagnostics. Nil discards them.
	Logger *slog.Logger
}

// NewProgram creates a program over all lessons.
func NewProgram(p params.Params, broken map[string]bool, logger *slog.Logger) *Program {
	return &Program{
		Lessons: All(),
		Params:  p,
		Broken:  broken,
		Logger:  logger,
	}
}

// Run executes the lessons, writing each printed line to w.
// Execution stops at the first fault, which is returned along with the
// report of everything executed so far.
func (p *Program) Run(w io.Writer) (*Report, error) {
	report := &Report{Steps: []Step{}}
	for _, l := range p.Lessons {
		step, err := p.exec(l)
		if err != nil {
			return report, err
		}
		report.Steps = append(report.Steps, step)

		for _, line := range step.Lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return report, fmt.Errorf("failed to write output: %w", err)
			}
		}
		if step.Fault != nil {
			return report, step.Fault
		}
	}
	return report, nil
}

// Check executes every lesson without writing output and collects all
// faults instead of stopping at the first one.
func (p *Program) Check() (*Report, error) {
	report := &Report{Steps: []Step{}}
	for _, l := range p.Lessons {
		step, err := p.exec(l)
		if err != nil {
			return report, err
		}
		report.Steps = append(report.Steps, step)
	}
	return report, nil
}

// exec runs one lesson. Faults are recorded on the step; any other error
// aborts the program.
func (p *Program) exec(l Lesson) (Step, error) {
	logger := p.logger()
	broken := p.Broken[l.Name]
	step := Step{Lesson: l.Name, Broken: broken, Lines: []string{}}

	emit := func(format string, args ...any) {
		step.Lines = append(step.Lines, fmt.Sprintf(format, args...))
	}
	err := binding.Checked(l.Name, func() error {
		return l.Run(p.Params, broken, emit)
	})

	if err != nil {
		f, ok := binding.AsFault(err)
		if !ok {
			return step, fmt.Errorf("lesson %s: %w", l.Name, err)
		}
		logger.Debug("lesson faulted", "lesson", l.Name, "broken", broken, "code", f.Code, "binding", f.Binding)
		step.Fault = f
		return step, nil
	}

	logger.Debug("lesson passed", "lesson", l.Name, "broken", broken, "lines", len(step.Lines))
	return step, nil
}

func (p *Program) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p.Logger
}
