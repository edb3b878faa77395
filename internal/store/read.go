package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/bindcheck/internal/binding"
	"github.com/roach88/bindcheck/internal/lesson"
)

// ErrRunNotFound is returned by ReadRun for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID      string   `json:"id"`
	Seq     int64    `json:"seq"`
	Command string   `json:"command"`
	Broken  []string `json:"broken"`
	Steps   int      `json:"steps"`
	Faults  int      `json:"faults"`
}

// ListRuns returns every recorded run ordered by seq ascending.
// Returns an empty slice (not nil) when nothing is recorded.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.seq, r.command, r.broken,
		       COUNT(st.position),
		       COUNT(st.fault_code)
		FROM runs r
		LEFT JOIN steps st ON st.run_id = r.id
		GROUP BY r.id
		ORDER BY r.seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var sum RunSummary
		var brokenJSON string
		if err := rows.Scan(&sum.ID, &sum.Seq, &sum.Command, &brokenJSON, &sum.Steps, &sum.Faults); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if sum.Broken, err = unmarshalStrings(brokenJSON); err != nil {
			return nil, fmt.Errorf("run %s: %w", sum.ID, err)
		}
		runs = append(runs, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun returns a recorded run with its steps in execution order.
// Returns ErrRunNotFound if no run has the given ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var run Run
	var brokenJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, seq, command, broken, params_file
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.Seq, &run.Command, &brokenJSON, &run.ParamsFile)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	if run.Broken, err = unmarshalStrings(brokenJSON); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", id, err)
	}

	run.Steps, err = s.readSteps(ctx, id)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

func (s *Store) readSteps(ctx context.Context, runID string) ([]lesson.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT lesson, broken, lines, fault_code, fault_binding, fault_message, fault_details
		FROM steps
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := []lesson.Step{}
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

func scanStep(rows *sql.Rows) (lesson.Step, error) {
	var step lesson.Step
	var linesJSON string
	var code, bindingName, message, details sql.NullString

	if err := rows.Scan(&step.Lesson, &step.Broken, &linesJSON, &code, &bindingName, &message, &details); err != nil {
		return lesson.Step{}, fmt.Errorf("scan step: %w", err)
	}

	lines, err := unmarshalStrings(linesJSON)
	if err != nil {
		return lesson.Step{}, fmt.Errorf("step %s: %w", step.Lesson, err)
	}
	step.Lines = lines

	if code.Valid {
		d, err := unmarshalDetails(details.String)
		if err != nil {
			return lesson.Step{}, fmt.Errorf("step %s: %w", step.Lesson, err)
		}
		step.Fault = &binding.Fault{
			Code:    binding.FaultCode(code.String),
			Binding: bindingName.String,
			Message: message.String,
			Details: d,
		}
	}
	return step, nil
}
