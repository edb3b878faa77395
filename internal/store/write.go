package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/bindcheck/internal/lesson"
)

// Run is one recorded program execution.
type Run struct {
	ID         string        `json:"id"`
	Seq        int64         `json:"seq"`
	Command    string        `json:"command"`
	Broken     []string      `json:"broken"`
	ParamsFile string        `json:"params_file,omitempty"`
	Steps      []lesson.Step `json:"steps"`
}

// RecordRun writes a run and its steps in one transaction and returns the
// seq assigned to it. Seq is one past the highest recorded seq.
//
// Recording an ID twice fails; run IDs are unique per execution.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	brokenJSON, err := marshalNames(run.Broken)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record run: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("record run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, command, broken, params_file)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, seq, run.Command, brokenJSON, run.ParamsFile)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}

	for i, step := range run.Steps {
		if err := writeStep(ctx, tx, run.ID, i, step); err != nil {
			return 0, fmt.Errorf("record run: step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record run: commit: %w", err)
	}
	return seq, nil
}

func writeStep(ctx context.Context, tx *sql.Tx, runID string, position int, step lesson.Step) error {
	linesJSON, err := marshalLines(step.Lines)
	if err != nil {
		return err
	}

	var code, bindingName, message, details sql.NullString
	if f := step.Fault; f != nil {
		detailsJSON, err := marshalDetails(f.Details)
		if err != nil {
			return err
		}
		code = sql.NullString{String: string(f.Code), Valid: true}
		bindingName = sql.NullString{String: f.Binding, Valid: true}
		message = sql.NullString{String: f.Message, Valid: true}
		details = sql.NullString{String: detailsJSON, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO steps
		(run_id, position, lesson, broken, lines, fault_code, fault_binding, fault_message, fault_details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, position, step.Lesson, step.Broken, linesJSON, code, bindingName, message, details)
	return err
}
