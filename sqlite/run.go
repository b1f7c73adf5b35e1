package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/figreact"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ figreact.RunService = (*RunService)(nil)

// RunService implements figreact.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

const runColumns = `id, input_path, input_hash, output_hash, changed, relabeled, components,
	bytes_in, bytes_out, tokens_in, tokens_out, diagnostics, created_at`

// CreateRun records a new run together with its component reports.
func (s *RunService) CreateRun(ctx context.Context, run *figreact.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.InputPath, run.InputHash, run.OutputHash, run.Changed, run.Relabeled, run.Components,
		run.BytesIn, run.BytesOut, run.TokensIn, run.TokensOut, run.Diagnostics,
		run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, c := range run.Reports {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_components (run_id, position, name, occurrence_count, fingerprint)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, i, c.Name, c.OccurrenceCount, string(c.Fingerprint))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run and its component reports.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*figreact.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, figreact.Errorf(figreact.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, occurrence_count, fingerprint
		FROM run_components
		WHERE run_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c figreact.ComponentReport
		var fingerprint string
		if err := rows.Scan(&c.Name, &c.OccurrenceCount, &fingerprint); err != nil {
			return nil, err
		}
		c.Fingerprint = figreact.Fingerprint(fingerprint)
		run.Reports = append(run.Reports, c)
	}

	return run, rows.Err()
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter figreact.RunFilter) ([]*figreact.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.InputPath != nil {
		query.WriteString(" AND input_path = ?")
		args = append(args, *filter.InputPath)
	}
	if filter.Changed != nil {
		query.WriteString(" AND changed = ?")
		args = append(args, *filter.Changed)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*figreact.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*figreact.Run, error) {
	var run figreact.Run
	var createdAt string

	if err := row.Scan(&run.ID, &run.InputPath, &run.InputHash, &run.OutputHash, &run.Changed, &run.Relabeled,
		&run.Components, &run.BytesIn, &run.BytesOut, &run.TokensIn, &run.TokensOut, &run.Diagnostics,
		&createdAt); err != nil {
		return nil, err
	}

	var err error
	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &run, nil
}
