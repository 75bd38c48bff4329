package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/domain"
)

// SQLiteGenerationRepo implements GenerationRepo.
type SQLiteGenerationRepo struct {
	db db.DBTX
}

func NewSQLiteGenerationRepo(conn db.DBTX) *SQLiteGenerationRepo {
	return &SQLiteGenerationRepo{db: conn}
}

const generationColumns = `id, department_id, department_name, provider, model, prompt, raw_response,
	status, failure_kind, error, latency_ms, created_at`

func (r *SQLiteGenerationRepo) Create(ctx context.Context, g *domain.Generation) error {
	var errText string
	if g.Result.Err != nil {
		errText = g.Result.Err.Error()
	}
	raw := g.RawResponse
	if raw == "" {
		raw = g.Result.Raw
	}
	var departmentID interface{}
	if g.DepartmentID != "" {
		departmentID = g.DepartmentID
	}

	query := `INSERT INTO generations (` + generationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		departmentID,
		g.DepartmentName,
		g.Provider,
		g.Model,
		g.Prompt,
		raw,
		g.Status(),
		string(g.Kind),
		errText,
		g.LatencyMs,
		formatTime(g.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting generation: %w", err)
	}

	for i, row := range g.Result.Rows {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO generation_rows (generation_id, position, start_min, end_min, subject, faculty)
			VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, i, int(row.Start), int(row.End), row.Subject, row.Faculty,
		)
		if err != nil {
			return fmt.Errorf("inserting generation row %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteGenerationRepo) GetByID(ctx context.Context, id string) (*domain.Generation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+generationColumns+` FROM generations WHERE id = ?`, id)
	g, st, err := scanGeneration(row)
	if err != nil {
		return nil, err
	}
	if err := r.attachRows(ctx, g, st); err != nil {
		return nil, err
	}
	return g, nil
}

// GetByIDPrefix resolves a short display ID. A prefix matching more than
// one generation is an error.
func (r *SQLiteGenerationRepo) GetByIDPrefix(ctx context.Context, prefix string) (*domain.Generation, error) {
	if prefix == "" {
		return nil, fmt.Errorf("generation %w", ErrNotFound)
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM generations WHERE id LIKE ? || '%' LIMIT 2`, prefix)
	if err != nil {
		return nil, fmt.Errorf("resolving generation id: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning generation id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating generation ids: %w", err)
	}
	rows.Close()

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("generation %w", ErrNotFound)
	case 1:
		return r.GetByID(ctx, ids[0])
	default:
		return nil, fmt.Errorf("generation id prefix %q is ambiguous", prefix)
	}
}

// ListByDepartment returns generations newest first. limit <= 0 means all.
func (r *SQLiteGenerationRepo) ListByDepartment(ctx context.Context, departmentID string, limit int) ([]*domain.Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations
		WHERE department_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?`
	return r.list(ctx, query, departmentID, limitOrAll(limit))
}

// ListRecent returns generations across all departments, newest first.
func (r *SQLiteGenerationRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations
		ORDER BY created_at DESC, id
		LIMIT ?`
	return r.list(ctx, query, limitOrAll(limit))
}

func (r *SQLiteGenerationRepo) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Generation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing generations: %w", err)
	}

	var gens []*domain.Generation
	var states []storedState
	for rows.Next() {
		g, st, err := scanGeneration(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		gens = append(gens, g)
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating generations: %w", err)
	}
	rows.Close()

	for i, g := range gens {
		if err := r.attachRows(ctx, g, states[i]); err != nil {
			return nil, err
		}
	}
	return gens, nil
}

// storedState carries the columns needed to rebuild a TimetableResult once
// the parsed rows are loaded.
type storedState struct {
	status  string
	raw     string
	errText string
}

func (r *SQLiteGenerationRepo) attachRows(ctx context.Context, g *domain.Generation, st storedState) error {
	if st.status != "ok" {
		msg := st.errText
		if msg == "" {
			msg = "timetable generation failed"
		}
		g.Result = domain.Failed(st.raw, errors.New(msg))
		return nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT start_min, end_min, subject, faculty FROM generation_rows
		WHERE generation_id = ? ORDER BY position`, g.ID)
	if err != nil {
		return fmt.Errorf("listing generation rows: %w", err)
	}
	defer rows.Close()

	var out []domain.TimetableRow
	for rows.Next() {
		var start, end int
		var tr domain.TimetableRow
		if err := rows.Scan(&start, &end, &tr.Subject, &tr.Faculty); err != nil {
			return fmt.Errorf("scanning generation row: %w", err)
		}
		tr.Start = domain.TimeOfDay(start)
		tr.End = domain.TimeOfDay(end)
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating generation rows: %w", err)
	}

	g.Result = domain.Succeeded(out)
	return nil
}

func scanGeneration(s rowScanner) (*domain.Generation, storedState, error) {
	var g domain.Generation
	var st storedState
	var departmentID sql.NullString
	var kind, createdAtStr string

	err := s.Scan(
		&g.ID, &departmentID, &g.DepartmentName, &g.Provider, &g.Model, &g.Prompt,
		&st.raw, &st.status, &kind, &st.errText, &g.LatencyMs, &createdAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, st, fmt.Errorf("generation %w", ErrNotFound)
		}
		return nil, st, fmt.Errorf("scanning generation: %w", err)
	}

	if departmentID.Valid {
		g.DepartmentID = departmentID.String
	}
	g.RawResponse = st.raw
	g.Kind = domain.FailureKind(kind)

	createdAt, err := parseTime(createdAtStr)
	if err != nil {
		return nil, st, fmt.Errorf("parsing created_at: %w", err)
	}
	g.CreatedAt = createdAt
	return &g, st, nil
}
