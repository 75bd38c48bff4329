package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/domain"
)

// SQLiteDepartmentRepo implements DepartmentRepo. Create, Update and Delete
// touch two tables; run them inside a UnitOfWork for atomicity.
type SQLiteDepartmentRepo struct {
	db db.DBTX
}

func NewSQLiteDepartmentRepo(conn db.DBTX) *SQLiteDepartmentRepo {
	return &SQLiteDepartmentRepo{db: conn}
}

const departmentColumns = `id, name, work_start_min, work_end_min, break_start_min, break_duration_min,
	lecture_duration_min, created_at, updated_at`

func (r *SQLiteDepartmentRepo) Create(ctx context.Context, d *domain.DepartmentConfig) error {
	query := `INSERT INTO departments (` + departmentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		int(d.WorkStart),
		int(d.WorkEnd),
		nullableBreakStart(d.Break),
		nullableBreakDuration(d.Break),
		d.LectureDurationMin,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting department: %w", err)
	}
	return r.insertFaculty(ctx, d.ID, d.Faculty)
}

func (r *SQLiteDepartmentRepo) GetByID(ctx context.Context, id string) (*domain.DepartmentConfig, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = ?`, id)
	return r.get(ctx, row)
}

// GetByName matches case-insensitively.
func (r *SQLiteDepartmentRepo) GetByName(ctx context.Context, name string) (*domain.DepartmentConfig, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+departmentColumns+` FROM departments WHERE name = ? COLLATE NOCASE`, name)
	return r.get(ctx, row)
}

func (r *SQLiteDepartmentRepo) List(ctx context.Context) ([]*domain.DepartmentConfig, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}

	var depts []*domain.DepartmentConfig
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		depts = append(depts, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating departments: %w", err)
	}
	rows.Close()

	// Faculty is loaded after the department cursor is closed; in-memory
	// databases run on a single connection.
	faculty, err := r.allFaculty(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range depts {
		d.Faculty = faculty[d.ID]
	}
	return depts, nil
}

func (r *SQLiteDepartmentRepo) Update(ctx context.Context, d *domain.DepartmentConfig) error {
	query := `UPDATE departments SET name = ?, work_start_min = ?, work_end_min = ?, break_start_min = ?,
		break_duration_min = ?, lecture_duration_min = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Name,
		int(d.WorkStart),
		int(d.WorkEnd),
		nullableBreakStart(d.Break),
		nullableBreakDuration(d.Break),
		d.LectureDurationMin,
		formatTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating department: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("department %w", ErrNotFound)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM department_faculty WHERE department_id = ?`, d.ID); err != nil {
		return fmt.Errorf("clearing faculty: %w", err)
	}
	return r.insertFaculty(ctx, d.ID, d.Faculty)
}

// Delete removes the department and its faculty. Past generations keep
// their department name but lose the link.
func (r *SQLiteDepartmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM department_faculty WHERE department_id = ?`, id); err != nil {
		return fmt.Errorf("deleting faculty: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `UPDATE generations SET department_id = NULL WHERE department_id = ?`, id); err != nil {
		return fmt.Errorf("unlinking generations: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting department: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("department %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteDepartmentRepo) get(ctx context.Context, row *sql.Row) (*domain.DepartmentConfig, error) {
	d, err := scanDepartment(row)
	if err != nil {
		return nil, err
	}
	d.Faculty, err = r.facultyFor(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *SQLiteDepartmentRepo) insertFaculty(ctx context.Context, departmentID string, faculty []domain.FacultySubject) error {
	for i, fs := range faculty {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO department_faculty (department_id, position, faculty, subject) VALUES (?, ?, ?, ?)`,
			departmentID, i, fs.Faculty, fs.Subject,
		)
		if err != nil {
			return fmt.Errorf("inserting faculty %q: %w", fs.Faculty, err)
		}
	}
	return nil
}

func (r *SQLiteDepartmentRepo) facultyFor(ctx context.Context, departmentID string) ([]domain.FacultySubject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT faculty, subject FROM department_faculty WHERE department_id = ? ORDER BY position`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("listing faculty: %w", err)
	}
	defer rows.Close()

	var out []domain.FacultySubject
	for rows.Next() {
		var fs domain.FacultySubject
		if err := rows.Scan(&fs.Faculty, &fs.Subject); err != nil {
			return nil, fmt.Errorf("scanning faculty: %w", err)
		}
		out = append(out, fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating faculty: %w", err)
	}
	return out, nil
}

func (r *SQLiteDepartmentRepo) allFaculty(ctx context.Context) (map[string][]domain.FacultySubject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT department_id, faculty, subject FROM department_faculty ORDER BY department_id, position`)
	if err != nil {
		return nil, fmt.Errorf("listing faculty: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.FacultySubject)
	for rows.Next() {
		var id string
		var fs domain.FacultySubject
		if err := rows.Scan(&id, &fs.Faculty, &fs.Subject); err != nil {
			return nil, fmt.Errorf("scanning faculty: %w", err)
		}
		out[id] = append(out[id], fs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating faculty: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDepartment(s rowScanner) (*domain.DepartmentConfig, error) {
	var d domain.DepartmentConfig
	var workStart, workEnd int
	var breakStart, breakDuration sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := s.Scan(
		&d.ID, &d.Name, &workStart, &workEnd,
		&breakStart, &breakDuration,
		&d.LectureDurationMin,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("department %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning department: %w", err)
	}

	d.WorkStart = domain.TimeOfDay(workStart)
	d.WorkEnd = domain.TimeOfDay(workEnd)
	d.Break = breakFromColumns(breakStart, breakDuration)

	var parseErr error
	d.CreatedAt, parseErr = parseTime(createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	d.UpdatedAt, parseErr = parseTime(updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &d, nil
}
