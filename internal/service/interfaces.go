package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/importer"
)

// ErrDepartmentExists is returned when a department name is already taken.
var ErrDepartmentExists = errors.New("department already exists")

type DepartmentService interface {
	Create(ctx context.Context, d *domain.DepartmentConfig) error
	// Get resolves a department by ID or, failing that, by name.
	Get(ctx context.Context, nameOrID string) (*domain.DepartmentConfig, error)
	List(ctx context.Context) ([]*domain.DepartmentConfig, error)
	Update(ctx context.Context, d *domain.DepartmentConfig) error
	Delete(ctx context.Context, nameOrID string) error
}

type GenerationService interface {
	// Preview returns the prompt Generate would send, without calling the model.
	Preview(cfg domain.DepartmentConfig) string
	Generate(ctx context.Context, cfg domain.DepartmentConfig) (*domain.Generation, error)
	GenerateAll(ctx context.Context, cfgs []domain.DepartmentConfig, parallel int) ([]*domain.Generation, error)
	// History lists past generations newest first. An empty departmentID
	// lists across all departments.
	History(ctx context.Context, departmentID string, limit int) ([]*domain.Generation, error)
	GetGeneration(ctx context.Context, id string) (*domain.Generation, error)
}

// ImportResult holds the outcome of a department file import.
type ImportResult struct {
	Departments []*domain.DepartmentConfig
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportDepartments(ctx context.Context, file *importer.DepartmentFile) (*ImportResult, error)
}
