package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type DepartmentRepo interface {
	Create(ctx context.Context, d *domain.DepartmentConfig) error
	GetByID(ctx context.Context, id string) (*domain.DepartmentConfig, error)
	GetByName(ctx context.Context, name string) (*domain.DepartmentConfig, error)
	List(ctx context.Context) ([]*domain.DepartmentConfig, error)
	Update(ctx context.Context, d *domain.DepartmentConfig) error
	Delete(ctx context.Context, id string) error
}

type GenerationRepo interface {
	Create(ctx context.Context, g *domain.Generation) error
	GetByID(ctx context.Context, id string) (*domain.Generation, error)
	GetByIDPrefix(ctx context.Context, prefix string) (*domain.Generation, error)
	ListByDepartment(ctx context.Context, departmentID string, limit int) ([]*domain.Generation, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Generation, error)
}
