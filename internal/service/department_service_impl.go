package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/google/uuid"
)

type departmentService struct {
	departments repository.DepartmentRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewDepartmentService(
	departments repository.DepartmentRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) DepartmentService {
	return &departmentService{
		departments: departments,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *departmentService) Create(ctx context.Context, d *domain.DepartmentConfig) (err error) {
	fields := map[string]any{"department": d.Name}
	defer observe(ctx, s.observer, "create-department", time.Now().UTC(), fields, &err)

	d.Name = strings.TrimSpace(d.Name)
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if err = d.Validate(); err != nil {
		return err
	}
	fields["faculty_count"] = len(d.Faculty)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDepartments := repository.NewSQLiteDepartmentRepo(tx)
		if err := ensureNameFree(ctx, txDepartments, d.Name, ""); err != nil {
			return err
		}
		return txDepartments.Create(ctx, d)
	})
}

func (s *departmentService) Get(ctx context.Context, nameOrID string) (*domain.DepartmentConfig, error) {
	return resolveDepartment(ctx, s.departments, nameOrID)
}

func (s *departmentService) List(ctx context.Context) ([]*domain.DepartmentConfig, error) {
	return s.departments.List(ctx)
}

func (s *departmentService) Update(ctx context.Context, d *domain.DepartmentConfig) (err error) {
	defer observe(ctx, s.observer, "update-department", time.Now().UTC(), map[string]any{"department": d.Name}, &err)

	d.Name = strings.TrimSpace(d.Name)
	d.UpdatedAt = time.Now().UTC()
	if err = d.Validate(); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDepartments := repository.NewSQLiteDepartmentRepo(tx)
		if err := ensureNameFree(ctx, txDepartments, d.Name, d.ID); err != nil {
			return err
		}
		return txDepartments.Update(ctx, d)
	})
}

func (s *departmentService) Delete(ctx context.Context, nameOrID string) (err error) {
	defer observe(ctx, s.observer, "delete-department", time.Now().UTC(), map[string]any{"department": nameOrID}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDepartments := repository.NewSQLiteDepartmentRepo(tx)
		d, err := resolveDepartment(ctx, txDepartments, nameOrID)
		if err != nil {
			return err
		}
		if err := txDepartments.Delete(ctx, d.ID); err != nil {
			return fmt.Errorf("removing department %q: %w", d.Name, err)
		}
		return nil
	})
}
