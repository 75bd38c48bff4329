package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/repository"
)

// resolveDepartment looks a department up by ID first, then by name.
func resolveDepartment(ctx context.Context, repo repository.DepartmentRepo, nameOrID string) (*domain.DepartmentConfig, error) {
	key := strings.TrimSpace(nameOrID)
	if key == "" {
		return nil, fmt.Errorf("department name or id is required")
	}
	d, err := repo.GetByID(ctx, key)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	d, err = repo.GetByName(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("department %q: %w", key, repository.ErrNotFound)
		}
		return nil, err
	}
	return d, nil
}

// ensureNameFree fails with ErrDepartmentExists when another department
// already uses name. selfID is ignored so updates can keep their own name.
func ensureNameFree(ctx context.Context, repo repository.DepartmentRepo, name, selfID string) error {
	existing, err := repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrDepartmentExists, existing.Name)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
