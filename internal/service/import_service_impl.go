package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/importer"
	"github.com/alexanderramin/timetabler/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService stores every department of a file in one transaction:
// either all of them are created or none are.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	file, err := importer.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportDepartments(ctx, file)
}

func (s *importService) ImportDepartments(ctx context.Context, file *importer.DepartmentFile) (result *ImportResult, err error) {
	fields := map[string]any{"department_count": len(file.Departments)}
	defer observe(ctx, s.observer, "import-departments", time.Now().UTC(), fields, &err)

	if errs := importer.Validate(file); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	depts, err := importer.Convert(file)
	if err != nil {
		return nil, fmt.Errorf("converting department file: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDepartments := repository.NewSQLiteDepartmentRepo(tx)
		for _, d := range depts {
			if err := ensureNameFree(ctx, txDepartments, d.Name, ""); err != nil {
				return err
			}
			if err := txDepartments.Create(ctx, d); err != nil {
				return fmt.Errorf("creating department %q: %w", d.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ImportResult{Departments: depts}, nil
}
