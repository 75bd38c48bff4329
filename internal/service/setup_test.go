package service

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/testutil"
)

type testEnv struct {
	db          *sql.DB
	uow         db.UnitOfWork
	departments *repository.SQLiteDepartmentRepo
	generations *repository.SQLiteGenerationRepo
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testEnv{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		departments: repository.NewSQLiteDepartmentRepo(database),
		generations: repository.NewSQLiteGenerationRepo(database),
	}
}
