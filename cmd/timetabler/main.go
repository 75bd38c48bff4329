package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/timetabler/internal/cli"
	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/llm"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine.
	_ = godotenv.Load()

	logger, err := newLogger(os.Getenv("TIMETABLER_LOG_LEVEL"), os.Getenv("TIMETABLER_LOG_FORMAT"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dbPath := os.Getenv("TIMETABLER_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".timetabler", "timetabler.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	departmentRepo := repository.NewSQLiteDepartmentRepo(database)
	generationRepo := repository.NewSQLiteGenerationRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	useCases := service.NewZapUseCaseObserver(logger)

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		if os.Getenv("TIMETABLER_LOG_LEVEL") != "" {
			observer = llm.NewZapObserver(logger)
		} else {
			observer = llm.NewLogObserver(os.Stderr)
		}
	}
	// The client stays nil when the environment is incomplete. Commands
	// that need the model check App.LLMErr before generating.
	llmClient, llmErr := llm.NewClient(llmCfg, observer)

	app := &cli.App{
		Departments: service.NewDepartmentService(departmentRepo, uow, useCases),
		Generations: service.NewGenerationService(llmClient, generationRepo, uow, useCases),
		Import:      service.NewImportService(uow, useCases),
		LLMErr:      llmErr,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// newLogger builds the stderr logger. Level defaults to warn so normal
// runs print only command output.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("TIMETABLER_LOG_LEVEL: %w", err)
		}
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	switch strings.ToLower(format) {
	case "", "console":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		cfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("TIMETABLER_LOG_FORMAT: unknown format %q (use console or json)", format)
	}

	return cfg.Build()
}
