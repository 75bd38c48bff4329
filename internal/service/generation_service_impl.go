package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timetabler/internal/db"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/llm"
	"github.com/alexanderramin/timetabler/internal/repository"
	"github.com/alexanderramin/timetabler/internal/timetable"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type generationService struct {
	client      llm.LLMClient
	generations repository.GenerationRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewGenerationService(
	client llm.LLMClient,
	generations repository.GenerationRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) GenerationService {
	return &generationService{
		client:      client,
		generations: generations,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *generationService) Preview(cfg domain.DepartmentConfig) string {
	return timetable.BuildPrompt(cfg)
}

// Generate runs one prompt/model/parse cycle and records it. Model and
// parse failures are part of the returned generation; the error result is
// only for failures to persist it. cfg.ID must name a stored department or
// be empty.
func (s *generationService) Generate(ctx context.Context, cfg domain.DepartmentConfig) (gen *domain.Generation, err error) {
	fields := map[string]any{"department": cfg.Name}
	defer observe(ctx, s.observer, "generate-timetable", time.Now().UTC(), fields, &err)

	gen = s.attempt(ctx, cfg)
	fields["status"] = gen.Status()
	fields["failure_kind"] = string(gen.Kind)
	fields["row_count"] = len(gen.Result.Rows)
	fields["latency_ms"] = gen.LatencyMs

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteGenerationRepo(tx).Create(ctx, gen)
	})
	if err != nil {
		return nil, fmt.Errorf("saving generation for %q: %w", cfg.Name, err)
	}
	return gen, nil
}

func (s *generationService) attempt(ctx context.Context, cfg domain.DepartmentConfig) *domain.Generation {
	prompt := timetable.BuildPrompt(cfg)
	gen := &domain.Generation{
		ID:             uuid.New().String(),
		DepartmentID:   cfg.ID,
		DepartmentName: cfg.Name,
		Provider:       s.client.Provider(),
		Prompt:         prompt,
		CreatedAt:      time.Now().UTC(),
	}

	if len(cfg.Faculty) == 0 {
		gen.Result = domain.Failed("", fmt.Errorf("%w: department %q has no faculty to schedule", timetable.ErrExtraction, cfg.Name))
		gen.Kind = domain.FailureExtraction
		return gen
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		SystemPrompt: timetable.SystemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		gen.Result = domain.Failed("", err)
		gen.Kind = domain.FailureModel
		return gen
	}

	gen.Model = resp.Model
	gen.LatencyMs = resp.LatencyMs
	gen.RawResponse = resp.Text
	gen.Result = timetable.Parse(resp.Text)
	gen.Kind = timetable.Kind(gen.Result.Err)
	return gen
}

// GenerateAll generates every department independently. Results are in
// input order. parallel below 2 runs them one at a time.
func (s *generationService) GenerateAll(ctx context.Context, cfgs []domain.DepartmentConfig, parallel int) (gens []*domain.Generation, err error) {
	fields := map[string]any{"department_count": len(cfgs), "parallel": parallel}
	defer observe(ctx, s.observer, "generate-all", time.Now().UTC(), fields, &err)

	if len(cfgs) == 0 {
		return nil, fmt.Errorf("%w: no departments to generate", timetable.ErrExtraction)
	}
	if parallel < 1 {
		parallel = 1
	}

	gens = make([]*domain.Generation, len(cfgs))
	var g errgroup.Group
	g.SetLimit(parallel)
	for i, cfg := range cfgs {
		g.Go(func() error {
			gen, err := s.Generate(ctx, cfg)
			if err != nil {
				return err
			}
			gens[i] = gen
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return gens, err
	}

	failed := 0
	for _, gen := range gens {
		if !gen.Result.OK() {
			failed++
		}
	}
	fields["failed_count"] = failed
	return gens, nil
}

func (s *generationService) History(ctx context.Context, departmentID string, limit int) ([]*domain.Generation, error) {
	if departmentID == "" {
		return s.generations.ListRecent(ctx, limit)
	}
	return s.generations.ListByDepartment(ctx, departmentID, limit)
}

// GetGeneration accepts a full ID or a unique prefix such as the display ID.
func (s *generationService) GetGeneration(ctx context.Context, id string) (*domain.Generation, error) {
	return s.generations.GetByIDPrefix(ctx, id)
}
