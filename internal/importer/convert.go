package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/google/uuid"
)

// Convert turns a validated file into department configs ready to persist.
// Call Validate first; Convert only reports the first problem it trips on.
func Convert(file *DepartmentFile) ([]*domain.DepartmentConfig, error) {
	now := time.Now().UTC()
	out := make([]*domain.DepartmentConfig, 0, len(file.Departments))

	for _, d := range file.Departments {
		start, err := domain.ParseTimeOfDay(d.Start)
		if err != nil {
			return nil, fmt.Errorf("department %q: start: %w", d.Name, err)
		}
		end, err := domain.ParseTimeOfDay(d.End)
		if err != nil {
			return nil, fmt.Errorf("department %q: end: %w", d.Name, err)
		}

		cfg := &domain.DepartmentConfig{
			ID:                 uuid.New().String(),
			Name:               strings.TrimSpace(d.Name),
			WorkStart:          start,
			WorkEnd:            end,
			LectureDurationMin: d.LectureMinutes,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		if d.Break != nil {
			bs, err := domain.ParseTimeOfDay(d.Break.Start)
			if err != nil {
				return nil, fmt.Errorf("department %q: break start: %w", d.Name, err)
			}
			cfg.Break = &domain.BreakWindow{Start: bs, DurationMin: d.Break.Minutes}
		}

		for _, f := range d.Faculty {
			cfg.Faculty = append(cfg.Faculty, domain.FacultySubject{
				Faculty: strings.TrimSpace(f.Name),
				Subject: strings.TrimSpace(f.Subject),
			})
		}

		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("department %q: %w", d.Name, err)
		}
		out = append(out, cfg)
	}
	return out, nil
}
