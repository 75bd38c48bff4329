package testutil

import (
	"time"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/google/uuid"
)

// Department options
type DepartmentOption func(*domain.DepartmentConfig)

func WithWorkingHours(start, end string) DepartmentOption {
	return func(d *domain.DepartmentConfig) {
		d.WorkStart = domain.MustParseTimeOfDay(start)
		d.WorkEnd = domain.MustParseTimeOfDay(end)
	}
}

func WithLectureDuration(min int) DepartmentOption {
	return func(d *domain.DepartmentConfig) {
		d.LectureDurationMin = min
	}
}

func WithBreak(start string, durationMin int) DepartmentOption {
	return func(d *domain.DepartmentConfig) {
		d.Break = &domain.BreakWindow{Start: domain.MustParseTimeOfDay(start), DurationMin: durationMin}
	}
}

func WithoutBreak() DepartmentOption {
	return func(d *domain.DepartmentConfig) {
		d.Break = nil
	}
}

// WithFaculty replaces the faculty list. Pairs are faculty, subject, faculty, subject...
func WithFaculty(pairs ...string) DepartmentOption {
	return func(d *domain.DepartmentConfig) {
		d.Faculty = nil
		for i := 0; i+1 < len(pairs); i += 2 {
			d.Faculty = append(d.Faculty, domain.FacultySubject{Faculty: pairs[i], Subject: pairs[i+1]})
		}
	}
}

func WithCreatedAt(t time.Time) DepartmentOption {
	return func(d *domain.DepartmentConfig) {
		d.CreatedAt = t
		d.UpdatedAt = t
	}
}

// NewTestDepartment returns a valid department: 09:00-16:00, hour-long
// lectures, a 30 minute break at 12:00 and two faculty members.
func NewTestDepartment(name string, opts ...DepartmentOption) *domain.DepartmentConfig {
	now := time.Now().UTC()
	d := &domain.DepartmentConfig{
		ID:                 uuid.New().String(),
		Name:               name,
		WorkStart:          domain.NewTimeOfDay(9, 0),
		WorkEnd:            domain.NewTimeOfDay(16, 0),
		Break:              &domain.BreakWindow{Start: domain.NewTimeOfDay(12, 0), DurationMin: 30},
		LectureDurationMin: 60,
		Faculty: []domain.FacultySubject{
			{Faculty: "Dr. Rao", Subject: "Mathematics"},
			{Faculty: "Prof. Iyer", Subject: "Physics"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Generation options
type GenerationOption func(*domain.Generation)

func WithResult(r domain.TimetableResult, kind domain.FailureKind) GenerationOption {
	return func(g *domain.Generation) {
		g.Result = r
		g.Kind = kind
		if g.RawResponse == "" {
			g.RawResponse = r.Raw
		}
	}
}

func WithRawResponse(raw string) GenerationOption {
	return func(g *domain.Generation) {
		g.RawResponse = raw
	}
}

func WithGeneratedAt(t time.Time) GenerationOption {
	return func(g *domain.Generation) {
		g.CreatedAt = t
	}
}

// NewTestGeneration returns a successful two-row generation for dept.
func NewTestGeneration(dept *domain.DepartmentConfig, opts ...GenerationOption) *domain.Generation {
	g := &domain.Generation{
		ID:             uuid.New().String(),
		DepartmentID:   dept.ID,
		DepartmentName: dept.Name,
		Provider:       "groq",
		Model:          "test-model",
		Prompt:         "prompt for " + dept.Name,
		Result: domain.Succeeded([]domain.TimetableRow{
			{Start: domain.NewTimeOfDay(9, 0), End: domain.NewTimeOfDay(10, 0), Subject: "Mathematics", Faculty: "Dr. Rao"},
			{Start: domain.NewTimeOfDay(10, 0), End: domain.NewTimeOfDay(11, 0), Subject: "Physics", Faculty: "Prof. Iyer"},
		}),
		LatencyMs: 42,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
