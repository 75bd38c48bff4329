package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BreakWindow is a single daily break inside a department's working hours.
type BreakWindow struct {
	Start       TimeOfDay
	DurationMin int
}

// End returns the time the break finishes.
func (b BreakWindow) End() TimeOfDay {
	return b.Start.Add(b.DurationMin)
}

// FacultySubject assigns one faculty member to the single subject they teach.
type FacultySubject struct {
	Faculty string
	Subject string
}

// DepartmentConfig holds the scheduling constraints for one department.
// Break is nil when the department needs no break.
type DepartmentConfig struct {
	ID                 string
	Name               string
	WorkStart          TimeOfDay
	WorkEnd            TimeOfDay
	Break              *BreakWindow
	LectureDurationMin int
	Faculty            []FacultySubject
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (d DepartmentConfig) HasBreak() bool {
	return d.Break != nil
}

// Validate reports every problem with the configuration, joined into one error.
func (d DepartmentConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, fmt.Errorf("department name is required"))
	}
	if !d.WorkStart.Before(d.WorkEnd) {
		errs = append(errs, fmt.Errorf("working hours: start %s must be before end %s", d.WorkStart, d.WorkEnd))
	}
	if d.LectureDurationMin <= 0 {
		errs = append(errs, fmt.Errorf("lecture duration must be positive, got %d", d.LectureDurationMin))
	}
	if d.Break != nil && d.Break.DurationMin <= 0 {
		errs = append(errs, fmt.Errorf("break duration must be positive, got %d", d.Break.DurationMin))
	}

	seen := make(map[string]bool, len(d.Faculty))
	for i, fs := range d.Faculty {
		name := strings.TrimSpace(fs.Faculty)
		if name == "" {
			errs = append(errs, fmt.Errorf("faculty %d: name is required", i+1))
			continue
		}
		if strings.TrimSpace(fs.Subject) == "" {
			errs = append(errs, fmt.Errorf("faculty %q: subject is required", name))
		}
		if seen[name] {
			errs = append(errs, fmt.Errorf("faculty %q is listed more than once", name))
		}
		seen[name] = true
	}

	return errors.Join(errs...)
}

// ParseFacultySubject parses a "Faculty=Subject" pair.
func ParseFacultySubject(s string) (FacultySubject, error) {
	faculty, subject, ok := strings.Cut(s, "=")
	faculty = strings.TrimSpace(faculty)
	subject = strings.TrimSpace(subject)
	if !ok || faculty == "" || subject == "" {
		return FacultySubject{}, fmt.Errorf("invalid faculty mapping %q (expected Name=Subject)", s)
	}
	return FacultySubject{Faculty: faculty, Subject: subject}, nil
}
