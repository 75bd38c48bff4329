package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// Validate checks the file before conversion and returns every problem
// found, not just the first.
func Validate(file *DepartmentFile) []error {
	var errs []error

	if len(file.Departments) == 0 {
		return []error{fmt.Errorf("departments: at least one department is required")}
	}

	seen := make(map[string]int)
	for i, d := range file.Departments {
		label := fmt.Sprintf("departments[%d]", i)
		if d.Name != "" {
			label = fmt.Sprintf("departments[%d] (%s)", i, d.Name)
			key := strings.ToLower(strings.TrimSpace(d.Name))
			if prev, ok := seen[key]; ok {
				errs = append(errs, fmt.Errorf("%s: name duplicates departments[%d]", label, prev))
			} else {
				seen[key] = i
			}
		}
		errs = append(errs, validateDepartment(label, &d)...)
	}
	return errs
}

func validateDepartment(label string, d *DepartmentImport) []error {
	var errs []error

	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", label))
	}

	start, startErr := parseClock(label+".start", d.Start)
	if startErr != nil {
		errs = append(errs, startErr)
	}
	end, endErr := parseClock(label+".end", d.End)
	if endErr != nil {
		errs = append(errs, endErr)
	}
	if startErr == nil && endErr == nil && !start.Before(end) {
		errs = append(errs, fmt.Errorf("%s: start %s must be before end %s", label, start, end))
	}

	if d.LectureMinutes <= 0 {
		errs = append(errs, fmt.Errorf("%s.lecture_minutes must be positive, got %d", label, d.LectureMinutes))
	}

	if d.Break != nil {
		if _, err := parseClock(label+".break.start", d.Break.Start); err != nil {
			errs = append(errs, err)
		}
		if d.Break.Minutes <= 0 {
			errs = append(errs, fmt.Errorf("%s.break.minutes must be positive, got %d", label, d.Break.Minutes))
		}
	}

	names := make(map[string]bool)
	for j, f := range d.Faculty {
		fl := fmt.Sprintf("%s.faculty[%d]", label, j)
		name := strings.TrimSpace(f.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", fl))
		} else if names[name] {
			errs = append(errs, fmt.Errorf("%s: faculty %q is listed more than once", fl, name))
		}
		names[name] = true
		if strings.TrimSpace(f.Subject) == "" {
			errs = append(errs, fmt.Errorf("%s.subject is required", fl))
		}
	}

	return errs
}

func parseClock(field, value string) (domain.TimeOfDay, error) {
	if strings.TrimSpace(value) == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	t, err := domain.ParseTimeOfDay(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}
