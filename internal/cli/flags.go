package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/spf13/pflag"
)

// timeOfDayValue is a pflag.Value accepting HH:MM or 3:04 PM style times.
type timeOfDayValue struct {
	t   *domain.TimeOfDay
	set bool
}

var _ pflag.Value = (*timeOfDayValue)(nil)

func newTimeOfDayValue(p *domain.TimeOfDay) *timeOfDayValue {
	return &timeOfDayValue{t: p}
}

func (v *timeOfDayValue) String() string {
	if v == nil || v.t == nil || !v.set {
		return ""
	}
	return v.t.String()
}

func (v *timeOfDayValue) Set(s string) error {
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*v.t = t
	v.set = true
	return nil
}

func (v *timeOfDayValue) Type() string { return "time" }

// parseFacultyFlags turns repeated "Name=Subject" values into pairs.
func parseFacultyFlags(values []string) ([]domain.FacultySubject, error) {
	out := make([]domain.FacultySubject, 0, len(values))
	for _, raw := range values {
		fs, err := domain.ParseFacultySubject(raw)
		if err != nil {
			return nil, fmt.Errorf("--faculty %q: %w", strings.TrimSpace(raw), err)
		}
		out = append(out, fs)
	}
	return out, nil
}
