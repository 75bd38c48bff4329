package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timetabler/internal/cli/formatter"
	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// timetablerHuhTheme returns a huh theme using the formatter palette.
func timetablerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// departmentDraft holds the raw text the department form collects.
type departmentDraft struct {
	Name         string
	Start        string
	End          string
	Lecture      string
	HasBreak     bool
	BreakStart   string
	BreakMinutes string
	FacultyCount string
	Faculty      []facultyDraft
}

type facultyDraft struct {
	Name    string
	Subject string
}

// departmentForm collects everything except the faculty pairs, whose count
// is only known once this form completes.
func departmentForm(d *departmentDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Department Name").Value(&d.Name).Validate(validateRequired),
			timeInput("Working Hours Start", "09:00", &d.Start),
			timeInput("Working Hours End", "16:00", &d.End),
			huh.NewInput().Title("Lecture Duration (minutes)").Placeholder("60").Value(&d.Lecture).Validate(validateRequiredPositiveInt),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Is there a daily break?").Affirmative("Yes").Negative("No").Value(&d.HasBreak),
		),
		huh.NewGroup(
			timeInput("Break Start", "12:00", &d.BreakStart),
			huh.NewInput().Title("Break Duration (minutes)").Placeholder("30").Value(&d.BreakMinutes).Validate(validateRequiredPositiveInt),
		).WithHideFunc(func() bool { return !d.HasBreak }),
		huh.NewGroup(
			huh.NewInput().Title("Number of Faculty").Placeholder("3").Value(&d.FacultyCount).Validate(validateRequiredPositiveInt),
		),
	).WithTheme(timetablerHuhTheme()).WithShowHelp(false)
}

// facultyForm asks for one name/subject pair per faculty member.
func facultyForm(d *departmentDraft) *huh.Form {
	n := parsePositiveInt(d.FacultyCount, 1)
	d.Faculty = make([]facultyDraft, n)

	groups := make([]*huh.Group, 0, n)
	for i := range d.Faculty {
		f := &d.Faculty[i]
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("Faculty %d Name", i+1)).Value(&f.Name).Validate(validateRequired),
			huh.NewInput().Title(fmt.Sprintf("Faculty %d Subject", i+1)).Value(&f.Subject).Validate(validateRequired),
		))
	}
	return huh.NewForm(groups...).WithTheme(timetablerHuhTheme()).WithShowHelp(false)
}

// toConfig converts the collected answers. The result still needs Validate.
func (d *departmentDraft) toConfig() (*domain.DepartmentConfig, error) {
	start, err := domain.ParseTimeOfDay(d.Start)
	if err != nil {
		return nil, fmt.Errorf("working hours start: %w", err)
	}
	end, err := domain.ParseTimeOfDay(d.End)
	if err != nil {
		return nil, fmt.Errorf("working hours end: %w", err)
	}
	lecture, err := strconv.Atoi(strings.TrimSpace(d.Lecture))
	if err != nil {
		return nil, fmt.Errorf("lecture duration: enter a number of minutes")
	}

	cfg := &domain.DepartmentConfig{
		Name:               strings.TrimSpace(d.Name),
		WorkStart:          start,
		WorkEnd:            end,
		LectureDurationMin: lecture,
	}

	if d.HasBreak {
		bs, err := domain.ParseTimeOfDay(d.BreakStart)
		if err != nil {
			return nil, fmt.Errorf("break start: %w", err)
		}
		bm, err := strconv.Atoi(strings.TrimSpace(d.BreakMinutes))
		if err != nil {
			return nil, fmt.Errorf("break duration: enter a number of minutes")
		}
		cfg.Break = &domain.BreakWindow{Start: bs, DurationMin: bm}
	}

	for _, f := range d.Faculty {
		cfg.Faculty = append(cfg.Faculty, domain.FacultySubject{
			Faculty: strings.TrimSpace(f.Name),
			Subject: strings.TrimSpace(f.Subject),
		})
	}
	return cfg, nil
}

func timeInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateTime)
}

// parsePositiveInt parses s as a positive integer, returning fallback if s is
// empty, non-numeric, or non-positive.
func parsePositiveInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateRequiredPositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateTime(s string) error {
	if _, err := domain.ParseTimeOfDay(s); err != nil {
		return fmt.Errorf("use HH:MM, e.g. 09:30 or 2:15 PM")
	}
	return nil
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(timetablerHuhTheme()).WithShowHelp(false)
}
