package cli

import (
	"testing"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentDraft_ToConfig(t *testing.T) {
	d := &departmentDraft{
		Name:         "  Science ",
		Start:        "9:00 AM",
		End:          "16:00",
		Lecture:      " 60",
		HasBreak:     true,
		BreakStart:   "12:00",
		BreakMinutes: "30",
		Faculty: []facultyDraft{
			{Name: "Dr. Rao ", Subject: " Mathematics"},
		},
	}

	cfg, err := d.toConfig()
	require.NoError(t, err)
	assert.Equal(t, "Science", cfg.Name)
	assert.Equal(t, domain.NewTimeOfDay(9, 0), cfg.WorkStart)
	assert.Equal(t, domain.NewTimeOfDay(16, 0), cfg.WorkEnd)
	assert.Equal(t, 60, cfg.LectureDurationMin)
	require.NotNil(t, cfg.Break)
	assert.Equal(t, domain.NewTimeOfDay(12, 0), cfg.Break.Start)
	assert.Equal(t, 30, cfg.Break.DurationMin)
	assert.Equal(t, []domain.FacultySubject{{Faculty: "Dr. Rao", Subject: "Mathematics"}}, cfg.Faculty)
	assert.NoError(t, cfg.Validate())
}

func TestDepartmentDraft_ToConfig_NoBreakIgnoresBreakFields(t *testing.T) {
	d := &departmentDraft{
		Name: "Arts", Start: "10:00", End: "14:00", Lecture: "45",
		HasBreak: false, BreakStart: "garbage",
	}

	cfg, err := d.toConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg.Break)
}

func TestDepartmentDraft_ToConfig_Errors(t *testing.T) {
	base := departmentDraft{Name: "Arts", Start: "10:00", End: "14:00", Lecture: "45"}

	tests := []struct {
		name   string
		mutate func(*departmentDraft)
		want   string
	}{
		{"bad start", func(d *departmentDraft) { d.Start = "ten" }, "working hours start"},
		{"bad end", func(d *departmentDraft) { d.End = "" }, "working hours end"},
		{"bad lecture", func(d *departmentDraft) { d.Lecture = "an hour" }, "lecture duration"},
		{"bad break start", func(d *departmentDraft) { d.HasBreak = true; d.BreakStart = "x"; d.BreakMinutes = "30" }, "break start"},
		{"bad break minutes", func(d *departmentDraft) { d.HasBreak = true; d.BreakStart = "12:00"; d.BreakMinutes = "" }, "break duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			tt.mutate(&d)
			_, err := d.toConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFacultyForm_SizesDraftFromCount(t *testing.T) {
	d := &departmentDraft{FacultyCount: "3"}
	require.NotNil(t, facultyForm(d))
	assert.Len(t, d.Faculty, 3)

	d = &departmentDraft{FacultyCount: "zero"}
	facultyForm(d)
	assert.Len(t, d.Faculty, 1)
}

func TestWizardValidators(t *testing.T) {
	assert.NoError(t, validateRequired("x"))
	assert.Error(t, validateRequired("   "))

	assert.NoError(t, validateRequiredPositiveInt(" 5 "))
	assert.Error(t, validateRequiredPositiveInt("0"))
	assert.Error(t, validateRequiredPositiveInt("-3"))
	assert.Error(t, validateRequiredPositiveInt("five"))

	assert.NoError(t, validateTime("09:30"))
	assert.NoError(t, validateTime("2:15 PM"))
	assert.Error(t, validateTime("24:61"))

	assert.Equal(t, 4, parsePositiveInt("4", 1))
	assert.Equal(t, 1, parsePositiveInt("", 1))
	assert.Equal(t, 2, parsePositiveInt("-1", 2))
}
