package timetable

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// Header is the exact CSV header line the model is asked to emit and the
// extractor searches for.
const Header = "Start,End,Subject,Faculty"

// Columns are the fixed column names, in order.
var Columns = []string{"Start", "End", "Subject", "Faculty"}

// SystemPrompt sets the model's role for timetable requests.
const SystemPrompt = `You are a college timetable planner.
You answer with a single CSV table and nothing else.`

// BuildPrompt renders a department configuration into the instruction sent
// to the model. Output depends only on cfg.
func BuildPrompt(cfg domain.DepartmentConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate an optimized college timetable for the %s department with the following constraints:\n", cfg.Name)
	fmt.Fprintf(&b, "- Working hours: %s to %s\n", cfg.WorkStart, cfg.WorkEnd)
	fmt.Fprintf(&b, "- Lecture duration: %d minutes\n", cfg.LectureDurationMin)
	if cfg.Break != nil {
		fmt.Fprintf(&b, "- Break: starts at %s and lasts %d minutes (no lectures during the break)\n",
			cfg.Break.Start, cfg.Break.DurationMin)
	} else {
		b.WriteString("- Break: no break is required\n")
	}

	b.WriteString("- Faculty and subjects:\n")
	if len(cfg.Faculty) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, fs := range cfg.Faculty {
		fmt.Fprintf(&b, "  - %s: %s\n", fs.Faculty, fs.Subject)
	}

	b.WriteString("\nReturn the timetable ONLY in CSV format with these exact headers:\n")
	b.WriteString(Header)
	b.WriteString("\n\nRules:\n")
	b.WriteString("1. Use 24-hour HH:MM times for Start and End\n")
	b.WriteString("2. One row per lecture, in chronological order\n")
	b.WriteString("3. Use the faculty and subject names exactly as given\n")
	b.WriteString("4. Do not add commentary, markdown, or blank lines inside the table\n")

	return b.String()
}
