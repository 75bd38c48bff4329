package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/timetable"
)

// TimetableRows converts parsed rows into table cells in display column order.
func TimetableRows(rows []domain.TimetableRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Start.String(), r.End.String(), r.Subject, r.Faculty})
	}
	return out
}

// FormatTimetable renders a successful result as a table, or a failed one
// as an error line followed by the raw model text in a box.
func FormatTimetable(result domain.TimetableResult) string {
	if !result.OK() {
		return FormatFailure(result)
	}
	if len(result.Rows) == 0 {
		return Dim("No lectures scheduled.") + "\n"
	}
	return RenderTable(timetable.Columns, TimetableRows(result.Rows))
}

// FormatFailure shows the error and the untouched raw response.
func FormatFailure(result domain.TimetableResult) string {
	var b strings.Builder
	b.WriteString(StyleRed.Render("Error: " + result.Err.Error()))
	b.WriteString("\n")
	if result.Raw == "" {
		b.WriteString(Dim("(no response text)"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(RenderErrorBox("Raw response", result.Raw))
	b.WriteString("\n")
	return b.String()
}

// FormatGeneration renders one department's outcome under a header.
func FormatGeneration(g *domain.Generation) string {
	var b strings.Builder
	b.WriteString(Header(g.DepartmentName + " timetable"))
	b.WriteString("\n")
	b.WriteString(FormatTimetable(g.Result))

	meta := []string{StatusIndicator(g.Kind), Dim("id " + g.DisplayID())}
	if g.Provider != "" {
		model := g.Provider
		if g.Model != "" {
			model += "/" + g.Model
		}
		meta = append(meta, Dim(model))
	}
	if g.LatencyMs > 0 {
		meta = append(meta, Dim(Latency(g.LatencyMs)))
	}
	b.WriteString(strings.Join(meta, Dim(" · ")))
	b.WriteString("\n")
	return b.String()
}

// FormatPrompt renders the prompt that would be sent for a department.
func FormatPrompt(name, prompt string) string {
	return fmt.Sprintf("%s\n%s\n", Header(name+" prompt"), prompt)
}

// FormatSummary renders the closing line of a multi-department run.
func FormatSummary(gens []*domain.Generation) string {
	ok := 0
	for _, g := range gens {
		if g != nil && g.Result.OK() {
			ok++
		}
	}
	failed := len(gens) - ok
	line := fmt.Sprintf("%d of %d timetables generated", ok, len(gens))
	if failed > 0 {
		return StyleYellow.Render(fmt.Sprintf("%s, %d failed", line, failed))
	}
	return StyleGreen.Render(line)
}
