package formatter

import (
	"strconv"
	"time"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// FormatHistory renders past generations, newest first as given.
func FormatHistory(gens []*domain.Generation) string {
	return formatHistoryAt(gens, time.Now())
}

func formatHistoryAt(gens []*domain.Generation, now time.Time) string {
	rows := make([][]string, 0, len(gens))
	for _, g := range gens {
		detail := strconv.Itoa(len(g.Result.Rows)) + " rows"
		if !g.Result.OK() {
			detail = Truncate(g.Result.Err.Error(), 48)
		}
		rows = append(rows, []string{
			Dim(g.DisplayID()),
			StyleBold.Render(g.DepartmentName),
			StatusIndicator(g.Kind),
			detail,
			Dim(g.Provider),
			Dim(HumanTimestampFrom(g.CreatedAt, now)),
		})
	}
	return RenderTable([]string{"ID", "DEPARTMENT", "STATUS", "DETAIL", "PROVIDER", "WHEN"}, rows)
}
