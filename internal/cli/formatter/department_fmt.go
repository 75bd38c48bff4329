package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
)

func breakLabel(d *domain.DepartmentConfig) string {
	if !d.HasBreak() {
		return "none"
	}
	return fmt.Sprintf("%s-%s", d.Break.Start, d.Break.End())
}

func FormatDepartmentList(depts []*domain.DepartmentConfig) string {
	rows := make([][]string, 0, len(depts))
	for _, d := range depts {
		rows = append(rows, []string{
			StyleBold.Render(d.Name),
			fmt.Sprintf("%s-%s", d.WorkStart, d.WorkEnd),
			strconv.Itoa(d.LectureDurationMin) + "m",
			breakLabel(d),
			strconv.Itoa(len(d.Faculty)),
			Dim(HumanDate(d.UpdatedAt)),
		})
	}
	return RenderTable([]string{"NAME", "HOURS", "LECTURE", "BREAK", "FACULTY", "UPDATED"}, rows)
}

// FormatDepartment renders one department's full configuration.
func FormatDepartment(d *domain.DepartmentConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Working hours:"), StyleFg.Render(fmt.Sprintf("%s to %s", d.WorkStart, d.WorkEnd)))
	fmt.Fprintf(&b, "%s %s\n", Dim("Lecture:      "), StyleFg.Render(fmt.Sprintf("%d minutes", d.LectureDurationMin)))
	if d.HasBreak() {
		fmt.Fprintf(&b, "%s %s\n", Dim("Break:        "), StyleFg.Render(fmt.Sprintf("%s for %d minutes", d.Break.Start, d.Break.DurationMin)))
	} else {
		fmt.Fprintf(&b, "%s %s\n", Dim("Break:        "), Dim("none"))
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:           "), Dim(d.ID))
	b.WriteString("\n")

	if len(d.Faculty) == 0 {
		b.WriteString(Dim("No faculty configured."))
	} else {
		rows := make([][]string, 0, len(d.Faculty))
		for _, fs := range d.Faculty {
			rows = append(rows, []string{fs.Faculty, fs.Subject})
		}
		b.WriteString(strings.TrimRight(RenderTable([]string{"FACULTY", "SUBJECT"}, rows), "\n"))
	}
	return RenderBox(d.Name, b.String())
}
