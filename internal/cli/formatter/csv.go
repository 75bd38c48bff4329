package formatter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/alexanderramin/timetabler/internal/timetable"
)

// WriteCSV writes rows under the fixed timetable header. The output parses
// back with timetable.ParseBlock.
func WriteCSV(w io.Writer, rows []domain.TimetableRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(timetable.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, record := range TimetableRows(rows) {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
