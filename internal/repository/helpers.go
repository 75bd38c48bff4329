package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// nullableBreakStart converts an optional break into the break_start_min column value.
func nullableBreakStart(b *domain.BreakWindow) interface{} {
	if b == nil {
		return nil
	}
	return int(b.Start)
}

// nullableBreakDuration converts an optional break into the break_duration_min column value.
func nullableBreakDuration(b *domain.BreakWindow) interface{} {
	if b == nil {
		return nil
	}
	return b.DurationMin
}

// breakFromColumns rebuilds the optional break. Both columns are NULL together.
func breakFromColumns(start, duration sql.NullInt64) *domain.BreakWindow {
	if !start.Valid || !duration.Valid {
		return nil
	}
	return &domain.BreakWindow{
		Start:       domain.TimeOfDay(start.Int64),
		DurationMin: int(duration.Int64),
	}
}

// timestampLayout is fixed width so ORDER BY on the text column is chronological.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// limitOrAll maps non-positive limits to SQLite's "no limit".
func limitOrAll(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
