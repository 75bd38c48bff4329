package timetable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/timetabler/internal/domain"
)

// Parse turns a raw model response into a TimetableResult. It never fails
// loudly: a missing or malformed table yields the failure variant carrying
// raw unchanged.
func Parse(raw string) domain.TimetableResult {
	block, err := ExtractBlock(raw)
	if err != nil {
		return domain.Failed(raw, err)
	}
	rows, err := ParseBlock(block)
	if err != nil {
		return domain.Failed(raw, err)
	}
	return domain.Succeeded(rows)
}

// ExtractBlock returns the table that starts at the first Header line and
// runs up to the first blank line after it, or the end of the text. The
// header line is included. When the header sits directly under an opening
// code fence, the matching closing fence also ends the block; any other
// fence line stays in the block and fails ParseBlock.
func ExtractBlock(raw string) (string, error) {
	lines := strings.Split(raw, "\n")

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == Header {
			start = i
			break
		}
	}
	if start == -1 {
		return "", fmt.Errorf("%w: header %q not present", ErrExtraction, Header)
	}

	fenced := start > 0 && isFence(lines[start-1])

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" || (fenced && isFence(lines[i])) {
			end = i
			break
		}
	}

	block := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		block = append(block, strings.TrimRight(line, "\r"))
	}
	return strings.Join(block, "\n"), nil
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}

// ParseBlock parses an extracted table. The first record must be the fixed
// header; every following record must have exactly four fields with valid
// clock times in the first two. Any bad row fails the whole table. A header
// with no rows is an empty timetable.
func ParseBlock(block string) ([]domain.TimetableRow, error) {
	r := csv.NewReader(strings.NewReader(block))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrParse, err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []domain.TimetableRow
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		line, _ := r.FieldPos(0)

		if len(rec) != len(Columns) {
			return nil, fmt.Errorf("%w: line %d: want %d fields, got %d", ErrParse, line, len(Columns), len(rec))
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
		}
		rows = append(rows, row)
	}

	if rows == nil {
		rows = []domain.TimetableRow{}
	}
	return rows, nil
}

func checkHeader(rec []string) error {
	if len(rec) != len(Columns) {
		return fmt.Errorf("%w: header has %d columns, want %d", ErrParse, len(rec), len(Columns))
	}
	for i, col := range Columns {
		if strings.TrimSpace(rec[i]) != col {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrParse, i+1, rec[i], col)
		}
	}
	return nil
}

func parseRow(rec []string) (domain.TimetableRow, error) {
	start, err := domain.ParseTimeOfDay(rec[0])
	if err != nil {
		return domain.TimetableRow{}, fmt.Errorf("start: %v", err)
	}
	end, err := domain.ParseTimeOfDay(rec[1])
	if err != nil {
		return domain.TimetableRow{}, fmt.Errorf("end: %v", err)
	}
	return domain.TimetableRow{
		Start:   start,
		End:     end,
		Subject: strings.TrimSpace(rec[2]),
		Faculty: strings.TrimSpace(rec[3]),
	}, nil
}
