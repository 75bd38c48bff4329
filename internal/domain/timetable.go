package domain

import (
	"errors"
	"time"
)

// TimetableRow is one lecture slot returned by the model.
type TimetableRow struct {
	Start   TimeOfDay
	End     TimeOfDay
	Subject string
	Faculty string
}

// TimetableResult is either a row sequence or a failure carrying the raw
// model text. Build it with Succeeded or Failed only.
type TimetableResult struct {
	Rows []TimetableRow
	Raw  string
	Err  error
}

// Succeeded wraps parsed rows. Rows keep the order they appeared in the source text.
func Succeeded(rows []TimetableRow) TimetableResult {
	if rows == nil {
		rows = []TimetableRow{}
	}
	return TimetableResult{Rows: rows}
}

// Failed records a failed attempt. raw must be the untouched model text.
func Failed(raw string, err error) TimetableResult {
	if err == nil {
		err = errors.New("timetable generation failed")
	}
	return TimetableResult{Raw: raw, Err: err}
}

func (r TimetableResult) OK() bool {
	return r.Err == nil
}

// FailureKind classifies why a generation attempt produced no timetable.
type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailureExtraction FailureKind = "extraction"
	FailureParse      FailureKind = "parse"
	FailureModel      FailureKind = "model"
)

// Generation is one persisted attempt at producing a department timetable.
type Generation struct {
	ID             string
	DepartmentID   string
	DepartmentName string
	Provider       string
	Model          string
	Prompt         string
	RawResponse    string
	Result         TimetableResult
	Kind           FailureKind
	LatencyMs      int64
	CreatedAt      time.Time
}

// Status returns "ok" or "failed" for display and storage.
func (g *Generation) Status() string {
	if g.Result.OK() {
		return "ok"
	}
	return "failed"
}

// DisplayID returns the first 8 characters of the generation ID.
func (g *Generation) DisplayID() string {
	if len(g.ID) > 8 {
		return g.ID[:8]
	}
	return g.ID
}
