package timetable

import (
	"errors"

	"github.com/alexanderramin/timetabler/internal/domain"
)

var (
	// ErrExtraction indicates the response contains no timetable header line.
	ErrExtraction = errors.New("no timetable found in model response")

	// ErrParse indicates the table was found but a row is malformed.
	ErrParse = errors.New("malformed timetable")
)

// Kind maps an error from this package to the failure kind stored with a
// generation. Errors from any other source are reported as model failures.
func Kind(err error) domain.FailureKind {
	switch {
	case err == nil:
		return domain.FailureNone
	case errors.Is(err, ErrExtraction):
		return domain.FailureExtraction
	case errors.Is(err, ErrParse):
		return domain.FailureParse
	default:
		return domain.FailureModel
	}
}
