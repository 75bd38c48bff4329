package timetable

import (
	"testing"

	"github.com/alexanderramin/timetabler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(start, end, subject, faculty string) domain.TimetableRow {
	return domain.TimetableRow{
		Start:   domain.MustParseTimeOfDay(start),
		End:     domain.MustParseTimeOfDay(end),
		Subject: subject,
		Faculty: faculty,
	}
}

func TestParse_TwoRowsTrailingProseExcluded(t *testing.T) {
	raw := "Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao\n10:00,11:00,Physics,Dr. Lee\n\nThanks!"

	result := Parse(raw)

	require.True(t, result.OK(), "unexpected error: %v", result.Err)
	assert.Equal(t, []domain.TimetableRow{
		row("09:00", "10:00", "Maths", "Dr. Rao"),
		row("10:00", "11:00", "Physics", "Dr. Lee"),
	}, result.Rows)
	assert.Empty(t, result.Raw)
}

func TestParse_ProseOnlyFailsWithOriginalText(t *testing.T) {
	raw := "  Sure! Here is a balanced schedule for your department.\nLet me know if you need changes.  "

	result := Parse(raw)

	assert.False(t, result.OK())
	assert.ErrorIs(t, result.Err, ErrExtraction)
	assert.Equal(t, raw, result.Raw)
	assert.Nil(t, result.Rows)
	assert.Equal(t, domain.FailureExtraction, Kind(result.Err))
}

func TestParse_EmptyResponse(t *testing.T) {
	result := Parse("")
	assert.ErrorIs(t, result.Err, ErrExtraction)
	assert.Equal(t, "", result.Raw)
}

func TestParse_ThreeFieldRowFailsWholeTable(t *testing.T) {
	raw := "Start,End,Subject,Faculty\n08:00,09:00,Chemistry,Dr. Kim\n09:00,10:00,Maths\n10:00,11:00,Physics,Dr. Lee"

	result := Parse(raw)

	assert.False(t, result.OK())
	assert.ErrorIs(t, result.Err, ErrParse)
	assert.Contains(t, result.Err.Error(), "line 3")
	assert.Nil(t, result.Rows)
	assert.Equal(t, raw, result.Raw)
	assert.Equal(t, domain.FailureParse, Kind(result.Err))
}

func TestParse_InvalidTimeFails(t *testing.T) {
	raw := "Start,End,Subject,Faculty\nmorning,10:00,Maths,Dr. Rao"
	result := Parse(raw)
	assert.ErrorIs(t, result.Err, ErrParse)
	assert.Contains(t, result.Err.Error(), "start")

	raw = "Start,End,Subject,Faculty\n09:00,later,Maths,Dr. Rao"
	result = Parse(raw)
	assert.ErrorIs(t, result.Err, ErrParse)
	assert.Contains(t, result.Err.Error(), "end")
}

func TestParse_HeaderWithoutRowsIsEmptyTimetable(t *testing.T) {
	result := Parse("Here you go:\nStart,End,Subject,Faculty\n\n09:00,10:00,Maths,Dr. Rao")
	require.True(t, result.OK(), "unexpected error: %v", result.Err)
	assert.NotNil(t, result.Rows)
	assert.Empty(t, result.Rows)

	result = Parse("Start,End,Subject,Faculty\n\nThanks")
	require.True(t, result.OK())
	assert.Empty(t, result.Rows)
}

func TestParse_BareQuoteInsideField(t *testing.T) {
	result := Parse("Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. \"Ray\" Rao\n10:00,11:00,Physics,\"Lee, PhD\"")

	require.True(t, result.OK(), "unexpected error: %v", result.Err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, `Dr. "Ray" Rao`, result.Rows[0].Faculty)
	assert.Equal(t, "Lee, PhD", result.Rows[1].Faculty)
}

func TestParse_FenceBetweenRowsFails(t *testing.T) {
	raw := "Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao\n```\n10:00,11:00,Physics,Dr. Lee"

	result := Parse(raw)

	assert.False(t, result.OK())
	assert.ErrorIs(t, result.Err, ErrParse)
	assert.Nil(t, result.Rows)
	assert.Equal(t, raw, result.Raw)
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		"Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao",
		"no table here",
		"Start,End,Subject,Faculty\n09:00,10:00",
	}
	for _, raw := range inputs {
		assert.Equal(t, Parse(raw), Parse(raw), "input %q", raw)
	}
}

func TestParse_QuotedFieldsAndWhitespace(t *testing.T) {
	raw := "Start,End,Subject,Faculty\n 09:00 , 10:00 ,  Linear Algebra , \"Rao, PhD\"\n"

	result := Parse(raw)

	require.True(t, result.OK(), "unexpected error: %v", result.Err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Linear Algebra", result.Rows[0].Subject)
	assert.Equal(t, "Rao, PhD", result.Rows[0].Faculty)
}

func TestParse_CRLFLineEndings(t *testing.T) {
	raw := "Timetable:\r\n\r\nStart,End,Subject,Faculty\r\n09:00,10:00,Maths,Dr. Rao\r\n\r\nDone."

	result := Parse(raw)

	require.True(t, result.OK(), "unexpected error: %v", result.Err)
	assert.Equal(t, []domain.TimetableRow{row("09:00", "10:00", "Maths", "Dr. Rao")}, result.Rows)
}

func TestParse_PreservesSourceOrder(t *testing.T) {
	raw := "Start,End,Subject,Faculty\n11:00,12:00,Biology,Dr. Roy\n09:00,10:00,Maths,Dr. Rao"

	result := Parse(raw)

	require.True(t, result.OK())
	assert.Equal(t, "Biology", result.Rows[0].Subject)
	assert.Equal(t, "Maths", result.Rows[1].Subject)
}

func TestExtractBlock_DuplicateHeaderUsesFirstOccurrence(t *testing.T) {
	raw := "Plan:\nStart,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao\n\n" +
		"Again for clarity:\nStart,End,Subject,Faculty\n11:00,12:00,Physics,Dr. Lee\n"

	block, err := ExtractBlock(raw)

	require.NoError(t, err)
	assert.Equal(t, "Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao", block)

	result := Parse(raw)
	require.True(t, result.OK())
	assert.Equal(t, []domain.TimetableRow{row("09:00", "10:00", "Maths", "Dr. Rao")}, result.Rows)
}

func TestExtractBlock_EchoedHeaderInsideBlockFailsParse(t *testing.T) {
	raw := "Start,End,Subject,Faculty\nStart,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao"

	block, err := ExtractBlock(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, block)

	result := Parse(raw)
	assert.ErrorIs(t, result.Err, ErrParse)
}

func TestExtractBlock_NoTrailingBlankLineRunsToEnd(t *testing.T) {
	raw := "Intro\nStart,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao\n10:00,11:00,Physics,Dr. Lee"

	block, err := ExtractBlock(raw)

	require.NoError(t, err)
	assert.Equal(t, "Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao\n10:00,11:00,Physics,Dr. Lee", block)
}

func TestExtractBlock_WhitespaceOnlyLineEndsBlock(t *testing.T) {
	raw := "Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao\n   \t\n10:00,11:00,Physics,Dr. Lee"

	block, err := ExtractBlock(raw)

	require.NoError(t, err)
	assert.Equal(t, "Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao", block)
}

func TestExtractBlock_CodeFencedAnswer(t *testing.T) {
	raw := "Here is the timetable:\n```csv\nStart,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao\n```\nEnjoy."

	block, err := ExtractBlock(raw)

	require.NoError(t, err)
	assert.Equal(t, "Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao", block)
}

func TestExtractBlock_ClosingFenceWithoutOpeningStaysInBlock(t *testing.T) {
	block, err := ExtractBlock("Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao\n```\nEnjoy.")

	require.NoError(t, err)
	assert.Equal(t, "Start,End,Subject,Faculty\n09:00,10:00,Maths,Dr. Rao\n```\nEnjoy.", block)
}

func TestExtractBlock_HeaderIsCaseSensitive(t *testing.T) {
	_, err := ExtractBlock("start,end,subject,faculty\n09:00,10:00,Maths,Dr. Rao")
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestExtractBlock_HeaderMustBeWholeLine(t *testing.T) {
	_, err := ExtractBlock("The header is Start,End,Subject,Faculty as requested.")
	assert.ErrorIs(t, err, ErrExtraction)
}

func TestKind_ModelErrors(t *testing.T) {
	assert.Equal(t, domain.FailureNone, Kind(nil))
	assert.Equal(t, domain.FailureModel, Kind(assert.AnError))
}
