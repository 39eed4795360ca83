package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestRecord(t *testing.T) {
	t.Parallel()

	record, err := NewTestRecord("rec-1", RecordInput{
		Date:      "2024-02-01",
		TestName:  "  Full Syllabus 3 ",
		Physics:   "160",
		Chemistry: "150",
		Biology:   "170",
	})
	require.NoError(t, err)

	assert.Equal(t, RecordSchemaVersion, record.SchemaVersion)
	assert.Equal(t, "rec-1", record.ID)
	assert.Equal(t, "2024-02-01", record.Date)
	assert.Equal(t, "Full Syllabus 3", record.TestName)
	assert.Equal(t, SubjectScores{Physics: 160, Chemistry: 150, Biology: 170}, record.Scores)
	assert.Equal(t, 480, record.Total)
	assert.Empty(t, record.Feedback)
}

func TestNewTestRecordCoercesAndClamps(t *testing.T) {
	t.Parallel()

	record, err := NewTestRecord("rec-2", RecordInput{
		Date:      "2024-03-10",
		Physics:   "1000",
		Chemistry: "abc",
		Biology:   "-20",
	})
	require.NoError(t, err)

	assert.Equal(t, 180, record.Scores.Physics, "score above the subject maximum is clamped")
	assert.Equal(t, 0, record.Scores.Chemistry, "non-numeric score is coerced to zero")
	assert.Equal(t, 0, record.Scores.Biology, "negative score is raised to zero")
	assert.Equal(t, 180, record.Total)
	assert.Equal(t, "MOCK-20240310", record.TestName, "empty name falls back to the default")
}

func TestNewTestRecordRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := NewTestRecord("rec-3", RecordInput{Date: "10/03/2024"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = NewTestRecord("", RecordInput{Date: "2024-03-10"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTestRecordValidate(t *testing.T) {
	t.Parallel()

	valid := TestRecord{
		SchemaVersion: RecordSchemaVersion,
		ID:            "a",
		Date:          "2024-01-01",
		TestName:      "A",
		Scores:        SubjectScores{Physics: 150, Chemistry: 140, Biology: 160},
		Total:         450,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*TestRecord)
		target error
	}{
		{"unknown schema", func(r *TestRecord) { r.SchemaVersion = 2 }, ErrUnsupportedSchema},
		{"missing schema", func(r *TestRecord) { r.SchemaVersion = 0 }, ErrUnsupportedSchema},
		{"missing id", func(r *TestRecord) { r.ID = "" }, ErrValidation},
		{"missing name", func(r *TestRecord) { r.TestName = "" }, ErrValidation},
		{"bad date", func(r *TestRecord) { r.Date = "2024-13-01" }, ErrInvalidDate},
		{"missing date", func(r *TestRecord) { r.Date = "" }, ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			record := valid
			tc.mutate(&record)
			err := record.Validate()
			assert.ErrorIs(t, err, tc.target)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// A hand-edited total is accepted: stored totals are never re-derived.
	edited := valid
	edited.Total = 1
	assert.NoError(t, edited.Validate())
}

func TestSortByDateDescIsStable(t *testing.T) {
	t.Parallel()

	records := []TestRecord{
		{ID: "old", Date: "2024-01-01"},
		{ID: "same-1", Date: "2024-02-01"},
		{ID: "new", Date: "2024-03-01"},
		{ID: "same-2", Date: "2024-02-01"},
	}
	SortByDateDesc(records)

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"new", "same-1", "same-2", "old"}, ids)

	SortByDateAsc(records)
	for i, r := range records {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"old", "same-1", "same-2", "new"}, ids)
}

func TestDay(t *testing.T) {
	t.Parallel()

	day, err := TestRecord{Date: "2024-02-29"}.Day()
	require.NoError(t, err)
	assert.Equal(t, 29, day.Day())

	_, err = TestRecord{Date: "nope"}.Day()
	assert.ErrorIs(t, err, ErrInvalidDate)
}
