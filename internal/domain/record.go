package domain

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RecordSchemaVersion is the version stamped on every persisted TestRecord.
const RecordSchemaVersion = 1

// DateLayout is the calendar date format used by records.
const DateLayout = "2006-01-02"

var validate = validator.New()

// TestRecord is one logged practice-test result. Records are immutable once
// saved; they are only ever appended or deleted.
type TestRecord struct {
	SchemaVersion int           `json:"schemaVersion" validate:"eq=1"`
	ID            string        `json:"id" validate:"required"`
	Date          string        `json:"date" validate:"required,datetime=2006-01-02"`
	TestName      string        `json:"testName" validate:"required"`
	Scores        SubjectScores `json:"scores"`
	// Total is stored alongside the scores and is not recomputed after save.
	Total int `json:"total"`
	// Feedback is kept for compatibility with stored data. Nothing writes it.
	Feedback string `json:"feedback,omitempty"`
}

// RecordInput is the raw content of the score entry form.
type RecordInput struct {
	Date      string
	TestName  string
	Physics   string
	Chemistry string
	Biology   string
}

// DefaultTestName is the name given to a record saved without one.
func DefaultTestName(date string) string {
	return "MOCK-" + strings.ReplaceAll(date, "-", "")
}

// NewTestRecord builds a record from form input. Non-numeric scores become 0
// and scores above a subject maximum are clamped to it. The total is computed
// once here.
func NewTestRecord(id string, input RecordInput) (TestRecord, error) {
	date := strings.TrimSpace(input.Date)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return TestRecord{}, fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidDate, input.Date)
	}

	name := strings.TrimSpace(input.TestName)
	if name == "" {
		name = DefaultTestName(date)
	}

	scores := SubjectScores{
		Physics:   ParseScore(input.Physics),
		Chemistry: ParseScore(input.Chemistry),
		Biology:   ParseScore(input.Biology),
	}.Clamp()

	record := TestRecord{
		SchemaVersion: RecordSchemaVersion,
		ID:            id,
		Date:          date,
		TestName:      name,
		Scores:        scores,
		Total:         Total(scores),
	}
	if err := record.Validate(); err != nil {
		return TestRecord{}, err
	}
	return record, nil
}

// Validate checks the record's shape: known schema version, non-empty
// identifier and name, and a YYYY-MM-DD date. It deliberately does not
// re-check the total or score bounds of stored records.
func (r TestRecord) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0]
			if field.Field() == "SchemaVersion" {
				return fmt.Errorf("%w: %w: %d", ErrValidation, ErrUnsupportedSchema, r.SchemaVersion)
			}
			if field.Field() == "Date" && field.Tag() == "datetime" {
				return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidDate, r.Date)
			}
			return fmt.Errorf("%w: %s failed on %s", ErrValidation, field.Field(), field.Tag())
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// Day returns the record date as a time at midnight UTC.
func (r TestRecord) Day() (time.Time, error) {
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, r.Date)
	}
	return t, nil
}

// SortByDateDesc orders records newest first in place. Records sharing a
// date keep their relative order.
func SortByDateDesc(records []TestRecord) {
	slices.SortStableFunc(records, func(a, b TestRecord) int {
		return cmp.Compare(b.Date, a.Date)
	})
}

// SortByDateAsc orders records oldest first in place, stable on ties.
func SortByDateAsc(records []TestRecord) {
	slices.SortStableFunc(records, func(a, b TestRecord) int {
		return cmp.Compare(a.Date, b.Date)
	})
}
