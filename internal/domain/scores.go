package domain

import (
	"math"
	"strconv"
	"strings"
)

// Subject identifies one of the three sections of the exam.
type Subject string

// Exam subjects, in display order.
const (
	SubjectPhysics   Subject = "physics"
	SubjectChemistry Subject = "chemistry"
	SubjectBiology   Subject = "biology"
)

// Per-subject and overall score ceilings.
const (
	MaxScorePhysics   = 180
	MaxScoreChemistry = 180
	MaxScoreBiology   = 360
	MaxScoreTotal     = MaxScorePhysics + MaxScoreChemistry + MaxScoreBiology
)

// Subjects lists every subject in display order.
var Subjects = []Subject{SubjectPhysics, SubjectChemistry, SubjectBiology}

// MaxScore returns the ceiling for the subject, or 0 for an unknown subject.
func (s Subject) MaxScore() int {
	switch s {
	case SubjectPhysics:
		return MaxScorePhysics
	case SubjectChemistry:
		return MaxScoreChemistry
	case SubjectBiology:
		return MaxScoreBiology
	default:
		return 0
	}
}

// Title returns the capitalised subject name used in reports.
func (s Subject) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// SubjectScores holds the three per-subject marks of one practice test.
type SubjectScores struct {
	Physics   int `json:"physics"`
	Chemistry int `json:"chemistry"`
	Biology   int `json:"biology"`
}

// Score returns the mark recorded for the subject.
func (s SubjectScores) Score(subject Subject) int {
	switch subject {
	case SubjectPhysics:
		return s.Physics
	case SubjectChemistry:
		return s.Chemistry
	case SubjectBiology:
		return s.Biology
	default:
		return 0
	}
}

// Total is the sum of the three subject scores. Bounds are not checked here;
// they are enforced when a record is built from form input.
func Total(scores SubjectScores) int {
	return scores.Physics + scores.Chemistry + scores.Biology
}

// ClampScore bounds a subject score to [0, subject max].
func ClampScore(subject Subject, score int) int {
	if score < 0 {
		return 0
	}
	return min(score, subject.MaxScore())
}

// Clamp returns a copy of the scores with every subject bounded to its range.
func (s SubjectScores) Clamp() SubjectScores {
	return SubjectScores{
		Physics:   ClampScore(SubjectPhysics, s.Physics),
		Chemistry: ClampScore(SubjectChemistry, s.Chemistry),
		Biology:   ClampScore(SubjectBiology, s.Biology),
	}
}

// ParseScore coerces raw form input into an integer score. It reads an
// optional sign followed by the leading run of digits, so "12abc" and "12.7"
// both yield 12. Input without leading digits yields 0.
func ParseScore(raw string) int {
	n, ok := LeadingInt(raw)
	switch {
	case !ok:
		return 0
	case n == math.MaxInt:
		return MaxScoreTotal
	case n == math.MinInt:
		return 0
	}
	return n
}

// LeadingInt reads an optional sign followed by the leading run of digits,
// ignoring surrounding space and anything after the digits. ok is false
// when there are no leading digits. Values outside the int range saturate.
func LeadingInt(raw string) (n int, ok bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow can fail here.
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return n, true
}
