package domain

import (
	"math"
	"slices"
)

// DefaultTargetScore is the target used until the user sets one.
const DefaultTargetScore = 650

// HistoryRow pairs a record with its trend against the next older record.
// HasTrend is false for the oldest record.
type HistoryRow struct {
	Record   TestRecord  `json:"record"`
	Trend    TrendStatus `json:"trend"`
	HasTrend bool        `json:"hasTrend"`
}

// History builds display rows for records ordered newest first.
func History(records []TestRecord) []HistoryRow {
	rows := make([]HistoryRow, 0, len(records))
	for i, record := range records {
		row := HistoryRow{Record: record}
		if i+1 < len(records) {
			row.Trend = Trend(record.Total, records[i+1].Total)
			row.HasTrend = true
		}
		rows = append(rows, row)
	}
	return rows
}

// SubjectShare is a subject score expressed as a percentage of its maximum.
type SubjectShare struct {
	Subject Subject `json:"subject"`
	Score   int     `json:"score"`
	Percent float64 `json:"percent"`
}

// SubjectBreakdown returns per-subject percentages for one record, in
// display order.
func SubjectBreakdown(record TestRecord) []SubjectShare {
	shares := make([]SubjectShare, 0, len(Subjects))
	for _, subject := range Subjects {
		score := record.Scores.Score(subject)
		shares = append(shares, SubjectShare{
			Subject: subject,
			Score:   score,
			Percent: float64(score) / float64(subject.MaxScore()) * 100,
		})
	}
	return shares
}

// WeakestSubject returns the subject with the lowest percentage of its
// maximum. On a tie the later subject in display order wins.
func WeakestSubject(record TestRecord) Subject {
	shares := SubjectBreakdown(record)
	weakest := shares[0]
	for _, share := range shares[1:] {
		if !(weakest.Percent < share.Percent) {
			weakest = share
		}
	}
	return weakest.Subject
}

// ChartPoint is one record as plotted on the trajectory charts.
type ChartPoint struct {
	Label     string `json:"label"`
	Date      string `json:"date"`
	Physics   int    `json:"physics"`
	Chemistry int    `json:"chemistry"`
	Biology   int    `json:"biology"`
	Total     int    `json:"total"`
}

// ChartSeries returns chart points ordered oldest first. The input is not
// modified.
func ChartSeries(records []TestRecord) []ChartPoint {
	sorted := slices.Clone(records)
	SortByDateAsc(sorted)

	points := make([]ChartPoint, 0, len(sorted))
	for _, r := range sorted {
		label := r.Date
		if len(label) > 5 {
			label = label[5:]
		}
		points = append(points, ChartPoint{
			Label:     label,
			Date:      r.Date,
			Physics:   r.Scores.Physics,
			Chemistry: r.Scores.Chemistry,
			Biology:   r.Scores.Biology,
			Total:     r.Total,
		})
	}
	return points
}

// Summary holds the headline dashboard figures.
type Summary struct {
	Latest                *TestRecord `json:"latest,omitempty"`
	Previous              *TestRecord `json:"previous,omitempty"`
	Count                 int         `json:"count"`
	Average               int         `json:"average"`
	Trend                 TrendStatus `json:"trend"`
	HasTrend              bool        `json:"hasTrend"`
	TargetScore           int         `json:"targetScore"`
	DistanceToTarget      int         `json:"distanceToTarget"`
	ProgressPercent       float64     `json:"progressPercent"`
	TargetProgressPercent float64     `json:"targetProgressPercent"`
	WeakestSubject        Subject     `json:"weakestSubject,omitempty"`
}

// Summarize computes dashboard figures for records ordered newest first.
func Summarize(records []TestRecord, target int) Summary {
	s := Summary{
		Count:       len(records),
		TargetScore: target,
		Trend:       TrendStatus{Label: NoDataLabel, Direction: DirectionUnchanged},
	}
	if len(records) == 0 {
		return s
	}

	sum := 0
	for _, r := range records {
		sum += r.Total
	}
	s.Average = int(math.Floor(float64(sum)/float64(len(records)) + 0.5))

	latest := records[0]
	s.Latest = &latest
	s.DistanceToTarget = target - latest.Total
	s.ProgressPercent = clampPercent(float64(latest.Total) / MaxScoreTotal * 100)
	s.WeakestSubject = WeakestSubject(latest)
	if target > 0 {
		s.TargetProgressPercent = math.Min(100, float64(latest.Total)/float64(target)*100)
	} else {
		s.TargetProgressPercent = 100
	}

	if len(records) > 1 {
		previous := records[1]
		s.Previous = &previous
		s.Trend = Trend(latest.Total, previous.Total)
		s.HasTrend = true
	}
	return s
}

func clampPercent(p float64) float64 {
	return math.Min(100, math.Max(0, p))
}
