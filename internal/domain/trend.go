package domain

import "fmt"

// Direction is the sign of the change between two totals.
type Direction string

// Trend directions.
const (
	DirectionIncrease  Direction = "increase"
	DirectionDecrease  Direction = "decrease"
	DirectionUnchanged Direction = "unchanged"
)

// NoDataLabel is shown where a trend is undefined because there is no
// previous record to compare against.
const NoDataLabel = "NO DATA"

// TrendStatus describes how one total compares with the one before it.
type TrendStatus struct {
	Label      string    `json:"label"`
	Direction  Direction `json:"direction"`
	Difference int       `json:"difference"`
}

// Trend compares the current total with the previous one. Callers without a
// previous record must not pass a synthetic zero; they have no trend.
func Trend(current, previous int) TrendStatus {
	diff := current - previous
	switch {
	case diff > 0:
		return TrendStatus{Label: fmt.Sprintf("+%d GAIN", diff), Direction: DirectionIncrease, Difference: diff}
	case diff < 0:
		return TrendStatus{Label: fmt.Sprintf("%d LOSS", diff), Direction: DirectionDecrease, Difference: diff}
	default:
		return TrendStatus{Label: "STAGNANT", Direction: DirectionUnchanged}
	}
}

// Magnitude is the absolute difference between the two totals.
func (t TrendStatus) Magnitude() int {
	if t.Difference < 0 {
		return -t.Difference
	}
	return t.Difference
}
