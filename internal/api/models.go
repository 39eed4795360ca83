package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"github.com/phrazzld/neet-pulse/internal/analysis"
	"github.com/phrazzld/neet-pulse/internal/domain"
)

// DashboardHistoryRows is the number of history rows in a summary response.
const DashboardHistoryRows = 3

// ScoreValue is a score field that accepts a JSON number or string. Strings
// are kept as typed and coerced later like form input; numbers are
// truncated toward zero by value.
type ScoreValue string

// UnmarshalJSON implements json.Unmarshaler.
func (s *ScoreValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = ScoreValue(raw)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("score must be a number or a string")
	}
	f, err := n.Float64()
	if err != nil {
		return errors.New("score must be a number or a string")
	}
	*s = ScoreValue(strconv.FormatFloat(math.Trunc(f), 'f', 0, 64))
	return nil
}

// CreateRecordRequest is the payload for POST /api/records.
type CreateRecordRequest struct {
	Date      string     `json:"date"      validate:"required"`
	TestName  string     `json:"testName"`
	Physics   ScoreValue `json:"physics"`
	Chemistry ScoreValue `json:"chemistry"`
	Biology   ScoreValue `json:"biology"`
}

// Input converts the request into record form input.
func (r CreateRecordRequest) Input() domain.RecordInput {
	return domain.RecordInput{
		Date:      r.Date,
		TestName:  r.TestName,
		Physics:   string(r.Physics),
		Chemistry: string(r.Chemistry),
		Biology:   string(r.Biology),
	}
}

// TargetRequest is the payload for PUT /api/target.
type TargetRequest struct {
	Target *int `json:"target" validate:"required,gte=0,lte=720"`
}

// RecordsResponse lists records newest first, each with its trend against
// the next older record.
type RecordsResponse struct {
	Records []domain.HistoryRow `json:"records"`
}

// CreateRecordResponse is returned after a record is saved.
type CreateRecordResponse struct {
	Record  domain.TestRecord   `json:"record"`
	Records []domain.HistoryRow `json:"records"`
}

// TargetResponse carries the target score.
type TargetResponse struct {
	Target int `json:"target"`
}

// SummaryResponse holds everything the dashboard shows.
type SummaryResponse struct {
	Summary   domain.Summary        `json:"summary"`
	Chart     []domain.ChartPoint   `json:"chart"`
	Breakdown []domain.SubjectShare `json:"breakdown"`
	History   []domain.HistoryRow   `json:"history"`
}

// AnalysisResponse is the result of POST /api/analysis.
type AnalysisResponse struct {
	Text        string        `json:"text"`
	Probability int           `json:"probability"`
	HTML        string        `json:"html"`
	Band        analysis.Band `json:"band"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Analysis bool   `json:"analysis"`
}

func recordsResponse(records []domain.TestRecord) RecordsResponse {
	return RecordsResponse{Records: domain.History(records)}
}

func summaryResponse(records []domain.TestRecord, target int) SummaryResponse {
	history := domain.History(records)
	resp := SummaryResponse{
		Summary:   domain.Summarize(records, target),
		Chart:     domain.ChartSeries(records),
		Breakdown: []domain.SubjectShare{},
		History:   history[:min(len(history), DashboardHistoryRows)],
	}
	if len(records) > 0 {
		resp.Breakdown = domain.SubjectBreakdown(records[0])
	}
	return resp
}

func analysisResponse(insight analysis.Insight) AnalysisResponse {
	return AnalysisResponse{
		Text:        insight.Text,
		Probability: insight.Probability,
		HTML:        analysis.RenderHTML(insight.Text),
		Band:        insight.Band(),
	}
}
