package api

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/neet-pulse/internal/analysis"
	"github.com/phrazzld/neet-pulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreValueUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    ScoreValue
		wantErr bool
	}{
		{input: `120`, want: "120"},
		{input: `12.7`, want: "12"},
		{input: `-12.7`, want: "-12"},
		{input: `1e3`, want: "1000"},
		{input: `1.5E2`, want: "150"},
		{input: `"1e3"`, want: "1e3"},
		{input: `-5`, want: "-5"},
		{input: `"85"`, want: "85"},
		{input: `"12abc"`, want: "12abc"},
		{input: `""`, want: ""},
		{input: `null`, want: ""},
		{input: `true`, wantErr: true},
		{input: `[1]`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			var got ScoreValue
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreateRecordRequestInput(t *testing.T) {
	t.Parallel()

	var req CreateRecordRequest
	require.NoError(t, json.Unmarshal(
		[]byte(`{"date":"2024-03-01","testName":"Full Mock","physics":90,"chemistry":"abc","biology":400}`), &req))

	input := req.Input()
	assert.Equal(t, domain.RecordInput{
		Date:      "2024-03-01",
		TestName:  "Full Mock",
		Physics:   "90",
		Chemistry: "abc",
		Biology:   "400",
	}, input)

	record, err := domain.NewTestRecord("id-1", input)
	require.NoError(t, err)
	assert.Equal(t, 90+0+360, record.Total)
}

func TestSummaryResponseShortHistory(t *testing.T) {
	t.Parallel()

	record, err := domain.NewTestRecord("a", domain.RecordInput{Date: "2024-01-01", Physics: "10"})
	require.NoError(t, err)

	resp := summaryResponse([]domain.TestRecord{record}, domain.DefaultTargetScore)
	assert.Len(t, resp.History, 1)
	assert.Len(t, resp.Breakdown, 3)
	assert.Len(t, resp.Chart, 1)
}

func TestAnalysisResponse(t *testing.T) {
	t.Parallel()

	resp := analysisResponse(analysis.Insight{Text: "# Report\n<script>alert(1)</script>", Probability: 95})
	assert.Equal(t, analysis.BandSecure, resp.Band)
	assert.Contains(t, resp.HTML, "Report</h1>")
	assert.NotContains(t, resp.HTML, "<script>")
}
