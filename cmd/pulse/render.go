package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/phrazzld/neet-pulse/internal/analysis"
	"github.com/phrazzld/neet-pulse/internal/domain"
)

const noRecordsText = "No tests logged yet. Add one with: pulse add --date YYYY-MM-DD --physics N --chemistry N --biology N"

var (
	gainColor  = color.New(color.FgGreen, color.Bold)
	lossColor  = color.New(color.FgRed, color.Bold)
	flatColor  = color.New(color.FgYellow)
	labelColor = color.New(color.FgCyan)
)

func colorTrend(t domain.TrendStatus) string {
	switch t.Direction {
	case domain.DirectionIncrease:
		return gainColor.Sprint(t.Label)
	case domain.DirectionDecrease:
		return lossColor.Sprint(t.Label)
	default:
		return flatColor.Sprint(t.Label)
	}
}

func renderHistory(w io.Writer, rows []domain.HistoryRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Date", "Test", "Phy", "Chem", "Bio", "Total", "Trend"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, row := range rows {
		r := row.Record
		trend := "-"
		if row.HasTrend {
			trend = colorTrend(row.Trend)
		}
		table.Append([]string{
			r.ID,
			r.Date,
			r.TestName,
			strconv.Itoa(r.Scores.Physics),
			strconv.Itoa(r.Scores.Chemistry),
			strconv.Itoa(r.Scores.Biology),
			strconv.Itoa(r.Total),
			trend,
		})
	}
	table.Render()
}

func renderSummary(w io.Writer, s domain.Summary) {
	if s.Latest == nil {
		fmt.Fprintln(w, noRecordsText)
		fmt.Fprintf(w, "%s %d/%d\n", labelColor.Sprintf("%-8s", "TARGET"), s.TargetScore, domain.MaxScoreTotal)
		return
	}

	latest := s.Latest
	line := func(label, format string, args ...any) {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%-8s", label), fmt.Sprintf(format, args...))
	}

	line("LATEST", "%s (%s)", latest.TestName, latest.Date)
	line("TOTAL", "%d/%d (%.1f%%)", latest.Total, domain.MaxScoreTotal, s.ProgressPercent)
	if s.HasTrend {
		line("TREND", "%s", colorTrend(s.Trend))
	} else {
		line("TREND", "%s", domain.NoDataLabel)
	}
	line("AVERAGE", "%d over %d tests", s.Average, s.Count)
	if s.DistanceToTarget > 0 {
		line("TARGET", "%d (%d to go, %.1f%%)", s.TargetScore, s.DistanceToTarget, s.TargetProgressPercent)
	} else {
		line("TARGET", "%d (reached)", s.TargetScore)
	}
	line("WEAKEST", "%s", s.WeakestSubject.Title())

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Subject", "Score", "Max", "Percent"})
	for _, share := range domain.SubjectBreakdown(*latest) {
		table.Append([]string{
			share.Subject.Title(),
			strconv.Itoa(share.Score),
			strconv.Itoa(share.Subject.MaxScore()),
			fmt.Sprintf("%.1f%%", share.Percent),
		})
	}
	table.Render()
}

func bandColor(b analysis.Band) *color.Color {
	switch b {
	case analysis.BandSecure, analysis.BandOnTrack:
		return gainColor
	case analysis.BandCaution:
		return flatColor
	default:
		return lossColor
	}
}

func renderInsight(w io.Writer, insight analysis.Insight, raw bool) {
	text := insight.Text
	if !raw {
		text = renderMarkdown(text)
	}
	fmt.Fprintln(w, strings.TrimRight(text, "\n"))
	fmt.Fprintf(w, "\n%s %s\n",
		labelColor.Sprint("SELECTION PROBABILITY"),
		bandColor(insight.Band()).Sprintf("%d%% (%s)", insight.Probability, insight.Band()))
}

// renderMarkdown renders md for the terminal, falling back to the source
// text if the renderer fails.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
