package analysis

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"slices"
	"text/template"

	"github.com/phrazzld/neet-pulse/internal/domain"
)

// RecentLimit is how many of the newest records are sent to the model.
const RecentLimit = 5

//go:embed templates/analysis_prompt.tmpl
var templateFS embed.FS

const defaultTemplateName = "templates/analysis_prompt.tmpl"

type promptRecord struct {
	Index     int
	Date      string
	Total     int
	Physics   int
	Chemistry int
	Biology   int
}

type promptData struct {
	Records  []promptRecord
	MaxTotal int
}

// DefaultTemplate returns the built-in prompt template.
func DefaultTemplate() *template.Template {
	return template.Must(template.ParseFS(templateFS, defaultTemplateName))
}

// LoadTemplate parses a prompt template from path. An empty path yields the
// built-in template.
func LoadTemplate(path string) (*template.Template, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template from %s: %w", path, err)
	}
	tmpl, err := template.New("analysis").Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	return tmpl, nil
}

// RecentRecords returns up to RecentLimit of the newest records, ordered
// oldest first. The input is not modified.
func RecentRecords(records []domain.TestRecord) []domain.TestRecord {
	sorted := slices.Clone(records)
	domain.SortByDateAsc(sorted)
	if len(sorted) > RecentLimit {
		sorted = sorted[len(sorted)-RecentLimit:]
	}
	return sorted
}

// BuildPrompt renders tmpl for the most recent records.
func BuildPrompt(tmpl *template.Template, records []domain.TestRecord) (string, error) {
	recent := RecentRecords(records)
	data := promptData{
		Records:  make([]promptRecord, 0, len(recent)),
		MaxTotal: domain.MaxScoreTotal,
	}
	for i, r := range recent {
		data.Records = append(data.Records, promptRecord{
			Index:     i + 1,
			Date:      r.Date,
			Total:     r.Total,
			Physics:   r.Scores.Physics,
			Chemistry: r.Scores.Chemistry,
			Biology:   r.Scores.Biology,
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
