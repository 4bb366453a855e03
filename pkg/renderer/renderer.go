package renderer

import (
	"encoding/json"
	"fmt"

	"github.com/wonderfulspam/connector-smith/pkg/differ"
)

// Renderer turns a finished report list into one of the supported output
// formats. Renderers only read the reports; diff semantics are decided
// upstream and never altered here.
type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

// Render formats reports in the requested format.
func (r *Renderer) Render(reports []differ.ConnectorReport, format string) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling reports to JSON: %w", err)
		}
		return string(data), nil
	case "table", "":
		return r.formatTable(reports), nil
	case "markdown":
		return r.formatMarkdown(reports), nil
	case "html":
		return r.formatHTML(reports)
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, table, markdown, html)", format)
	}
}

// Summary aggregates a report list for headers and one-line status output.
type Summary struct {
	Connectors        int `json:"connectors"`
	ChangedConnectors int `json:"changed_connectors"`
	FailedConnectors  int `json:"failed_connectors"`
	TotalChanges      int `json:"total_changes"`
	Critical          int `json:"critical"`
	Major             int `json:"major"`
	Minor             int `json:"minor"`
}

func (s Summary) HasChanges() bool {
	return s.TotalChanges > 0
}

func (s Summary) String() string {
	if !s.HasChanges() && s.FailedConnectors == 0 {
		return fmt.Sprintf("No differences found across %d connectors", s.Connectors)
	}

	line := fmt.Sprintf("%d changes in %d of %d connectors (critical: %d, major: %d, minor: %d)",
		s.TotalChanges, s.ChangedConnectors, s.Connectors, s.Critical, s.Major, s.Minor)
	if s.FailedConnectors > 0 {
		line += fmt.Sprintf(", %d connectors failed", s.FailedConnectors)
	}
	return line
}

// Summarize tallies changes and failures across all reports.
func Summarize(reports []differ.ConnectorReport) Summary {
	summary := Summary{Connectors: len(reports)}

	for _, report := range reports {
		if report.ProcessingError != "" {
			summary.FailedConnectors++
		}
		if report.HasChanges() {
			summary.ChangedConnectors++
		}

		for _, change := range report.Changes {
			summary.TotalChanges++
			switch change.Severity {
			case differ.SeverityCritical:
				summary.Critical++
			case differ.SeverityMajor:
				summary.Major++
			default:
				summary.Minor++
			}
		}
	}

	return summary
}

// describe renders a change as a single human-readable line fragment shared
// by the table and markdown formats.
func describe(change differ.Change) string {
	switch change.Kind {
	case differ.KindFolderAdded:
		return fmt.Sprintf("folder %s/ added", change.Category)
	case differ.KindFolderRemoved:
		return fmt.Sprintf("folder %s/ removed", change.Category)
	case differ.KindFileAdded:
		return fmt.Sprintf("file %s/%s added", change.Category, change.FileName)
	case differ.KindFileRemoved:
		return fmt.Sprintf("file %s/%s removed", change.Category, change.FileName)
	case differ.KindAdded:
		return fmt.Sprintf("%s: %s added (%s)", change.Category, change.Path, compactValue(change.NewValue))
	case differ.KindRemoved:
		return fmt.Sprintf("%s: %s removed (was %s)", change.Category, change.Path, compactValue(change.OldValue))
	case differ.KindModified:
		return fmt.Sprintf("%s: %s changed from %s to %s",
			change.Category, change.Path, compactValue(change.OldValue), compactValue(change.NewValue))
	default:
		return fmt.Sprintf("%s: %s", change.Category, change.Path)
	}
}

const maxValueWidth = 60

// compactValue renders a JSON value on one line, truncated for readability.
func compactValue(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}

	s := string(data)
	if len(s) > maxValueWidth {
		s = s[:maxValueWidth-3] + "..."
	}
	return s
}
