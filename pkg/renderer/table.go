package renderer

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"

	"github.com/wonderfulspam/connector-smith/pkg/differ"
)

var severityColors = map[differ.Severity]*color.Color{
	differ.SeverityCritical: color.New(color.FgRed, color.Bold),
	differ.SeverityMajor:    color.New(color.FgYellow),
	differ.SeverityMinor:    color.New(color.FgHiBlack),
}

func severityBadge(severity differ.Severity) string {
	if c, ok := severityColors[severity]; ok {
		return c.Sprint(string(severity))
	}
	return string(severity)
}

func (r *Renderer) formatTable(reports []differ.ConnectorReport) string {
	var buf bytes.Buffer

	summary := Summarize(reports)

	buf.WriteString("Connector Release Comparison\n")
	buf.WriteString("============================\n\n")
	buf.WriteString(fmt.Sprintf("Summary: %s\n\n", summary))

	for _, report := range reports {
		if !report.HasChanges() && report.ProcessingError == "" {
			continue
		}

		buf.WriteString(fmt.Sprintf("%s\n", report.Connector))
		buf.WriteString(fmt.Sprintf("%s\n", dashes(len(report.Connector))))

		if report.ProcessingError != "" {
			buf.WriteString(fmt.Sprintf("  ! processing failed: %s\n", report.ProcessingError))
		}

		for _, change := range report.Changes {
			buf.WriteString(fmt.Sprintf("  [%s] [%s] %s\n", severityBadge(change.Severity), change.Kind, describe(change)))
		}

		buf.WriteString("\n")
	}

	if !summary.HasChanges() && summary.FailedConnectors == 0 {
		buf.WriteString("No differences found.\n")
	}

	return buf.String()
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}
