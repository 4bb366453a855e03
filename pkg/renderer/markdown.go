package renderer

import (
	"bytes"
	"fmt"

	"github.com/wonderfulspam/connector-smith/pkg/differ"
)

func (r *Renderer) formatMarkdown(reports []differ.ConnectorReport) string {
	var buf bytes.Buffer

	summary := Summarize(reports)

	buf.WriteString("# Connector Release Comparison\n\n")
	buf.WriteString(fmt.Sprintf("**%s**\n\n", summary))

	if summary.HasChanges() {
		buf.WriteString("| Severity | Count |\n")
		buf.WriteString("|----------|-------|\n")
		buf.WriteString(fmt.Sprintf("| %s | %d |\n", differ.SeverityCritical, summary.Critical))
		buf.WriteString(fmt.Sprintf("| %s | %d |\n", differ.SeverityMajor, summary.Major))
		buf.WriteString(fmt.Sprintf("| %s | %d |\n\n", differ.SeverityMinor, summary.Minor))
	}

	for _, report := range reports {
		if !report.HasChanges() && report.ProcessingError == "" {
			continue
		}

		buf.WriteString(fmt.Sprintf("## %s\n\n", report.Connector))

		if report.ProcessingError != "" {
			buf.WriteString(fmt.Sprintf("> ⚠ Processing failed: %s\n\n", report.ProcessingError))
		}

		for _, change := range report.Changes {
			buf.WriteString(fmt.Sprintf("- **%s** `%s` %s\n", change.Severity, change.Kind, describe(change)))
		}

		buf.WriteString("\n")
	}

	return buf.String()
}
