package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/wonderfulspam/connector-smith/pkg/differ"
)

// htmlReport is the template input: the raw reports plus precomputed display
// fields, so the template itself stays logic-free.
type htmlReport struct {
	Summary    Summary
	Connectors []htmlConnector
}

type htmlConnector struct {
	Name            string
	ProcessingError string
	Changes         []htmlChange
}

type htmlChange struct {
	Severity    differ.Severity
	Kind        differ.ChangeKind
	Description string
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Connector Release Comparison</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: 0.2em; }
.summary { background: #f6f8fa; padding: 1em; border-radius: 6px; }
.error { color: #b30000; }
.badge { display: inline-block; min-width: 2.2em; text-align: center; border-radius: 4px; padding: 0 0.3em; font-weight: bold; color: #fff; }
.badge.P0 { background: #d73a49; }
.badge.P1 { background: #e5a00d; }
.badge.P2 { background: #8b949e; }
.kind { color: #555; font-family: monospace; }
li { margin: 0.25em 0; }
</style>
</head>
<body>
<h1>Connector Release Comparison</h1>
<p class="summary">{{.Summary}}</p>
{{range .Connectors}}
<h2>{{.Name}}</h2>
{{if .ProcessingError}}<p class="error">Processing failed: {{.ProcessingError}}</p>{{end}}
<ul>
{{range .Changes}}<li><span class="badge {{.Severity}}">{{.Severity}}</span> <span class="kind">{{.Kind}}</span> {{.Description}}</li>
{{end}}</ul>
{{end}}
</body>
</html>
`))

func (r *Renderer) formatHTML(reports []differ.ConnectorReport) (string, error) {
	data := htmlReport{Summary: Summarize(reports)}

	for _, report := range reports {
		if !report.HasChanges() && report.ProcessingError == "" {
			continue
		}

		conn := htmlConnector{
			Name:            report.Connector,
			ProcessingError: report.ProcessingError,
		}
		for _, change := range report.Changes {
			conn.Changes = append(conn.Changes, htmlChange{
				Severity:    change.Severity,
				Kind:        change.Kind,
				Description: describe(change),
			})
		}

		data.Connectors = append(data.Connectors, conn)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering HTML report: %w", err)
	}
	return buf.String(), nil
}
