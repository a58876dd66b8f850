package report

import (
	"fmt"
	"html/template"
	"strings"
)

// bodyTemplate mirrors the table layout of the emailed report: elapsed
// duration, a Metric/Current/Best table, and the verbatim new log text.
// html/template escapes the raw log text for the <pre> block.
var bodyTemplate = template.Must(template.New("report").Parse(`<html>
<body>
<h2>Training Progress Report</h2>
<p>Training Duration: {{.Hours}}h {{.Minutes}}m</p>

<h3>Metrics Summary:</h3>
<table border="1">
  <tr>
    <th>Metric</th>
    <th>Current</th>
    <th>Best</th>
  </tr>
{{- range .Metrics}}
  <tr>
    <td>{{.Name}}</td>
    <td>{{printf "%.4f" .Current}}</td>
    <td>{{printf "%.4f" .Best}}</td>
  </tr>
{{- end}}
</table>
{{- if .Truncated}}

<p><em>Note: older buffered log output was discarded to bound memory.</em></p>
{{- end}}

<h3>Recent Training Log:</h3>
<pre>{{.NewText}}</pre>
</body>
</html>
`))

// RenderHTML renders the summary as the email body.
func RenderHTML(s *Summary) (string, error) {
	var b strings.Builder
	if err := bodyTemplate.Execute(&b, s); err != nil {
		return "", fmt.Errorf("rendering report body: %w", err)
	}
	return b.String(), nil
}
