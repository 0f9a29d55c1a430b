package report

import (
	"html/template"
	"io"
)

var htmlTmpl = template.Must(template.New("report").Parse(`<div class="costcheck-report">
<style>
.costcheck-report table{border-collapse:collapse;margin-bottom:1.5em}
.costcheck-report th,.costcheck-report td{border:1px solid #ccc;padding:4px 8px;text-align:left}
.costcheck-report .tone-valid{color:#2e7d32}
.costcheck-report .tone-invalid{color:#c62828}
.costcheck-report .tone-warning{color:#ef8f00}
.costcheck-report .expected{font-size:90%}
.costcheck-report .error-block{border:2px solid #c62828;color:#c62828;padding:8px;margin-bottom:1.5em}
</style>
{{- if .Brand}}
<h2>{{.Brand}} validation</h2>
{{- end}}
{{- range .Files}}
<section class="file-result">
<h3>{{.FileName}}{{if .Sheet}} <small>({{.Sheet}})</small>{{end}}</h3>
{{- if .Error}}
<div class="error-block">{{.Error}}</div>
{{- else}}
<p class="summary">{{.Summary}}</p>
<table>
<thead><tr><th>Check</th><th>Cell</th><th>Value</th></tr></thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Label}}</td><td>{{.Cell}}</td><td class="tone-{{.Tone}}" data-tone="{{.Tone}}">{{.Text}}{{if .Expected}} <span class="expected">(Expected: {{.Expected}})</span>{{end}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
</section>
{{- end}}
</div>
`))

var errorTmpl = template.Must(template.New("error").Parse(
	`<div class="costcheck-report"><div class="error-block" style="border:2px solid #c62828;color:#c62828;padding:8px">{{.}}</div></div>
`))

// WriteHTML renders the document as an HTML fragment.
func WriteHTML(w io.Writer, doc Document) error {
	return htmlTmpl.Execute(w, doc)
}

// WriteErrorHTML renders a run-level failure that replaces all results.
func WriteErrorHTML(w io.Writer, msg string) error {
	return errorTmpl.Execute(w, msg)
}
