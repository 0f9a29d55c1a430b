package server

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cost Breakdown Check</title>
<style>
body{font-family:Helvetica,Arial,sans-serif;margin:2em;max-width:960px}
form{margin-bottom:1.5em}
#results:empty{display:none}
</style>
</head>
<body>
<h1>Cost Breakdown Check</h1>
<form id="upload">
<label>Brand
<select name="brand">
{{range .}}{{if .Default}}<option value="{{.Name}}" selected>{{.Title}}</option>{{else}}<option value="{{.Name}}">{{.Title}}</option>{{end}}
{{end}}</select>
</label>
<input type="file" name="files" accept=".xls,.xlsx,.xlsm" multiple required>
<button type="submit">Validate</button>
<a id="export" href="/api/export" hidden>Export PDF</a>
</form>
<div id="results"></div>
<script>
document.getElementById("upload").addEventListener("submit", async function (e) {
  e.preventDefault();
  const res = await fetch("/api/validate", {method: "POST", body: new FormData(this), headers: {Accept: "text/html"}});
  document.getElementById("results").innerHTML = await res.text();
  document.getElementById("export").hidden = !res.ok;
});
</script>
</body>
</html>
`))

// index GET /
func (s *Server) index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := indexTmpl.Execute(c.Writer, s.brandList()); err != nil {
		s.log.Sugar().Errorf("render index: %v", err)
	}
}
