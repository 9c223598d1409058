package frontend

import "html/template"

var (
	layoutTemplate = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	{{if .refreshSeconds}}<meta http-equiv="refresh" content="{{.refreshSeconds}}">{{end}}
	<title>{{.pageTitle}}</title>
	<style>
		body { font-family: sans-serif; margin: 2em; }
		.bar { width: 400px; height: 1.2em; border: 1px solid #888; }
		.bar div { height: 100%; background: #4a90d9; }
	</style>
</head>
<body>
	{{template "content" .}}
</body>
</html>
`

	progressPageTemplate = template.Must(template.Must(template.New("layout").Parse(layoutTemplate)).Parse(`
{{define "content"}}
<h1>{{.pageTitle}}</h1>
<h2>{{.section}}</h2>
{{if .finished}}
<p>Job finished.</p>
{{else}}
<div class="bar"><div style="width: {{.percent}}%"></div></div>
<p>{{.percent}}% complete</p>
{{end}}
{{end}}
`))

	msgPageTemplate = template.Must(template.Must(template.New("layout").Parse(layoutTemplate)).Parse(`
{{define "content"}}
<h1>{{.pageTitle}}</h1>
<p>{{.messageContent}}</p>
{{end}}
`))
)
