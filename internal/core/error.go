package core

import (
	"html/template"
)

type ErrorData struct {
	Message   string
	IsDev     bool
	RequestID string
}

var ErrorTemplate = template.Must(template.New("error").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Error</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 50px auto; padding: 0 20px; }
        h1 { color: #e74c3c; }
        pre { background: #f8f9fa; padding: 15px; border-radius: 5px; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>Internal Server Error</h1>
    {{if .IsDev}}
    <pre>{{.Message}}</pre>
    {{else}}
    <p>An error occurred while processing your request.</p>
    {{end}}
    {{with .RequestID}}<p><small>Request {{.}}</small></p>{{end}}
</body>
</html>`))

type NotFoundData struct {
	Path string
}

var NotFoundTemplate = template.Must(template.New("not-found").Parse(`<!doctype html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Page not found</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 50px auto; padding: 0 20px; }
    </style>
</head>
<body>
    <h1>Page not found</h1>
    <p>Nothing is published at <code>{{.Path}}</code>.</p>
    <p><a href="/">Back to the home page</a></p>
</body>
</html>`))
