package core

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

const DefaultTitle = "Jamb"

type ShellInput struct {
	Title       string
	Description string
	HeadHTML    string
	BodyHTML    string
	CSSHref     string
	Scripts     []string
	// Props are exposed to client scripts as JSON. Nil omits the element.
	Props map[string]any
}

func RenderHTMLShell(in ShellInput) (string, error) {
	title := in.Title
	if title == "" {
		title = DefaultTitle
	}
	if in.HeadHTML != "" && strings.Contains(strings.ToLower(in.HeadHTML), "<title") {
		title = ""
	}

	head := `<meta charset="UTF-8" /><meta name="viewport" content="width=device-width, initial-scale=1.0" />`
	if title != "" {
		head += fmt.Sprintf("<title>%s</title>", html.EscapeString(title))
	}
	if in.Description != "" {
		head += fmt.Sprintf(`<meta name="description" content="%s" />`, html.EscapeString(in.Description))
	}
	if in.HeadHTML != "" {
		head += in.HeadHTML
	}
	if in.CSSHref != "" {
		head += fmt.Sprintf(`<link rel="stylesheet" href="%s" />`, html.EscapeString(in.CSSHref))
	}

	var props string
	if in.Props != nil {
		propsJSON, err := json.Marshal(in.Props)
		if err != nil {
			return "", err
		}
		escaped := strings.ReplaceAll(string(propsJSON), "</", "<\\/")
		props = fmt.Sprintf("    <script id=\"__JAMB_PROPS__\" type=\"application/json\">%s</script>\n", escaped)
	}

	var scripts strings.Builder
	for _, src := range in.Scripts {
		fmt.Fprintf(&scripts, "    <script src=\"%s\" type=\"module\" defer></script>\n", html.EscapeString(src))
	}

	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    %s
  </head>
  <body>
%s
%s%s  </body>
</html>
`, head, in.BodyHTML, props, scripts.String()), nil
}
