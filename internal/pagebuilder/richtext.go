package pagebuilder

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/3-lines-studio/jamb/internal/core"
)

// RichText renders both shapes of CMS rich text: portable-text blocks and
// markdown strings. Raw HTML inside markdown is not passed through.
type RichText struct {
	md goldmark.Markdown
}

func NewRichText() *RichText {
	return &RichText{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
					highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				),
			),
		),
	}
}

var defaultRichText = NewRichText()

func (r *RichText) Render(rt core.RichText) (template.HTML, error) {
	if rt.IsZero() {
		return "", nil
	}
	if r == nil {
		r = defaultRichText
	}
	if rt.Markdown != "" {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(rt.Markdown), &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		return template.HTML(buf.String()), nil
	}
	return template.HTML(renderPortable(rt.Blocks)), nil
}

var blockStyles = map[string]string{
	"normal":     "p",
	"h1":         "h1",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"h5":         "h5",
	"h6":         "h6",
	"blockquote": "blockquote",
}

var decorators = map[string]string{
	"strong":         "strong",
	"em":             "em",
	"code":           "code",
	"underline":      "u",
	"strike-through": "s",
}

// renderPortable writes portable-text blocks as HTML. Consecutive list
// items of the same kind share one list element; nesting levels are
// flattened.
func renderPortable(blocks []core.PortableBlock) string {
	var b strings.Builder
	openList := ""
	closeList := func() {
		if openList != "" {
			fmt.Fprintf(&b, "</%s>", openList)
			openList = ""
		}
	}

	for _, block := range blocks {
		if block.Type != "block" {
			continue
		}
		if block.ListItem != "" {
			tag := "ul"
			if block.ListItem == "number" {
				tag = "ol"
			}
			if openList != tag {
				closeList()
				fmt.Fprintf(&b, "<%s>", tag)
				openList = tag
			}
			b.WriteString("<li>")
			writeSpans(&b, block)
			b.WriteString("</li>")
			continue
		}

		closeList()
		tag, ok := blockStyles[block.Style]
		if !ok {
			tag = "p"
		}
		fmt.Fprintf(&b, "<%s>", tag)
		writeSpans(&b, block)
		fmt.Fprintf(&b, "</%s>", tag)
	}
	closeList()
	return b.String()
}

func writeSpans(b *strings.Builder, block core.PortableBlock) {
	defs := make(map[string]core.MarkDef, len(block.MarkDefs))
	for _, def := range block.MarkDefs {
		defs[def.Key] = def
	}

	for _, span := range block.Children {
		var closers []string
		for _, mark := range span.Marks {
			if tag, ok := decorators[mark]; ok {
				fmt.Fprintf(b, "<%s>", tag)
				closers = append(closers, "</"+tag+">")
				continue
			}
			def, ok := defs[mark]
			if !ok {
				continue
			}
			href, ok := safeHref(def.Href)
			if !ok {
				continue
			}
			if def.OpenInNewTab {
				fmt.Fprintf(b, `<a href="%s" target="_blank" rel="noopener noreferrer">`, template.HTMLEscapeString(href))
			} else {
				fmt.Fprintf(b, `<a href="%s">`, template.HTMLEscapeString(href))
			}
			closers = append(closers, "</a>")
		}

		text := template.HTMLEscapeString(span.Text)
		b.WriteString(strings.ReplaceAll(text, "\n", "<br />"))

		for i := len(closers) - 1; i >= 0; i-- {
			b.WriteString(closers[i])
		}
	}
}

var linkSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// safeHref returns href cleaned of the whitespace and control characters
// browsers ignore, provided it is relative or uses an allowed scheme.
func safeHref(href string) (string, bool) {
	href = strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < ' ' || r == 0x7f {
			return -1
		}
		return r
	}, href))
	if href == "" {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if u.Scheme != "" && !linkSchemes[strings.ToLower(u.Scheme)] {
		return "", false
	}
	return href, true
}
