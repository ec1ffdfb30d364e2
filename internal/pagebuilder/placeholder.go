package pagebuilder

import (
	"fmt"
	"html/template"

	"github.com/3-lines-studio/jamb/internal/core"
)

func displayTag(b core.Block) string {
	if b.Type == "" {
		return "(missing)"
	}
	return b.Type
}

func unknownPlaceholder(b core.Block) template.HTML {
	tag := template.HTMLEscapeString(displayTag(b))
	key := template.HTMLEscapeString(b.Key)
	return template.HTML(fmt.Sprintf(
		`<div class="block-placeholder" role="alert" aria-label="Unknown block type: %s">`+
			`<p>Component not found for block type: <code>%s</code></p>`+
			`<p class="block-placeholder__key">Block key: <code>%s</code></p>`+
			`</div>`,
		tag, tag, key))
}

func failedPlaceholder(b core.Block, err error) template.HTML {
	tag := template.HTMLEscapeString(displayTag(b))
	key := template.HTMLEscapeString(b.Key)
	return template.HTML(fmt.Sprintf(
		`<div class="block-placeholder" role="alert" aria-label="Block failed to render: %s">`+
			`<p>Could not render block type: <code>%s</code></p>`+
			`<p class="block-placeholder__key">Block key: <code>%s</code></p>`+
			`<p class="block-placeholder__reason">%s</p>`+
			`</div>`,
		tag, tag, key, template.HTMLEscapeString(err.Error())))
}
