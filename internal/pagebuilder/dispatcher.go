package pagebuilder

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/3-lines-studio/jamb/internal/core"
)

// Output is the rendered form of one input block. Placeholder is set when
// the block could not be rendered by its own renderer; Reason then says why.
type Output struct {
	Key         string
	Type        string
	HTML        template.HTML
	Spacing     core.Spacing
	Placeholder bool
	Reason      string
}

type UnknownBlock struct {
	Document core.DocumentRef
	Type     string
	Key      string
	Index    int
}

// UnknownHook is told about every block whose tag has no renderer.
type UnknownHook func(ctx context.Context, b UnknownBlock)

type Option func(*Dispatcher)

func WithUnknownHook(hook UnknownHook) Option {
	return func(d *Dispatcher) {
		if hook != nil {
			d.unknown = hook
		}
	}
}

// WithJoinable replaces the set of tags whose consecutive instances share
// a boundary. The default is splitFeature alone.
func WithJoinable(tags ...string) Option {
	return func(d *Dispatcher) {
		d.join = core.NewJoinRule(tags...)
	}
}

func WithVisualEditing(v core.VisualEditing) Option {
	return func(d *Dispatcher) {
		d.visual = &v
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

func WithEnv(env Env) Option {
	return func(d *Dispatcher) {
		d.env = env
	}
}

type Dispatcher struct {
	registry *Registry
	join     core.JoinRule
	unknown  UnknownHook
	visual   *core.VisualEditing
	logger   *slog.Logger
	env      Env
}

func NewDispatcher(registry *Registry, opts ...Option) *Dispatcher {
	if registry == nil {
		registry = DefaultRegistry()
	}
	d := &Dispatcher{
		registry: registry,
		join:     core.NewJoinRule(core.TagSplitFeature),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.unknown == nil {
		d.unknown = logUnknown(d.logger)
	}
	if d.env.RichText == nil {
		d.env.RichText = NewRichText()
	}
	return d
}

func logUnknown(logger *slog.Logger) UnknownHook {
	return func(ctx context.Context, b UnknownBlock) {
		logger.WarnContext(ctx, "unknown page builder block",
			"type", b.Type,
			"key", b.Key,
			"index", b.Index,
			"document", b.Document.ID,
		)
	}
}

// Render produces exactly one output per block, in order.
func (d *Dispatcher) Render(ctx context.Context, doc core.DocumentRef, blocks core.Blocks) []Output {
	outputs := make([]Output, len(blocks))
	for i, block := range blocks {
		pos := core.PositionOf(blocks, i)
		spacing := d.join.Spacing(block.Type, pos)
		out := Output{Key: block.Key, Type: block.Type, Spacing: spacing}

		renderer, ok := d.registry.Lookup(block.Type)
		if !ok {
			d.unknown(ctx, UnknownBlock{Document: doc, Type: block.Type, Key: block.Key, Index: i})
			out.Placeholder = true
			out.Reason = "unknown block type"
			out.HTML = d.wrap(doc, out, unknownPlaceholder(block))
			outputs[i] = out
			continue
		}

		in := Input{Document: doc, Block: block, Position: pos, Spacing: spacing, Env: d.env}
		inner, err := d.renderOne(ctx, renderer, in)
		if err != nil {
			d.logger.WarnContext(ctx, "page builder block failed",
				"type", block.Type,
				"key", block.Key,
				"index", i,
				"document", doc.ID,
				"error", err,
			)
			out.Placeholder = true
			out.Reason = err.Error()
			inner = failedPlaceholder(block, err)
		}
		out.HTML = d.wrap(doc, out, inner)
		outputs[i] = out
	}
	return outputs
}

func (d *Dispatcher) renderOne(ctx context.Context, r Renderer, in Input) (html template.HTML, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("renderer panic: %v", rec)
		}
	}()

	var buf bytes.Buffer
	if err := r.Render(ctx, &buf, in); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderHTML joins the outputs into the page's main region. An empty
// sequence yields no markup at all.
func (d *Dispatcher) RenderHTML(ctx context.Context, doc core.DocumentRef, blocks core.Blocks) template.HTML {
	if len(blocks) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<main class="page-builder" data-document-id="%s"`, template.HTMLEscapeString(doc.PublishedID()))
	if d.visual != nil {
		fmt.Fprintf(&b, ` data-sanity="%s"`, template.HTMLEscapeString(d.visual.Attribute(doc, core.BuilderPath)))
	}
	b.WriteString(">")
	for _, out := range d.Render(ctx, doc, blocks) {
		b.WriteString(string(out.HTML))
	}
	b.WriteString("</main>")
	return template.HTML(b.String())
}

func (d *Dispatcher) wrap(doc core.DocumentRef, out Output, inner template.HTML) template.HTML {
	classes := "block block--" + out.Type
	if out.Type == "" {
		classes = "block"
	}
	if c := out.Spacing.Classes(); c != "" {
		classes += " " + c
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s" data-block-key="%s" data-block-type="%s"`,
		template.HTMLEscapeString(classes),
		template.HTMLEscapeString(out.Key),
		template.HTMLEscapeString(out.Type),
	)
	if d.visual != nil {
		attr := d.visual.Attribute(doc, core.BlockPath(out.Key))
		fmt.Fprintf(&b, ` data-sanity="%s"`, template.HTMLEscapeString(attr))
	}
	b.WriteString(">")
	b.WriteString(string(inner))
	b.WriteString("</div>")
	return template.HTML(b.String())
}
