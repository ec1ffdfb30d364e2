package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/3-lines-studio/jamb/internal/core"
	"github.com/3-lines-studio/jamb/internal/pagebuilder"
)

type ServePageInput struct {
	RequestPath string
	Perspective core.Perspective
	Assets      *core.AssetManifest
}

type ServePageOutput struct {
	Action   core.PageAction
	HTML     string
	Location string
	Document *core.PageDocument
	Error    error
}

type PageOption func(*PageService)

func WithOverrides(o Overrides) PageOption {
	return func(s *PageService) {
		s.overrides = o
	}
}

func WithPageLogger(logger *slog.Logger) PageOption {
	return func(s *PageService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLiveScript adds the live client script to pages rendered in preview.
func WithLiveScript(name string) PageOption {
	return func(s *PageService) {
		s.liveScript = name
	}
}

type PageService struct {
	content    ContentSource
	blocks     BlockRenderer
	layout     Layout
	overrides  Overrides
	logger     *slog.Logger
	liveScript string
}

func NewPageService(content ContentSource, blocks BlockRenderer, layout Layout, opts ...PageOption) *PageService {
	s := &PageService{
		content: content,
		blocks:  blocks,
		layout:  layout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PageService) ServePage(ctx context.Context, input ServePageInput) ServePageOutput {
	decision := core.DecidePageAction(core.PageRequest{Path: input.RequestPath})

	var q core.Query
	switch decision.Action {
	case core.ActionRedirect:
		return ServePageOutput{Action: core.ActionRedirect, Location: decision.Location}
	case core.ActionNotFound:
		return ServePageOutput{Action: core.ActionNotFound}
	case core.ActionRenderHome:
		q = core.Query{Type: core.DocHomePage, Perspective: input.Perspective}
	case core.ActionRenderPage:
		q = core.Query{Type: core.DocPage, Slug: decision.Slug, Perspective: input.Perspective}
	default:
		return ServePageOutput{Action: decision.Action, Error: fmt.Errorf("unknown page action")}
	}

	doc, err := s.LoadDocument(ctx, q)
	if errors.Is(err, core.ErrNotFound) {
		return ServePageOutput{Action: core.ActionNotFound}
	}
	if err != nil {
		return ServePageOutput{Action: decision.Action, Error: err}
	}

	nav := s.Navigation(ctx, input.Perspective)
	html, err := s.RenderDocument(ctx, doc, nav, input)
	return ServePageOutput{
		Action:   decision.Action,
		HTML:     html,
		Document: &doc,
		Error:    err,
	}
}

// LoadDocument fetches and decodes one page document. While previewing,
// live overrides replace the fetched page builder.
func (s *PageService) LoadDocument(ctx context.Context, q core.Query) (core.PageDocument, error) {
	raw, err := s.content.Fetch(ctx, q)
	if err != nil {
		return core.PageDocument{}, err
	}

	var doc core.PageDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return core.PageDocument{}, fmt.Errorf("decode %s document: %w", q.Type, err)
	}
	if err := doc.PageBuilder.Validate(); err != nil {
		s.logger.WarnContext(ctx, "page builder has invalid blocks", "document", doc.ID, "error", err)
	}

	if q.Perspective.Preview() && s.overrides != nil {
		ref := doc.Ref()
		s.overrides.Observe(ref, doc.PageBuilder, doc.Rev)
		doc.PageBuilder = s.overrides.Resolve(ref, doc.PageBuilder)
	}
	return doc, nil
}

// Navigation gathers the site chrome concurrently. Parts that fail to load
// are left empty so the page still renders.
func (s *PageService) Navigation(ctx context.Context, perspective core.Perspective) core.Navigation {
	var (
		navbar   core.Navbar
		settings core.Settings
		drawer   core.DrawerNavigation
		home     core.PageDocument
		footer   core.Footer
	)
	targets := []struct {
		docType string
		dst     any
	}{
		{core.DocNavbar, &navbar},
		{core.DocSettings, &settings},
		{core.DocDrawerNavigation, &drawer},
		{core.DocHomePage, &home},
		{core.DocFooter, &footer},
	}
	found := make([]bool, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			found[i] = s.fetchInto(gctx, core.Query{Type: t.docType, Perspective: perspective}, t.dst)
			return nil
		})
	}
	_ = g.Wait()

	nav := core.Navigation{CategoryLinks: core.ExtractCategoryLinks(home.PageBuilder)}
	if found[0] {
		nav.Navbar = &navbar
	}
	if found[1] {
		nav.Settings = &settings
	}
	if found[2] {
		nav.Drawer = &drawer
	}
	if found[4] {
		nav.Footer = &footer
	}
	return nav
}

func (s *PageService) fetchInto(ctx context.Context, q core.Query, dst any) bool {
	raw, err := s.content.Fetch(ctx, q)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			s.logger.WarnContext(ctx, "navigation fetch failed", "type", q.Type, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.WarnContext(ctx, "navigation decode failed", "type", q.Type, "error", err)
		return false
	}
	return true
}

func (s *PageService) RenderDocument(ctx context.Context, doc core.PageDocument, nav core.Navigation, input ServePageInput) (string, error) {
	ref := doc.Ref()
	page := pagebuilder.Page{
		Navigation: nav,
		Main:       s.blocks.RenderHTML(ctx, ref, doc.PageBuilder),
		Preview:    input.Perspective.Preview(),
		Path:       doc.Path(),
	}

	var body strings.Builder
	if err := s.layout.RenderBody(&body, page); err != nil {
		return "", fmt.Errorf("render layout: %w", err)
	}

	title := doc.Title
	description := doc.Description
	if nav.Settings != nil {
		if nav.Settings.SiteTitle != "" {
			if title == "" || doc.Type == core.DocHomePage {
				title = nav.Settings.SiteTitle
			} else {
				title = title + " | " + nav.Settings.SiteTitle
			}
		}
		if description == "" {
			description = nav.Settings.SiteDescription
		}
	}

	shell := core.ShellInput{
		Title:       title,
		Description: description,
		BodyHTML:    body.String(),
		CSSHref:     input.Assets.Href("site.css"),
	}
	if page.Preview && s.liveScript != "" {
		shell.Scripts = []string{input.Assets.Href(s.liveScript)}
		shell.Props = map[string]any{
			"document": ref,
			"rev":      doc.Rev,
			"events":   "/_live/events",
			"render":   "/_live/render/" + ref.ID,
		}
	}
	return core.RenderHTMLShell(shell)
}

// RenderFragment renders only the page builder region of one document, for
// clients that swap it in place after a live edit.
func (s *PageService) RenderFragment(ctx context.Context, id string, perspective core.Perspective) (template.HTML, error) {
	doc, err := s.LoadDocument(ctx, core.Query{ID: id, Perspective: perspective})
	if err != nil {
		return "", err
	}
	return s.blocks.RenderHTML(ctx, doc.Ref(), doc.PageBuilder), nil
}
