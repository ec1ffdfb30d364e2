package pagebuilder

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/3-lines-studio/jamb/internal/core"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("jamb").ParseFS(templateFS, "templates/*.html"))

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	return nil
}

func renderHero(_ context.Context, w io.Writer, in Input) error {
	var p core.Hero
	if err := in.Block.Decode(&p); err != nil {
		return err
	}
	view := heroView{Image: newImage(in.Env, p.Image, 1920, 900)}
	if view.Image != nil {
		view.Image.Eager = true
	}
	return execute(w, "hero", view)
}

var splitImageSizes = map[core.SplitLayout][2]int{
	core.LayoutStandard: {800, 1000},
	core.LayoutCentered: {1600, 600},
	core.LayoutOverlay:  {1600, 800},
}

func renderSplitFeature(_ context.Context, w io.Writer, in Input) error {
	var p core.SplitFeature
	if err := in.Block.Decode(&p); err != nil {
		return err
	}

	layout := p.LayoutOrDefault()
	size := splitImageSizes[layout]
	view := splitView{
		Eyebrow:   p.Eyebrow,
		Title:     p.Title,
		Heading:   p.Heading(),
		Buttons:   newButtons(p.Buttons),
		Image:     newImage(in.Env, p.Image, size[0], size[1]),
		ImageLeft: p.ImageLeft(),
	}
	if layout != core.LayoutOverlay {
		body, err := in.Env.RichText.Render(p.RichText)
		if err != nil {
			return err
		}
		view.Body = body
	}

	switch layout {
	case core.LayoutCentered:
		return execute(w, "split-centered", view)
	case core.LayoutOverlay:
		return execute(w, "split-overlay", view)
	default:
		return execute(w, "split-standard", view)
	}
}

func renderProductGrid(_ context.Context, w io.Writer, in Input) error {
	var p core.ProductGrid
	if err := in.Block.Decode(&p); err != nil {
		return err
	}
	return execute(w, "product-grid", productGridView{
		Title:    p.Title,
		Columns:  p.ColumnCount(),
		Products: newCards(in.Env, "product", p.Products, 600, 600),
	})
}

func renderCategoryLinks(_ context.Context, w io.Writer, in Input) error {
	var p core.CategoryLinks
	if err := in.Block.Decode(&p); err != nil {
		return err
	}
	return execute(w, "category-links", categoryLinksView{Links: newLinks(p.Links)})
}

func renderStoryCards(_ context.Context, w io.Writer, in Input) error {
	var p core.StoryCards
	if err := in.Block.Decode(&p); err != nil {
		return err
	}
	return execute(w, "story-cards", storyCardsView{
		Title:   p.Title,
		Stories: newCards(in.Env, "story", p.Stories, 600, 800),
	})
}
