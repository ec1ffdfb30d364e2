package pagebuilder

import (
	"html/template"

	"github.com/3-lines-studio/jamb/internal/core"
)

type imageView struct {
	Src    string
	Alt    string
	Width  int
	Height int
	Eager  bool
}

type linkView struct {
	Href   string
	Label  string
	NewTab bool
}

type buttonView struct {
	linkView
	Variant string
	Broken  bool
}

type cardView struct {
	Kind     string
	Title    string
	Subtitle string
	Image    *imageView
	Href     string
	NewTab   bool
}

func newImage(env Env, img *core.Image, width, height int) *imageView {
	src := env.Images.Build(img, width, height)
	if src == "" {
		return nil
	}
	return &imageView{Src: src, Alt: img.Alt, Width: width, Height: height}
}

func newLink(l core.Link) linkView {
	href := l.Target()
	if href == "" {
		href = "#"
	}
	return linkView{Href: href, Label: l.Label(), NewTab: l.NewTab()}
}

func newLinks(links []core.Link) []linkView {
	out := make([]linkView, 0, len(links))
	for _, l := range links {
		out = append(out, newLink(l))
	}
	return out
}

func newButtons(buttons []core.Button) []buttonView {
	out := make([]buttonView, 0, len(buttons))
	for _, b := range buttons {
		href := b.Target()
		variant := b.Variant
		if variant == "" {
			variant = "default"
		}
		out = append(out, buttonView{
			linkView: linkView{Href: href, Label: b.Label(), NewTab: b.NewTab()},
			Variant:  variant,
			Broken:   href == "",
		})
	}
	return out
}

func newCards(env Env, kind string, cards []core.Card, width, height int) []cardView {
	out := make([]cardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardView{
			Kind:     kind,
			Title:    c.Title,
			Subtitle: c.Subtitle,
			Image:    newImage(env, c.Image, width, height),
			Href:     c.Target(),
			NewTab:   c.NewTab(),
		})
	}
	return out
}

type heroView struct {
	Image *imageView
}

type splitView struct {
	Eyebrow   string
	Title     string
	Heading   string
	Body      template.HTML
	Buttons   []buttonView
	Image     *imageView
	ImageLeft bool
}

type productGridView struct {
	Title    string
	Columns  int
	Products []cardView
}

type categoryLinksView struct {
	Links []linkView
}

type storyCardsView struct {
	Title   string
	Stories []cardView
}
