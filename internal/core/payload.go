package core

import "strings"

const (
	TagHero          = "hero"
	TagSplitFeature  = "splitFeature"
	TagProductGrid   = "productGrid"
	TagCategoryLinks = "categoryLinks"
	TagStoryCards    = "storyCards"
)

type Hero struct {
	Image *Image `json:"image,omitempty"`
}

type SplitLayout string

const (
	LayoutStandard SplitLayout = "standard"
	LayoutCentered SplitLayout = "centered"
	LayoutOverlay  SplitLayout = "overlay"
)

type SplitFeature struct {
	Eyebrow       string      `json:"eyebrow,omitempty"`
	Title         string      `json:"title,omitempty"`
	RichText      RichText    `json:"richText"`
	Buttons       []Button    `json:"buttons,omitempty"`
	Image         *Image      `json:"image,omitempty"`
	ImagePosition string      `json:"imagePosition,omitempty"`
	Layout        SplitLayout `json:"layout,omitempty"`
	OverlayTitle  string      `json:"overlayTitle,omitempty"`
}

// LayoutOrDefault maps anything unrecognised to the standard layout.
func (s SplitFeature) LayoutOrDefault() SplitLayout {
	switch s.Layout {
	case LayoutCentered, LayoutOverlay:
		return s.Layout
	}
	return LayoutStandard
}

func (s SplitFeature) ImageLeft() bool {
	return s.ImagePosition == "left"
}

func (s SplitFeature) Heading() string {
	if s.LayoutOrDefault() == LayoutOverlay && s.OverlayTitle != "" {
		return s.OverlayTitle
	}
	return s.Title
}

type ProductGrid struct {
	Title    string `json:"title,omitempty"`
	Columns  string `json:"columns,omitempty"`
	Products []Card `json:"products,omitempty"`
}

// ColumnCount strips everything but digits from the authored value, since
// the CMS has been seen to store invisible characters next to it, and falls
// back to four columns.
func (p ProductGrid) ColumnCount() int {
	var b strings.Builder
	for _, r := range p.Columns {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	switch b.String() {
	case "5":
		return 5
	default:
		return 4
	}
}

type CategoryLinks struct {
	Links []Link `json:"links,omitempty"`
}

type StoryCards struct {
	Title   string `json:"title,omitempty"`
	Stories []Card `json:"stories,omitempty"`
}
