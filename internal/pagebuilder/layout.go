package pagebuilder

import (
	"html/template"
	"io"

	"github.com/3-lines-studio/jamb/internal/core"
)

// Page is everything the site chrome wraps around the rendered blocks.
type Page struct {
	Navigation core.Navigation
	Main       template.HTML
	Preview    bool
	Path       string
}

type Layout struct {
	images core.ImageURLBuilder
}

func NewLayout(images core.ImageURLBuilder) *Layout {
	return &Layout{images: images}
}

type navColumnView struct {
	Title  string
	Href   string
	NewTab bool
	Links  []linkView
}

type drawerLinkView struct {
	linkView
	SubLinks []linkView
}

type drawerView struct {
	Label             string
	SearchPlaceholder string
	Links             []drawerLinkView
}

type navbarView struct {
	SiteTitle     string
	Logo          *imageView
	Columns       []navColumnView
	Drawer        *drawerView
	CategoryLinks []linkView
}

type newsletterView struct {
	core.Newsletter
	PrivacyHref string
}

type footerSectionView struct {
	Title string
	Links []linkView
}

type footerView struct {
	Phone        string
	AddressLines []string
	Email        string
	Socials      []core.SocialLink
	Newsletter   newsletterView
	Columns      [][]footerSectionView
}

type bodyView struct {
	Navbar  *navbarView
	Footer  *footerView
	Main    template.HTML
	Preview bool
	Path    string
}

// RenderBody writes the page body: navbar, main region, footer and, in
// preview, the preview bar. Missing navigation parts are left out.
func (l *Layout) RenderBody(w io.Writer, page Page) error {
	path := page.Path
	if path == "" {
		path = "/"
	}
	return execute(w, "body", bodyView{
		Navbar:  l.navbar(page.Navigation),
		Footer:  l.footer(page.Navigation.Footer),
		Main:    page.Main,
		Preview: page.Preview,
		Path:    path,
	})
}

func (l *Layout) navbar(nav core.Navigation) *navbarView {
	if nav.Navbar == nil && nav.Settings == nil && nav.Drawer == nil && len(nav.CategoryLinks) == 0 {
		return nil
	}

	view := &navbarView{
		SiteTitle:     core.DefaultTitle,
		CategoryLinks: newLinks(nav.CategoryLinks),
	}
	if s := nav.Settings; s != nil {
		if s.SiteTitle != "" {
			view.SiteTitle = s.SiteTitle
		}
		view.Logo = newImage(Env{Images: l.images}, s.Logo, 0, 40)
		if view.Logo != nil && view.Logo.Alt == "" {
			view.Logo.Alt = view.SiteTitle
		}
	}
	if n := nav.Navbar; n != nil {
		for _, c := range n.Columns {
			col := navColumnView{Title: c.Title}
			if c.IsColumn() {
				col.Links = newLinks(c.Links)
			} else {
				link := newLink(c.Link)
				col.Href = link.Href
				col.NewTab = link.NewTab
				if col.Title == "" {
					col.Title = link.Label
				}
			}
			view.Columns = append(view.Columns, col)
		}
	}
	if d := nav.Drawer; d != nil {
		dv := &drawerView{Label: d.Label, SearchPlaceholder: d.SearchPlaceholder}
		if dv.Label == "" {
			dv.Label = "Menu"
		}
		for _, link := range d.Links {
			dv.Links = append(dv.Links, drawerLinkView{
				linkView: newLink(link.Link),
				SubLinks: newLinks(link.SubLinks),
			})
		}
		view.Drawer = dv
	}
	return view
}

func (l *Layout) footer(f *core.Footer) *footerView {
	if f == nil {
		return nil
	}
	view := &footerView{
		Phone:        f.ContactInfo.Phone,
		AddressLines: f.ContactInfo.AddressLines(),
		Email:        f.Email,
		Socials:      f.SocialLinks.Entries(),
		Newsletter:   newsletterView{Newsletter: f.Newsletter.WithDefaults()},
	}
	if pl := f.Newsletter.PrivacyLink; pl != nil {
		view.Newsletter.PrivacyHref = pl.Target()
	}
	for _, col := range f.Columns {
		sections := make([]footerSectionView, 0, len(col.Sections))
		for _, s := range col.Sections {
			sections = append(sections, footerSectionView{Title: s.Title, Links: newLinks(s.Links)})
		}
		view.Columns = append(view.Columns, sections)
	}
	return view
}
