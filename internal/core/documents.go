package core

import (
	"strings"
)

const (
	DocHomePage         = "homePage"
	DocPage             = "page"
	DocSettings         = "settings"
	DocNavbar           = "navbar"
	DocDrawerNavigation = "drawerNavigation"
	DocFooter           = "footer"
)

const draftPrefix = "drafts."

type Perspective string

const (
	PerspectivePublished Perspective = "published"
	PerspectiveDrafts    Perspective = "previewDrafts"
)

func (p Perspective) Preview() bool {
	return p == PerspectiveDrafts
}

// DocumentRef identifies a document across its draft and published copies.
type DocumentRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

func (r DocumentRef) PublishedID() string {
	return PublishedID(r.ID)
}

func PublishedID(id string) string {
	return strings.TrimPrefix(id, draftPrefix)
}

func DraftID(id string) string {
	return draftPrefix + PublishedID(id)
}

func IsDraftID(id string) bool {
	return strings.HasPrefix(id, draftPrefix)
}

// Query selects one document. Singletons need only Type; pages need Slug;
// ID wins over both when set.
type Query struct {
	Type        string
	Slug        string
	ID          string
	Perspective Perspective
}

func (q Query) CacheKey() string {
	return string(q.Perspective) + "|" + q.Type + "|" + q.Slug + "|" + q.ID
}

type PageDocument struct {
	ID          string `json:"_id"`
	Type        string `json:"_type"`
	Rev         string `json:"_rev,omitempty"`
	Title       string `json:"title,omitempty"`
	Slug        Slug   `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	PageBuilder Blocks `json:"pageBuilder,omitempty"`
}

func (d PageDocument) Ref() DocumentRef {
	return DocumentRef{ID: PublishedID(d.ID), Type: d.Type}
}

func (d PageDocument) Path() string {
	if d.Type == DocHomePage {
		return "/"
	}
	return SlugPath(d.Slug.Current)
}

type Settings struct {
	SiteTitle       string `json:"siteTitle,omitempty"`
	SiteDescription string `json:"siteDescription,omitempty"`
	Logo            *Image `json:"logo,omitempty"`
}

type Navbar struct {
	Columns []NavColumn `json:"columns,omitempty"`
}

// NavColumn is either a titled column of links or a single top level link,
// told apart by Type ("column" or "link").
type NavColumn struct {
	Key   string `json:"_key,omitempty"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
	Links []Link `json:"links,omitempty"`
	Link
}

func (c NavColumn) IsColumn() bool {
	return c.Type == "column"
}

type DrawerNavigation struct {
	Label             string       `json:"label,omitempty"`
	SearchPlaceholder string       `json:"searchPlaceholder,omitempty"`
	Links             []DrawerLink `json:"links,omitempty"`
}

type DrawerLink struct {
	Link
	SubLinks []Link `json:"subLinks,omitempty"`
}

type Footer struct {
	Label       string         `json:"label,omitempty"`
	ContactInfo ContactInfo    `json:"contactInfo"`
	Email       string         `json:"email,omitempty"`
	Newsletter  Newsletter     `json:"newsletter"`
	SocialLinks SocialLinks    `json:"socialLinks"`
	Columns     []FooterColumn `json:"columns,omitempty"`
}

type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (c ContactInfo) AddressLines() []string {
	if c.Address == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.Address, "\r\n", "\n"), "\n")
}

type Newsletter struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	ButtonText  string `json:"buttonText,omitempty"`
	PrivacyText string `json:"privacyText,omitempty"`
	PrivacyLink *Link  `json:"privacyLink,omitempty"`
}

func (n Newsletter) WithDefaults() Newsletter {
	if n.Title == "" {
		n.Title = "Newsletter"
	}
	if n.Description == "" {
		n.Description = "Sign up to receive our curated newsletter detailing the latest acquisitions, product designs and news from our collections."
	}
	if n.Placeholder == "" {
		n.Placeholder = "Enter your email"
	}
	if n.ButtonText == "" {
		n.ButtonText = "Subscribe"
	}
	if n.PrivacyText == "" {
		n.PrivacyText = "I agree to our Privacy Policy"
	}
	return n
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Pinterest string `json:"pinterest,omitempty"`
	Vimeo     string `json:"vimeo,omitempty"`
}

type SocialLink struct {
	Label string
	URL   string
}

// Entries lists the configured networks in display order, skipping empty
// ones.
func (s SocialLinks) Entries() []SocialLink {
	all := []SocialLink{
		{Label: "Instagram", URL: s.Instagram},
		{Label: "YouTube", URL: s.YouTube},
		{Label: "Pinterest", URL: s.Pinterest},
		{Label: "Vimeo", URL: s.Vimeo},
	}
	out := all[:0]
	for _, l := range all {
		if l.URL != "" {
			out = append(out, l)
		}
	}
	return out
}

type FooterColumn struct {
	Key      string          `json:"_key,omitempty"`
	Sections []FooterSection `json:"sections,omitempty"`
}

type FooterSection struct {
	Key   string `json:"_key,omitempty"`
	Title string `json:"title,omitempty"`
	Links []Link `json:"links,omitempty"`
}
