package core

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Slug struct {
	Current string `json:"current"`
}

type InternalRef struct {
	ID   string `json:"_ref,omitempty"`
	Type string `json:"_type,omitempty"`
	Slug Slug   `json:"slug"`
}

// CustomURL is the CMS link field: either an external address or a
// reference to another document, dereferenced to its slug.
type CustomURL struct {
	Type         string       `json:"type,omitempty"`
	External     string       `json:"external,omitempty"`
	Internal     *InternalRef `json:"internal,omitempty"`
	Href         string       `json:"href,omitempty"`
	OpenInNewTab bool         `json:"openInNewTab,omitempty"`
}

func (u *CustomURL) resolve() string {
	if u == nil {
		return ""
	}
	if u.Href != "" {
		return u.Href
	}
	switch u.Type {
	case "external":
		return u.External
	case "internal":
		if u.Internal == nil {
			return ""
		}
		return SlugPath(u.Internal.Slug.Current)
	}
	if u.External != "" {
		return u.External
	}
	return ""
}

type Link struct {
	Key          string     `json:"_key,omitempty"`
	Text         string     `json:"text,omitempty"`
	Name         string     `json:"name,omitempty"`
	Href         string     `json:"href,omitempty"`
	OpenInNewTab bool       `json:"openInNewTab,omitempty"`
	URL          *CustomURL `json:"url,omitempty"`
}

func (l Link) Label() string {
	if l.Text != "" {
		return l.Text
	}
	return l.Name
}

// Target returns the resolved href, preferring an already projected href
// over the raw url field.
func (l Link) Target() string {
	if l.Href != "" {
		return l.Href
	}
	return l.URL.resolve()
}

func (l Link) NewTab() bool {
	if l.OpenInNewTab {
		return true
	}
	return l.URL != nil && l.URL.OpenInNewTab
}

type Button struct {
	Link
	Variant string `json:"variant,omitempty"`
}

type Card struct {
	Link
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    *Image `json:"image,omitempty"`
}

type ImageAsset struct {
	Ref string `json:"_ref,omitempty"`
	URL string `json:"url,omitempty"`
}

type Image struct {
	Asset ImageAsset `json:"asset"`
	Alt   string     `json:"alt,omitempty"`
	URL   string     `json:"url,omitempty"`
}

func (i *Image) IsZero() bool {
	return i == nil || (i.URL == "" && i.Asset.Ref == "" && i.Asset.URL == "")
}

// RichText holds either portable-text blocks or a markdown string, both of
// which the CMS and local datasets produce.
type RichText struct {
	Blocks   []PortableBlock
	Markdown string
}

func (r RichText) IsZero() bool {
	return len(r.Blocks) == 0 && strings.TrimSpace(r.Markdown) == ""
}

func (r *RichText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = RichText{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RichText{Markdown: s}
		return nil
	}
	var blocks []PortableBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return err
	}
	*r = RichText{Blocks: blocks}
	return nil
}

func (r RichText) MarshalJSON() ([]byte, error) {
	if r.Markdown != "" {
		return json.Marshal(r.Markdown)
	}
	if r.Blocks == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.Blocks)
}

type PortableBlock struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key,omitempty"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`
}

type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

type MarkDef struct {
	Key          string `json:"_key"`
	Type         string `json:"_type"`
	Href         string `json:"href,omitempty"`
	OpenInNewTab bool   `json:"openInNewTab,omitempty"`
}
