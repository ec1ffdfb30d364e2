package sanity

import (
	"fmt"
	"strings"

	"github.com/3-lines-studio/jamb/internal/core"
)

const (
	imageFragment = `{
  ...,
  "alt": coalesce(alt, asset->altText),
  "asset": {"_ref": asset._ref, "url": asset->url}
}`

	// Internal links are dereferenced to the target's slug; href resolution
	// happens in core.Link.Target.
	urlFragment = `url{
  type,
  external,
  href,
  openInNewTab,
  "internal": internal->{"_ref": _id, _type, slug}
}`

	linkFragment = `{
  ...,
  ` + urlFragment + `
}`

	cardFragment = `{
  ...,
  "image": image` + imageFragment + `,
  ` + urlFragment + `
}`

	richTextFragment = `richText[]{
  ...,
  markDefs[]{
    ...,
    _type == "customLink" => {
      "href": select(
        customLink.type == "internal" => "/" + customLink.internal->slug.current,
        customLink.external
      ),
      "openInNewTab": customLink.openInNewTab
    }
  }
}`

	pageBuilderFragment = `pageBuilder[]{
  ...,
  _type == "hero" => {
    "image": image` + imageFragment + `
  },
  _type == "splitFeature" => {
    "image": image` + imageFragment + `,
    "buttons": buttons[]` + linkFragment + `,
    "richText": ` + richTextFragment + `
  },
  _type == "productGrid" => {
    "products": products[]` + cardFragment + `
  },
  _type == "categoryLinks" => {
    "links": links[]` + linkFragment + `
  },
  _type == "storyCards" => {
    "stories": stories[]` + cardFragment + `
  }
}`

	pageFields = `{
  _id,
  _type,
  _rev,
  title,
  description,
  slug,
  "pageBuilder": ` + pageBuilderFragment + `
}`

	querySlugs = `*[_type == $type && defined(slug.current)].slug.current`
)

var singletonProjections = map[string]string{
	core.DocHomePage: pageFields,
	core.DocSettings: `{
  _id,
  _type,
  siteTitle,
  siteDescription,
  "logo": logo` + imageFragment + `
}`,
	core.DocNavbar: `{
  _id,
  _type,
  columns[]{
    _key,
    "type": select(_type == "navbarColumn" => "column", "link"),
    title,
    "text": title,
    ` + urlFragment + `,
    "links": links[]` + linkFragment + `
  }
}`,
	core.DocDrawerNavigation: `{
  _id,
  _type,
  label,
  searchPlaceholder,
  links[]{
    ...,
    ` + urlFragment + `,
    "subLinks": subLinks[]` + linkFragment + `
  }
}`,
	core.DocFooter: `{
  _id,
  _type,
  label,
  contactInfo,
  email,
  newsletter{..., "privacyLink": privacyLink` + linkFragment + `},
  socialLinks,
  columns[]{
    _key,
    sections[]{
      _key,
      title,
      "links": links[]` + linkFragment + `
    }
  }
}`,
}

// documentQuery builds the GROQ for q. ID lookups and pages share the page
// projection; singletons have their own.
func documentQuery(q core.Query) (string, map[string]any, error) {
	switch {
	case q.ID != "":
		return `*[_id == $id][0]` + pageFields, map[string]any{"id": q.ID}, nil
	case q.Type == core.DocPage:
		if q.Slug == "" {
			return "", nil, fmt.Errorf("sanity: page query needs a slug")
		}
		return `*[_type == "page" && slug.current == $slug][0]` + pageFields, map[string]any{"slug": strings.Trim(q.Slug, "/")}, nil
	}

	projection, ok := singletonProjections[q.Type]
	if !ok {
		return "", nil, fmt.Errorf("sanity: unsupported document type %q", q.Type)
	}
	return `*[_type == $type][0]` + projection, map[string]any{"type": q.Type}, nil
}
