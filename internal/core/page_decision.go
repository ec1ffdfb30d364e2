package core

import (
	"path"
	"strings"
)

type PageAction int

const (
	ActionRenderHome PageAction = iota
	ActionRenderPage
	ActionRedirect
	ActionNotFound
)

type PageRequest struct {
	Path string
}

type PageDecision struct {
	Action   PageAction
	Slug     string
	Location string
}

// DecidePageAction maps a request path onto a document. Paths with a file
// extension never name a page, those belong to the asset handlers.
func DecidePageAction(req PageRequest) PageDecision {
	if req.Path == "" || req.Path == "/" {
		return PageDecision{Action: ActionRenderHome}
	}
	if err := ValidateRoutePath(req.Path); err != nil {
		return PageDecision{Action: ActionNotFound}
	}

	normalized := NormalizePath(req.Path)
	if normalized != req.Path {
		return PageDecision{Action: ActionRedirect, Location: normalized}
	}

	slug := SlugFromPath(normalized)
	if slug == "home" {
		return PageDecision{Action: ActionRedirect, Location: "/"}
	}
	if path.Ext(slug) != "" || strings.HasPrefix(slug, "_") {
		return PageDecision{Action: ActionNotFound}
	}

	return PageDecision{Action: ActionRenderPage, Slug: slug}
}
