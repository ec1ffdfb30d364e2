package core

import (
	"fmt"
	"strings"
)

func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func ValidateRoutePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with /")
	}

	if strings.Contains(path, "?") {
		return fmt.Errorf("path cannot contain query string")
	}

	if strings.Contains(path, "#") {
		return fmt.Errorf("path cannot contain fragment")
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("path cannot contain parent directory references")
	}

	if strings.Contains(path, "*") {
		return fmt.Errorf("path cannot contain wildcards")
	}

	return nil
}

// SlugPath turns a document slug into a site path. An empty slug has no
// path; "/" and "home" both address the home page.
func SlugPath(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ""
	}
	slug = strings.Trim(slug, "/")
	if slug == "" || slug == "home" {
		return "/"
	}
	return "/" + slug
}

// SlugFromPath is the inverse of SlugPath for request paths. The root path
// yields an empty slug.
func SlugFromPath(path string) string {
	return strings.Trim(NormalizePath(path), "/")
}

// ExportPath is where a rendered page lands inside an export directory.
func ExportPath(slug string) string {
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return "index.html"
	}
	return slug + "/index.html"
}
