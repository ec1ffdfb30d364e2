package core

import (
	"regexp"
	"testing"
)

func TestHashedName(t *testing.T) {
	a := HashedName("site.css", []byte("body{}"))
	b := HashedName("site.css", []byte("body{ }"))

	if !regexp.MustCompile(`^site\.[0-9a-f]+\.css$`).MatchString(a) {
		t.Errorf("Expected site.<hash>.css, got %q", a)
	}
	if a == b {
		t.Error("Expected different content to give different names")
	}
	if HashedName("site.css", []byte("body{}")) != a {
		t.Error("Expected the same content to give the same name")
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"site.abc.css": "text/css; charset=utf-8",
		"live.js":      "text/javascript; charset=utf-8",
		"LOGO.SVG":     "image/svg+xml",
		"index.html":   "text/html; charset=utf-8",
		"blob":         "application/octet-stream",
	}
	for name, want := range tests {
		if got := ContentType(name); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", name, got, want)
		}
	}
}
