package core

import (
	"mime"
	"path"
	"strings"
)

// Types the platform mime tables get wrong or leave out on minimal images.
var pinnedTypes = map[string]string{
	".css":   "text/css; charset=utf-8",
	".js":    "text/javascript; charset=utf-8",
	".json":  "application/json",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".avif":  "image/avif",
	".woff2": "font/woff2",
	".ico":   "image/x-icon",
}

// ContentType is the response type for a static or exported file name.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ct, ok := pinnedTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
