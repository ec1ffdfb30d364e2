package templates

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed all:starter
var starterFS embed.FS

// Starter is the local content directory written by jamb init.
func Starter() fs.FS {
	sub, err := fs.Sub(starterFS, "starter")
	if err != nil {
		panic(err)
	}
	return sub
}

type TemplateData struct {
	SiteTitle  string
	ContentDir string
}

func ProcessFilename(filename string) (string, bool) {
	if before, ok := strings.CutSuffix(filename, ".tmpl"); ok {
		return before, true
	}
	return filename, false
}

func ProcessContent(content []byte, isTemplate bool, data TemplateData) []byte {
	if !isTemplate {
		return content
	}

	result := string(content)
	result = strings.ReplaceAll(result, "{{.SiteTitle}}", data.SiteTitle)
	result = strings.ReplaceAll(result, "{{.ContentDir}}", data.ContentDir)

	return []byte(result)
}

// DeriveSiteTitle turns a directory name like "my-shop" into "My Shop".
func DeriveSiteTitle(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == "/" || base == "" {
		return "My Site"
	}
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return "My Site"
	}
	return strings.Join(words, " ")
}
