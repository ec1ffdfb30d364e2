package assets

import (
	"embed"
	"io/fs"
)

const (
	Stylesheet = "site.css"
	LiveScript = "live.js"
)

//go:embed static
var staticFS embed.FS

// FS holds the built-in stylesheet and the live preview client, rooted so
// names match the /dist/ paths they are served under.
func FS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
