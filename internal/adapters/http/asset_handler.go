package http

import (
	"bytes"
	iofs "io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/3-lines-studio/jamb/internal/core"
)

// AssetHandler serves the site assets under /dist/. Requests may name either
// the logical file or its hashed name from the manifest; hashed names are
// cached for a year.
type AssetHandler struct {
	assets iofs.FS
	hashed map[string]string
	isDev  bool
}

func NewAssetHandler(assets iofs.FS, manifest *core.AssetManifest, isDev bool) http.Handler {
	h := &AssetHandler{
		assets: assets,
		hashed: map[string]string{},
		isDev:  isDev,
	}
	if manifest != nil {
		for name, hashed := range manifest.Assets {
			h.hashed[hashed] = name
		}
	}
	return h
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(req.URL.Path, "/dist")), "/")
	if name == "" || h.assets == nil {
		http.NotFound(w, req)
		return
	}

	immutable := false
	if logical, ok := h.hashed[name]; ok {
		name = logical
		immutable = !h.isDev
	}

	data, err := iofs.ReadFile(h.assets, name)
	if err != nil {
		http.NotFound(w, req)
		return
	}

	w.Header().Set("Content-Type", core.ContentType(name))
	switch {
	case h.isDev:
		w.Header().Set("Cache-Control", "no-cache")
	case immutable:
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	default:
		w.Header().Set("Cache-Control", "public, max-age=300")
	}
	http.ServeContent(w, req, name, time.Time{}, bytes.NewReader(data))
}

// PublicHandler serves files from the public directory at the site root and
// hands everything else to next.
type PublicHandler struct {
	public iofs.FS
	next   http.Handler
}

func NewPublicHandler(public iofs.FS, next http.Handler) http.Handler {
	return &PublicHandler{
		public: public,
		next:   next,
	}
}

func (h *PublicHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimPrefix(path.Clean(req.URL.Path), "/")
	if h.public == nil || name == "" || (req.Method != http.MethodGet && req.Method != http.MethodHead) {
		h.next.ServeHTTP(w, req)
		return
	}

	info, err := iofs.Stat(h.public, name)
	if err != nil || info.IsDir() {
		h.next.ServeHTTP(w, req)
		return
	}

	data, err := iofs.ReadFile(h.public, name)
	if err != nil {
		h.next.ServeHTTP(w, req)
		return
	}

	w.Header().Set("Content-Type", core.ContentType(name))
	http.ServeContent(w, req, info.Name(), info.ModTime(), bytes.NewReader(data))
}
