package http

import (
	iofs "io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/3-lines-studio/jamb/internal/core"
	"github.com/3-lines-studio/jamb/internal/usecase"
)

type RouterConfig struct {
	Pages    *usecase.PageService
	Live     *LiveHandler
	Draft    *DraftMode
	Assets   iofs.FS
	Public   iofs.FS
	Manifest *core.AssetManifest
	IsDev    bool
	Logger   *slog.Logger
	// Routes are mounted before the page catch-all, for callers adding
	// their own endpoints.
	Routes func(chi.Router)
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/dist/*", NewAssetHandler(cfg.Assets, cfg.Manifest, cfg.IsDev))
	r.Get("/api/navigation", NewNavigationHandler(cfg.Pages, cfg.Draft).ServeHTTP)
	if cfg.Draft != nil {
		r.Get("/api/draft-mode/enable", cfg.Draft.Enable)
		r.Get("/api/draft-mode/disable", cfg.Draft.Disable)
	}
	if cfg.Live != nil {
		cfg.Live.Routes(r)
	}
	if cfg.Routes != nil {
		cfg.Routes(r)
	}

	pages := NewPublicHandler(cfg.Public, NewPageHandler(cfg.Pages, cfg.Draft, cfg.Manifest, cfg.IsDev, logger))
	r.NotFound(pages.ServeHTTP)
	r.Get("/", pages.ServeHTTP)
	r.Get("/*", pages.ServeHTTP)
	return r
}
