package http

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/3-lines-studio/jamb/internal/core"
	"github.com/3-lines-studio/jamb/internal/usecase"
)

type PageHandler struct {
	service  *usecase.PageService
	draft    *DraftMode
	manifest *core.AssetManifest
	isDev    bool
	logger   *slog.Logger
}

func NewPageHandler(
	service *usecase.PageService,
	draft *DraftMode,
	manifest *core.AssetManifest,
	isDev bool,
	logger *slog.Logger,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PageHandler{
		service:  service,
		draft:    draft,
		manifest: manifest,
		isDev:    isDev,
		logger:   logger,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	perspective := h.draft.Perspective(req)
	output := h.service.ServePage(req.Context(), usecase.ServePageInput{
		RequestPath: req.URL.Path,
		Perspective: perspective,
		Assets:      h.manifest,
	})

	if output.Error != nil {
		h.logger.ErrorContext(req.Context(), "render page", "path", req.URL.Path, "error", output.Error)
		serveError(w, req, output.Error, h.isDev)
		return
	}

	switch output.Action {
	case core.ActionRedirect:
		location := output.Location
		if req.URL.RawQuery != "" {
			location += "?" + req.URL.RawQuery
		}
		http.Redirect(w, req, location, http.StatusMovedPermanently)

	case core.ActionNotFound:
		serveNotFound(w, req)

	case core.ActionRenderHome, core.ActionRenderPage:
		if perspective.Preview() {
			w.Header().Set("Cache-Control", "private, no-store")
		}
		serveHTML(w, http.StatusOK, output.HTML)
	}
}

func serveHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

func serveNotFound(w http.ResponseWriter, req *http.Request) {
	var buf bytes.Buffer
	if err := core.NotFoundTemplate.Execute(&buf, core.NotFoundData{Path: req.URL.Path}); err != nil {
		http.NotFound(w, req)
		return
	}
	serveHTML(w, http.StatusNotFound, buf.String())
}

func serveError(w http.ResponseWriter, req *http.Request, err error, isDev bool) {
	data := core.ErrorData{
		Message:   err.Error(),
		IsDev:     isDev,
		RequestID: RequestIDFrom(req.Context()),
	}

	var buf bytes.Buffer
	if tmplErr := core.ErrorTemplate.Execute(&buf, data); tmplErr != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	serveHTML(w, http.StatusInternalServerError, buf.String())
}
