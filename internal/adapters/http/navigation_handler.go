package http

import (
	"encoding/json"
	"net/http"

	"github.com/3-lines-studio/jamb/internal/usecase"
)

// NavigationHandler exposes the aggregated site navigation as JSON.
type NavigationHandler struct {
	service *usecase.PageService
	draft   *DraftMode
}

func NewNavigationHandler(service *usecase.PageService, draft *DraftMode) http.Handler {
	return &NavigationHandler{service: service, draft: draft}
}

func (h *NavigationHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	nav := h.service.Navigation(req.Context(), h.draft.Perspective(req))
	writeJSON(w, http.StatusOK, nav)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
