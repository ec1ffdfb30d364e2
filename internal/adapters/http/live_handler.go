package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/3-lines-studio/jamb/internal/core"
	"github.com/3-lines-studio/jamb/internal/live"
	"github.com/3-lines-studio/jamb/internal/usecase"
)

const maxActionBytes = 4 << 20

// LiveHandler is the editing channel: it accepts edits, streams change
// events and renders the page builder region of a document on demand.
// Everything here exposes draft content, so callers need draft mode or the
// preview secret as a bearer token, except in dev.
type LiveHandler struct {
	store     *live.Store
	broker    *live.Broker
	pages     *usecase.PageService
	draft     *DraftMode
	isDev     bool
	logger    *slog.Logger
	keepAlive time.Duration
}

func NewLiveHandler(store *live.Store, broker *live.Broker, pages *usecase.PageService, draft *DraftMode, isDev bool, logger *slog.Logger) *LiveHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LiveHandler{
		store:     store,
		broker:    broker,
		pages:     pages,
		draft:     draft,
		isDev:     isDev,
		logger:    logger,
		keepAlive: 25 * time.Second,
	}
}

func (h *LiveHandler) Routes(r chi.Router) {
	r.Post("/_live/edits", h.guard(h.Edits))
	r.Get("/_live/events", h.guard(h.Events))
	r.Get("/_live/render/{id}", h.guard(h.Render))
}

func (h *LiveHandler) authorized(req *http.Request) bool {
	if h.isDev || h.draft.Enabled(req) {
		return true
	}
	token, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
	return ok && h.draft != nil && h.draft.valid(token)
}

func (h *LiveHandler) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if !h.authorized(req) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "draft mode required"})
			return
		}
		next(w, req)
	}
}

type editResponse struct {
	Changed bool   `json:"changed"`
	State   string `json:"state"`
	Rev     string `json:"rev,omitempty"`
}

func (h *LiveHandler) Edits(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(io.LimitReader(req.Body, maxActionBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if len(body) > maxActionBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "action too large"})
		return
	}

	action, err := live.DecodeAction(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	changed, err := h.store.Apply(action)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, live.ErrUnknownAction) || errors.Is(err, live.ErrMissingDocument) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	state := h.store.State(action.Ref())
	h.logger.DebugContext(req.Context(), "live action", "type", action.Kind, "document", action.Ref().ID, "changed", changed, "state", state.State)

	rev := state.BaseRev
	if state.State == core.StatePending {
		rev = state.PendingRev
	}
	writeJSON(w, http.StatusOK, editResponse{Changed: changed, State: state.State.String(), Rev: rev})
}

// Events streams change events. ?document=<id> limits the stream to one
// document.
func (h *LiveHandler) Events(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	only := core.PublishedID(req.URL.Query().Get("document"))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	_, _ = w.Write([]byte("event: ready\ndata: 1\n\n"))
	flusher.Flush()

	id, events := h.broker.Subscribe()
	defer h.broker.Unsubscribe(id)

	ping := time.NewTicker(h.keepAlive)
	defer ping.Stop()

	for {
		select {
		case <-req.Context().Done():
			return
		case <-ping.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case e, ok := <-events:
			if !ok {
				return
			}
			if only != "" && e.Document.ID != only {
				continue
			}
			data, err := json.Marshal(e)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "id: %s\nevent: change\ndata: %s\n\n", e.ID, data)
			flusher.Flush()
		}
	}
}

func (h *LiveHandler) Render(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	html, err := h.pages.RenderFragment(req.Context(), id, core.PerspectiveDrafts)
	if errors.Is(err, core.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return
	}
	if err != nil {
		h.logger.ErrorContext(req.Context(), "render fragment", "document", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	serveHTML(w, http.StatusOK, string(html))
}
