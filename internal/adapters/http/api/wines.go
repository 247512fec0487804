package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	service "github.com/okian/winedex/internal/app"
	"github.com/okian/winedex/internal/domain/types"
	"github.com/okian/winedex/pkg/logger"
)

// maxBodyBytes caps wine payloads.
const maxBodyBytes = 1 << 20

// WinesHandler serves the wine record endpoints.
type WinesHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewWinesHandler creates a new wines handler.
func NewWinesHandler(deps Dependencies, log logger.Logger) *WinesHandler {
	return &WinesHandler{deps: deps, logger: log}
}

// HandleList handles GET /api/wines?q=&category=&value=&sort=&order=.
func (h *WinesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	wines, err := h.deps.List(r.Context(), service.ListQuery{
		Search:    q.Get("q"),
		Category:  q.Get("category"),
		Value:     q.Get("value"),
		SortField: q.Get("sort"),
		Order:     q.Get("order"),
	})
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	if wines == nil {
		wines = []types.Wine{}
	}
	writeJSON(w, http.StatusOK, wines)
}

// HandleCreate handles POST /api/wines.
func (h *WinesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	wine, err := decodeWine(w, r)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	added, err := h.deps.Add(r.Context(), wine)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/wines/%d", added.ID))
	writeJSON(w, http.StatusCreated, added)
}

// HandleGet handles GET /api/wines/{id}.
func (h *WinesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := wineID(r)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	wine, err := h.deps.Get(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, wine)
}

// HandleUpdate handles PUT /api/wines/{id}.
func (h *WinesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := wineID(r)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	wine, err := decodeWine(w, r)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	updated, err := h.deps.Update(r.Context(), id, wine)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/wines/{id}.
func (h *WinesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := wineID(r)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	if err := h.deps.Delete(r.Context(), id); err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCard handles GET /api/wines/{id}/card.
func (h *WinesHandler) HandleCard(w http.ResponseWriter, r *http.Request) {
	id, err := wineID(r)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	card, err := h.deps.Card(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func wineID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid wine id %q", ErrBadRequest, raw)
	}
	return id, nil
}

func decodeWine(w http.ResponseWriter, r *http.Request) (types.Wine, error) {
	var wine types.Wine
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wine); err != nil {
		return types.Wine{}, fmt.Errorf("%w: invalid JSON: %w", ErrBadRequest, err)
	}
	return wine, nil
}
