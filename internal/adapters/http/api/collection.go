package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/winedex/internal/domain/query"
	"github.com/okian/winedex/pkg/logger"
)

// CollectionHandler serves the aggregate and reference endpoints.
type CollectionHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewCollectionHandler creates a new collection handler.
func NewCollectionHandler(deps Dependencies, log logger.Logger) *CollectionHandler {
	return &CollectionHandler{deps: deps, logger: log}
}

// HandleStats handles GET /api/collection/stats.
func (h *CollectionHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.CollectionStats(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleGroups handles GET /api/collection/groups?by=&sort=.
func (h *CollectionHandler) HandleGroups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	groups, err := h.deps.Groups(r.Context(), q.Get("by"), q.Get("sort"))
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	if groups == nil {
		groups = []query.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}

type reclassifyResponse struct {
	Changed int `json:"changed"`
}

// HandleReclassify handles POST /api/collection/reclassify.
func (h *CollectionHandler) HandleReclassify(w http.ResponseWriter, r *http.Request) {
	changed, err := h.deps.Reclassify(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, reclassifyResponse{Changed: changed})
}

// HandleValues handles GET /api/values/{field}.
func (h *CollectionHandler) HandleValues(w http.ResponseWriter, r *http.Request) {
	values, err := h.deps.UniqueValues(r.Context(), chi.URLParam(r, "field"))
	if err != nil {
		writeServiceError(r.Context(), w, h.logger, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	writeJSON(w, http.StatusOK, values)
}

// HandleReference handles GET /api/reference.
func (h *CollectionHandler) HandleReference(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Reference())
}
