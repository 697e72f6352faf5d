package handler

import (
	"net/http"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

func (h *Handler) ScopeUpdated(scope domain.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := h.principal(r)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		result, err := h.activityService.ScopeUpdated(r.Context(), actor, scope, r.PathValue("id"))
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusAccepted, fanoutToHTTP(result))
	}
}

func (h *Handler) FileUpdated(w http.ResponseWriter, r *http.Request) {
	actor, err := h.principal(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req FileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := h.activityService.FileUpdated(r.Context(), actor, r.PathValue("id"), r.PathValue("fileId"), req.FileName)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, fanoutToHTTP(result))
}
