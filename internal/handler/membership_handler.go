package handler

import (
	"net/http"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

func (h *Handler) ListMembers(scope domain.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := h.principal(r)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		members, err := h.membershipService.ListMembers(r.Context(), actor, scope, r.PathValue("id"))
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ListMembersResponse{Members: domainMembersToHTTP(members)})
	}
}

func (h *Handler) AddMember(scope domain.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := h.principal(r)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		var req AddMemberRequest
		if err := decodeJSON(r, &req); err != nil {
			h.handleError(w, r, err)
			return
		}
		if req.UserID == "" {
			h.handleError(w, r, domain.NewBadRequestError("user_id is required"))
			return
		}

		membership, err := h.membershipService.AddMember(r.Context(), actor, scope, r.PathValue("id"), req.UserID, httpRoleToDomain(req.Role))
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, domainMembershipToHTTP(membership))
	}
}

func (h *Handler) ChangeRole(scope domain.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := h.principal(r)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		var req ChangeRoleRequest
		if err := decodeJSON(r, &req); err != nil {
			h.handleError(w, r, err)
			return
		}

		membership, err := h.membershipService.ChangeRole(r.Context(), actor, scope, r.PathValue("id"), r.PathValue("userId"), httpRoleToDomain(req.Role))
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, domainMembershipToHTTP(membership))
	}
}

func (h *Handler) RemoveMember(scope domain.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := h.principal(r)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		if err := h.membershipService.RemoveMember(r.Context(), actor, scope, r.PathValue("id"), r.PathValue("userId")); err != nil {
			h.handleError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
