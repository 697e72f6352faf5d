package server

import (
	"net/http"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/handler"
)

func SetupRoutes(mux *http.ServeMux, h *handler.Handler) {
	for _, scope := range []domain.Scope{domain.ScopeTeam, domain.ScopeProject} {
		prefix := "/" + scope.String() + "s/{id}"
		mux.HandleFunc("GET "+prefix+"/members", h.ListMembers(scope))
		mux.HandleFunc("POST "+prefix+"/members", h.AddMember(scope))
		mux.HandleFunc("PATCH "+prefix+"/members/{userId}", h.ChangeRole(scope))
		mux.HandleFunc("DELETE "+prefix+"/members/{userId}", h.RemoveMember(scope))
		mux.HandleFunc("POST "+prefix+"/updates", h.ScopeUpdated(scope))
	}
	mux.HandleFunc("POST /projects/{id}/files/{fileId}/updates", h.FileUpdated)
	mux.HandleFunc("POST /comments/mentions", h.PublishMentions)
}
