package handler

import (
	"net/http"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

// PublishMentions вызывается шлюзом после сохранения комментария.
// Файлы хранит шлюз, поэтому project_id берется из тела как есть: шлюз обязан
// передавать проект, прочитанный из записи файла, так же как X-User-ID он передает
// только для аутентифицированного пользователя. Права проверяются по этому проекту.
func (h *Handler) PublishMentions(w http.ResponseWriter, r *http.Request) {
	author, err := h.principal(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req CommentMentionsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if req.ProjectID == "" || req.FileID == "" {
		h.handleError(w, r, domain.NewBadRequestError("project_id and file_id are required"))
		return
	}

	mentioned, err := h.commentService.PublishMentions(r.Context(), author, httpCommentToDomain(author.ID, req))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CommentMentionsResponse{Mentioned: domainPrincipalsToHTTP(mentioned)})
}
