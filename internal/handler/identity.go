package handler

import (
	"errors"
	"net/http"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

// UserIDHeader - заголовок, в который шлюз аутентификации кладет ID пользователя
const UserIDHeader = "X-User-ID"

var errUnauthorized = &domain.DomainError{
	Code:    domain.CodeUnauthorized,
	Message: "authentication required",
}

// principal загружает вызывающего пользователя. Неизвестный ID трактуется как отсутствие аутентификации.
func (h *Handler) principal(r *http.Request) (domain.Principal, error) {
	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		return domain.Principal{}, errUnauthorized
	}

	user, err := h.userService.GetPrincipal(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, errUnauthorized
		}
		return domain.Principal{}, err
	}

	return *user, nil
}
