package service

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

// CommentService обрабатывает упоминания в опубликованных комментариях.
type CommentService interface {
	// PublishMentions уведомляет упомянутых участников проекта и возвращает их.
	PublishMentions(ctx context.Context, author domain.Principal, comment domain.Comment) ([]domain.Principal, error)
}
