package repository

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

type NotificationRepository interface {
	// Create назначает ID и CreatedAt.
	Create(ctx context.Context, notification *domain.Notification) error
}
