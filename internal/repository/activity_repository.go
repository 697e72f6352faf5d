package repository

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

type ActivityRepository interface {
	// Create назначает ID и CreatedAt.
	Create(ctx context.Context, activity *domain.Activity) error
}
