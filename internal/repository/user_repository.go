package repository

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Principal, error)
}
