package service

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

// UserService - поставщик идентичности для точек входа
type UserService interface {
	GetPrincipal(ctx context.Context, userID string) (*domain.Principal, error)
}
