package repository

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

type ScopeRepository interface {
	GetInfo(ctx context.Context, scope domain.Scope, scopeID string) (*domain.ScopeInfo, error)
}
