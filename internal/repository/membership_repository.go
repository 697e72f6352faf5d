package repository

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

type MembershipRepository interface {
	// Get возвращает членство или ErrNotFound.
	Get(ctx context.Context, scope domain.Scope, scopeID, userID string) (*domain.Membership, error)
	// ListMembers возвращает участников scope вместе с данными пользователей.
	ListMembers(ctx context.Context, scope domain.Scope, scopeID string) ([]*domain.Member, error)
	// ListForUpdate читает все членства scope и блокирует их до конца транзакции.
	ListForUpdate(ctx context.Context, scope domain.Scope, scopeID string) ([]*domain.Membership, error)
	// Create возвращает ErrAlreadyExists, если членство уже есть.
	Create(ctx context.Context, membership *domain.Membership) error
	UpdateRole(ctx context.Context, scope domain.Scope, scopeID, userID string, role domain.Role) (*domain.Membership, error)
	Delete(ctx context.Context, scope domain.Scope, scopeID, userID string) error
	// WithinTx выполняет fn в одной транзакции. Ошибка fn откатывает транзакцию.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo MembershipRepository) error) error
}
