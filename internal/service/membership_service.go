package service

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

// MembershipService изменяет состав команд и проектов и уведомляет затронутых участников.
// Ошибки рассылки не влияют на результат изменения.
type MembershipService interface {
	ListMembers(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID string) ([]*domain.Member, error)
	AddMember(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string, role domain.Role) (*domain.Membership, error)
	ChangeRole(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string, role domain.Role) (*domain.Membership, error)
	RemoveMember(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string) error
}
