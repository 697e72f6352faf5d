package service

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
)

// AccessService принимает решения о доступе и охраняет инвариант:
// у непустой команды или проекта всегда есть хотя бы один ADMIN.
type AccessService interface {
	Authorize(ctx context.Context, principalID string, scope domain.Scope, scopeID string, required domain.Role) (*domain.Membership, error)
	// ChangeRole возвращает changed=false, если роль уже была такой и запись не выполнялась.
	ChangeRole(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string, newRole domain.Role) (membership *domain.Membership, changed bool, err error)
	RemoveMember(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string) error
	AddMember(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string, initialRole domain.Role) (*domain.Membership, error)
}
