package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/metrics"
	"github.com/bagdasarian/docspace-access/internal/repository"
	"github.com/sirupsen/logrus"
)

const outcomeAllow = "allow"

type accessService struct {
	membershipRepo repository.MembershipRepository
	metrics        *metrics.Metrics
	log            *logrus.Logger
}

// NewAccessService создает новый экземпляр AccessService
func NewAccessService(membershipRepo repository.MembershipRepository, m *metrics.Metrics, log *logrus.Logger) AccessService {
	return &accessService{
		membershipRepo: membershipRepo,
		metrics:        m,
		log:            log,
	}
}

// Authorize проверяет, что у пользователя есть роль не ниже required
func (s *accessService) Authorize(ctx context.Context, principalID string, scope domain.Scope, scopeID string, required domain.Role) (*domain.Membership, error) {
	if !scope.Valid() {
		return nil, domain.NewInvalidScopeError(scope)
	}

	membership, err := s.membershipRepo.Get(ctx, scope, scopeID, principalID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	if err := s.check(scope, membership, required); err != nil {
		return nil, err
	}

	return membership, nil
}

// ChangeRole меняет роль участника. Проверки и запись выполняются в одной
// транзакции под блокировкой всех членств scope.
func (s *accessService) ChangeRole(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string, newRole domain.Role) (*domain.Membership, bool, error) {
	if !scope.Valid() {
		return nil, false, domain.NewInvalidScopeError(scope)
	}

	var updated *domain.Membership
	changed := false
	err := s.membershipRepo.WithinTx(ctx, func(ctx context.Context, repo repository.MembershipRepository) error {
		memberships, err := repo.ListForUpdate(ctx, scope, scopeID)
		if err != nil {
			return fmt.Errorf("failed to lock memberships: %w", err)
		}

		if err := s.check(scope, findMembership(memberships, actorID), domain.TopRole(scope)); err != nil {
			return err
		}

		target := findMembership(memberships, targetUserID)
		if target == nil {
			return domain.ErrTargetNotFound
		}

		role, err := domain.ParseRole(scope, string(newRole))
		if err != nil {
			return err
		}
		newRole = role

		if target.Role == newRole {
			updated = target
			return nil
		}

		if target.IsAdmin() && domain.CountAdmins(memberships) <= 1 {
			return domain.NewLastAdminError(scope, false)
		}

		updated, err = repo.UpdateRole(ctx, scope, scopeID, targetUserID, newRole)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrTargetNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}
		changed = true
		return nil
	})

	s.recordChange(scope, "change_role", err)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return updated, false, nil
	}

	s.log.WithFields(logrus.Fields{
		"scope":    scope,
		"scope_id": scopeID,
		"actor":    actorID,
		"target":   targetUserID,
		"role":     newRole,
	}).Info("member role changed")

	return updated, true, nil
}

// RemoveMember удаляет участника. Последнего администратора удалить нельзя.
func (s *accessService) RemoveMember(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string) error {
	if !scope.Valid() {
		return domain.NewInvalidScopeError(scope)
	}

	err := s.membershipRepo.WithinTx(ctx, func(ctx context.Context, repo repository.MembershipRepository) error {
		memberships, err := repo.ListForUpdate(ctx, scope, scopeID)
		if err != nil {
			return fmt.Errorf("failed to lock memberships: %w", err)
		}

		if err := s.check(scope, findMembership(memberships, actorID), domain.TopRole(scope)); err != nil {
			return err
		}

		target := findMembership(memberships, targetUserID)
		if target == nil {
			return domain.ErrTargetNotFound
		}

		if target.IsAdmin() && domain.CountAdmins(memberships) <= 1 {
			return domain.NewLastAdminError(scope, true)
		}

		err = repo.Delete(ctx, scope, scopeID, targetUserID)
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrTargetNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to delete membership: %w", err)
		}
		return nil
	})

	s.recordChange(scope, "remove", err)
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"scope":    scope,
		"scope_id": scopeID,
		"actor":    actorID,
		"target":   targetUserID,
	}).Info("member removed")

	return nil
}

// AddMember добавляет участника. Требуется роль не ниже ManagerRole(scope).
func (s *accessService) AddMember(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string, initialRole domain.Role) (*domain.Membership, error) {
	membership, err := s.addMember(ctx, actorID, scope, scopeID, targetUserID, initialRole)
	s.recordChange(scope, "add", err)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"scope":    scope,
		"scope_id": scopeID,
		"actor":    actorID,
		"target":   targetUserID,
		"role":     membership.Role,
	}).Info("member added")

	return membership, nil
}

func (s *accessService) addMember(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string, initialRole domain.Role) (*domain.Membership, error) {
	if _, err := s.Authorize(ctx, actorID, scope, scopeID, domain.ManagerRole(scope)); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(scope, string(initialRole))
	if err != nil {
		return nil, err
	}

	_, err = s.membershipRepo.Get(ctx, scope, scopeID, targetUserID)
	if err == nil {
		return nil, domain.ErrAlreadyMember
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	membership := &domain.Membership{
		Scope:     scope,
		ScopeID:   scopeID,
		UserID:    targetUserID,
		Role:      role,
		CreatedAt: time.Now(),
	}

	err = s.membershipRepo.Create(ctx, membership)
	switch {
	case errors.Is(err, repository.ErrAlreadyExists):
		return nil, domain.ErrAlreadyMember
	case errors.Is(err, repository.ErrNotFound):
		return nil, domain.NewNotFoundError("user " + targetUserID)
	case err != nil:
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	return membership, nil
}

// check сравнивает членство с требуемой ролью. nil означает отсутствие членства.
func (s *accessService) check(scope domain.Scope, membership *domain.Membership, required domain.Role) error {
	var err error
	switch {
	case membership == nil:
		err = domain.NewNotAMemberError(scope)
	default:
		var ok bool
		ok, err = domain.Satisfies(scope, membership.Role, required)
		if err == nil && !ok {
			err = domain.NewInsufficientRoleError(scope, required)
		}
	}

	s.metrics.AccessDecision(scope.String(), outcome(err))
	return err
}

func (s *accessService) recordChange(scope domain.Scope, operation string, err error) {
	s.metrics.MembershipChange(scope.String(), operation, outcome(err))
}

func findMembership(memberships []*domain.Membership, userID string) *domain.Membership {
	for _, m := range memberships {
		if m.UserID == userID {
			return m
		}
	}
	return nil
}

// outcome - метка результата для метрик: allow, код доменной ошибки или error.
func outcome(err error) string {
	if err == nil {
		return outcomeAllow
	}
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "error"
}
