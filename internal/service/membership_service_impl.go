package service

import (
	"context"
	"fmt"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/repository"
	"github.com/sirupsen/logrus"
)

type membershipService struct {
	access         AccessService
	membershipRepo repository.MembershipRepository
	userRepo       repository.UserRepository
	scopeRepo      repository.ScopeRepository
	activityRepo   repository.ActivityRepository
	notifier       NotificationService
	log            *logrus.Logger
}

// NewMembershipService создает новый экземпляр MembershipService
func NewMembershipService(
	access AccessService,
	membershipRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
	scopeRepo repository.ScopeRepository,
	activityRepo repository.ActivityRepository,
	notifier NotificationService,
	log *logrus.Logger,
) MembershipService {
	return &membershipService{
		access:         access,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		scopeRepo:      scopeRepo,
		activityRepo:   activityRepo,
		notifier:       notifier,
		log:            log,
	}
}

// ListMembers доступен любому участнику scope
func (s *membershipService) ListMembers(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID string) ([]*domain.Member, error) {
	if _, err := s.access.Authorize(ctx, actor.ID, scope, scopeID, domain.DefaultRole(scope)); err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListMembers(ctx, scope, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	return members, nil
}

// AddMember добавляет участника. Пустая роль заменяется нижней ролью шкалы.
func (s *membershipService) AddMember(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string, role domain.Role) (*domain.Membership, error) {
	if role == "" {
		role = domain.DefaultRole(scope)
	}

	membership, err := s.access.AddMember(ctx, actor.ID, scope, scopeID, targetUserID, role)
	if err != nil {
		return nil, err
	}

	s.afterChange(ctx, MembershipAdded, actor, scope, scopeID, targetUserID, role)
	return membership, nil
}

func (s *membershipService) ChangeRole(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string, role domain.Role) (*domain.Membership, error) {
	membership, changed, err := s.access.ChangeRole(ctx, actor.ID, scope, scopeID, targetUserID, role)
	if err != nil {
		return nil, err
	}
	if !changed {
		return membership, nil
	}

	s.afterChange(ctx, MembershipRoleUpdated, actor, scope, scopeID, targetUserID, membership.Role)
	return membership, nil
}

func (s *membershipService) RemoveMember(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string) error {
	if err := s.access.RemoveMember(ctx, actor.ID, scope, scopeID, targetUserID); err != nil {
		return err
	}

	s.afterChange(ctx, MembershipRemoved, actor, scope, scopeID, targetUserID, "")
	return nil
}

// afterChange пишет запись журнала, затем собирает событие и рассылает его.
// Любая ошибка только логируется.
func (s *membershipService) afterChange(ctx context.Context, kind MembershipEventKind, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string, role domain.Role) {
	entry := s.log.WithFields(logrus.Fields{
		"event":    kind,
		"scope":    scope,
		"scope_id": scopeID,
		"target":   targetUserID,
	})

	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		recordActivity(ctx, s.activityRepo, entry, membershipActivity(kind, actor, scope, scopeID, domain.Principal{ID: targetUserID}, role))
		entry.WithError(err).Warn("skipping notifications: target user not loaded")
		return
	}
	recordActivity(ctx, s.activityRepo, entry, membershipActivity(kind, actor, scope, scopeID, *target, role))

	info, err := s.scopeRepo.GetInfo(ctx, scope, scopeID)
	if err != nil {
		entry.WithError(err).Warn("skipping notifications: scope not loaded")
		return
	}

	event := MembershipEvent{
		Kind:   kind,
		Scope:  *info,
		Actor:  actor,
		Target: *target,
		Role:   role,
	}

	if kind == MembershipAdded {
		members, err := s.membershipRepo.ListMembers(ctx, scope, scopeID)
		if err != nil {
			entry.WithError(err).Warn("member joined notifications skipped")
		}
		event.Audience = principals(members)
	}

	result, err := s.notifier.NotifyMembershipChange(ctx, event)
	if err != nil {
		entry.WithError(err).Error("membership notifications partially failed")
	}
	entry.WithFields(logrus.Fields{
		"created":       result.Created(),
		"emails_failed": result.EmailsFailed(),
	}).Debug("membership notifications sent")
}

func principals(members []*domain.Member) []domain.Principal {
	out := make([]domain.Principal, 0, len(members))
	for _, m := range members {
		out = append(out, m.User)
	}
	return out
}
