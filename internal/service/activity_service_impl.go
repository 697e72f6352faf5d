package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/repository"
	"github.com/sirupsen/logrus"
)

type activityService struct {
	access         AccessService
	membershipRepo repository.MembershipRepository
	scopeRepo      repository.ScopeRepository
	activityRepo   repository.ActivityRepository
	notifier       NotificationService
	log            *logrus.Logger
}

// NewActivityService создает новый экземпляр ActivityService
func NewActivityService(
	access AccessService,
	membershipRepo repository.MembershipRepository,
	scopeRepo repository.ScopeRepository,
	activityRepo repository.ActivityRepository,
	notifier NotificationService,
	log *logrus.Logger,
) ActivityService {
	return &activityService{
		access:         access,
		membershipRepo: membershipRepo,
		scopeRepo:      scopeRepo,
		activityRepo:   activityRepo,
		notifier:       notifier,
		log:            log,
	}
}

// ScopeUpdated требует роль ADMIN. Уведомляются все участники, кроме автора изменения.
func (s *activityService) ScopeUpdated(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID string) (*FanoutResult, error) {
	if _, err := s.access.Authorize(ctx, actor.ID, scope, scopeID, domain.TopRole(scope)); err != nil {
		return nil, err
	}

	info, err := s.scopeRepo.GetInfo(ctx, scope, scopeID)
	if err != nil {
		return nil, s.notFound(err, scope.String())
	}

	members, err := s.membershipRepo.ListMembers(ctx, scope, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	recordActivity(ctx, s.activityRepo, s.log, scopeUpdatedActivity(actor, scope, scopeID))

	result, err := s.notifier.NotifyMembershipChange(ctx, MembershipEvent{
		Kind:     ScopeUpdated,
		Scope:    *info,
		Actor:    actor,
		Audience: principals(members),
	})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"scope":    scope,
			"scope_id": scopeID,
		}).Error("update notifications partially failed")
	}

	return result, nil
}

// FileUpdated требует роль EDITOR в проекте файла
func (s *activityService) FileUpdated(ctx context.Context, actor domain.Principal, projectID, fileID, fileName string) (*FanoutResult, error) {
	if _, err := s.access.Authorize(ctx, actor.ID, domain.ScopeProject, projectID, domain.RoleEditor); err != nil {
		return nil, err
	}

	info, err := s.scopeRepo.GetInfo(ctx, domain.ScopeProject, projectID)
	if err != nil {
		return nil, s.notFound(err, "project")
	}

	members, err := s.membershipRepo.ListMembers(ctx, domain.ScopeProject, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	recordActivity(ctx, s.activityRepo, s.log, domain.Activity{
		Scope:   domain.ScopeProject,
		ScopeID: projectID,
		FileID:  fileID,
		UserID:  actor.ID,
		Action:  domain.ActivityFileUpdated,
		Details: fmt.Sprintf("Updated %s", fileLabel(fileName, fileID)),
	})

	result, err := s.notifier.NotifyFileUpdate(ctx, actor, principals(members), FileContext{
		ProjectID:   projectID,
		ProjectName: info.Name,
		FileID:      fileID,
		FileName:    fileName,
	})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"project_id": projectID,
			"file_id":    fileID,
		}).Error("file update notifications partially failed")
	}

	return result, nil
}

func (s *activityService) notFound(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFoundError(resource)
	}
	return fmt.Errorf("failed to load %s: %w", resource, err)
}
