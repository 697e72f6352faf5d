package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/repository"
	"github.com/sirupsen/logrus"
)

type commentService struct {
	access       AccessService
	resolver     MentionResolver
	scopeRepo    repository.ScopeRepository
	activityRepo repository.ActivityRepository
	notifier     NotificationService
	log          *logrus.Logger
}

// NewCommentService создает новый экземпляр CommentService
func NewCommentService(
	access AccessService,
	resolver MentionResolver,
	scopeRepo repository.ScopeRepository,
	activityRepo repository.ActivityRepository,
	notifier NotificationService,
	log *logrus.Logger,
) CommentService {
	return &commentService{
		access:       access,
		resolver:     resolver,
		scopeRepo:    scopeRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
		log:          log,
	}
}

// PublishMentions требует роль EDITOR в проекте комментария
func (s *commentService) PublishMentions(ctx context.Context, author domain.Principal, comment domain.Comment) ([]domain.Principal, error) {
	if _, err := s.access.Authorize(ctx, author.ID, domain.ScopeProject, comment.ProjectID, domain.RoleEditor); err != nil {
		return nil, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"project_id": comment.ProjectID,
		"file_id":    comment.FileID,
		"author":     author.ID,
	})
	recordActivity(ctx, s.activityRepo, entry, domain.Activity{
		Scope:   domain.ScopeProject,
		ScopeID: comment.ProjectID,
		FileID:  comment.FileID,
		UserID:  author.ID,
		Action:  domain.ActivityCommentAdded,
		Details: fmt.Sprintf("Commented on %s", fileLabel(comment.FileName, comment.FileID)),
	})

	tokens := slices.Collect(ExtractMentions(comment.Content))
	recipients, err := s.resolver.Resolve(ctx, comment.ProjectID, author.ID, tokens)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return recipients, nil
	}

	projectName := ""
	if info, err := s.scopeRepo.GetInfo(ctx, domain.ScopeProject, comment.ProjectID); err != nil {
		entry.WithError(err).Warn("project name not loaded for mention email")
	} else {
		projectName = info.Name
	}

	result, err := s.notifier.NotifyMention(ctx, author, recipients, MentionContext{
		ProjectID:   comment.ProjectID,
		ProjectName: projectName,
		FileID:      comment.FileID,
		FileName:    comment.FileName,
		Content:     comment.Content,
	})
	if err != nil {
		entry.WithError(err).Error("mention notifications partially failed")
	}
	entry.WithFields(logrus.Fields{
		"mentioned": len(recipients),
		"created":   result.Created(),
	}).Info("mentions published")

	return recipients, nil
}

func fileLabel(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
