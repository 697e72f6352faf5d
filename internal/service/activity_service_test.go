package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/logging"
	"github.com/bagdasarian/docspace-access/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_ScopeUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("администратор обновил проект", func(t *testing.T) {
		access := new(MockAccessService)
		repo := new(MockMembershipRepository)
		scopes := new(MockScopeRepository)
		activities := new(MockActivityRepository)
		notifier := new(MockNotificationService)
		service := NewActivityService(access, repo, scopes, activities, notifier, logging.Discard())

		access.On("Authorize", mock.Anything, "amy", domain.ScopeProject, "p1", domain.RoleAdmin).
			Return(membership(domain.ScopeProject, "p1", "amy", domain.RoleAdmin), nil).Once()
		scopes.On("GetInfo", mock.Anything, domain.ScopeProject, "p1").Return(roadmap, nil).Once()
		repo.On("ListMembers", mock.Anything, domain.ScopeProject, "p1").
			Return(projectMembers("p1", authorAmy, bobSmith), nil).Once()
		activities.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
			return a.Action == domain.ActivityProjectUpdated && a.ScopeID == "p1" && a.UserID == "amy" && a.FileID == ""
		})).Return(nil).Once()
		expected := &FanoutResult{Deliveries: []Delivery{{Recipient: bobSmith, NotificationID: "n1"}}}
		notifier.On("NotifyMembershipChange", mock.Anything, mock.MatchedBy(func(e MembershipEvent) bool {
			return e.Kind == ScopeUpdated && e.Actor.ID == "amy" && len(e.Audience) == 2
		})).Return(expected, nil).Once()

		result, err := service.ScopeUpdated(ctx, authorAmy, domain.ScopeProject, "p1")

		require.NoError(t, err)
		assert.Equal(t, 1, result.Created())
		activities.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("ошибка: обновлять может только ADMIN", func(t *testing.T) {
		access := new(MockAccessService)
		notifier := new(MockNotificationService)
		service := NewActivityService(access, new(MockMembershipRepository), new(MockScopeRepository), new(MockActivityRepository), notifier, logging.Discard())

		access.On("Authorize", mock.Anything, "bob", domain.ScopeTeam, "t1", domain.RoleAdmin).
			Return(nil, domain.NewInsufficientRoleError(domain.ScopeTeam, domain.RoleAdmin)).Once()

		_, err := service.ScopeUpdated(ctx, bobSmith, domain.ScopeTeam, "t1")

		assert.True(t, errors.Is(err, domain.ErrInsufficientRole))
		notifier.AssertNotCalled(t, "NotifyMembershipChange", mock.Anything, mock.Anything)
	})

	t.Run("ошибка: scope не найден", func(t *testing.T) {
		access := new(MockAccessService)
		scopes := new(MockScopeRepository)
		service := NewActivityService(access, new(MockMembershipRepository), scopes, new(MockActivityRepository), new(MockNotificationService), logging.Discard())

		access.On("Authorize", mock.Anything, "amy", domain.ScopeTeam, "t1", domain.RoleAdmin).
			Return(membership(domain.ScopeTeam, "t1", "amy", domain.RoleAdmin), nil).Once()
		scopes.On("GetInfo", mock.Anything, domain.ScopeTeam, "t1").Return(nil, repository.ErrNotFound).Once()

		_, err := service.ScopeUpdated(ctx, authorAmy, domain.ScopeTeam, "t1")

		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestActivityService_FileUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("редактор изменил файл", func(t *testing.T) {
		access := new(MockAccessService)
		repo := new(MockMembershipRepository)
		scopes := new(MockScopeRepository)
		activities := new(MockActivityRepository)
		notifier := new(MockNotificationService)
		service := NewActivityService(access, repo, scopes, activities, notifier, logging.Discard())

		access.On("Authorize", mock.Anything, "amy", domain.ScopeProject, "p1", domain.RoleEditor).
			Return(membership(domain.ScopeProject, "p1", "amy", domain.RoleEditor), nil).Once()
		scopes.On("GetInfo", mock.Anything, domain.ScopeProject, "p1").Return(roadmap, nil).Once()
		repo.On("ListMembers", mock.Anything, domain.ScopeProject, "p1").
			Return(projectMembers("p1", authorAmy, janeDoe), nil).Once()
		activities.On("Create", mock.Anything, &domain.Activity{
			Scope:   domain.ScopeProject,
			ScopeID: "p1",
			FileID:  "f1",
			UserID:  "amy",
			Action:  domain.ActivityFileUpdated,
			Details: "Updated plan.md",
		}).Return(nil).Once()
		notifier.On("NotifyFileUpdate", mock.Anything, authorAmy, []domain.Principal{authorAmy, janeDoe}, FileContext{
			ProjectID: "p1", ProjectName: "Roadmap", FileID: "f1", FileName: "plan.md",
		}).Return(&FanoutResult{}, errors.New("partial")).Once()

		result, err := service.FileUpdated(ctx, authorAmy, "p1", "f1", "plan.md")

		require.NoError(t, err)
		assert.NotNil(t, result)
		activities.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("ошибка: VIEWER не редактирует файлы", func(t *testing.T) {
		access := new(MockAccessService)
		service := NewActivityService(access, new(MockMembershipRepository), new(MockScopeRepository), new(MockActivityRepository), new(MockNotificationService), logging.Discard())

		access.On("Authorize", mock.Anything, "bob", domain.ScopeProject, "p1", domain.RoleEditor).
			Return(nil, domain.NewInsufficientRoleError(domain.ScopeProject, domain.RoleEditor)).Once()

		_, err := service.FileUpdated(ctx, bobSmith, "p1", "f1", "plan.md")

		assert.True(t, errors.Is(err, domain.ErrInsufficientRole))
	})
}
