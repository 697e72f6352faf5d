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

type membershipFixture struct {
	access   *MockAccessService
	repo     *MockMembershipRepository
	users    *MockUserRepository
	scopes     *MockScopeRepository
	activities *MockActivityRepository
	notifier   *MockNotificationService
	service    MembershipService
}

func newMembershipFixture() *membershipFixture {
	f := &membershipFixture{
		access:   new(MockAccessService),
		repo:     new(MockMembershipRepository),
		users:    new(MockUserRepository),
		scopes:     new(MockScopeRepository),
		activities: new(MockActivityRepository),
		notifier:   new(MockNotificationService),
	}
	f.service = NewMembershipService(f.access, f.repo, f.users, f.scopes, f.activities, f.notifier, logging.Discard())
	return f
}

var roadmap = &domain.ScopeInfo{Scope: domain.ScopeProject, ID: "p1", Name: "Roadmap", TeamName: "Platform"}

func TestMembershipService_AddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("добавление и рассылка", func(t *testing.T) {
		f := newMembershipFixture()
		created := membership(domain.ScopeProject, "p1", "bob", domain.RoleViewer)

		f.access.On("AddMember", mock.Anything, "amy", domain.ScopeProject, "p1", "bob", domain.RoleViewer).Return(created, nil).Once()
		f.users.On("GetByID", mock.Anything, "bob").Return(&bobSmith, nil).Once()
		f.activities.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
			return a.Action == domain.ActivityMemberAdded && a.UserID == "amy" && a.ScopeID == "p1" &&
				a.Details == "Added Bob Smith to the project"
		})).Return(nil).Once()
		f.scopes.On("GetInfo", mock.Anything, domain.ScopeProject, "p1").Return(roadmap, nil).Once()
		f.repo.On("ListMembers", mock.Anything, domain.ScopeProject, "p1").
			Return(projectMembers("p1", authorAmy, janeDoe, bobSmith), nil).Once()
		f.notifier.On("NotifyMembershipChange", mock.Anything, mock.MatchedBy(func(e MembershipEvent) bool {
			return e.Kind == MembershipAdded && e.Target.ID == "bob" && e.Actor.ID == "amy" &&
				e.Scope.Name == "Roadmap" && len(e.Audience) == 3
		})).Return(&FanoutResult{}, nil).Once()

		result, err := f.service.AddMember(ctx, authorAmy, domain.ScopeProject, "p1", "bob", "")

		require.NoError(t, err)
		assert.Equal(t, created, result)
		f.access.AssertExpectations(t)
		f.activities.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("отказ доступа не рассылает уведомлений", func(t *testing.T) {
		f := newMembershipFixture()
		f.access.On("AddMember", mock.Anything, "carl", domain.ScopeProject, "p1", "dan", domain.RoleViewer).
			Return(nil, domain.NewNotAMemberError(domain.ScopeProject)).Once()

		_, err := f.service.AddMember(ctx, domain.Principal{ID: "carl"}, domain.ScopeProject, "p1", "dan", domain.RoleViewer)

		assert.True(t, errors.Is(err, domain.ErrNotAMember))
		f.activities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "NotifyMembershipChange", mock.Anything, mock.Anything)
	})

	t.Run("ошибки журнала и рассылки не влияют на результат", func(t *testing.T) {
		f := newMembershipFixture()
		created := membership(domain.ScopeTeam, "t1", "bob", domain.RoleMember)

		f.access.On("AddMember", mock.Anything, "amy", domain.ScopeTeam, "t1", "bob", domain.RoleMember).Return(created, nil).Once()
		f.users.On("GetByID", mock.Anything, "bob").Return(&bobSmith, nil).Once()
		f.activities.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
		f.scopes.On("GetInfo", mock.Anything, domain.ScopeTeam, "t1").
			Return(&domain.ScopeInfo{Scope: domain.ScopeTeam, ID: "t1", Name: "Platform"}, nil).Once()
		f.repo.On("ListMembers", mock.Anything, domain.ScopeTeam, "t1").Return(nil, errors.New("timeout")).Once()
		f.notifier.On("NotifyMembershipChange", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed")).Once()

		result, err := f.service.AddMember(ctx, authorAmy, domain.ScopeTeam, "t1", "bob", domain.RoleMember)

		require.NoError(t, err)
		assert.Equal(t, created, result)
	})
}

func TestMembershipService_ChangeRole(t *testing.T) {
	ctx := context.Background()

	t.Run("уведомление о новой роли", func(t *testing.T) {
		f := newMembershipFixture()
		f.access.On("ChangeRole", mock.Anything, "amy", domain.ScopeProject, "p1", "bob", domain.RoleEditor).
			Return(membership(domain.ScopeProject, "p1", "bob", domain.RoleEditor), true, nil).Once()
		f.users.On("GetByID", mock.Anything, "bob").Return(&bobSmith, nil).Once()
		f.activities.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
			return a.Action == domain.ActivityRoleUpdated && a.Details == "Changed Bob Smith's role to EDITOR"
		})).Return(nil).Once()
		f.scopes.On("GetInfo", mock.Anything, domain.ScopeProject, "p1").Return(roadmap, nil).Once()
		f.notifier.On("NotifyMembershipChange", mock.Anything, mock.MatchedBy(func(e MembershipEvent) bool {
			return e.Kind == MembershipRoleUpdated && e.Role == domain.RoleEditor && e.Audience == nil
		})).Return(&FanoutResult{}, nil).Once()

		result, err := f.service.ChangeRole(ctx, authorAmy, domain.ScopeProject, "p1", "bob", domain.RoleEditor)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleEditor, result.Role)
		f.notifier.AssertExpectations(t)
	})

	t.Run("без изменения роли уведомления нет", func(t *testing.T) {
		f := newMembershipFixture()
		same := membership(domain.ScopeProject, "p1", "bob", domain.RoleEditor)
		f.access.On("ChangeRole", mock.Anything, "amy", domain.ScopeProject, "p1", "bob", domain.RoleEditor).Return(same, false, nil).Once()

		_, err := f.service.ChangeRole(ctx, authorAmy, domain.ScopeProject, "p1", "bob", domain.RoleEditor)

		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.activities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "NotifyMembershipChange", mock.Anything, mock.Anything)
	})

	t.Run("ошибка инварианта передается без изменений", func(t *testing.T) {
		f := newMembershipFixture()
		f.access.On("ChangeRole", mock.Anything, "amy", domain.ScopeTeam, "t1", "amy", domain.RoleMember).
			Return(nil, false, domain.NewLastAdminError(domain.ScopeTeam, false)).Once()

		_, err := f.service.ChangeRole(ctx, authorAmy, domain.ScopeTeam, "t1", "amy", domain.RoleMember)

		assert.True(t, errors.Is(err, domain.ErrLastAdminViolation))
	})

	t.Run("отсутствующее членство проверяет движок доступа", func(t *testing.T) {
		f := newMembershipFixture()
		f.access.On("ChangeRole", mock.Anything, "amy", domain.ScopeTeam, "t1", "ghost", domain.RoleAdmin).
			Return(nil, false, domain.ErrTargetNotFound).Once()

		_, err := f.service.ChangeRole(ctx, authorAmy, domain.ScopeTeam, "t1", "ghost", domain.RoleAdmin)

		assert.True(t, errors.Is(err, domain.ErrTargetNotFound))
	})
}

func TestMembershipService_RemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("удаление и уведомление", func(t *testing.T) {
		f := newMembershipFixture()
		f.access.On("RemoveMember", mock.Anything, "amy", domain.ScopeProject, "p1", "bob").Return(nil).Once()
		f.users.On("GetByID", mock.Anything, "bob").Return(&bobSmith, nil).Once()
		f.activities.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
			return a.Action == domain.ActivityMemberRemoved && a.Details == "Removed Bob Smith from the project"
		})).Return(nil).Once()
		f.scopes.On("GetInfo", mock.Anything, domain.ScopeProject, "p1").Return(roadmap, nil).Once()
		f.notifier.On("NotifyMembershipChange", mock.Anything, mock.MatchedBy(func(e MembershipEvent) bool {
			return e.Kind == MembershipRemoved && e.Target.ID == "bob"
		})).Return(&FanoutResult{}, nil).Once()

		err := f.service.RemoveMember(ctx, authorAmy, domain.ScopeProject, "p1", "bob")

		require.NoError(t, err)
		f.notifier.AssertExpectations(t)
	})

	t.Run("пользователь не загружен: удаление успешно, журнал по ID, без уведомлений", func(t *testing.T) {
		f := newMembershipFixture()
		f.access.On("RemoveMember", mock.Anything, "amy", domain.ScopeProject, "p1", "bob").Return(nil).Once()
		f.users.On("GetByID", mock.Anything, "bob").Return(nil, repository.ErrNotFound).Once()
		f.activities.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
			return a.Action == domain.ActivityMemberRemoved && a.Details == "Removed bob from the project"
		})).Return(nil).Once()

		err := f.service.RemoveMember(ctx, authorAmy, domain.ScopeProject, "p1", "bob")

		require.NoError(t, err)
		f.activities.AssertExpectations(t)
		f.notifier.AssertNotCalled(t, "NotifyMembershipChange", mock.Anything, mock.Anything)
	})
}

func TestMembershipService_ListMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("любой участник видит состав", func(t *testing.T) {
		f := newMembershipFixture()
		members := projectMembers("p1", authorAmy, bobSmith)
		f.access.On("Authorize", mock.Anything, "bob", domain.ScopeProject, "p1", domain.RoleViewer).
			Return(membership(domain.ScopeProject, "p1", "bob", domain.RoleViewer), nil).Once()
		f.repo.On("ListMembers", mock.Anything, domain.ScopeProject, "p1").Return(members, nil).Once()

		result, err := f.service.ListMembers(ctx, bobSmith, domain.ScopeProject, "p1")

		require.NoError(t, err)
		assert.Len(t, result, 2)
	})

	t.Run("ошибка: не участник", func(t *testing.T) {
		f := newMembershipFixture()
		f.access.On("Authorize", mock.Anything, "bob", domain.ScopeTeam, "t1", domain.RoleMember).
			Return(nil, domain.NewNotAMemberError(domain.ScopeTeam)).Once()

		_, err := f.service.ListMembers(ctx, bobSmith, domain.ScopeTeam, "t1")

		assert.True(t, errors.Is(err, domain.ErrNotAMember))
		f.repo.AssertNotCalled(t, "ListMembers", mock.Anything, mock.Anything, mock.Anything)
	})
}
