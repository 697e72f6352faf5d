package service

import (
	"context"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Get(ctx context.Context, scope domain.Scope, scopeID, userID string) (*domain.Membership, error) {
	args := m.Called(ctx, scope, scopeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListMembers(ctx context.Context, scope domain.Scope, scopeID string) ([]*domain.Member, error) {
	args := m.Called(ctx, scope, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Member), args.Error(1)
}

func (m *MockMembershipRepository) ListForUpdate(ctx context.Context, scope domain.Scope, scopeID string) ([]*domain.Membership, error) {
	args := m.Called(ctx, scope, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, scope domain.Scope, scopeID, userID string, role domain.Role) (*domain.Membership, error) {
	args := m.Called(ctx, scope, scopeID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, scope domain.Scope, scopeID, userID string) error {
	args := m.Called(ctx, scope, scopeID, userID)
	return args.Error(0)
}

// WithinTx выполняет fn на самом моке, если ожидание не задает ошибку начала транзакции.
func (m *MockMembershipRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, repo repository.MembershipRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.Principal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

type MockScopeRepository struct {
	mock.Mock
}

func (m *MockScopeRepository) GetInfo(ctx context.Context, scope domain.Scope, scopeID string) (*domain.ScopeInfo, error) {
	args := m.Called(ctx, scope, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScopeInfo), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, email domain.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) Authorize(ctx context.Context, principalID string, scope domain.Scope, scopeID string, required domain.Role) (*domain.Membership, error) {
	args := m.Called(ctx, principalID, scope, scopeID, required)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockAccessService) ChangeRole(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string, newRole domain.Role) (*domain.Membership, bool, error) {
	args := m.Called(ctx, actorID, scope, scopeID, targetUserID, newRole)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Membership), args.Bool(1), args.Error(2)
}

func (m *MockAccessService) RemoveMember(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string) error {
	args := m.Called(ctx, actorID, scope, scopeID, targetUserID)
	return args.Error(0)
}

func (m *MockAccessService) AddMember(ctx context.Context, actorID string, scope domain.Scope, scopeID, targetUserID string, initialRole domain.Role) (*domain.Membership, error) {
	args := m.Called(ctx, actorID, scope, scopeID, targetUserID, initialRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

type MockMentionResolver struct {
	mock.Mock
}

func (m *MockMentionResolver) Resolve(ctx context.Context, projectID, authorID string, tokens []string) ([]domain.Principal, error) {
	args := m.Called(ctx, projectID, authorID, tokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Principal), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyMention(ctx context.Context, author domain.Principal, recipients []domain.Principal, mention MentionContext) (*FanoutResult, error) {
	args := m.Called(ctx, author, recipients, mention)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FanoutResult), args.Error(1)
}

func (m *MockNotificationService) NotifyMembershipChange(ctx context.Context, event MembershipEvent) (*FanoutResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FanoutResult), args.Error(1)
}

func (m *MockNotificationService) NotifyFileUpdate(ctx context.Context, actor domain.Principal, audience []domain.Principal, file FileContext) (*FanoutResult, error) {
	args := m.Called(ctx, actor, audience, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FanoutResult), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetPrincipal(ctx context.Context, userID string) (*domain.Principal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) ListMembers(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID string) ([]*domain.Member, error) {
	args := m.Called(ctx, actor, scope, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Member), args.Error(1)
}

func (m *MockMembershipService) AddMember(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string, role domain.Role) (*domain.Membership, error) {
	args := m.Called(ctx, actor, scope, scopeID, targetUserID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipService) ChangeRole(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string, role domain.Role) (*domain.Membership, error) {
	args := m.Called(ctx, actor, scope, scopeID, targetUserID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipService) RemoveMember(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID, targetUserID string) error {
	args := m.Called(ctx, actor, scope, scopeID, targetUserID)
	return args.Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) PublishMentions(ctx context.Context, author domain.Principal, comment domain.Comment) ([]domain.Principal, error) {
	args := m.Called(ctx, author, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Principal), args.Error(1)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) ScopeUpdated(ctx context.Context, actor domain.Principal, scope domain.Scope, scopeID string) (*FanoutResult, error) {
	args := m.Called(ctx, actor, scope, scopeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FanoutResult), args.Error(1)
}

func (m *MockActivityService) FileUpdated(ctx context.Context, actor domain.Principal, projectID, fileID, fileName string) (*FanoutResult, error) {
	args := m.Called(ctx, actor, projectID, fileID, fileName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FanoutResult), args.Error(1)
}
