package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/bagdasarian/docspace-access/internal/repository"
)

type memoryKey struct {
	scope   domain.Scope
	scopeID string
	userID  string
}

// memoryStore - MembershipRepository в памяти для сценарных тестов.
// Транзакции сериализуются, ошибка fn восстанавливает снимок строк.
type memoryStore struct {
	txMu  sync.Mutex
	mu    sync.Mutex
	rows  map[memoryKey]*domain.Membership
	order []memoryKey
	users map[string]domain.Principal
}

func newMemoryStore(users ...domain.Principal) *memoryStore {
	s := &memoryStore{
		rows:  make(map[memoryKey]*domain.Membership),
		users: make(map[string]domain.Principal),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memoryStore) seed(scope domain.Scope, scopeID, userID string, role domain.Role) {
	if err := s.Create(context.Background(), &domain.Membership{Scope: scope, ScopeID: scopeID, UserID: userID, Role: role}); err != nil {
		panic(err)
	}
}

func (s *memoryStore) role(scope domain.Scope, scopeID, userID string) (domain.Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[memoryKey{scope, scopeID, userID}]
	if !ok {
		return "", false
	}
	return m.Role, true
}

func (s *memoryStore) Get(_ context.Context, scope domain.Scope, scopeID, userID string) (*domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[memoryKey{scope, scopeID, userID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *memoryStore) ListMembers(_ context.Context, scope domain.Scope, scopeID string) ([]*domain.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var members []*domain.Member
	for _, key := range s.order {
		m, ok := s.rows[key]
		if !ok || key.scope != scope || key.scopeID != scopeID {
			continue
		}
		user := s.users[key.userID]
		user.ID = key.userID
		members = append(members, &domain.Member{Membership: *m, User: user})
	}
	return members, nil
}

func (s *memoryStore) ListForUpdate(ctx context.Context, scope domain.Scope, scopeID string) ([]*domain.Membership, error) {
	members, err := s.ListMembers(ctx, scope, scopeID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Membership, 0, len(members))
	for _, m := range members {
		copied := m.Membership
		out = append(out, &copied)
	}
	return out, nil
}

func (s *memoryStore) Create(_ context.Context, membership *domain.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memoryKey{membership.Scope, membership.ScopeID, membership.UserID}
	if _, ok := s.rows[key]; ok {
		return repository.ErrAlreadyExists
	}
	membership.CreatedAt = time.Now()
	copied := *membership
	s.rows[key] = &copied
	if !slices.Contains(s.order, key) {
		s.order = append(s.order, key)
	}
	return nil
}

func (s *memoryStore) UpdateRole(_ context.Context, scope domain.Scope, scopeID, userID string, role domain.Role) (*domain.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.rows[memoryKey{scope, scopeID, userID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	now := time.Now()
	m.Role = role
	m.UpdatedAt = &now
	copied := *m
	return &copied, nil
}

func (s *memoryStore) Delete(_ context.Context, scope domain.Scope, scopeID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memoryKey{scope, scopeID, userID}
	if _, ok := s.rows[key]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, key)
	return nil
}

func (s *memoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repo repository.MembershipRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := make(map[memoryKey]*domain.Membership, len(s.rows))
	for k, v := range s.rows {
		copied := *v
		snapshot[k] = &copied
	}
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.rows = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memoryStore) adminCount(scope domain.Scope, scopeID string) (admins, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, m := range s.rows {
		if key.scope != scope || key.scopeID != scopeID {
			continue
		}
		total++
		if m.IsAdmin() {
			admins++
		}
	}
	return admins, total
}
