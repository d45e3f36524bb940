package identity

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/courtshot/courtshot/internal/model"
)

// MemoryStore is an in-memory Store used by tests and the factory's
// memory mode
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*UserInfo
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*UserInfo)}
}

var _ Store = (*MemoryStore)(nil)

// Seed inserts or replaces a user record
func (s *MemoryStore) Seed(u *UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetByIDs(ctx context.Context, ids []string) ([]*UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*UserInfo{}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if u, ok := s.users[id]; ok {
			cp := *u
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s *MemoryStore) GetAll(ctx context.Context) ([]*UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*UserInfo, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (s *MemoryStore) SetRole(ctx context.Context, id string, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (s *MemoryStore) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		t := at
		u.LastLogin = &t
	}
	return nil
}
