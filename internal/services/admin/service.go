// Package admin implements the administrative surface: user role
// management and site statistics.
package admin

import (
	"context"

	"github.com/courtshot/courtshot/internal/identity"
	"github.com/courtshot/courtshot/internal/identity/cache"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage"
)

// Service implements admin operations
type Service struct {
	storage storage.Storage
	users   identity.Store
	cache   *cache.UserCache
}

// New creates an admin Service
func New(storage storage.Storage, users identity.Store, userCache *cache.UserCache) *Service {
	return &Service{storage: storage, users: users, cache: userCache}
}

// ListUsers returns every known user
func (s *Service) ListUsers(ctx context.Context) ([]*identity.UserInfo, error) {
	return s.users.GetAll(ctx)
}

// SetRole changes a user's role and drops their cached identity so the
// change is visible immediately instead of after cache expiry
func (s *Service) SetRole(ctx context.Context, id, role string) (*identity.UserInfo, error) {
	if !identity.ValidRole(role) {
		return nil, model.ErrInvalidRole
	}

	if err := s.users.SetRole(ctx, id, role); err != nil {
		return nil, err
	}
	s.cache.Invalidate(id)

	return s.users.GetByID(ctx, id)
}

// SiteStats aggregates content counts with the user count from the
// identity store
type SiteStats struct {
	PhotoCount      int
	CollectionCount int
	FolderCount     int
	UserCount       int
	TotalSizeBytes  int64
}

// Stats returns site-wide aggregate statistics
func (s *Service) Stats(ctx context.Context) (*SiteStats, error) {
	stats, err := s.storage.Stats(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &SiteStats{
		PhotoCount:      stats.PhotoCount,
		CollectionCount: stats.CollectionCount,
		FolderCount:     stats.FolderCount,
		UserCount:       len(users),
		TotalSizeBytes:  stats.TotalSizeBytes,
	}, nil
}
