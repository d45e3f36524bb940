package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtshot/courtshot/internal/dependencies/mocks"
	"github.com/courtshot/courtshot/internal/identity"
	"github.com/courtshot/courtshot/internal/identity/cache"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage/memory"
)

func newService(t *testing.T) (*Service, *identity.MemoryStore, *cache.UserCache, *memory.Storage) {
	t.Helper()

	users := identity.NewMemoryStore()
	users.Seed(&identity.UserInfo{ID: "u1", Email: "dana@example.com", Name: "Dana Ortiz", Role: identity.RolePlayer})
	users.Seed(&identity.UserInfo{ID: "u2", Email: "kim@example.com", Name: "Kim Lee", Role: identity.RoleAdmin})

	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	userCache := cache.New(users, clk, 0)
	store := memory.New()
	return New(store, users, userCache), users, userCache, store
}

func TestListUsers(t *testing.T) {
	svc, _, _, _ := newService(t)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestSetRoleInvalidatesCache(t *testing.T) {
	svc, _, userCache, _ := newService(t)
	ctx := context.Background()

	// Warm the cache with the old role
	cached, err := userCache.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, identity.RolePlayer, cached.Role)

	updated, err := svc.SetRole(ctx, "u1", identity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, updated.Role)

	// The cache serves the new role immediately, not after expiry
	cached, err = userCache.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleAdmin, cached.Role)
}

func TestSetRoleValidation(t *testing.T) {
	svc, _, _, _ := newService(t)

	_, err := svc.SetRole(context.Background(), "u1", "superuser")
	assert.ErrorIs(t, err, model.ErrInvalidRole)

	_, err = svc.SetRole(context.Background(), "nope", identity.RoleAdmin)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestStats(t *testing.T) {
	svc, _, _, store := newService(t)
	ctx := context.Background()

	require.NoError(t, store.SavePhoto(ctx, &model.Photo{ID: "p1", StorageKey: "photos/p1", SizeBytes: 100, UploadedBy: "u1"}))
	require.NoError(t, store.SavePhoto(ctx, &model.Photo{ID: "p2", StorageKey: "photos/p2", SizeBytes: 250, UploadedBy: "u1"}))
	require.NoError(t, store.SaveCollection(ctx, &model.Collection{ID: "c1", Name: "Finals", UserID: "u1"}))
	require.NoError(t, store.SaveFolder(ctx, &model.Folder{ID: "f1", Name: "Season", CreatedBy: "u1"}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PhotoCount)
	assert.Equal(t, 1, stats.CollectionCount)
	assert.Equal(t, 1, stats.FolderCount)
	assert.Equal(t, 2, stats.UserCount)
	assert.Equal(t, int64(350), stats.TotalSizeBytes)
}
