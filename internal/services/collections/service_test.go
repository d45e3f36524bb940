package collections

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/dependencies/mocks"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage/memory"
	"github.com/courtshot/courtshot/internal/testutil"
)

type fixture struct {
	service *Service
	storage *memory.Storage
	clock   *mocks.MockClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := New(store, audit.NewRecorder(store, clk, testutil.NopLogger()), clk)
	return &fixture{service: svc, storage: store, clock: clk}
}

func actor() audit.Actor {
	return audit.Actor{ID: "u1", Name: "Dana Ortiz", Role: "player"}
}

func (f *fixture) seedPhoto(t *testing.T, id model.PhotoID) {
	t.Helper()
	require.NoError(t, f.storage.SavePhoto(context.Background(), &model.Photo{
		ID:           id,
		StorageKey:   "photos/" + string(id),
		OriginalName: string(id) + ".jpg",
		UploadedBy:   "u1",
		UploadedAt:   f.clock.Now(),
	}))
}

func TestCreateAndGet(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Create(context.Background(), "u1", "Summer Finals", "best shots")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, f.clock.Now(), created.CreatedAt)

	got, err := f.service.Get(context.Background(), created.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Summer Finals", got.Name)
	assert.Equal(t, "best shots", got.Description)
}

func TestOwnerScoping(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Create(context.Background(), "u1", "Summer Finals", "")
	require.NoError(t, err)

	_, err = f.service.Get(context.Background(), created.ID, "u2")
	assert.ErrorIs(t, err, model.ErrNotOwner)

	_, err = f.service.Update(context.Background(), created.ID, "u2", "renamed", "")
	assert.ErrorIs(t, err, model.ErrNotOwner)

	err = f.service.Delete(context.Background(), created.ID, "u2")
	assert.ErrorIs(t, err, model.ErrNotOwner)

	// Missing collections stay distinct from foreign ones
	_, err = f.service.Get(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, model.ErrCollectionNotFound)
}

func TestUpdatePreservesShareFacet(t *testing.T) {
	f := newFixture(t)

	created, err := f.service.Create(context.Background(), "u1", "Summer Finals", "")
	require.NoError(t, err)

	// Simulate the sharing service having shared this collection
	stored, err := f.storage.GetCollection(context.Background(), created.ID)
	require.NoError(t, err)
	stored.Slug = "summer-finals"
	stored.UserSlug = "dana-ortiz"
	stored.ShareToken = "abc123"
	require.NoError(t, f.storage.UpdateCollection(context.Background(), stored))

	_, err = f.service.Update(context.Background(), created.ID, "u1", "Renamed", "new desc")
	require.NoError(t, err)

	after, err := f.storage.GetCollection(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", after.Name)
	assert.Equal(t, "abc123", after.ShareToken, "rename does not clear the share facet")
}

func TestAddAndRemovePhoto(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto(t, "p1")

	created, err := f.service.Create(context.Background(), "u1", "Summer Finals", "")
	require.NoError(t, err)

	require.NoError(t, f.service.AddPhoto(context.Background(), actor(), audit.Origin{}, created.ID, "p1"))

	err = f.service.AddPhoto(context.Background(), actor(), audit.Origin{}, created.ID, "p1")
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	err = f.service.AddPhoto(context.Background(), actor(), audit.Origin{}, created.ID, "nope")
	assert.ErrorIs(t, err, model.ErrPhotoNotFound)

	photos, err := f.service.ListPhotos(context.Background(), created.ID, "u1")
	require.NoError(t, err)
	require.Len(t, photos, 1)

	require.NoError(t, f.service.RemovePhoto(context.Background(), actor(), audit.Origin{}, created.ID, "p1"))
	require.NoError(t, f.service.RemovePhoto(context.Background(), actor(), audit.Origin{}, created.ID, "p1"),
		"removing an absent membership is a no-op")

	photos, err = f.service.ListPhotos(context.Background(), created.ID, "u1")
	require.NoError(t, err)
	assert.Empty(t, photos)
}

func TestListPhotosNewestAddedFirst(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto(t, "p1")
	f.seedPhoto(t, "p2")

	created, err := f.service.Create(context.Background(), "u1", "Summer Finals", "")
	require.NoError(t, err)

	require.NoError(t, f.service.AddPhoto(context.Background(), actor(), audit.Origin{}, created.ID, "p1"))
	f.clock.Advance(time.Minute)
	require.NoError(t, f.service.AddPhoto(context.Background(), actor(), audit.Origin{}, created.ID, "p2"))

	photos, err := f.service.ListPhotos(context.Background(), created.ID, "u1")
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, model.PhotoID("p2"), photos[0].ID)
	assert.Equal(t, model.PhotoID("p1"), photos[1].ID)
}

func TestDeleteLeavesPhotos(t *testing.T) {
	f := newFixture(t)
	f.seedPhoto(t, "p1")

	created, err := f.service.Create(context.Background(), "u1", "Summer Finals", "")
	require.NoError(t, err)
	require.NoError(t, f.service.AddPhoto(context.Background(), actor(), audit.Origin{}, created.ID, "p1"))

	require.NoError(t, f.service.Delete(context.Background(), created.ID, "u1"))

	_, err = f.service.Get(context.Background(), created.ID, "u1")
	assert.ErrorIs(t, err, model.ErrCollectionNotFound)

	_, err = f.storage.GetPhoto(context.Background(), "p1")
	assert.NoError(t, err, "member photos survive collection deletion")
}
