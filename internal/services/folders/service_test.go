package folders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtshot/courtshot/internal/dependencies/mocks"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage/memory"
)

func newService(t *testing.T) (*Service, *memory.Storage, *mocks.MockClock) {
	t.Helper()
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return New(store, clk), store, clk
}

func TestCreateAndRename(t *testing.T) {
	svc, _, clk := newService(t)

	folder, err := svc.Create(context.Background(), "Season 2025", nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Season 2025", folder.Name)
	assert.Equal(t, clk.Now(), folder.CreatedAt)

	renamed, err := svc.Rename(context.Background(), folder.ID, "Season 2025-26")
	require.NoError(t, err)
	assert.Equal(t, "Season 2025-26", renamed.Name)
}

func TestCreateNested(t *testing.T) {
	svc, _, _ := newService(t)

	parent, err := svc.Create(context.Background(), "Season 2025", nil, "u1")
	require.NoError(t, err)

	child, err := svc.Create(context.Background(), "Finals", &parent.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)

	missing := model.FolderID("nope")
	_, err = svc.Create(context.Background(), "Orphan", &missing, "u1")
	assert.ErrorIs(t, err, model.ErrFolderNotFound)
}

func TestDeleteOnlyWhenEmpty(t *testing.T) {
	svc, store, clk := newService(t)

	folder, err := svc.Create(context.Background(), "Season 2025", nil, "u1")
	require.NoError(t, err)

	require.NoError(t, store.SavePhoto(context.Background(), &model.Photo{
		ID:         "p1",
		StorageKey: "photos/p1",
		UploadedBy: "u1",
		FolderID:   &folder.ID,
		UploadedAt: clk.Now(),
	}))

	err = svc.Delete(context.Background(), folder.ID)
	assert.ErrorIs(t, err, model.ErrFolderNotEmpty)

	require.NoError(t, store.DeletePhoto(context.Background(), "p1"))
	require.NoError(t, svc.Delete(context.Background(), folder.ID))

	_, err = svc.Get(context.Background(), folder.ID)
	assert.ErrorIs(t, err, model.ErrFolderNotFound)
}

func TestDeleteWithSubfolders(t *testing.T) {
	svc, _, _ := newService(t)

	parent, err := svc.Create(context.Background(), "Season 2025", nil, "u1")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "Finals", &parent.ID, "u1")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), parent.ID)
	assert.ErrorIs(t, err, model.ErrFolderNotEmpty)
}
