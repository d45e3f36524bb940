package audit

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtshot/courtshot/internal/dependencies/mocks"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage"
	"github.com/courtshot/courtshot/internal/storage/memory"
	"github.com/courtshot/courtshot/internal/testutil"
)

func newRecorder(t *testing.T) (*Recorder, *memory.Storage, *mocks.MockClock) {
	t.Helper()
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewRecorder(store, clk, testutil.NopLogger()), store, clk
}

func record(r *Recorder, clk *mocks.MockClock, action model.AuditAction, resourceType string) {
	r.Record(context.Background(), Event{
		Action:       action,
		Actor:        Actor{ID: "u1", Name: "Alice", Role: "admin"},
		ResourceType: resourceType,
		ResourceID:   "res-1",
	})
	clk.Advance(time.Second)
}

func TestRecordAndQueryOrdering(t *testing.T) {
	r, _, clk := newRecorder(t)

	for i := 0; i < 5; i++ {
		record(r, clk, model.ActionPhotoUpload, "Photo")
	}

	page, err := r.Query(context.Background(), model.AuditFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Entries, 5)

	for i := 1; i < len(page.Entries); i++ {
		assert.True(t, page.Entries[i-1].CreatedAt.After(page.Entries[i].CreatedAt),
			"entries must be strictly newest-first")
	}
}

func TestRecordCapturesActorSnapshot(t *testing.T) {
	r, _, _ := newRecorder(t)

	r.Record(context.Background(), Event{
		Action:       model.ActionCollectionShareCreate,
		Actor:        Actor{ID: "u1", Name: "Alice", Role: "player"},
		ResourceType: "Collection",
		ResourceID:   "c1",
		Details:      map[string]any{"share_url": "https://example.com/x"},
		Origin:       Origin{IPAddress: "10.0.0.1", UserAgent: "test-agent"},
	})

	page, err := r.Query(context.Background(), model.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)

	entry := page.Entries[0]
	assert.Equal(t, "u1", entry.UserID)
	assert.Equal(t, "Alice", entry.UserName)
	assert.Equal(t, "player", entry.UserRole)
	assert.Equal(t, "10.0.0.1", entry.IPAddress)
	assert.Equal(t, "test-agent", entry.UserAgent)
	assert.Equal(t, "https://example.com/x", entry.Details["share_url"])
	assert.NotEmpty(t, entry.ID)
}

func TestFilterComposition(t *testing.T) {
	r, _, clk := newRecorder(t)

	record(r, clk, model.ActionPhotoDelete, "Photo")
	record(r, clk, model.ActionPhotoDelete, "Collection")
	record(r, clk, model.ActionPhotoUpload, "Photo")

	page, err := r.Query(context.Background(), model.AuditFilter{
		Action:       model.ActionPhotoDelete,
		ResourceType: "Photo",
	})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1, "filters must AND together")
	assert.Equal(t, model.ActionPhotoDelete, page.Entries[0].Action)
	assert.Equal(t, "Photo", page.Entries[0].ResourceType)
}

func TestDateRangeFilter(t *testing.T) {
	r, _, clk := newRecorder(t)

	start := clk.Now()
	record(r, clk, model.ActionPhotoUpload, "Photo")
	record(r, clk, model.ActionPhotoUpload, "Photo")
	cutoff := clk.Now().Add(-time.Second)
	record(r, clk, model.ActionPhotoUpload, "Photo")

	page, err := r.Query(context.Background(), model.AuditFilter{
		StartDate: &start,
		EndDate:   &cutoff,
	})
	require.NoError(t, err)
	assert.Len(t, page.Entries, 2, "date bounds are inclusive")
}

func TestPagination(t *testing.T) {
	r, _, clk := newRecorder(t)

	for i := 0; i < 7; i++ {
		record(r, clk, model.ActionPhotoUpload, "Photo")
	}

	page, err := r.Query(context.Background(), model.AuditFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Entries, 3)

	last, err := r.Query(context.Background(), model.AuditFilter{Page: 3, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, last.Entries, 1)
}

// failingStorage rejects every audit write
type failingStorage struct {
	storage.Storage
}

func (f *failingStorage) SaveAuditLog(ctx context.Context, entry *model.AuditLog) error {
	return errors.New("db down")
}

func TestRecordSwallowsStorageErrors(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	r := NewRecorder(&failingStorage{Storage: memory.New()}, clk, testutil.NopLogger())

	// Must not panic or surface the error in any way
	r.Record(context.Background(), Event{
		Action:       model.ActionPhotoUpload,
		Actor:        Actor{ID: "u1"},
		ResourceType: "Photo",
	})
}

func TestOriginFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	r.Header.Set("User-Agent", "ua-test")

	origin := OriginFromRequest(r)
	assert.Equal(t, "203.0.113.7", origin.IPAddress)
	assert.Equal(t, "ua-test", origin.UserAgent)

	r2 := httptest.NewRequest("GET", "/", nil)
	r2.Header.Set("X-Real-IP", "198.51.100.9")
	assert.Equal(t, "198.51.100.9", OriginFromRequest(r2).IPAddress)
}
