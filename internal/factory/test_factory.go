package factory

import (
	"log/slog"
	"time"

	"github.com/courtshot/courtshot/internal/dependencies/mocks"
	"github.com/courtshot/courtshot/internal/identity"
	"github.com/courtshot/courtshot/internal/objectstore"
	"github.com/courtshot/courtshot/internal/services/auth"
	"github.com/courtshot/courtshot/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Memory backends for direct seeding and inspection
	MemoryStorage  *memory.Storage
	MemoryIdentity *identity.MemoryStore
	MemoryObjects  *objectstore.MemoryStore
}

// NewTestApp creates an App on memory backends with mocked clock and
// randomness
func NewTestApp() *TestApp {
	store := memory.New()
	identityStore := identity.NewMemoryStore()
	objects := objectstore.NewMemoryStore()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.DiscardHandler)

	app := newWithDependencies(deps{
		store:           store,
		identityStore:   identityStore,
		objects:         objects,
		sessions:        auth.NewMemorySessionStore(),
		clock:           mockClock,
		random:          mockRandom,
		sessionDuration: 24 * time.Hour,
		userCacheTTL:    5 * time.Minute,
		shareBaseURL:    "https://courtshot.test/shared",
		logger:          logger,
	})

	return &TestApp{
		App:            app,
		MockClock:      mockClock,
		MockRandom:     mockRandom,
		MemoryStorage:  store,
		MemoryIdentity: identityStore,
		MemoryObjects:  objects,
	}
}
