package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtshot/courtshot/internal/config"
	"github.com/courtshot/courtshot/internal/identity"
)

func TestNewMemoryApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	app, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Storage)
	assert.NotNil(t, app.Identity)
	assert.NotNil(t, app.UserCache)
	assert.NotNil(t, app.ObjectStore)
	assert.NotNil(t, app.SessionStore)
	assert.NotNil(t, app.Recorder)
	assert.NotNil(t, app.AuthService)
	assert.NotNil(t, app.PhotoService)
	assert.NotNil(t, app.FolderService)
	assert.NotNil(t, app.CollectionService)
	assert.NotNil(t, app.SharingService)
	assert.NotNil(t, app.RosterService)
	assert.NotNil(t, app.AdminService)
}

func TestNewStartsJanitorsAndCloseStopsThem(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	app, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, app.stopJanitors)

	require.NoError(t, app.Close())
	select {
	case <-app.stopJanitors:
	default:
		t.Fatal("janitor stop channel still open after Close")
	}

	// Closing again must not panic or re-close the channel
	require.NoError(t, app.Close())
}

func TestNewTestAppWiresMocks(t *testing.T) {
	app := NewTestApp()

	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), app.MockClock.Now())

	app.MemoryIdentity.Seed(&identity.UserInfo{
		ID:    "u1",
		Email: "dana@example.com",
		Name:  "Dana Ortiz",
		Role:  identity.RolePlayer,
	})

	user, err := app.UserCache.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Dana Ortiz", user.Name)
}
