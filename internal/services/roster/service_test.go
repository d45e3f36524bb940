package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage/memory"
)

func TestPlayerLifecycle(t *testing.T) {
	store := memory.New()
	svc := New(store)
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, "U16 Hawks", "2025")
	require.NoError(t, err)

	jersey := 10
	player, err := svc.CreatePlayer(ctx, PlayerParams{Name: "Sam Reyes", JerseyNumber: &jersey, TeamID: &team.ID})
	require.NoError(t, err)
	require.NotNil(t, player.JerseyNumber)
	assert.Equal(t, 10, *player.JerseyNumber)

	updated, err := svc.UpdatePlayer(ctx, player.ID, PlayerParams{Name: "Sam Reyes Jr"})
	require.NoError(t, err)
	assert.Equal(t, "Sam Reyes Jr", updated.Name)
	assert.Nil(t, updated.JerseyNumber, "omitted fields are cleared, not kept")
	assert.Nil(t, updated.TeamID)

	require.NoError(t, svc.DeletePlayer(ctx, player.ID))
	_, err = svc.GetPlayer(ctx, player.ID)
	assert.ErrorIs(t, err, model.ErrPlayerNotFound)
}

func TestCreatePlayerUnknownTeam(t *testing.T) {
	svc := New(memory.New())

	missing := model.TeamID("nope")
	_, err := svc.CreatePlayer(context.Background(), PlayerParams{Name: "Sam", TeamID: &missing})
	assert.ErrorIs(t, err, model.ErrTeamNotFound)
}

func TestDeleteTeamClearsPlayerAssignment(t *testing.T) {
	store := memory.New()
	svc := New(store)
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, "U16 Hawks", "2025")
	require.NoError(t, err)
	player, err := svc.CreatePlayer(ctx, PlayerParams{Name: "Sam Reyes", TeamID: &team.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTeam(ctx, team.ID))

	after, err := svc.GetPlayer(ctx, player.ID)
	require.NoError(t, err)
	assert.Nil(t, after.TeamID, "player survives with team reference cleared")
}

func TestTeamLifecycle(t *testing.T) {
	svc := New(memory.New())
	ctx := context.Background()

	team, err := svc.CreateTeam(ctx, "U16 Hawks", "2025")
	require.NoError(t, err)

	updated, err := svc.UpdateTeam(ctx, team.ID, "U18 Hawks", "2026")
	require.NoError(t, err)
	assert.Equal(t, "U18 Hawks", updated.Name)
	assert.Equal(t, "2026", updated.Season)

	teams, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 1)

	require.NoError(t, svc.DeleteTeam(ctx, team.ID))
	_, err = svc.GetTeam(ctx, team.ID)
	assert.ErrorIs(t, err, model.ErrTeamNotFound)
}
