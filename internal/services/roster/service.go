// Package roster manages the players and teams photos are tagged with.
package roster

import (
	"context"

	"github.com/google/uuid"

	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage"
)

// Service manages the player and team roster
type Service struct {
	storage storage.Storage
}

// New creates a roster Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// PlayerParams holds the mutable player fields
type PlayerParams struct {
	Name         string
	JerseyNumber *int
	TeamID       *model.TeamID
}

// CreatePlayer adds a player to the roster
func (s *Service) CreatePlayer(ctx context.Context, params PlayerParams) (*model.Player, error) {
	if params.TeamID != nil {
		if _, err := s.storage.GetTeam(ctx, *params.TeamID); err != nil {
			return nil, err
		}
	}

	player := &model.Player{
		ID:           model.PlayerID(uuid.NewString()),
		Name:         params.Name,
		JerseyNumber: params.JerseyNumber,
		TeamID:       params.TeamID,
	}
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// GetPlayer returns one player
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// ListPlayers returns the full roster
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// UpdatePlayer replaces a player's mutable fields
func (s *Service) UpdatePlayer(ctx context.Context, id model.PlayerID, params PlayerParams) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.TeamID != nil {
		if _, err := s.storage.GetTeam(ctx, *params.TeamID); err != nil {
			return nil, err
		}
	}

	player.Name = params.Name
	player.JerseyNumber = params.JerseyNumber
	player.TeamID = params.TeamID

	if err := s.storage.UpdatePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// DeletePlayer removes a player. Existing photo tags for the player
// are removed with it.
func (s *Service) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.storage.DeletePlayer(ctx, id)
}

// CreateTeam adds a team
func (s *Service) CreateTeam(ctx context.Context, name, season string) (*model.Team, error) {
	team := &model.Team{
		ID:     model.TeamID(uuid.NewString()),
		Name:   name,
		Season: season,
	}
	if err := s.storage.SaveTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeam returns one team
func (s *Service) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	return s.storage.GetTeam(ctx, id)
}

// ListTeams returns all teams
func (s *Service) ListTeams(ctx context.Context) ([]*model.Team, error) {
	return s.storage.ListTeams(ctx)
}

// UpdateTeam replaces a team's name and season
func (s *Service) UpdateTeam(ctx context.Context, id model.TeamID, name, season string) (*model.Team, error) {
	team, err := s.storage.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	team.Name = name
	team.Season = season

	if err := s.storage.UpdateTeam(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteTeam removes a team. Players on the team keep their records
// with the team reference cleared.
func (s *Service) DeleteTeam(ctx context.Context, id model.TeamID) error {
	return s.storage.DeleteTeam(ctx, id)
}
