package photos

import (
	"context"
	"errors"

	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/model"
)

// AddPlayerTag tags a photo with a rostered player. Tagging the same
// pair twice is model.ErrAlreadyExists.
func (s *Service) AddPlayerTag(ctx context.Context, actor audit.Actor, origin audit.Origin,
	photoID model.PhotoID, playerID model.PlayerID) error {
	if _, err := s.storage.GetPhoto(ctx, photoID); err != nil {
		return err
	}
	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return err
	}

	if err := s.storage.AddPlayerTag(ctx, photoID, playerID); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionPlayerTagCreate,
		Actor:        actor,
		ResourceType: "Photo",
		ResourceID:   string(photoID),
		Details:      map[string]any{"player_id": string(playerID)},
		Origin:       origin,
	})
	return nil
}

// BulkAddPlayerTags tags a photo with several players at once. Pairs
// that already exist are skipped, not errors; the audit entry counts
// only newly created tags.
func (s *Service) BulkAddPlayerTags(ctx context.Context, actor audit.Actor, origin audit.Origin,
	photoID model.PhotoID, playerIDs []model.PlayerID) (int, error) {
	if _, err := s.storage.GetPhoto(ctx, photoID); err != nil {
		return 0, err
	}

	added := make([]string, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
			return len(added), err
		}
		err := s.storage.AddPlayerTag(ctx, photoID, playerID)
		if errors.Is(err, model.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return len(added), err
		}
		added = append(added, string(playerID))
	}

	if len(added) > 0 {
		s.recorder.Record(ctx, audit.Event{
			Action:       model.ActionPlayerTagBulkCreate,
			Actor:        actor,
			ResourceType: "Photo",
			ResourceID:   string(photoID),
			Details:      map[string]any{"player_ids": added, "count": len(added)},
			Origin:       origin,
		})
	}
	return len(added), nil
}

// RemovePlayerTag untags a player. Removing an absent tag is a no-op
// success.
func (s *Service) RemovePlayerTag(ctx context.Context, actor audit.Actor, origin audit.Origin,
	photoID model.PhotoID, playerID model.PlayerID) error {
	if _, err := s.storage.GetPhoto(ctx, photoID); err != nil {
		return err
	}

	if err := s.storage.RemovePlayerTag(ctx, photoID, playerID); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionPlayerTagDelete,
		Actor:        actor,
		ResourceType: "Photo",
		ResourceID:   string(photoID),
		Details:      map[string]any{"player_id": string(playerID)},
		Origin:       origin,
	})
	return nil
}

// AddTeamTag tags a photo with a team
func (s *Service) AddTeamTag(ctx context.Context, actor audit.Actor, origin audit.Origin,
	photoID model.PhotoID, teamID model.TeamID) error {
	if _, err := s.storage.GetPhoto(ctx, photoID); err != nil {
		return err
	}
	if _, err := s.storage.GetTeam(ctx, teamID); err != nil {
		return err
	}

	if err := s.storage.AddTeamTag(ctx, photoID, teamID); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionTeamTagCreate,
		Actor:        actor,
		ResourceType: "Photo",
		ResourceID:   string(photoID),
		Details:      map[string]any{"team_id": string(teamID)},
		Origin:       origin,
	})
	return nil
}

// BulkAddTeamTags tags a photo with several teams at once, skipping
// existing pairs
func (s *Service) BulkAddTeamTags(ctx context.Context, actor audit.Actor, origin audit.Origin,
	photoID model.PhotoID, teamIDs []model.TeamID) (int, error) {
	if _, err := s.storage.GetPhoto(ctx, photoID); err != nil {
		return 0, err
	}

	added := make([]string, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		if _, err := s.storage.GetTeam(ctx, teamID); err != nil {
			return len(added), err
		}
		err := s.storage.AddTeamTag(ctx, photoID, teamID)
		if errors.Is(err, model.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			return len(added), err
		}
		added = append(added, string(teamID))
	}

	if len(added) > 0 {
		s.recorder.Record(ctx, audit.Event{
			Action:       model.ActionTeamTagBulkCreate,
			Actor:        actor,
			ResourceType: "Photo",
			ResourceID:   string(photoID),
			Details:      map[string]any{"team_ids": added, "count": len(added)},
			Origin:       origin,
		})
	}
	return len(added), nil
}

// RemoveTeamTag untags a team. Removing an absent tag is a no-op
// success.
func (s *Service) RemoveTeamTag(ctx context.Context, actor audit.Actor, origin audit.Origin,
	photoID model.PhotoID, teamID model.TeamID) error {
	if _, err := s.storage.GetPhoto(ctx, photoID); err != nil {
		return err
	}

	if err := s.storage.RemoveTeamTag(ctx, photoID, teamID); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionTeamTagDelete,
		Actor:        actor,
		ResourceType: "Photo",
		ResourceID:   string(photoID),
		Details:      map[string]any{"team_id": string(teamID)},
		Origin:       origin,
	})
	return nil
}
