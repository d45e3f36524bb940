package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtshot/courtshot/internal/model"
)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	query := `INSERT INTO players (id, name, jersey_number, team_id) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query, player.ID, player.Name, player.JerseyNumber, teamIDOrNil(player.TeamID))
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	query := `SELECT id, name, jersey_number, team_id FROM players WHERE id = $1`

	player, err := scanPlayer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to select player: %w", err)
	}
	return player, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, player *model.Player) error {
	query := `UPDATE players SET name = $2, jersey_number = $3, team_id = $4 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, player.ID, player.Name, player.JerseyNumber, teamIDOrNil(player.TeamID))
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	query := `SELECT id, name, jersey_number, team_id FROM players ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select players: %w", err)
	}
	defer rows.Close()

	var result []*model.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, player)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Team operations

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	query := `INSERT INTO teams (id, name, season) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, team.ID, team.Name, team.Season); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert team: %w", err)
	}
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	query := `SELECT id, name, season FROM teams WHERE id = $1`

	team := &model.Team{}
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.Season); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to select team: %w", err)
	}
	return team, nil
}

func (s *Storage) UpdateTeam(ctx context.Context, team *model.Team) error {
	query := `UPDATE teams SET name = $2, season = $3 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, team.ID, team.Name, team.Season)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return model.ErrTeamNotFound
	}
	return nil
}

func (s *Storage) DeleteTeam(ctx context.Context, id model.TeamID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	query := `SELECT id, name, season FROM teams ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select teams: %w", err)
	}
	defer rows.Close()

	var result []*model.Team
	for rows.Next() {
		team := &model.Team{}
		if err := rows.Scan(&team.ID, &team.Name, &team.Season); err != nil {
			return nil, err
		}
		result = append(result, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanPlayer(row scanner) (*model.Player, error) {
	player := &model.Player{}
	var jersey sql.NullInt64
	var teamID sql.NullString
	if err := row.Scan(&player.ID, &player.Name, &jersey, &teamID); err != nil {
		return nil, err
	}
	if jersey.Valid {
		n := int(jersey.Int64)
		player.JerseyNumber = &n
	}
	if teamID.Valid {
		tid := model.TeamID(teamID.String)
		player.TeamID = &tid
	}
	return player, nil
}

func teamIDOrNil(id *model.TeamID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}
