package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/courtshot/courtshot/internal/model"
)

const photoColumns = `id, storage_key, thumbnail_key, original_name, content_type,
	size_bytes, uploaded_by, folder_id, taken_at, uploaded_at`

func (s *Storage) SavePhoto(ctx context.Context, photo *model.Photo) error {
	query := `
		INSERT INTO photos (id, storage_key, thumbnail_key, original_name, content_type,
			size_bytes, uploaded_by, folder_id, taken_at, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(ctx, query,
		photo.ID, photo.StorageKey, photo.ThumbnailKey, photo.OriginalName, photo.ContentType,
		photo.SizeBytes, photo.UploadedBy, folderIDOrNil(photo.FolderID), photo.TakenAt, photo.UploadedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

func (s *Storage) GetPhoto(ctx context.Context, id model.PhotoID) (*model.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = $1`

	photo, err := scanPhoto(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to select photo: %w", err)
	}
	if err := s.attachTags(ctx, []*model.Photo{photo}); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *Storage) UpdatePhoto(ctx context.Context, photo *model.Photo) error {
	query := `
		UPDATE photos SET thumbnail_key = $2, original_name = $3, folder_id = $4, taken_at = $5
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		photo.ID, photo.ThumbnailKey, photo.OriginalName, folderIDOrNil(photo.FolderID), photo.TakenAt)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return model.ErrPhotoNotFound
	}
	return nil
}

func (s *Storage) DeletePhoto(ctx context.Context, id model.PhotoID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

func (s *Storage) ListPhotos(ctx context.Context, filter model.PhotoFilter) ([]*model.Photo, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.PlayerIDs) > 0 {
		conds = append(conds, `EXISTS (SELECT 1 FROM photo_tags t
			WHERE t.photo_id = p.id AND t.player_id = ANY(`+arg(playerIDStrings(filter.PlayerIDs))+`))`)
	}
	if len(filter.TeamIDs) > 0 {
		conds = append(conds, `EXISTS (SELECT 1 FROM photo_team_tags t
			WHERE t.photo_id = p.id AND t.team_id = ANY(`+arg(teamIDStrings(filter.TeamIDs))+`))`)
	}
	if filter.UploaderID != "" {
		conds = append(conds, `p.uploaded_by = `+arg(filter.UploaderID))
	}
	if filter.FolderID != nil {
		conds = append(conds, `p.folder_id = `+arg(string(*filter.FolderID)))
	} else if filter.NoFolder {
		conds = append(conds, `p.folder_id IS NULL`)
	}
	if filter.StartDate != nil {
		conds = append(conds, `p.uploaded_at >= `+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conds = append(conds, `p.uploaded_at <= `+arg(*filter.EndDate))
	}

	query := `SELECT p.id, p.storage_key, p.thumbnail_key, p.original_name, p.content_type,
		p.size_bytes, p.uploaded_by, p.folder_id, p.taken_at, p.uploaded_at FROM photos p`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY p.uploaded_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select photos: %w", err)
	}
	defer rows.Close()

	var result []*model.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachTags(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Tag operations

func (s *Storage) AddPlayerTag(ctx context.Context, photoID model.PhotoID, playerID model.PlayerID) error {
	query := `INSERT INTO photo_tags (photo_id, player_id) VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, query, photoID, playerID); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert player tag: %w", err)
	}
	return nil
}

func (s *Storage) RemovePlayerTag(ctx context.Context, photoID model.PhotoID, playerID model.PlayerID) error {
	query := `DELETE FROM photo_tags WHERE photo_id = $1 AND player_id = $2`
	if _, err := s.db.ExecContext(ctx, query, photoID, playerID); err != nil {
		return fmt.Errorf("failed to delete player tag: %w", err)
	}
	return nil
}

func (s *Storage) AddTeamTag(ctx context.Context, photoID model.PhotoID, teamID model.TeamID) error {
	query := `INSERT INTO photo_team_tags (photo_id, team_id) VALUES ($1, $2)`
	if _, err := s.db.ExecContext(ctx, query, photoID, teamID); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert team tag: %w", err)
	}
	return nil
}

func (s *Storage) RemoveTeamTag(ctx context.Context, photoID model.PhotoID, teamID model.TeamID) error {
	query := `DELETE FROM photo_team_tags WHERE photo_id = $1 AND team_id = $2`
	if _, err := s.db.ExecContext(ctx, query, photoID, teamID); err != nil {
		return fmt.Errorf("failed to delete team tag: %w", err)
	}
	return nil
}

// attachTags loads player and team tags for the given photos in two
// batch queries
func (s *Storage) attachTags(ctx context.Context, photos []*model.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	ids := make([]string, len(photos))
	byID := make(map[model.PhotoID]*model.Photo, len(photos))
	for i, p := range photos {
		ids[i] = string(p.ID)
		byID[p.ID] = p
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT photo_id, player_id FROM photo_tags WHERE photo_id = ANY($1) ORDER BY player_id`, ids)
	if err != nil {
		return fmt.Errorf("failed to select player tags: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag model.PhotoTag
		if err := rows.Scan(&tag.PhotoID, &tag.PlayerID); err != nil {
			return err
		}
		if p, ok := byID[tag.PhotoID]; ok {
			p.Tags = append(p.Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	teamRows, err := s.db.QueryContext(ctx,
		`SELECT photo_id, team_id FROM photo_team_tags WHERE photo_id = ANY($1) ORDER BY team_id`, ids)
	if err != nil {
		return fmt.Errorf("failed to select team tags: %w", err)
	}
	defer teamRows.Close()
	for teamRows.Next() {
		var tag model.PhotoTeamTag
		if err := teamRows.Scan(&tag.PhotoID, &tag.TeamID); err != nil {
			return err
		}
		if p, ok := byID[tag.PhotoID]; ok {
			p.TeamTags = append(p.TeamTags, tag)
		}
	}
	return teamRows.Err()
}

func scanPhoto(row scanner) (*model.Photo, error) {
	photo := &model.Photo{}
	var folderID sql.NullString
	var takenAt sql.NullTime
	err := row.Scan(&photo.ID, &photo.StorageKey, &photo.ThumbnailKey, &photo.OriginalName,
		&photo.ContentType, &photo.SizeBytes, &photo.UploadedBy, &folderID, &takenAt, &photo.UploadedAt)
	if err != nil {
		return nil, err
	}
	if folderID.Valid {
		fid := model.FolderID(folderID.String)
		photo.FolderID = &fid
	}
	if takenAt.Valid {
		t := takenAt.Time
		photo.TakenAt = &t
	}
	return photo, nil
}

func folderIDOrNil(id *model.FolderID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}

func playerIDStrings(ids []model.PlayerID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func teamIDStrings(ids []model.TeamID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// scanner covers *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}
