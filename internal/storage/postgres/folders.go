package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtshot/courtshot/internal/model"
)

func (s *Storage) SaveFolder(ctx context.Context, folder *model.Folder) error {
	query := `INSERT INTO folders (id, name, parent_id, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.ExecContext(ctx, query,
		folder.ID, folder.Name, folderIDOrNil(folder.ParentID), folder.CreatedBy, folder.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert folder: %w", err)
	}
	return nil
}

func (s *Storage) GetFolder(ctx context.Context, id model.FolderID) (*model.Folder, error) {
	query := `SELECT id, name, parent_id, created_by, created_at FROM folders WHERE id = $1`

	folder, err := scanFolder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrFolderNotFound
		}
		return nil, fmt.Errorf("failed to select folder: %w", err)
	}
	return folder, nil
}

func (s *Storage) UpdateFolder(ctx context.Context, folder *model.Folder) error {
	query := `UPDATE folders SET name = $2, parent_id = $3 WHERE id = $1`
	res, err := s.db.ExecContext(ctx, query, folder.ID, folder.Name, folderIDOrNil(folder.ParentID))
	if err != nil {
		return fmt.Errorf("failed to update folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return model.ErrFolderNotFound
	}
	return nil
}

func (s *Storage) DeleteFolder(ctx context.Context, id model.FolderID) error {
	// Refuse to delete a folder that still holds photos or subfolders
	var count int
	query := `SELECT (SELECT count(*) FROM photos WHERE folder_id = $1)
		+ (SELECT count(*) FROM folders WHERE parent_id = $1)`
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return fmt.Errorf("failed to count folder contents: %w", err)
	}
	if count > 0 {
		return model.ErrFolderNotEmpty
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return model.ErrFolderNotFound
	}
	return nil
}

func (s *Storage) ListFolders(ctx context.Context) ([]*model.Folder, error) {
	query := `SELECT id, name, parent_id, created_by, created_at FROM folders ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select folders: %w", err)
	}
	defer rows.Close()

	var result []*model.Folder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanFolder(row scanner) (*model.Folder, error) {
	folder := &model.Folder{}
	var parentID sql.NullString
	if err := row.Scan(&folder.ID, &folder.Name, &parentID, &folder.CreatedBy, &folder.CreatedAt); err != nil {
		return nil, err
	}
	if parentID.Valid {
		pid := model.FolderID(parentID.String)
		folder.ParentID = &pid
	}
	return folder, nil
}
