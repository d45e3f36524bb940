package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtshot/courtshot/internal/model"
)

const collectionColumns = `id, name, description, user_id, created_at,
	slug, user_slug, share_token, share_expires_at`

func (s *Storage) SaveCollection(ctx context.Context, collection *model.Collection) error {
	query := `
		INSERT INTO collections (id, name, description, user_id, created_at,
			slug, user_slug, share_token, share_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		collection.ID, collection.Name, collection.Description, collection.UserID, collection.CreatedAt,
		nullIfEmpty(collection.Slug), nullIfEmpty(collection.UserSlug),
		nullIfEmpty(collection.ShareToken), collection.ShareExpiresAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	return nil
}

func (s *Storage) GetCollection(ctx context.Context, id model.CollectionID) (*model.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = $1`

	collection, err := scanCollection(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to select collection: %w", err)
	}
	return collection, nil
}

func (s *Storage) GetCollectionByToken(ctx context.Context, token string) (*model.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE lower(share_token) = lower($1)`

	collection, err := scanCollection(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to select collection: %w", err)
	}
	return collection, nil
}

func (s *Storage) UpdateCollection(ctx context.Context, collection *model.Collection) error {
	// Single-row update; the share facet changes atomically with it
	query := `
		UPDATE collections SET name = $2, description = $3,
			slug = $4, user_slug = $5, share_token = $6, share_expires_at = $7
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		collection.ID, collection.Name, collection.Description,
		nullIfEmpty(collection.Slug), nullIfEmpty(collection.UserSlug),
		nullIfEmpty(collection.ShareToken), collection.ShareExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return model.ErrCollectionNotFound
	}
	return nil
}

func (s *Storage) DeleteCollection(ctx context.Context, id model.CollectionID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

func (s *Storage) ListCollections(ctx context.Context, userID string) ([]*model.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections`
	var args []any
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select collections: %w", err)
	}
	defer rows.Close()

	var result []*model.Collection
	for rows.Next() {
		collection, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, collection)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) AddCollectionPhoto(ctx context.Context, cp *model.CollectionPhoto) error {
	query := `INSERT INTO collection_photos (collection_id, photo_id, added_at) VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, cp.CollectionID, cp.PhotoID, cp.AddedAt); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to insert collection photo: %w", err)
	}
	return nil
}

func (s *Storage) RemoveCollectionPhoto(ctx context.Context, collectionID model.CollectionID, photoID model.PhotoID) error {
	query := `DELETE FROM collection_photos WHERE collection_id = $1 AND photo_id = $2`
	if _, err := s.db.ExecContext(ctx, query, collectionID, photoID); err != nil {
		return fmt.Errorf("failed to delete collection photo: %w", err)
	}
	return nil
}

func (s *Storage) ListCollectionPhotos(ctx context.Context, collectionID model.CollectionID) ([]*model.Photo, error) {
	query := `
		SELECT p.id, p.storage_key, p.thumbnail_key, p.original_name, p.content_type,
			p.size_bytes, p.uploaded_by, p.folder_id, p.taken_at, p.uploaded_at
		FROM collection_photos cp
		JOIN photos p ON p.id = cp.photo_id
		WHERE cp.collection_id = $1
		ORDER BY cp.added_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to select collection photos: %w", err)
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

func scanCollection(row scanner) (*model.Collection, error) {
	collection := &model.Collection{}
	var slug, userSlug, token sql.NullString
	var expiresAt sql.NullTime
	err := row.Scan(&collection.ID, &collection.Name, &collection.Description,
		&collection.UserID, &collection.CreatedAt, &slug, &userSlug, &token, &expiresAt)
	if err != nil {
		return nil, err
	}
	collection.Slug = slug.String
	collection.UserSlug = userSlug.String
	collection.ShareToken = token.String
	if expiresAt.Valid {
		t := expiresAt.Time
		collection.ShareExpiresAt = &t
	}
	return collection, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
