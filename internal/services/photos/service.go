// Package photos implements the photo lifecycle: signing direct
// uploads, recording metadata, listing with filters and tagging.
package photos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/dependencies/clock"
	"github.com/courtshot/courtshot/internal/identity"
	"github.com/courtshot/courtshot/internal/identity/cache"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/objectstore"
	"github.com/courtshot/courtshot/internal/storage"
)

// Service manages photo records and their object-storage assets
type Service struct {
	storage  storage.Storage
	objects  objectstore.ObjectStore
	users    *cache.UserCache
	recorder *audit.Recorder
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a photos Service
func New(storage storage.Storage, objects objectstore.ObjectStore, users *cache.UserCache,
	recorder *audit.Recorder, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		objects:  objects,
		users:    users,
		recorder: recorder,
		clock:    clk,
		logger:   logger,
	}
}

// SignedUpload is a one-shot upload grant
type SignedUpload struct {
	UploadURL  string
	StorageKey string
}

// SignUpload issues a presigned PUT URL and the storage key the client
// must report back when creating the photo record. Keys embed a
// timestamp and a UUID so concurrent uploads of the same filename
// never collide.
func (s *Service) SignUpload(ctx context.Context, originalFilename, contentType string) (*SignedUpload, error) {
	ext := strings.ToLower(path.Ext(originalFilename))
	key := fmt.Sprintf("photos/%d-%s%s", s.clock.Now().UnixMilli(), uuid.NewString(), ext)

	url, err := s.objects.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, err
	}
	return &SignedUpload{UploadURL: url, StorageKey: key}, nil
}

// CreateParams describes a completed upload to record
type CreateParams struct {
	StorageKey   string
	ThumbnailKey string
	OriginalName string
	ContentType  string
	SizeBytes    int64
	FolderID     *model.FolderID
	TakenAt      *time.Time
}

// Create records a photo whose bytes were already uploaded via a
// signed URL
func (s *Service) Create(ctx context.Context, actor audit.Actor, origin audit.Origin, params CreateParams) (*model.Photo, error) {
	if params.FolderID != nil {
		if _, err := s.storage.GetFolder(ctx, *params.FolderID); err != nil {
			return nil, err
		}
	}

	photo := &model.Photo{
		ID:           model.PhotoID(uuid.NewString()),
		StorageKey:   params.StorageKey,
		ThumbnailKey: params.ThumbnailKey,
		OriginalName: params.OriginalName,
		ContentType:  params.ContentType,
		SizeBytes:    params.SizeBytes,
		UploadedBy:   actor.ID,
		FolderID:     params.FolderID,
		TakenAt:      params.TakenAt,
		UploadedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePhoto(ctx, photo); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionPhotoUpload,
		Actor:        actor,
		ResourceType: "Photo",
		ResourceID:   string(photo.ID),
		Details: map[string]any{
			"original_name": photo.OriginalName,
			"size_bytes":    photo.SizeBytes,
		},
		Origin: origin,
	})

	return photo, nil
}

// EnrichedPhoto is a photo joined with its uploader and presigned URLs
type EnrichedPhoto struct {
	*model.Photo
	Uploader     *identity.UserInfo
	ImageURL     string
	ThumbnailURL string
}

// Get returns one photo enriched with uploader identity and download
// URLs
func (s *Service) Get(ctx context.Context, id model.PhotoID) (*EnrichedPhoto, error) {
	photo, err := s.storage.GetPhoto(ctx, id)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrich(ctx, []*model.Photo{photo})
	if err != nil {
		return nil, err
	}
	return enriched[0], nil
}

// List returns photos matching filter, enriched. Uploader identities
// are fetched in one batch regardless of result size.
func (s *Service) List(ctx context.Context, filter model.PhotoFilter) ([]*EnrichedPhoto, error) {
	photos, err := s.storage.ListPhotos(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, photos)
}

func (s *Service) enrich(ctx context.Context, photos []*model.Photo) ([]*EnrichedPhoto, error) {
	uploaderIDs := make([]string, 0, len(photos))
	for _, p := range photos {
		uploaderIDs = append(uploaderIDs, p.UploadedBy)
	}

	users, err := s.users.GetUsers(ctx, uploaderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*identity.UserInfo, len(users))
	for _, u := range users {
		byID[u.ID] = &u
	}

	result := make([]*EnrichedPhoto, 0, len(photos))
	for _, p := range photos {
		imageURL, err := s.objects.PresignDownload(ctx, p.StorageKey)
		if err != nil {
			return nil, err
		}
		e := &EnrichedPhoto{
			Photo:    p,
			Uploader: byID[p.UploadedBy],
			ImageURL: imageURL,
		}
		if p.ThumbnailKey != "" {
			thumbURL, err := s.objects.PresignDownload(ctx, p.ThumbnailKey)
			if err != nil {
				return nil, err
			}
			e.ThumbnailURL = thumbURL
		}
		result = append(result, e)
	}
	return result, nil
}

// UpdateParams holds the mutable photo fields. Nil pointer fields are
// left unchanged; ClearFolder moves the photo out of its folder.
type UpdateParams struct {
	FolderID    *model.FolderID
	ClearFolder bool
	TakenAt     *time.Time
}

// Update moves a photo between folders or sets its taken-at date
func (s *Service) Update(ctx context.Context, id model.PhotoID, params UpdateParams) (*model.Photo, error) {
	photo, err := s.storage.GetPhoto(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.ClearFolder {
		photo.FolderID = nil
	} else if params.FolderID != nil {
		if _, err := s.storage.GetFolder(ctx, *params.FolderID); err != nil {
			return nil, err
		}
		photo.FolderID = params.FolderID
	}
	if params.TakenAt != nil {
		photo.TakenAt = params.TakenAt
	}

	if err := s.storage.UpdatePhoto(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// Delete removes a photo record and its stored objects
func (s *Service) Delete(ctx context.Context, actor audit.Actor, origin audit.Origin, id model.PhotoID) error {
	photo, err := s.storage.GetPhoto(ctx, id)
	if err != nil {
		return err
	}

	s.deleteObjects(ctx, photo)

	if err := s.storage.DeletePhoto(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionPhotoDelete,
		Actor:        actor,
		ResourceType: "Photo",
		ResourceID:   string(id),
		Details:      map[string]any{"original_name": photo.OriginalName},
		Origin:       origin,
	})
	return nil
}

// BulkDelete removes several photos. Unknown ids are skipped; the
// audit entry lists only the photos actually deleted.
func (s *Service) BulkDelete(ctx context.Context, actor audit.Actor, origin audit.Origin, ids []model.PhotoID) (int, error) {
	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		photo, err := s.storage.GetPhoto(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrPhotoNotFound) {
				continue
			}
			return len(deleted), err
		}

		s.deleteObjects(ctx, photo)

		if err := s.storage.DeletePhoto(ctx, id); err != nil {
			return len(deleted), err
		}
		deleted = append(deleted, string(id))
	}

	if len(deleted) > 0 {
		s.recorder.Record(ctx, audit.Event{
			Action:       model.ActionPhotoBulkDelete,
			Actor:        actor,
			ResourceType: "Photo",
			ResourceIDs:  deleted,
			Details:      map[string]any{"count": len(deleted)},
			Origin:       origin,
		})
	}
	return len(deleted), nil
}

// deleteObjects best-effort removes the photo's stored assets. A
// failed object delete leaves an orphan blob, which is preferable to a
// dangling record.
func (s *Service) deleteObjects(ctx context.Context, photo *model.Photo) {
	if err := s.objects.Delete(ctx, photo.StorageKey); err != nil {
		s.logger.Warn("failed to delete photo object",
			slog.String("key", photo.StorageKey),
			slog.String("error", err.Error()),
		)
	}
	if photo.ThumbnailKey != "" {
		if err := s.objects.Delete(ctx, photo.ThumbnailKey); err != nil {
			s.logger.Warn("failed to delete thumbnail object",
				slog.String("key", photo.ThumbnailKey),
				slog.String("error", err.Error()),
			)
		}
	}
}
