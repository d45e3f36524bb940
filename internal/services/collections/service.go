// Package collections manages user-owned photo collections.
package collections

import (
	"context"

	"github.com/google/uuid"

	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/dependencies/clock"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage"
)

// Service manages collections. Every operation except Create is
// owner-scoped: acting on another user's collection is
// model.ErrNotOwner.
type Service struct {
	storage  storage.Storage
	recorder *audit.Recorder
	clock    clock.Clock
}

// New creates a collections Service
func New(storage storage.Storage, recorder *audit.Recorder, clk clock.Clock) *Service {
	return &Service{storage: storage, recorder: recorder, clock: clk}
}

// Create makes an empty collection owned by ownerID
func (s *Service) Create(ctx context.Context, ownerID, name, description string) (*model.Collection, error) {
	collection := &model.Collection{
		ID:          model.CollectionID(uuid.NewString()),
		Name:        name,
		Description: description,
		UserID:      ownerID,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SaveCollection(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// Get returns one collection owned by ownerID
func (s *Service) Get(ctx context.Context, id model.CollectionID, ownerID string) (*model.Collection, error) {
	return s.getOwned(ctx, id, ownerID)
}

// List returns all collections owned by ownerID
func (s *Service) List(ctx context.Context, ownerID string) ([]*model.Collection, error) {
	return s.storage.ListCollections(ctx, ownerID)
}

// Update changes a collection's name and description. The share facet
// is untouched; that lifecycle belongs to the sharing service.
func (s *Service) Update(ctx context.Context, id model.CollectionID, ownerID, name, description string) (*model.Collection, error) {
	collection, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	collection.Name = name
	collection.Description = description
	if err := s.storage.UpdateCollection(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// Delete removes a collection and its memberships. The member photos
// themselves are untouched.
func (s *Service) Delete(ctx context.Context, id model.CollectionID, ownerID string) error {
	if _, err := s.getOwned(ctx, id, ownerID); err != nil {
		return err
	}
	return s.storage.DeleteCollection(ctx, id)
}

// AddPhoto adds a photo to a collection. Adding a photo twice is
// model.ErrAlreadyExists.
func (s *Service) AddPhoto(ctx context.Context, actor audit.Actor, origin audit.Origin,
	id model.CollectionID, photoID model.PhotoID) error {
	if _, err := s.getOwned(ctx, id, actor.ID); err != nil {
		return err
	}
	if _, err := s.storage.GetPhoto(ctx, photoID); err != nil {
		return err
	}

	err := s.storage.AddCollectionPhoto(ctx, &model.CollectionPhoto{
		CollectionID: id,
		PhotoID:      photoID,
		AddedAt:      s.clock.Now(),
	})
	if err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionCollectionPhotoAdd,
		Actor:        actor,
		ResourceType: "Collection",
		ResourceID:   string(id),
		Details:      map[string]any{"photo_id": string(photoID)},
		Origin:       origin,
	})
	return nil
}

// RemovePhoto removes a photo from a collection. Removing an absent
// membership is a no-op success.
func (s *Service) RemovePhoto(ctx context.Context, actor audit.Actor, origin audit.Origin,
	id model.CollectionID, photoID model.PhotoID) error {
	if _, err := s.getOwned(ctx, id, actor.ID); err != nil {
		return err
	}

	if err := s.storage.RemoveCollectionPhoto(ctx, id, photoID); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionCollectionPhotoRemove,
		Actor:        actor,
		ResourceType: "Collection",
		ResourceID:   string(id),
		Details:      map[string]any{"photo_id": string(photoID)},
		Origin:       origin,
	})
	return nil
}

// ListPhotos returns a collection's member photos, newest added first
func (s *Service) ListPhotos(ctx context.Context, id model.CollectionID, ownerID string) ([]*model.Photo, error) {
	if _, err := s.getOwned(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return s.storage.ListCollectionPhotos(ctx, id)
}

// getOwned fetches a collection and checks ownership. A collection
// that exists but belongs to someone else is model.ErrNotOwner, after
// the existence check so the two cases stay distinct.
func (s *Service) getOwned(ctx context.Context, id model.CollectionID, ownerID string) (*model.Collection, error) {
	collection, err := s.storage.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if collection.UserID != ownerID {
		return nil, model.ErrNotOwner
	}
	return collection, nil
}
