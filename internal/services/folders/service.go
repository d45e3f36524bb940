// Package folders manages the folder tree photos are organized into.
package folders

import (
	"context"

	"github.com/google/uuid"

	"github.com/courtshot/courtshot/internal/dependencies/clock"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage"
)

// Service manages folders
type Service struct {
	storage storage.Storage
	clock   clock.Clock
}

// New creates a folders Service
func New(storage storage.Storage, clk clock.Clock) *Service {
	return &Service{storage: storage, clock: clk}
}

// Create makes a folder, optionally nested under parentID
func (s *Service) Create(ctx context.Context, name string, parentID *model.FolderID, createdBy string) (*model.Folder, error) {
	if parentID != nil {
		if _, err := s.storage.GetFolder(ctx, *parentID); err != nil {
			return nil, err
		}
	}

	folder := &model.Folder{
		ID:        model.FolderID(uuid.NewString()),
		Name:      name,
		ParentID:  parentID,
		CreatedBy: createdBy,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SaveFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// Get returns one folder
func (s *Service) Get(ctx context.Context, id model.FolderID) (*model.Folder, error) {
	return s.storage.GetFolder(ctx, id)
}

// List returns all folders
func (s *Service) List(ctx context.Context) ([]*model.Folder, error) {
	return s.storage.ListFolders(ctx)
}

// Rename changes a folder's name
func (s *Service) Rename(ctx context.Context, id model.FolderID, name string) (*model.Folder, error) {
	folder, err := s.storage.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	folder.Name = name
	if err := s.storage.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// Delete removes an empty folder. A folder still holding photos or
// subfolders is model.ErrFolderNotEmpty.
func (s *Service) Delete(ctx context.Context, id model.FolderID) error {
	return s.storage.DeleteFolder(ctx, id)
}
