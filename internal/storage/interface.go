package storage

import (
	"context"

	"github.com/courtshot/courtshot/internal/model"
)

// Storage defines the interface for the primary data store
type Storage interface {
	// Photo operations
	SavePhoto(ctx context.Context, photo *model.Photo) error
	GetPhoto(ctx context.Context, id model.PhotoID) (*model.Photo, error)
	UpdatePhoto(ctx context.Context, photo *model.Photo) error
	DeletePhoto(ctx context.Context, id model.PhotoID) error
	ListPhotos(ctx context.Context, filter model.PhotoFilter) ([]*model.Photo, error)

	// Tag operations. Adding an existing pair returns model.ErrAlreadyExists;
	// removing a missing pair is a no-op.
	AddPlayerTag(ctx context.Context, photoID model.PhotoID, playerID model.PlayerID) error
	RemovePlayerTag(ctx context.Context, photoID model.PhotoID, playerID model.PlayerID) error
	AddTeamTag(ctx context.Context, photoID model.PhotoID, teamID model.TeamID) error
	RemoveTeamTag(ctx context.Context, photoID model.PhotoID, teamID model.TeamID) error

	// Folder operations
	SaveFolder(ctx context.Context, folder *model.Folder) error
	GetFolder(ctx context.Context, id model.FolderID) (*model.Folder, error)
	UpdateFolder(ctx context.Context, folder *model.Folder) error
	DeleteFolder(ctx context.Context, id model.FolderID) error
	ListFolders(ctx context.Context) ([]*model.Folder, error)

	// Roster operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	UpdatePlayer(ctx context.Context, player *model.Player) error
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	SaveTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	UpdateTeam(ctx context.Context, team *model.Team) error
	DeleteTeam(ctx context.Context, id model.TeamID) error
	ListTeams(ctx context.Context) ([]*model.Team, error)

	// Collection operations
	SaveCollection(ctx context.Context, collection *model.Collection) error
	GetCollection(ctx context.Context, id model.CollectionID) (*model.Collection, error)
	GetCollectionByToken(ctx context.Context, token string) (*model.Collection, error)
	UpdateCollection(ctx context.Context, collection *model.Collection) error
	DeleteCollection(ctx context.Context, id model.CollectionID) error
	ListCollections(ctx context.Context, userID string) ([]*model.Collection, error)

	AddCollectionPhoto(ctx context.Context, cp *model.CollectionPhoto) error
	RemoveCollectionPhoto(ctx context.Context, collectionID model.CollectionID, photoID model.PhotoID) error
	// ListCollectionPhotos returns the member photos newest-added-first
	ListCollectionPhotos(ctx context.Context, collectionID model.CollectionID) ([]*model.Photo, error)

	// Audit operations. Entries are append-only; there is no update or
	// delete. Query returns the page of rows plus the unpaged total.
	SaveAuditLog(ctx context.Context, entry *model.AuditLog) error
	QueryAuditLogs(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, int, error)

	// Stats returns the admin dashboard summary
	Stats(ctx context.Context) (*model.Stats, error)
}
