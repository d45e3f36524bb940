package request

import "time"

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUploadRequest is the request body for requesting an upload URL
type SignUploadRequest struct {
	OriginalFilename string `json:"original_filename"`
	ContentType      string `json:"content_type"`
}

// CreatePhotoRequest records a completed upload
type CreatePhotoRequest struct {
	StorageKey   string     `json:"storage_key"`
	ThumbnailKey string     `json:"thumbnail_key,omitempty"`
	OriginalName string     `json:"original_name"`
	ContentType  string     `json:"content_type"`
	SizeBytes    int64      `json:"size_bytes"`
	FolderID     *string    `json:"folder_id,omitempty"`
	TakenAt      *time.Time `json:"taken_at,omitempty"`
}

// UpdatePhotoRequest moves a photo or sets its taken-at date. A
// folder_id of empty string moves the photo out of its folder.
type UpdatePhotoRequest struct {
	FolderID *string    `json:"folder_id,omitempty"`
	TakenAt  *time.Time `json:"taken_at,omitempty"`
}

// BulkDeletePhotosRequest deletes several photos at once
type BulkDeletePhotosRequest struct {
	PhotoIDs []string `json:"photo_ids"`
}

// AddPlayerTagRequest tags a photo with one player
type AddPlayerTagRequest struct {
	PlayerID string `json:"player_id"`
}

// BulkPlayerTagsRequest tags a photo with several players
type BulkPlayerTagsRequest struct {
	PlayerIDs []string `json:"player_ids"`
}

// AddTeamTagRequest tags a photo with one team
type AddTeamTagRequest struct {
	TeamID string `json:"team_id"`
}

// BulkTeamTagsRequest tags a photo with several teams
type BulkTeamTagsRequest struct {
	TeamIDs []string `json:"team_ids"`
}

// CreateFolderRequest creates a folder
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

// RenameFolderRequest renames a folder
type RenameFolderRequest struct {
	Name string `json:"name"`
}

// PlayerRequest is the request body for creating or updating a player
type PlayerRequest struct {
	Name         string  `json:"name"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	TeamID       *string `json:"team_id,omitempty"`
}

// TeamRequest is the request body for creating or updating a team
type TeamRequest struct {
	Name   string `json:"name"`
	Season string `json:"season"`
}

// CollectionRequest is the request body for creating or updating a
// collection
type CollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddCollectionPhotoRequest adds a photo to a collection
type AddCollectionPhotoRequest struct {
	PhotoID string `json:"photo_id"`
}

// ShareRequest creates or regenerates a collection share link
type ShareRequest struct {
	ExpiresInDays *int `json:"expires_in_days,omitempty"`
}

// SetRoleRequest changes a user's role
type SetRoleRequest struct {
	Role string `json:"role"`
}
