package model

import "time"

// PhotoID identifies a photo
type PhotoID string

// FolderID identifies a folder
type FolderID string

// Photo is one uploaded media item. The binary lives in object storage
// under StorageKey; the row only records metadata.
type Photo struct {
	ID           PhotoID
	StorageKey   string
	ThumbnailKey string // empty if no thumbnail was produced
	OriginalName string
	ContentType  string
	SizeBytes    int64
	UploadedBy   string // opaque user id from the identity store
	FolderID     *FolderID
	TakenAt      *time.Time
	UploadedAt   time.Time

	// Populated on reads
	Tags     []PhotoTag
	TeamTags []PhotoTeamTag
}

// PhotoTag links a photo to a rostered player
type PhotoTag struct {
	PhotoID  PhotoID
	PlayerID PlayerID
}

// PhotoTeamTag links a photo to a team
type PhotoTeamTag struct {
	PhotoID PhotoID
	TeamID  TeamID
}

// PhotoFilter narrows a photo listing. Zero value matches everything.
// Date bounds are inclusive.
type PhotoFilter struct {
	PlayerIDs  []PlayerID
	TeamIDs    []TeamID
	UploaderID string
	FolderID   *FolderID
	NoFolder   bool
	StartDate  *time.Time
	EndDate    *time.Time
}

// Folder groups photos. Folders may nest one level at a time via ParentID.
type Folder struct {
	ID        FolderID
	Name      string
	ParentID  *FolderID
	CreatedBy string
	CreatedAt time.Time
}
