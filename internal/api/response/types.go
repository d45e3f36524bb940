package response

import (
	"time"

	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/identity"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/services/admin"
	"github.com/courtshot/courtshot/internal/services/auth"
	"github.com/courtshot/courtshot/internal/services/photos"
	"github.com/courtshot/courtshot/internal/services/sharing"
)

// UserResponse is the public view of a user
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// UserFromModel converts a UserInfo to a UserResponse
func UserFromModel(u *identity.UserInfo) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

// SessionUserResponse is the flat user view of a session, returned by
// /auth/me and nested in the login envelope
type SessionUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// SessionUserFromSession builds the flat user view for a session
func SessionUserFromSession(s *auth.Session) SessionUserResponse {
	return SessionUserResponse{
		ID:    s.UserID,
		Email: s.UserEmail,
		Name:  s.UserName,
		Role:  s.UserRole,
	}
}

// AuthResponse is returned on successful login
type AuthResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      SessionUserResponse `json:"user"`
}

// AuthResponseFromSession converts a session to an AuthResponse
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      SessionUserFromSession(s),
	}
}

// UploaderResponse is the enriched uploader attached to a photo
type UploaderResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PhotoResponse is a photo with its enrichments
type PhotoResponse struct {
	ID           string            `json:"id"`
	OriginalName string            `json:"original_name"`
	ContentType  string            `json:"content_type"`
	SizeBytes    int64             `json:"size_bytes"`
	FolderID     *string           `json:"folder_id,omitempty"`
	TakenAt      *time.Time        `json:"taken_at,omitempty"`
	UploadedAt   time.Time         `json:"uploaded_at"`
	Uploader     *UploaderResponse `json:"uploader,omitempty"`
	ImageURL     string            `json:"image_url"`
	ThumbnailURL string            `json:"thumbnail_url,omitempty"`
	PlayerIDs    []string          `json:"player_ids"`
	TeamIDs      []string          `json:"team_ids"`
}

// PhotoFromEnriched converts an enriched photo to a PhotoResponse
func PhotoFromEnriched(p *photos.EnrichedPhoto) PhotoResponse {
	resp := PhotoResponse{
		ID:           string(p.ID),
		OriginalName: p.OriginalName,
		ContentType:  p.ContentType,
		SizeBytes:    p.SizeBytes,
		TakenAt:      p.TakenAt,
		UploadedAt:   p.UploadedAt,
		ImageURL:     p.ImageURL,
		ThumbnailURL: p.ThumbnailURL,
		PlayerIDs:    []string{},
		TeamIDs:      []string{},
	}
	if p.FolderID != nil {
		id := string(*p.FolderID)
		resp.FolderID = &id
	}
	if p.Uploader != nil {
		resp.Uploader = &UploaderResponse{ID: p.Uploader.ID, Name: p.Uploader.Name}
	}
	for _, tag := range p.Tags {
		resp.PlayerIDs = append(resp.PlayerIDs, string(tag.PlayerID))
	}
	for _, tag := range p.TeamTags {
		resp.TeamIDs = append(resp.TeamIDs, string(tag.TeamID))
	}
	return resp
}

// PhotoFromModel converts a bare photo record to a PhotoResponse
func PhotoFromModel(p *model.Photo) PhotoResponse {
	return PhotoFromEnriched(&photos.EnrichedPhoto{Photo: p})
}

// SignedUploadResponse is the grant returned by the sign endpoint
type SignedUploadResponse struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"storage_key"`
}

// FolderResponse is a folder
type FolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// FolderFromModel converts a folder to a FolderResponse
func FolderFromModel(f *model.Folder) FolderResponse {
	resp := FolderResponse{
		ID:        string(f.ID),
		Name:      f.Name,
		CreatedBy: f.CreatedBy,
		CreatedAt: f.CreatedAt,
	}
	if f.ParentID != nil {
		id := string(*f.ParentID)
		resp.ParentID = &id
	}
	return resp
}

// PlayerResponse is a rostered player
type PlayerResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	TeamID       *string `json:"team_id,omitempty"`
}

// PlayerFromModel converts a player to a PlayerResponse
func PlayerFromModel(p *model.Player) PlayerResponse {
	resp := PlayerResponse{
		ID:           string(p.ID),
		Name:         p.Name,
		JerseyNumber: p.JerseyNumber,
	}
	if p.TeamID != nil {
		id := string(*p.TeamID)
		resp.TeamID = &id
	}
	return resp
}

// TeamResponse is a team
type TeamResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

// TeamFromModel converts a team to a TeamResponse
func TeamFromModel(t *model.Team) TeamResponse {
	return TeamResponse{ID: string(t.ID), Name: t.Name, Season: t.Season}
}

// CollectionResponse is a collection as seen by its owner
type CollectionResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	CreatedAt      time.Time  `json:"created_at"`
	Shared         bool       `json:"shared"`
	ShareToken     string     `json:"share_token,omitempty"`
	ShareExpiresAt *time.Time `json:"share_expires_at,omitempty"`
}

// CollectionFromModel converts a collection to a CollectionResponse
func CollectionFromModel(c *model.Collection) CollectionResponse {
	return CollectionResponse{
		ID:             string(c.ID),
		Name:           c.Name,
		Description:    c.Description,
		CreatedAt:      c.CreatedAt,
		Shared:         c.Shared(),
		ShareToken:     c.ShareToken,
		ShareExpiresAt: c.ShareExpiresAt,
	}
}

// ShareResponse is returned when a share link is created
type ShareResponse struct {
	ShareURL  string     `json:"share_url"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// SharedPhotoResponse is one photo in the public share view
type SharedPhotoResponse struct {
	ID           string           `json:"id"`
	OriginalName string           `json:"original_name"`
	ImageURL     string           `json:"image_url"`
	ThumbnailURL string           `json:"thumbnail_url,omitempty"`
	Players      []PlayerResponse `json:"players"`
}

// SharedCollectionResponse is the public view behind a share token
type SharedCollectionResponse struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	OwnerName   string                `json:"owner_name"`
	PhotoCount  int                   `json:"photo_count"`
	Photos      []SharedPhotoResponse `json:"photos"`
}

// SharedCollectionFromResult converts a resolved share to its response
func SharedCollectionFromResult(sc *sharing.SharedCollection) SharedCollectionResponse {
	resp := SharedCollectionResponse{
		Name:        sc.Name,
		Description: sc.Description,
		OwnerName:   sc.OwnerName,
		PhotoCount:  sc.PhotoCount,
		Photos:      []SharedPhotoResponse{},
	}
	for _, p := range sc.Photos {
		photo := SharedPhotoResponse{
			ID:           string(p.ID),
			OriginalName: p.OriginalName,
			ImageURL:     p.ImageURL,
			ThumbnailURL: p.ThumbnailURL,
			Players:      []PlayerResponse{},
		}
		for _, player := range p.Players {
			photo.Players = append(photo.Players, PlayerFromModel(player))
		}
		resp.Photos = append(resp.Photos, photo)
	}
	return resp
}

// AuditLogResponse is one audit entry
type AuditLogResponse struct {
	ID           string         `json:"id"`
	Action       string         `json:"action"`
	UserID       string         `json:"user_id"`
	UserName     string         `json:"user_name"`
	UserRole     string         `json:"user_role"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id,omitempty"`
	ResourceIDs  []string       `json:"resource_ids,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	IPAddress    string         `json:"ip_address,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// PaginationResponse describes one page of results
type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// AuditPageResponse is a page of audit entries
type AuditPageResponse struct {
	Logs       []AuditLogResponse `json:"logs"`
	Pagination PaginationResponse `json:"pagination"`
}

// AuditPageFromResult converts an audit query page to its response
func AuditPageFromResult(page *audit.Page) AuditPageResponse {
	resp := AuditPageResponse{
		Logs: []AuditLogResponse{},
		Pagination: PaginationResponse{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      page.Total,
			TotalPages: page.TotalPages,
		},
	}
	for _, entry := range page.Entries {
		resp.Logs = append(resp.Logs, AuditLogResponse{
			ID:           entry.ID,
			Action:       string(entry.Action),
			UserID:       entry.UserID,
			UserName:     entry.UserName,
			UserRole:     entry.UserRole,
			ResourceType: entry.ResourceType,
			ResourceID:   entry.ResourceID,
			ResourceIDs:  entry.ResourceIDs,
			Details:      entry.Details,
			IPAddress:    entry.IPAddress,
			UserAgent:    entry.UserAgent,
			CreatedAt:    entry.CreatedAt,
		})
	}
	return resp
}

// StatsResponse is the admin stats payload
type StatsResponse struct {
	PhotoCount      int   `json:"photo_count"`
	CollectionCount int   `json:"collection_count"`
	FolderCount     int   `json:"folder_count"`
	UserCount       int   `json:"user_count"`
	TotalSizeBytes  int64 `json:"total_size_bytes"`
}

// StatsFromResult converts site stats to a StatsResponse
func StatsFromResult(s *admin.SiteStats) StatsResponse {
	return StatsResponse{
		PhotoCount:      s.PhotoCount,
		CollectionCount: s.CollectionCount,
		FolderCount:     s.FolderCount,
		UserCount:       s.UserCount,
		TotalSizeBytes:  s.TotalSizeBytes,
	}
}
