package model

import "time"

// AuditAction identifies the kind of mutating operation an audit entry
// records. The set is closed; new actions require a new constant.
type AuditAction string

const (
	ActionPhotoUpload     AuditAction = "PHOTO_UPLOAD"
	ActionPhotoDelete     AuditAction = "PHOTO_DELETE"
	ActionPhotoBulkDelete AuditAction = "PHOTO_BULK_DELETE"

	ActionPlayerTagCreate     AuditAction = "PLAYER_TAG_CREATE"
	ActionPlayerTagBulkCreate AuditAction = "PLAYER_TAG_BULK_CREATE"
	ActionPlayerTagDelete     AuditAction = "PLAYER_TAG_DELETE"

	ActionTeamTagCreate     AuditAction = "TEAM_TAG_CREATE"
	ActionTeamTagBulkCreate AuditAction = "TEAM_TAG_BULK_CREATE"
	ActionTeamTagDelete     AuditAction = "TEAM_TAG_DELETE"

	ActionCollectionPhotoAdd    AuditAction = "COLLECTION_PHOTO_ADD"
	ActionCollectionPhotoRemove AuditAction = "COLLECTION_PHOTO_REMOVE"
	ActionCollectionShareCreate AuditAction = "COLLECTION_SHARE_CREATE"
	ActionCollectionShareRevoke AuditAction = "COLLECTION_SHARE_REVOKE"

	ActionUserLogin       AuditAction = "USER_LOGIN"
	ActionUserLoginFailed AuditAction = "USER_LOGIN_FAILED"
)

// ValidAuditActions returns all recognized audit action names
func ValidAuditActions() []AuditAction {
	return []AuditAction{
		ActionPhotoUpload, ActionPhotoDelete, ActionPhotoBulkDelete,
		ActionPlayerTagCreate, ActionPlayerTagBulkCreate, ActionPlayerTagDelete,
		ActionTeamTagCreate, ActionTeamTagBulkCreate, ActionTeamTagDelete,
		ActionCollectionPhotoAdd, ActionCollectionPhotoRemove,
		ActionCollectionShareCreate, ActionCollectionShareRevoke,
		ActionUserLogin, ActionUserLoginFailed,
	}
}

// AuditLog is an immutable record of one mutating action. Actor fields
// are a snapshot taken at write time, independent of later identity
// changes. Entries are never updated or deleted by the application.
type AuditLog struct {
	ID           string
	Action       AuditAction
	UserID       string
	UserName     string
	UserRole     string
	ResourceType string
	ResourceID   string
	ResourceIDs  []string // populated for bulk actions
	Details      map[string]any
	IPAddress    string
	UserAgent    string
	CreatedAt    time.Time
}

// AuditFilter narrows an audit query. Every field is optional and the
// provided fields combine with logical AND. Date bounds are inclusive.
type AuditFilter struct {
	Action       AuditAction
	ResourceType string
	UserID       string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	Limit        int
}
