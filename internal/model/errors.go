package model

import "errors"

// Common errors used across the application
var (
	// Photo errors
	ErrPhotoNotFound = errors.New("photo not found")

	// Folder errors
	ErrFolderNotFound = errors.New("folder not found")
	ErrFolderNotEmpty = errors.New("folder is not empty")

	// Roster errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")

	// Collection errors
	ErrCollectionNotFound = errors.New("collection not found")
	ErrNotOwner           = errors.New("caller does not own this resource")

	// Share errors
	ErrShareNotFound = errors.New("share link not found")
	ErrShareExpired  = errors.New("share link has expired")
	ErrInvalidToken  = errors.New("invalid share token")

	// Generic store errors
	ErrAlreadyExists = errors.New("record already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidRole   = errors.New("invalid role")
)
