package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodePhotoNotFound      = "PHOTO_NOT_FOUND"
	CodeFolderNotFound     = "FOLDER_NOT_FOUND"
	CodeFolderNotEmpty     = "FOLDER_NOT_EMPTY"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeTeamNotFound       = "TEAM_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeCollectionNotFound = "COLLECTION_NOT_FOUND"
	CodeShareNotFound      = "SHARE_NOT_FOUND"
	CodeShareExpired       = "SHARE_EXPIRED"
	CodeInvalidShareToken  = "INVALID_SHARE_TOKEN"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPhotoNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePhotoNotFound, "Photo not found"}}
	case errors.Is(err, model.ErrFolderNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeFolderNotFound, "Folder not found"}}
	case errors.Is(err, model.ErrFolderNotEmpty):
		return &httpError{http.StatusConflict, APIError{CodeFolderNotEmpty, "Folder still contains photos or subfolders"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrCollectionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCollectionNotFound, "Collection not found"}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "You do not own this resource"}}
	case errors.Is(err, model.ErrShareNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeShareNotFound, "Share link not found"}}
	// Expired links are 410, not 404: the link used to work and the
	// client should stop retrying it
	case errors.Is(err, model.ErrShareExpired):
		return &httpError{http.StatusGone, APIError{CodeShareExpired, "Share link has expired"}}
	case errors.Is(err, model.ErrInvalidToken):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidShareToken, "Malformed share token"}}
	case errors.Is(err, model.ErrAlreadyExists):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyExists, "Record already exists"}}
	case errors.Is(err, model.ErrInvalidRole):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Role must be admin or player"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Admin access required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
