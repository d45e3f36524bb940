package handler

import (
	"net/http"

	"github.com/courtshot/courtshot/internal/api/apierr"
)

// WriteError renders err using the API error envelope.
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError is a 400 with the given message.
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError is a 401.
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}
