package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtshot/courtshot/internal/api/response"
	"github.com/courtshot/courtshot/internal/services/sharing"
)

// ShareHandler serves the public, unauthenticated share view
type ShareHandler struct {
	sharingService *sharing.Service
}

// NewShareHandler creates a new share handler
func NewShareHandler(sharingService *sharing.Service) *ShareHandler {
	return &ShareHandler{sharingService: sharingService}
}

// Resolve handles GET /api/v1/share/{token}
func (h *ShareHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	shared, err := h.sharingService.Resolve(r.Context(), token)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SharedCollectionFromResult(shared))
}
