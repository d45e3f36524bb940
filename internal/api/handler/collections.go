package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtshot/courtshot/internal/api/middleware"
	"github.com/courtshot/courtshot/internal/api/request"
	"github.com/courtshot/courtshot/internal/api/response"
	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/services/collections"
	"github.com/courtshot/courtshot/internal/services/sharing"
)

// CollectionsHandler handles collection endpoints, including the share
// lifecycle
type CollectionsHandler struct {
	collectionService *collections.Service
	sharingService    *sharing.Service
}

// NewCollectionsHandler creates a new collections handler
func NewCollectionsHandler(collectionService *collections.Service, sharingService *sharing.Service) *CollectionsHandler {
	return &CollectionsHandler{
		collectionService: collectionService,
		sharingService:    sharingService,
	}
}

// List handles GET /api/v1/collections
func (h *CollectionsHandler) List(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())

	listed, err := h.collectionService.List(r.Context(), session.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.CollectionResponse, 0, len(listed))
	for _, c := range listed {
		result = append(result, response.CollectionFromModel(c))
	}
	response.JSON(w, http.StatusOK, result)
}

// Create handles POST /api/v1/collections
func (h *CollectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	session := middleware.MustGetSession(r.Context())
	collection, err := h.collectionService.Create(r.Context(), session.UserID, req.Name, req.Description)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CollectionFromModel(collection))
}

// Get handles GET /api/v1/collections/{id}
func (h *CollectionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.CollectionID(mux.Vars(r)["id"])
	session := middleware.MustGetSession(r.Context())

	collection, err := h.collectionService.Get(r.Context(), id, session.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CollectionFromModel(collection))
}

// Update handles PATCH /api/v1/collections/{id}
func (h *CollectionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.CollectionID(mux.Vars(r)["id"])

	var req request.CollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	session := middleware.MustGetSession(r.Context())
	collection, err := h.collectionService.Update(r.Context(), id, session.UserID, req.Name, req.Description)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CollectionFromModel(collection))
}

// Delete handles DELETE /api/v1/collections/{id}
func (h *CollectionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.CollectionID(mux.Vars(r)["id"])
	session := middleware.MustGetSession(r.Context())

	if err := h.collectionService.Delete(r.Context(), id, session.UserID); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// ListPhotos handles GET /api/v1/collections/{id}/photos
func (h *CollectionsHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	id := model.CollectionID(mux.Vars(r)["id"])
	session := middleware.MustGetSession(r.Context())

	listed, err := h.collectionService.ListPhotos(r.Context(), id, session.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.PhotoResponse, 0, len(listed))
	for _, p := range listed {
		result = append(result, response.PhotoFromModel(p))
	}
	response.JSON(w, http.StatusOK, result)
}

// AddPhoto handles POST /api/v1/collections/{id}/photos
func (h *CollectionsHandler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	id := model.CollectionID(mux.Vars(r)["id"])

	var req request.AddCollectionPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PhotoID == "" {
		WriteError(w, NewInvalidRequestError("photo_id is required"))
		return
	}

	err := h.collectionService.AddPhoto(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r),
		id, model.PhotoID(req.PhotoID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// RemovePhoto handles DELETE /api/v1/collections/{id}/photos/{photo_id}
func (h *CollectionsHandler) RemovePhoto(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.CollectionID(vars["id"])
	photoID := model.PhotoID(vars["photo_id"])

	err := h.collectionService.RemovePhoto(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r), id, photoID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Share handles POST /api/v1/collections/{id}/share
func (h *CollectionsHandler) Share(w http.ResponseWriter, r *http.Request) {
	id := model.CollectionID(mux.Vars(r)["id"])

	// A missing or unparsable body means "share with no expiry", as
	// does a non-positive day count.
	var req request.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = request.ShareRequest{}
	}
	if req.ExpiresInDays != nil && *req.ExpiresInDays <= 0 {
		req.ExpiresInDays = nil
	}

	result, err := h.sharingService.Share(r.Context(), id, middleware.Actor(r), audit.OriginFromRequest(r), req.ExpiresInDays)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ShareResponse{
		ShareURL:  result.ShareURL,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Revoke handles DELETE /api/v1/collections/{id}/share
func (h *CollectionsHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id := model.CollectionID(mux.Vars(r)["id"])

	err := h.sharingService.Revoke(r.Context(), id, middleware.Actor(r), audit.OriginFromRequest(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
