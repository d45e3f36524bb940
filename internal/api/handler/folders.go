package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtshot/courtshot/internal/api/middleware"
	"github.com/courtshot/courtshot/internal/api/request"
	"github.com/courtshot/courtshot/internal/api/response"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/services/folders"
)

// FoldersHandler handles folder endpoints
type FoldersHandler struct {
	folderService *folders.Service
}

// NewFoldersHandler creates a new folders handler
func NewFoldersHandler(folderService *folders.Service) *FoldersHandler {
	return &FoldersHandler{folderService: folderService}
}

// List handles GET /api/v1/folders
func (h *FoldersHandler) List(w http.ResponseWriter, r *http.Request) {
	listed, err := h.folderService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.FolderResponse, 0, len(listed))
	for _, f := range listed {
		result = append(result, response.FolderFromModel(f))
	}
	response.JSON(w, http.StatusOK, result)
}

// Create handles POST /api/v1/folders
func (h *FoldersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	var parentID *model.FolderID
	if req.ParentID != nil && *req.ParentID != "" {
		id := model.FolderID(*req.ParentID)
		parentID = &id
	}

	session := middleware.MustGetSession(r.Context())
	folder, err := h.folderService.Create(r.Context(), req.Name, parentID, session.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.FolderFromModel(folder))
}

// Get handles GET /api/v1/folders/{id}
func (h *FoldersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.FolderID(mux.Vars(r)["id"])

	folder, err := h.folderService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.FolderFromModel(folder))
}

// Rename handles PATCH /api/v1/folders/{id}
func (h *FoldersHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := model.FolderID(mux.Vars(r)["id"])

	var req request.RenameFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	folder, err := h.folderService.Rename(r.Context(), id, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.FolderFromModel(folder))
}

// Delete handles DELETE /api/v1/folders/{id}
func (h *FoldersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.FolderID(mux.Vars(r)["id"])

	if err := h.folderService.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
