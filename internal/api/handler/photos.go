package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/courtshot/courtshot/internal/api/middleware"
	"github.com/courtshot/courtshot/internal/api/request"
	"github.com/courtshot/courtshot/internal/api/response"
	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/services/photos"
)

const dateLayout = "2006-01-02"

// PhotosHandler handles photo CRUD and tagging endpoints
type PhotosHandler struct {
	photoService *photos.Service
}

// NewPhotosHandler creates a new photos handler
func NewPhotosHandler(photoService *photos.Service) *PhotosHandler {
	return &PhotosHandler{photoService: photoService}
}

// List handles GET /api/v1/photos
func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePhotoFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	listed, err := h.photoService.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.PhotoResponse, 0, len(listed))
	for _, p := range listed {
		result = append(result, response.PhotoFromEnriched(p))
	}
	response.JSON(w, http.StatusOK, result)
}

// parsePhotoFilter builds a PhotoFilter from query parameters. Multi-id
// parameters are comma separated. Dates are YYYY-MM-DD with the end
// date extended to the end of its day so single-day ranges work.
func parsePhotoFilter(r *http.Request) (model.PhotoFilter, error) {
	var filter model.PhotoFilter
	q := r.URL.Query()

	for _, id := range splitIDs(q.Get("playerIds")) {
		filter.PlayerIDs = append(filter.PlayerIDs, model.PlayerID(id))
	}
	for _, id := range splitIDs(q.Get("teamIds")) {
		filter.TeamIDs = append(filter.TeamIDs, model.TeamID(id))
	}
	filter.UploaderID = q.Get("uploaderId")
	if v := q.Get("folderId"); v != "" {
		id := model.FolderID(v)
		filter.FolderID = &id
	}
	filter.NoFolder = q.Get("noFolder") == "true"

	if v := q.Get("startDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, NewInvalidRequestError("startDate must be YYYY-MM-DD")
		}
		filter.StartDate = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return filter, NewInvalidRequestError("endDate must be YYYY-MM-DD")
		}
		endOfDay := t.Add(24*time.Hour - time.Millisecond)
		filter.EndDate = &endOfDay
	}

	return filter, nil
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

// Create handles POST /api/v1/photos
func (h *PhotosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.StorageKey == "" {
		WriteError(w, NewInvalidRequestError("storage_key is required"))
		return
	}
	if req.OriginalName == "" {
		WriteError(w, NewInvalidRequestError("original_name is required"))
		return
	}

	params := photos.CreateParams{
		StorageKey:   req.StorageKey,
		ThumbnailKey: req.ThumbnailKey,
		OriginalName: req.OriginalName,
		ContentType:  req.ContentType,
		SizeBytes:    req.SizeBytes,
		TakenAt:      req.TakenAt,
	}
	if req.FolderID != nil && *req.FolderID != "" {
		id := model.FolderID(*req.FolderID)
		params.FolderID = &id
	}

	photo, err := h.photoService.Create(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r), params)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PhotoFromModel(photo))
}

// Get handles GET /api/v1/photos/{id}
func (h *PhotosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PhotoID(mux.Vars(r)["id"])

	photo, err := h.photoService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PhotoFromEnriched(photo))
}

// Update handles PATCH /api/v1/photos/{id}
func (h *PhotosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.PhotoID(mux.Vars(r)["id"])

	var req request.UpdatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	params := photos.UpdateParams{TakenAt: req.TakenAt}
	if req.FolderID != nil {
		if *req.FolderID == "" {
			params.ClearFolder = true
		} else {
			folderID := model.FolderID(*req.FolderID)
			params.FolderID = &folderID
		}
	}

	photo, err := h.photoService.Update(r.Context(), id, params)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PhotoFromModel(photo))
}

// Delete handles DELETE /api/v1/photos/{id}
func (h *PhotosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PhotoID(mux.Vars(r)["id"])

	if err := h.photoService.Delete(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// BulkDelete handles POST /api/v1/photos/bulk-delete
func (h *PhotosHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req request.BulkDeletePhotosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.PhotoIDs) == 0 {
		WriteError(w, NewInvalidRequestError("photo_ids is required"))
		return
	}

	ids := make([]model.PhotoID, 0, len(req.PhotoIDs))
	for _, id := range req.PhotoIDs {
		ids = append(ids, model.PhotoID(id))
	}

	deleted, err := h.photoService.BulkDelete(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r), ids)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// AddPlayerTag handles POST /api/v1/photos/{id}/tags/players
func (h *PhotosHandler) AddPlayerTag(w http.ResponseWriter, r *http.Request) {
	photoID := model.PhotoID(mux.Vars(r)["id"])

	var req request.AddPlayerTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	err := h.photoService.AddPlayerTag(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r),
		photoID, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"status": "tagged"})
}

// BulkAddPlayerTags handles POST /api/v1/photos/{id}/tags/players/bulk
func (h *PhotosHandler) BulkAddPlayerTags(w http.ResponseWriter, r *http.Request) {
	photoID := model.PhotoID(mux.Vars(r)["id"])

	var req request.BulkPlayerTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.PlayerIDs) == 0 {
		WriteError(w, NewInvalidRequestError("player_ids is required"))
		return
	}

	ids := make([]model.PlayerID, 0, len(req.PlayerIDs))
	for _, id := range req.PlayerIDs {
		ids = append(ids, model.PlayerID(id))
	}

	added, err := h.photoService.BulkAddPlayerTags(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r), photoID, ids)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]int{"added": added})
}

// RemovePlayerTag handles DELETE /api/v1/photos/{id}/tags/players/{player_id}
func (h *PhotosHandler) RemovePlayerTag(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	photoID := model.PhotoID(vars["id"])
	playerID := model.PlayerID(vars["player_id"])

	err := h.photoService.RemovePlayerTag(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r), photoID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// AddTeamTag handles POST /api/v1/photos/{id}/tags/teams
func (h *PhotosHandler) AddTeamTag(w http.ResponseWriter, r *http.Request) {
	photoID := model.PhotoID(mux.Vars(r)["id"])

	var req request.AddTeamTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.TeamID == "" {
		WriteError(w, NewInvalidRequestError("team_id is required"))
		return
	}

	err := h.photoService.AddTeamTag(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r),
		photoID, model.TeamID(req.TeamID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"status": "tagged"})
}

// BulkAddTeamTags handles POST /api/v1/photos/{id}/tags/teams/bulk
func (h *PhotosHandler) BulkAddTeamTags(w http.ResponseWriter, r *http.Request) {
	photoID := model.PhotoID(mux.Vars(r)["id"])

	var req request.BulkTeamTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.TeamIDs) == 0 {
		WriteError(w, NewInvalidRequestError("team_ids is required"))
		return
	}

	ids := make([]model.TeamID, 0, len(req.TeamIDs))
	for _, id := range req.TeamIDs {
		ids = append(ids, model.TeamID(id))
	}

	added, err := h.photoService.BulkAddTeamTags(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r), photoID, ids)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]int{"added": added})
}

// RemoveTeamTag handles DELETE /api/v1/photos/{id}/tags/teams/{team_id}
func (h *PhotosHandler) RemoveTeamTag(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	photoID := model.PhotoID(vars["id"])
	teamID := model.TeamID(vars["team_id"])

	err := h.photoService.RemoveTeamTag(r.Context(), middleware.Actor(r), audit.OriginFromRequest(r), photoID, teamID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
