package handler

import (
	"encoding/json"
	"net/http"

	"github.com/courtshot/courtshot/internal/api/request"
	"github.com/courtshot/courtshot/internal/api/response"
	"github.com/courtshot/courtshot/internal/services/photos"
)

// UploadsHandler issues presigned upload URLs
type UploadsHandler struct {
	photoService *photos.Service
}

// NewUploadsHandler creates a new uploads handler
func NewUploadsHandler(photoService *photos.Service) *UploadsHandler {
	return &UploadsHandler{photoService: photoService}
}

// Sign handles POST /api/v1/uploads/sign
func (h *UploadsHandler) Sign(w http.ResponseWriter, r *http.Request) {
	var req request.SignUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.OriginalFilename == "" {
		WriteError(w, NewInvalidRequestError("original_filename is required"))
		return
	}
	if req.ContentType == "" {
		WriteError(w, NewInvalidRequestError("content_type is required"))
		return
	}

	signed, err := h.photoService.SignUpload(r.Context(), req.OriginalFilename, req.ContentType)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SignedUploadResponse{
		UploadURL:  signed.UploadURL,
		StorageKey: signed.StorageKey,
	})
}
