package handler

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/courtshot/courtshot/internal/api/request"
	"github.com/courtshot/courtshot/internal/api/response"
	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/services/admin"
)

// AdminHandler handles the admin-only endpoints
type AdminHandler struct {
	adminService *admin.Service
	recorder     *audit.Recorder
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *admin.Service, recorder *audit.Recorder) *AdminHandler {
	return &AdminHandler{adminService: adminService, recorder: recorder}
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, response.UserFromModel(u))
	}
	response.JSON(w, http.StatusOK, result)
}

// SetRole handles PATCH /api/v1/admin/users/{id}/role
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req request.SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Role == "" {
		WriteError(w, NewInvalidRequestError("role is required"))
		return
	}

	user, err := h.adminService.SetRole(r.Context(), id, req.Role)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// AuditLogs handles GET /api/v1/admin/audit-logs
func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAuditFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	page, err := h.recorder.Query(r.Context(), filter)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AuditPageFromResult(page))
}

// parseAuditFilter builds an AuditFilter from query parameters. The
// end date extends to the end of its day so single-day ranges work.
func parseAuditFilter(r *http.Request) (model.AuditFilter, error) {
	var filter model.AuditFilter
	q := r.URL.Query()

	if v := q.Get("action"); v != "" {
		action := model.AuditAction(v)
		if !slices.Contains(model.ValidAuditActions(), action) {
			return filter, NewInvalidRequestError("unknown action: " + v)
		}
		filter.Action = action
	}
	filter.ResourceType = q.Get("resourceType")
	filter.UserID = q.Get("userId")

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

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filter, NewInvalidRequestError("page must be a positive integer")
		}
		filter.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return filter, NewInvalidRequestError("limit must be a positive integer")
		}
		filter.Limit = limit
	}

	return filter, nil
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StatsFromResult(stats))
}
