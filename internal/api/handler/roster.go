package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtshot/courtshot/internal/api/request"
	"github.com/courtshot/courtshot/internal/api/response"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/services/roster"
)

// RosterHandler handles player and team endpoints
type RosterHandler struct {
	rosterService *roster.Service
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosterService *roster.Service) *RosterHandler {
	return &RosterHandler{rosterService: rosterService}
}

func playerParamsFromRequest(req request.PlayerRequest) roster.PlayerParams {
	params := roster.PlayerParams{
		Name:         req.Name,
		JerseyNumber: req.JerseyNumber,
	}
	if req.TeamID != nil && *req.TeamID != "" {
		id := model.TeamID(*req.TeamID)
		params.TeamID = &id
	}
	return params
}

// ListPlayers handles GET /api/v1/players
func (h *RosterHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	listed, err := h.rosterService.ListPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.PlayerResponse, 0, len(listed))
	for _, p := range listed {
		result = append(result, response.PlayerFromModel(p))
	}
	response.JSON(w, http.StatusOK, result)
}

// CreatePlayer handles POST /api/v1/players
func (h *RosterHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	player, err := h.rosterService.CreatePlayer(r.Context(), playerParamsFromRequest(req))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// GetPlayer handles GET /api/v1/players/{id}
func (h *RosterHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	player, err := h.rosterService.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// UpdatePlayer handles PUT /api/v1/players/{id}
func (h *RosterHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.PlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	player, err := h.rosterService.UpdatePlayer(r.Context(), id, playerParamsFromRequest(req))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// DeletePlayer handles DELETE /api/v1/players/{id}
func (h *RosterHandler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.rosterService.DeletePlayer(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// ListTeams handles GET /api/v1/teams
func (h *RosterHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	listed, err := h.rosterService.ListTeams(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.TeamResponse, 0, len(listed))
	for _, t := range listed {
		result = append(result, response.TeamFromModel(t))
	}
	response.JSON(w, http.StatusOK, result)
}

// CreateTeam handles POST /api/v1/teams
func (h *RosterHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req request.TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	team, err := h.rosterService.CreateTeam(r.Context(), req.Name, req.Season)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.TeamFromModel(team))
}

// GetTeam handles GET /api/v1/teams/{id}
func (h *RosterHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id := model.TeamID(mux.Vars(r)["id"])

	team, err := h.rosterService.GetTeam(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamFromModel(team))
}

// UpdateTeam handles PUT /api/v1/teams/{id}
func (h *RosterHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id := model.TeamID(mux.Vars(r)["id"])

	var req request.TeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	team, err := h.rosterService.UpdateTeam(r.Context(), id, req.Name, req.Season)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TeamFromModel(team))
}

// DeleteTeam handles DELETE /api/v1/teams/{id}
func (h *RosterHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id := model.TeamID(mux.Vars(r)["id"])

	if err := h.rosterService.DeleteTeam(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
