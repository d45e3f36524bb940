package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/courtshot/courtshot/internal/api/handler"
	"github.com/courtshot/courtshot/internal/api/middleware"
	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/services/admin"
	"github.com/courtshot/courtshot/internal/services/auth"
	"github.com/courtshot/courtshot/internal/services/collections"
	"github.com/courtshot/courtshot/internal/services/folders"
	"github.com/courtshot/courtshot/internal/services/photos"
	"github.com/courtshot/courtshot/internal/services/roster"
	"github.com/courtshot/courtshot/internal/services/sharing"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	PhotoService      *photos.Service
	FolderService     *folders.Service
	CollectionService *collections.Service
	SharingService    *sharing.Service
	RosterService     *roster.Service
	AdminService      *admin.Service
	Recorder          *audit.Recorder
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	uploadsHandler := handler.NewUploadsHandler(cfg.PhotoService)
	photosHandler := handler.NewPhotosHandler(cfg.PhotoService)
	foldersHandler := handler.NewFoldersHandler(cfg.FolderService)
	collectionsHandler := handler.NewCollectionsHandler(cfg.CollectionService, cfg.SharingService)
	shareHandler := handler.NewShareHandler(cfg.SharingService)
	rosterHandler := handler.NewRosterHandler(cfg.RosterService)
	adminHandler := handler.NewAdminHandler(cfg.AdminService, cfg.Recorder)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminMiddleware := middleware.AdminOnly()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Public routes
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/share/{token}", shareHandler.Resolve).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware)

	authed.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	authed.HandleFunc("/uploads/sign", uploadsHandler.Sign).Methods(http.MethodPost)

	authed.HandleFunc("/photos", photosHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/photos", photosHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/photos/bulk-delete", photosHandler.BulkDelete).Methods(http.MethodPost)
	authed.HandleFunc("/photos/{id}", photosHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/photos/{id}", photosHandler.Update).Methods(http.MethodPatch)
	authed.HandleFunc("/photos/{id}", photosHandler.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/photos/{id}/tags/players", photosHandler.AddPlayerTag).Methods(http.MethodPost)
	authed.HandleFunc("/photos/{id}/tags/players/bulk", photosHandler.BulkAddPlayerTags).Methods(http.MethodPost)
	authed.HandleFunc("/photos/{id}/tags/players/{player_id}", photosHandler.RemovePlayerTag).Methods(http.MethodDelete)
	authed.HandleFunc("/photos/{id}/tags/teams", photosHandler.AddTeamTag).Methods(http.MethodPost)
	authed.HandleFunc("/photos/{id}/tags/teams/bulk", photosHandler.BulkAddTeamTags).Methods(http.MethodPost)
	authed.HandleFunc("/photos/{id}/tags/teams/{team_id}", photosHandler.RemoveTeamTag).Methods(http.MethodDelete)

	authed.HandleFunc("/folders", foldersHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/folders", foldersHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/folders/{id}", foldersHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/folders/{id}", foldersHandler.Rename).Methods(http.MethodPatch)
	authed.HandleFunc("/folders/{id}", foldersHandler.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/collections", collectionsHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/collections", collectionsHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/collections/{id}", collectionsHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/collections/{id}", collectionsHandler.Update).Methods(http.MethodPatch)
	authed.HandleFunc("/collections/{id}", collectionsHandler.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/collections/{id}/photos", collectionsHandler.ListPhotos).Methods(http.MethodGet)
	authed.HandleFunc("/collections/{id}/photos", collectionsHandler.AddPhoto).Methods(http.MethodPost)
	authed.HandleFunc("/collections/{id}/photos/{photo_id}", collectionsHandler.RemovePhoto).Methods(http.MethodDelete)
	authed.HandleFunc("/collections/{id}/share", collectionsHandler.Share).Methods(http.MethodPost)
	authed.HandleFunc("/collections/{id}/share", collectionsHandler.Revoke).Methods(http.MethodDelete)

	// Roster reads are open to any authenticated user; mutations are
	// admin-only below
	authed.HandleFunc("/players", rosterHandler.ListPlayers).Methods(http.MethodGet)
	authed.HandleFunc("/players/{id}", rosterHandler.GetPlayer).Methods(http.MethodGet)
	authed.HandleFunc("/teams", rosterHandler.ListTeams).Methods(http.MethodGet)
	authed.HandleFunc("/teams/{id}", rosterHandler.GetTeam).Methods(http.MethodGet)

	adminOnly := authed.NewRoute().Subrouter()
	adminOnly.Use(adminMiddleware)

	adminOnly.HandleFunc("/players", rosterHandler.CreatePlayer).Methods(http.MethodPost)
	adminOnly.HandleFunc("/players/{id}", rosterHandler.UpdatePlayer).Methods(http.MethodPut)
	adminOnly.HandleFunc("/players/{id}", rosterHandler.DeletePlayer).Methods(http.MethodDelete)
	adminOnly.HandleFunc("/teams", rosterHandler.CreateTeam).Methods(http.MethodPost)
	adminOnly.HandleFunc("/teams/{id}", rosterHandler.UpdateTeam).Methods(http.MethodPut)
	adminOnly.HandleFunc("/teams/{id}", rosterHandler.DeleteTeam).Methods(http.MethodDelete)

	adminOnly.HandleFunc("/admin/users", adminHandler.ListUsers).Methods(http.MethodGet)
	adminOnly.HandleFunc("/admin/users/{id}/role", adminHandler.SetRole).Methods(http.MethodPatch)
	adminOnly.HandleFunc("/admin/audit-logs", adminHandler.AuditLogs).Methods(http.MethodGet)
	adminOnly.HandleFunc("/admin/stats", adminHandler.Stats).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
