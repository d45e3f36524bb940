package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/courtshot/courtshot/internal/api"
	"github.com/courtshot/courtshot/internal/factory"
	"github.com/courtshot/courtshot/internal/identity"
)

// testServer wires the full router over the memory-mode factory
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	// Plenty of deterministic tokens for logins and share links
	for i := 1; i <= 8; i++ {
		app.MockRandom.URLTokenResults = append(app.MockRandom.URLTokenResults, fmt.Sprintf("tok%d", i))
	}
	app.MockRandom.HexResults = []string{
		strings.Repeat("a", 64),
		strings.Repeat("b", 64),
		strings.Repeat("c", 64),
	}

	seedUser(t, app, "admin-1", "riley@example.com", "Riley Chen", identity.RoleAdmin, "adminpass")
	seedUser(t, app, "user-1", "dana@example.com", "Dana Ortiz", identity.RolePlayer, "hunter22")
	seedUser(t, app, "user-2", "sam@example.com", "Sam Lee", identity.RolePlayer, "letmein99")

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		PhotoService:      app.PhotoService,
		FolderService:     app.FolderService,
		CollectionService: app.CollectionService,
		SharingService:    app.SharingService,
		RosterService:     app.RosterService,
		AdminService:      app.AdminService,
		Recorder:          app.Recorder,
	})

	return &testServer{handler: router, app: app}
}

func seedUser(t *testing.T, app *factory.TestApp, id, email, name, role, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	app.MemoryIdentity.Seed(&identity.UserInfo{
		ID:           id,
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    app.MockClock.Now().Add(-30 * 24 * time.Hour),
	})
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rr, &resp)
	return resp.Error.Code
}

// uploadPhoto drives the sign-then-create flow and returns the photo ID
func (ts *testServer) uploadPhoto(t *testing.T, token, filename string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/uploads/sign",
		map[string]string{"original_filename": filename, "content_type": "image/jpeg"}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var signed struct {
		UploadURL  string `json:"upload_url"`
		StorageKey string `json:"storage_key"`
	}
	decode(t, rr, &signed)
	require.NotEmpty(t, signed.UploadURL)
	require.True(t, strings.HasPrefix(signed.StorageKey, "photos/"))

	rr = ts.request(http.MethodPost, "/api/v1/photos", map[string]any{
		"storage_key":   signed.StorageKey,
		"original_name": filename,
		"content_type":  "image/jpeg",
		"size_bytes":    2048,
	}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var photo struct {
		ID string `json:"id"`
	}
	decode(t, rr, &photo)
	require.NotEmpty(t, photo.ID)
	return photo.ID
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	token := ts.login(t, "dana@example.com", "hunter22")
	assert.Equal(t, "sess_tok1", token)

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var me struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}
	decode(t, rr, &me)
	assert.Equal(t, "user-1", me.ID)
	assert.Equal(t, "dana@example.com", me.Email)
	assert.Equal(t, "Dana Ortiz", me.Name)
	assert.Equal(t, "player", me.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "dana@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rr))

	// Unknown email looks identical to a wrong password
	rr = ts.request(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "nobody@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rr))
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/photos", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/photos", nil, "sess_bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSessionExpiry(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "dana@example.com", "hunter22")

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	ts.app.MockClock.Advance(25 * time.Hour)

	rr = ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPhotoUploadFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "dana@example.com", "hunter22")

	photoID := ts.uploadPhoto(t, token, "Finals Night.JPG")

	rr := ts.request(http.MethodGet, "/api/v1/photos/"+photoID, nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var photo struct {
		OriginalName string `json:"original_name"`
		ImageURL     string `json:"image_url"`
		Uploader     *struct {
			Name string `json:"name"`
		} `json:"uploader"`
	}
	decode(t, rr, &photo)
	assert.Equal(t, "Finals Night.JPG", photo.OriginalName)
	assert.NotEmpty(t, photo.ImageURL)
	require.NotNil(t, photo.Uploader)
	assert.Equal(t, "Dana Ortiz", photo.Uploader.Name)
}

func TestPhotoListEnrichmentIsCached(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "dana@example.com", "hunter22")

	ts.uploadPhoto(t, token, "warmup.jpg")

	listUploader := func() string {
		rr := ts.request(http.MethodGet, "/api/v1/photos", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
		var listed []struct {
			Uploader *struct {
				Name string `json:"name"`
			} `json:"uploader"`
		}
		decode(t, rr, &listed)
		require.Len(t, listed, 1)
		require.NotNil(t, listed[0].Uploader)
		return listed[0].Uploader.Name
	}

	require.Equal(t, "Dana Ortiz", listUploader())

	// Rename in the auth store; the cached snapshot keeps serving until
	// its TTL lapses
	seedUser(t, ts.app, "user-1", "dana@example.com", "Dana Ortiz-Reyes", identity.RolePlayer, "hunter22")
	assert.Equal(t, "Dana Ortiz", listUploader())

	ts.app.MockClock.Advance(6 * time.Minute)
	assert.Equal(t, "Dana Ortiz-Reyes", listUploader())
}

func TestShareLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "dana@example.com", "hunter22")

	photoID := ts.uploadPhoto(t, token, "championship.jpg")

	rr := ts.request(http.MethodPost, "/api/v1/collections",
		map[string]string{"name": "Summer Finals 2025", "description": "Title run"}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var collection struct {
		ID string `json:"id"`
	}
	decode(t, rr, &collection)

	rr = ts.request(http.MethodPost, "/api/v1/collections/"+collection.ID+"/photos",
		map[string]string{"photo_id": photoID}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	days := 7
	rr = ts.request(http.MethodPost, "/api/v1/collections/"+collection.ID+"/share",
		map[string]any{"expires_in_days": days}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var share struct {
		ShareURL  string     `json:"share_url"`
		Token     string     `json:"token"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	decode(t, rr, &share)
	assert.Equal(t, strings.Repeat("a", 64), share.Token)
	assert.Equal(t,
		"https://courtshot.test/shared/dana-ortiz/summer-finals-2025?token="+share.Token,
		share.ShareURL)
	require.NotNil(t, share.ExpiresAt)
	assert.Equal(t, ts.app.MockClock.Now().Add(7*24*time.Hour), share.ExpiresAt.UTC())

	// Anyone with the link can resolve it, no session needed
	rr = ts.request(http.MethodGet, "/api/v1/share/"+share.Token, nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var shared struct {
		Name       string `json:"name"`
		OwnerName  string `json:"owner_name"`
		PhotoCount int    `json:"photo_count"`
		Photos     []struct {
			ID       string `json:"id"`
			ImageURL string `json:"image_url"`
		} `json:"photos"`
	}
	decode(t, rr, &shared)
	assert.Equal(t, "Summer Finals 2025", shared.Name)
	assert.Equal(t, "Dana Ortiz", shared.OwnerName)
	assert.Equal(t, 1, shared.PhotoCount)
	require.Len(t, shared.Photos, 1)
	assert.Equal(t, photoID, shared.Photos[0].ID)
	assert.NotEmpty(t, shared.Photos[0].ImageURL)

	// Still live just before the deadline
	ts.app.MockClock.Advance(7*24*time.Hour - time.Second)
	rr = ts.request(http.MethodGet, "/api/v1/share/"+share.Token, nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	// Gone exactly at the deadline, and distinguishable from never-existed
	ts.app.MockClock.Advance(time.Second)
	rr = ts.request(http.MethodGet, "/api/v1/share/"+share.Token, nil, "")
	assert.Equal(t, http.StatusGone, rr.Code)
	assert.Equal(t, "SHARE_EXPIRED", errorCode(t, rr))
}

func TestShareWithoutBodyHasNoExpiry(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "dana@example.com", "hunter22")

	rr := ts.request(http.MethodPost, "/api/v1/collections",
		map[string]string{"name": "Road Trip"}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var collection struct {
		ID string `json:"id"`
	}
	decode(t, rr, &collection)

	// No body at all still shares, with no expiration
	rr = ts.request(http.MethodPost, "/api/v1/collections/"+collection.ID+"/share", nil, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var share struct {
		Token     string     `json:"token"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	decode(t, rr, &share)
	assert.Len(t, share.Token, 64)
	assert.Nil(t, share.ExpiresAt)

	// A non-positive day count falls back to no expiration too
	rr = ts.request(http.MethodPost, "/api/v1/collections/"+collection.ID+"/share",
		map[string]any{"expires_in_days": -3}, token)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	decode(t, rr, &share)
	assert.Nil(t, share.ExpiresAt)
}

func TestShareTokenErrors(t *testing.T) {
	ts := newTestServer(t)

	// Well-formed but unknown
	rr := ts.request(http.MethodGet, "/api/v1/share/"+strings.Repeat("f", 64), nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "SHARE_NOT_FOUND", errorCode(t, rr))

	// Malformed
	rr = ts.request(http.MethodGet, "/api/v1/share/not-a-token", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_SHARE_TOKEN", errorCode(t, rr))
}

func TestShareRevoke(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t, "dana@example.com", "hunter22")

	rr := ts.request(http.MethodPost, "/api/v1/collections",
		map[string]string{"name": "Road Trip"}, token)
	require.Equal(t, http.StatusCreated, rr.Code)
	var collection struct {
		ID string `json:"id"`
	}
	decode(t, rr, &collection)

	rr = ts.request(http.MethodPost, "/api/v1/collections/"+collection.ID+"/share",
		map[string]any{}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var share struct {
		Token string `json:"token"`
	}
	decode(t, rr, &share)

	rr = ts.request(http.MethodDelete, "/api/v1/collections/"+collection.ID+"/share", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// A revoked token reads as never-existed, not expired
	rr = ts.request(http.MethodGet, "/api/v1/share/"+share.Token, nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "SHARE_NOT_FOUND", errorCode(t, rr))

	// Revoking again is a no-op
	rr = ts.request(http.MethodDelete, "/api/v1/collections/"+collection.ID+"/share", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestCollectionOwnership(t *testing.T) {
	ts := newTestServer(t)
	danaToken := ts.login(t, "dana@example.com", "hunter22")
	samToken := ts.login(t, "sam@example.com", "letmein99")

	rr := ts.request(http.MethodPost, "/api/v1/collections",
		map[string]string{"name": "Private"}, danaToken)
	require.Equal(t, http.StatusCreated, rr.Code)
	var collection struct {
		ID string `json:"id"`
	}
	decode(t, rr, &collection)

	rr = ts.request(http.MethodGet, "/api/v1/collections/"+collection.ID, nil, samToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, rr))

	// A collection that does not exist is a 404 even for non-owners
	rr = ts.request(http.MethodGet, "/api/v1/collections/missing", nil, samToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "COLLECTION_NOT_FOUND", errorCode(t, rr))
}

func TestAdminOnlyRoutes(t *testing.T) {
	ts := newTestServer(t)
	danaToken := ts.login(t, "dana@example.com", "hunter22")
	adminToken := ts.login(t, "riley@example.com", "adminpass")

	rr := ts.request(http.MethodGet, "/api/v1/admin/stats", nil, danaToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/teams",
		map[string]string{"name": "Hawks", "season": "2025"}, danaToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/teams",
		map[string]string{"name": "Hawks", "season": "2025"}, adminToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var team struct {
		ID string `json:"id"`
	}
	decode(t, rr, &team)

	// Roster reads are open to everyone signed in
	rr = ts.request(http.MethodGet, "/api/v1/teams/"+team.ID, nil, danaToken)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminSetRole(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.login(t, "riley@example.com", "adminpass")

	rr := ts.request(http.MethodPatch, "/api/v1/admin/users/user-2/role",
		map[string]string{"role": "admin"}, adminToken)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var user struct {
		Role string `json:"role"`
	}
	decode(t, rr, &user)
	assert.Equal(t, "admin", user.Role)

	rr = ts.request(http.MethodPatch, "/api/v1/admin/users/user-2/role",
		map[string]string{"role": "superuser"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPatch, "/api/v1/admin/users/missing/role",
		map[string]string{"role": "admin"}, adminToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAuditLogEndpoint(t *testing.T) {
	ts := newTestServer(t)
	danaToken := ts.login(t, "dana@example.com", "hunter22")
	adminToken := ts.login(t, "riley@example.com", "adminpass")

	ts.uploadPhoto(t, danaToken, "one.jpg")
	ts.uploadPhoto(t, danaToken, "two.jpg")

	rr := ts.request(http.MethodGet, "/api/v1/admin/audit-logs?page=1&limit=2", nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var page struct {
		Logs []struct {
			Action   string `json:"action"`
			UserName string `json:"user_name"`
		} `json:"logs"`
		Pagination struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	decode(t, rr, &page)
	// Two logins plus two uploads
	assert.Equal(t, 4, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Len(t, page.Logs, 2)

	rr = ts.request(http.MethodGet, "/api/v1/admin/audit-logs?action=PHOTO_UPLOAD", nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &page)
	assert.Equal(t, 2, page.Pagination.Total)
	for _, entry := range page.Logs {
		assert.Equal(t, "PHOTO_UPLOAD", entry.Action)
		assert.Equal(t, "Dana Ortiz", entry.UserName)
	}

	rr = ts.request(http.MethodGet, "/api/v1/admin/audit-logs?page=0", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Only recognized actions may be filtered on
	rr = ts.request(http.MethodGet, "/api/v1/admin/audit-logs?action=NOT_AN_ACTION", nil, adminToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rr))
}

func TestAdminStats(t *testing.T) {
	ts := newTestServer(t)
	danaToken := ts.login(t, "dana@example.com", "hunter22")
	adminToken := ts.login(t, "riley@example.com", "adminpass")

	ts.uploadPhoto(t, danaToken, "a.jpg")
	ts.uploadPhoto(t, danaToken, "b.jpg")

	rr := ts.request(http.MethodGet, "/api/v1/admin/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var stats struct {
		PhotoCount     int   `json:"photo_count"`
		UserCount      int   `json:"user_count"`
		TotalSizeBytes int64 `json:"total_size_bytes"`
	}
	decode(t, rr, &stats)
	assert.Equal(t, 2, stats.PhotoCount)
	assert.Equal(t, 3, stats.UserCount)
	assert.Equal(t, int64(4096), stats.TotalSizeBytes)
}
