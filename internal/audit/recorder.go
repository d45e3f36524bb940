// Package audit appends immutable records of mutating operations and
// serves the admin's filtered, paginated view of them.
package audit

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/courtshot/courtshot/internal/dependencies/clock"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/storage"
)

// Actor is a snapshot of who performed an action, captured at write
// time. Later identity changes do not rewrite history.
type Actor struct {
	ID   string
	Name string
	Role string
}

// Origin is where an action came from
type Origin struct {
	IPAddress string
	UserAgent string
}

// OriginFromRequest extracts the client IP and user agent, honoring
// proxy headers the way the deployment fronts the service
func OriginFromRequest(r *http.Request) Origin {
	if r == nil {
		return Origin{}
	}
	ip := r.Header.Get("X-Forwarded-For")
	if ip != "" {
		// First hop in the chain is the client
		if idx := strings.Index(ip, ","); idx >= 0 {
			ip = ip[:idx]
		}
		ip = strings.TrimSpace(ip)
	}
	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return Origin{
		IPAddress: ip,
		UserAgent: r.Header.Get("User-Agent"),
	}
}

// Event is one auditable action
type Event struct {
	Action       model.AuditAction
	Actor        Actor
	ResourceType string
	ResourceID   string
	ResourceIDs  []string
	Details      map[string]any
	Origin       Origin
}

// Recorder writes audit entries and answers audit queries
type Recorder struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewRecorder creates a Recorder
func NewRecorder(storage storage.Storage, clk clock.Clock, logger *slog.Logger) *Recorder {
	return &Recorder{
		storage: storage,
		clock:   clk,
		logger:  logger,
	}
}

// Record appends one audit entry. It is fire-and-forget: a failed write
// is logged and swallowed so audit trouble can never fail or roll back
// the operation being audited.
func (r *Recorder) Record(ctx context.Context, event Event) {
	entry := &model.AuditLog{
		ID:           uuid.NewString(),
		Action:       event.Action,
		UserID:       event.Actor.ID,
		UserName:     event.Actor.Name,
		UserRole:     event.Actor.Role,
		ResourceType: event.ResourceType,
		ResourceID:   event.ResourceID,
		ResourceIDs:  event.ResourceIDs,
		Details:      event.Details,
		IPAddress:    event.Origin.IPAddress,
		UserAgent:    event.Origin.UserAgent,
		CreatedAt:    r.clock.Now(),
	}

	if err := r.storage.SaveAuditLog(ctx, entry); err != nil {
		r.logger.Error("failed to write audit log",
			slog.String("action", string(event.Action)),
			slog.String("resource_type", event.ResourceType),
			slog.String("error", err.Error()),
		)
	}
}

// Page is one page of audit query results
type Page struct {
	Entries    []*model.AuditLog
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// DefaultPageSize is the audit query page size when the caller does not
// specify one
const DefaultPageSize = 50

// Query returns audit entries matching the filter, newest first, with
// pagination metadata
func (r *Recorder) Query(ctx context.Context, filter model.AuditFilter) (*Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageSize
	}

	entries, total, err := r.storage.QueryAuditLogs(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	return &Page{
		Entries:    entries,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
