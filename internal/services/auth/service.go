// Package auth handles login, logout and session validation against
// the identity store.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/dependencies/clock"
	"github.com/courtshot/courtshot/internal/dependencies/random"
	"github.com/courtshot/courtshot/internal/identity"
	"github.com/courtshot/courtshot/internal/model"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// Service handles authentication and session management
type Service struct {
	users    identity.Store
	sessions SessionStore
	recorder *audit.Recorder
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	sessionDuration time.Duration
}

// New creates a new auth Service
func New(users identity.Store, sessions SessionStore, recorder *audit.Recorder,
	clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		users:           users,
		sessions:        sessions,
		recorder:        recorder,
		clock:           clk,
		random:          rnd,
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
	}
}

// Login verifies credentials and creates a session. Unknown email and
// wrong password are indistinguishable to the caller; both are audited
// as failed logins.
func (s *Service) Login(ctx context.Context, email, password string, origin audit.Origin) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.recordLoginFailure(ctx, email, origin)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordLoginFailure(ctx, email, origin)
		return nil, ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, s.clock.Now()); err != nil {
		// Login still succeeds; last-login is advisory
		s.logger.Warn("failed to touch last login",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	session, err := s.createSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionUserLogin,
		Actor:        audit.Actor{ID: user.ID, Name: user.Name, Role: user.Role},
		ResourceType: "User",
		ResourceID:   user.ID,
		Origin:       origin,
	})

	return session, nil
}

func (s *Service) recordLoginFailure(ctx context.Context, email string, origin audit.Origin) {
	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionUserLoginFailed,
		Actor:        audit.Actor{Name: email},
		ResourceType: "User",
		Details:      map[string]any{"email": email},
		Origin:       origin,
	})
}

// ValidateSession checks a session token and returns the session
func (s *Service) ValidateSession(ctx context.Context, token string) (*Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidSession
	}

	if !s.clock.Now().Before(session.ExpiresAt) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.logger.Warn("failed to delete expired session", slog.String("error", err.Error()))
		}
		return nil, ErrInvalidSession
	}

	return session, nil
}

// Logout invalidates a session. Logging out an unknown token succeeds
// silently.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions(ctx context.Context) {
	removed, err := s.sessions.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		s.logger.Warn("failed to clean expired sessions", slog.String("error", err.Error()))
		return
	}
	if removed > 0 {
		s.logger.Debug("cleaned expired sessions", slog.Int("removed", removed))
	}
}

func (s *Service) createSession(ctx context.Context, user *identity.UserInfo) (*Session, error) {
	now := s.clock.Now()
	session := &Session{
		Token:     "sess_" + s.random.URLToken(16),
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		UserRole:  user.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
