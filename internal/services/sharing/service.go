// Package sharing owns the public share-link lifecycle for collections:
// minting the bearer token, revoking it, and resolving it on the
// anonymous read path.
package sharing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/dependencies/clock"
	"github.com/courtshot/courtshot/internal/dependencies/random"
	"github.com/courtshot/courtshot/internal/identity/cache"
	"github.com/courtshot/courtshot/internal/model"
	"github.com/courtshot/courtshot/internal/objectstore"
	"github.com/courtshot/courtshot/internal/storage"
)

// Service manages collection share links
type Service struct {
	storage  storage.Storage
	objects  objectstore.ObjectStore
	users    *cache.UserCache
	recorder *audit.Recorder
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	baseURL string
}

// New creates a sharing Service. baseURL is the public origin share
// URLs are built against.
func New(storage storage.Storage, objects objectstore.ObjectStore, users *cache.UserCache,
	recorder *audit.Recorder, clk clock.Clock, rnd random.Random, baseURL string, logger *slog.Logger) *Service {
	return &Service{
		storage:  storage,
		objects:  objects,
		users:    users,
		recorder: recorder,
		clock:    clk,
		random:   rnd,
		logger:   logger,
		baseURL:  baseURL,
	}
}

// GenerateToken mints a fresh share token. No uniqueness check is made
// against existing tokens; at 256 bits of entropy a collision is not a
// realistic concern.
func (s *Service) GenerateToken() string {
	return s.random.Hex(tokenBytes)
}

// ShareResult describes a freshly created share link
type ShareResult struct {
	ShareURL  string
	Token     string
	ExpiresAt *time.Time
}

// Share creates (or regenerates) the share link for a collection owned
// by ownerID. A previous token is silently replaced. expiresInDays nil
// means no expiry; otherwise it must be a positive day count.
func (s *Service) Share(ctx context.Context, id model.CollectionID, actor audit.Actor,
	origin audit.Origin, expiresInDays *int) (*ShareResult, error) {
	collection, err := s.storage.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if collection.UserID != actor.ID {
		return nil, model.ErrNotOwner
	}

	var expiresAt *time.Time
	if expiresInDays != nil {
		t := s.clock.Now().Add(time.Duration(*expiresInDays) * 24 * time.Hour)
		expiresAt = &t
	}

	owner, err := s.users.GetUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	ownerName := "user"
	if owner != nil {
		ownerName = owner.Name
	}

	collection.Slug = Slugify(collection.Name)
	collection.UserSlug = Slugify(ownerName)
	collection.ShareToken = s.GenerateToken()
	collection.ShareExpiresAt = expiresAt

	if err := s.storage.UpdateCollection(ctx, collection); err != nil {
		return nil, err
	}

	shareURL := fmt.Sprintf("%s/%s/%s?token=%s",
		s.baseURL, collection.UserSlug, collection.Slug, collection.ShareToken)

	details := map[string]any{"share_url": shareURL}
	if expiresAt != nil {
		details["expires_at"] = expiresAt.Format(time.RFC3339)
	}
	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionCollectionShareCreate,
		Actor:        actor,
		ResourceType: "Collection",
		ResourceID:   string(id),
		Details:      details,
		Origin:       origin,
	})

	return &ShareResult{
		ShareURL:  shareURL,
		Token:     collection.ShareToken,
		ExpiresAt: expiresAt,
	}, nil
}

// Revoke clears the share facet for a collection owned by ownerID.
// Revoking a collection that was never shared (or already revoked) is a
// no-op success.
func (s *Service) Revoke(ctx context.Context, id model.CollectionID, actor audit.Actor, origin audit.Origin) error {
	collection, err := s.storage.GetCollection(ctx, id)
	if err != nil {
		return err
	}
	if collection.UserID != actor.ID {
		return model.ErrNotOwner
	}

	if !collection.Shared() {
		return nil
	}

	collection.ClearShare()
	if err := s.storage.UpdateCollection(ctx, collection); err != nil {
		return err
	}

	s.recorder.Record(ctx, audit.Event{
		Action:       model.ActionCollectionShareRevoke,
		Actor:        actor,
		ResourceType: "Collection",
		ResourceID:   string(id),
		Origin:       origin,
	})
	return nil
}

// SharedPhoto is one photo in a resolved share view
type SharedPhoto struct {
	ID           model.PhotoID
	OriginalName string
	ImageURL     string
	ThumbnailURL string
	Players      []*model.Player
}

// SharedCollection is the public view behind a valid token
type SharedCollection struct {
	Name        string
	Description string
	OwnerName   string
	PhotoCount  int
	Photos      []*SharedPhoto
}

// Resolve answers the anonymous read path for a share token.
// Outcomes are distinct on purpose: model.ErrInvalidToken for a
// malformed candidate, model.ErrShareNotFound when no collection holds
// the token, and model.ErrShareExpired when the link used to work.
func (s *Service) Resolve(ctx context.Context, token string) (*SharedCollection, error) {
	if !ValidToken(token) {
		return nil, model.ErrInvalidToken
	}

	collection, err := s.storage.GetCollectionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrCollectionNotFound) {
			return nil, model.ErrShareNotFound
		}
		return nil, err
	}

	if collection.ShareExpiresAt != nil && !s.clock.Now().Before(*collection.ShareExpiresAt) {
		return nil, model.ErrShareExpired
	}

	ownerName := "Unknown"
	owner, err := s.users.GetUser(ctx, collection.UserID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		ownerName = owner.Name
	}

	photos, err := s.storage.ListCollectionPhotos(ctx, collection.ID)
	if err != nil {
		return nil, err
	}

	players, err := s.playersByID(ctx)
	if err != nil {
		return nil, err
	}

	result := &SharedCollection{
		Name:        collection.Name,
		Description: collection.Description,
		OwnerName:   ownerName,
		PhotoCount:  len(photos),
	}

	for _, photo := range photos {
		imageURL, err := s.objects.PresignDownload(ctx, photo.StorageKey)
		if err != nil {
			return nil, err
		}
		sp := &SharedPhoto{
			ID:           photo.ID,
			OriginalName: photo.OriginalName,
			ImageURL:     imageURL,
		}
		if photo.ThumbnailKey != "" {
			thumbURL, err := s.objects.PresignDownload(ctx, photo.ThumbnailKey)
			if err != nil {
				return nil, err
			}
			sp.ThumbnailURL = thumbURL
		}
		for _, tag := range photo.Tags {
			if player, ok := players[tag.PlayerID]; ok {
				sp.Players = append(sp.Players, player)
			}
		}
		result.Photos = append(result.Photos, sp)
	}

	return result, nil
}

func (s *Service) playersByID(ctx context.Context) (map[model.PlayerID]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[model.PlayerID]*model.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return byID, nil
}
