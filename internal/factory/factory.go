// Package factory wires the application graph: storage backends,
// identity store and cache, object store, sessions, and the services
// the HTTP layer exposes.
package factory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/courtshot/courtshot/internal/audit"
	"github.com/courtshot/courtshot/internal/config"
	"github.com/courtshot/courtshot/internal/dependencies/clock"
	"github.com/courtshot/courtshot/internal/dependencies/random"
	"github.com/courtshot/courtshot/internal/identity"
	"github.com/courtshot/courtshot/internal/identity/cache"
	"github.com/courtshot/courtshot/internal/objectstore"
	"github.com/courtshot/courtshot/internal/services/admin"
	"github.com/courtshot/courtshot/internal/services/auth"
	"github.com/courtshot/courtshot/internal/services/collections"
	"github.com/courtshot/courtshot/internal/services/folders"
	"github.com/courtshot/courtshot/internal/services/photos"
	"github.com/courtshot/courtshot/internal/services/roster"
	"github.com/courtshot/courtshot/internal/services/sharing"
	"github.com/courtshot/courtshot/internal/storage"
	"github.com/courtshot/courtshot/internal/storage/memory"
	"github.com/courtshot/courtshot/internal/storage/postgres"
)

// App contains all wired application components
type App struct {
	// Stores
	Storage      storage.Storage
	Identity     identity.Store
	UserCache    *cache.UserCache
	ObjectStore  objectstore.ObjectStore
	SessionStore auth.SessionStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Audit trail
	Recorder *audit.Recorder

	// Services
	AuthService       *auth.Service
	PhotoService      *photos.Service
	FolderService     *folders.Service
	CollectionService *collections.Service
	SharingService    *sharing.Service
	RosterService     *roster.Service
	AdminService      *admin.Service

	closers      []io.Closer
	stopJanitors chan struct{}
	janitorOnce  sync.Once
}

// sessionCleanupInterval bounds how long expired sessions linger in
// the session store between cleanup passes.
const sessionCleanupInterval = 10 * time.Minute

// New creates an application with all dependencies wired according to
// cfg. Backend connections are established and verified here; a
// returned App is ready to serve.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var closers []io.Closer

	var store storage.Storage
	var identityStore identity.Store
	switch cfg.StorageType {
	case config.StoragePostgres:
		pgStore, appDB, err := postgres.New(ctx, cfg.AppDatabaseDSN)
		if err != nil {
			return nil, err
		}
		closers = append(closers, appDB)

		idStore, authDB, err := identity.OpenPostgres(ctx, cfg.AuthDatabaseDSN)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		closers = append(closers, authDB)

		store = pgStore
		identityStore = idStore
	default:
		store = memory.New()
		identityStore = identity.NewMemoryStore()
	}

	var objects objectstore.ObjectStore
	switch cfg.ObjectStoreType {
	case config.ObjectStoreS3:
		s3Store, err := objectstore.NewS3Store(ctx, objectstore.S3Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		objects = s3Store
	default:
		objects = objectstore.NewMemoryStore()
	}

	var sessions auth.SessionStore
	switch cfg.SessionStoreType {
	case config.SessionStoreRedis:
		redisCfg := auth.DefaultRedisConfig()
		redisCfg.URL = cfg.RedisURL
		redisSessions, err := auth.NewRedisSessionStore(redisCfg)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		closers = append(closers, redisSessions)
		sessions = redisSessions
	default:
		sessions = auth.NewMemorySessionStore()
	}

	app := newWithDependencies(deps{
		store:           store,
		identityStore:   identityStore,
		objects:         objects,
		sessions:        sessions,
		clock:           clock.New(),
		random:          random.New(),
		sessionDuration: cfg.SessionDuration,
		userCacheTTL:    cfg.UserCacheTTL,
		shareBaseURL:    cfg.ShareBaseURL,
		logger:          logger,
	})
	app.closers = closers
	app.startJanitors()
	return app, nil
}

// startJanitors begins the periodic cache sweep and expired-session
// cleanup. Both run until Close.
func (a *App) startJanitors() {
	a.stopJanitors = make(chan struct{})
	a.UserCache.StartSweeper()
	go func() {
		ticker := time.NewTicker(sessionCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.AuthService.CleanExpiredSessions(context.Background())
			case <-a.stopJanitors:
				return
			}
		}
	}()
}

// Close stops background janitors and releases backend connections
// held by the App. Safe to call more than once.
func (a *App) Close() error {
	if a.stopJanitors != nil {
		a.janitorOnce.Do(func() {
			close(a.stopJanitors)
			a.UserCache.StopSweeper()
		})
	}

	var firstErr error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type deps struct {
	store           storage.Storage
	identityStore   identity.Store
	objects         objectstore.ObjectStore
	sessions        auth.SessionStore
	clock           clock.Clock
	random          random.Random
	sessionDuration time.Duration
	userCacheTTL    time.Duration
	shareBaseURL    string
	logger          *slog.Logger
}

// newWithDependencies wires the service graph from pre-built stores
// and dependencies (useful for testing)
func newWithDependencies(d deps) *App {
	userCache := cache.New(d.identityStore, d.clock, d.userCacheTTL)
	recorder := audit.NewRecorder(d.store, d.clock, d.logger)

	authService := auth.New(d.identityStore, d.sessions, recorder, d.clock, d.random,
		auth.Config{SessionDuration: d.sessionDuration}, d.logger)
	photoService := photos.New(d.store, d.objects, userCache, recorder, d.clock, d.logger)
	folderService := folders.New(d.store, d.clock)
	collectionService := collections.New(d.store, recorder, d.clock)
	sharingService := sharing.New(d.store, d.objects, userCache, recorder, d.clock, d.random,
		d.shareBaseURL, d.logger)
	rosterService := roster.New(d.store)
	adminService := admin.New(d.store, d.identityStore, userCache)

	return &App{
		Storage:           d.store,
		Identity:          d.identityStore,
		UserCache:         userCache,
		ObjectStore:       d.objects,
		SessionStore:      d.sessions,
		Clock:             d.clock,
		Random:            d.random,
		Recorder:          recorder,
		AuthService:       authService,
		PhotoService:      photoService,
		FolderService:     folderService,
		CollectionService: collectionService,
		SharingService:    sharingService,
		RosterService:     rosterService,
		AdminService:      adminService,
	}
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}
