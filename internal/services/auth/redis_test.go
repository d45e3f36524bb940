package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisSessionSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *RedisSessionStore
	ctx   context.Context
}

func TestRedisSessionSuite(t *testing.T) {
	suite.Run(t, new(RedisSessionSuite))
}

func (s *RedisSessionSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.store = NewRedisSessionStoreWithClient(client)
	s.ctx = context.Background()
}

func (s *RedisSessionSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *RedisSessionSuite) newSession(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:     token,
		UserID:    "u1",
		UserName:  "Dana Ortiz",
		UserEmail: "dana@example.com",
		UserRole:  "PLAYER",
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *RedisSessionSuite) TestSaveAndGet() {
	session := s.newSession("sess_abc", time.Hour)
	s.Require().NoError(s.store.Save(s.ctx, session))

	retrieved, err := s.store.Get(s.ctx, "sess_abc")
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)
	s.Equal(session.UserID, retrieved.UserID)
	s.Equal(session.UserEmail, retrieved.UserEmail)
	s.Equal(session.UserRole, retrieved.UserRole)
}

func (s *RedisSessionSuite) TestGetUnknownToken() {
	retrieved, err := s.store.Get(s.ctx, "sess_nope")
	s.Require().NoError(err)
	s.Nil(retrieved)
}

func (s *RedisSessionSuite) TestDelete() {
	session := s.newSession("sess_abc", time.Hour)
	s.Require().NoError(s.store.Save(s.ctx, session))

	s.Require().NoError(s.store.Delete(s.ctx, "sess_abc"))

	retrieved, err := s.store.Get(s.ctx, "sess_abc")
	s.Require().NoError(err)
	s.Nil(retrieved)
}

func (s *RedisSessionSuite) TestDeleteUnknownTokenIsNoop() {
	s.NoError(s.store.Delete(s.ctx, "sess_nope"))
}

func (s *RedisSessionSuite) TestKeyTTLEvictsSession() {
	session := s.newSession("sess_abc", time.Minute)
	s.Require().NoError(s.store.Save(s.ctx, session))

	s.mini.FastForward(2 * time.Minute)

	retrieved, err := s.store.Get(s.ctx, "sess_abc")
	s.Require().NoError(err)
	s.Nil(retrieved, "key TTL removes the session")
}
