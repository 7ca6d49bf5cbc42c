package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

// SessionStore keeps quiz sessions in Redis as JSON with a TTL.
// Idle sessions expire on their own, so DeleteIdle has nothing to do.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient initializes a new Redis client.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewSessionStore creates a store over rdb. Every save refreshes the key's ttl.
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("quiz:session:%d", chatID)
}

// Ping checks the connection.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Get loads the chat's session.
func (s *SessionStore) Get(ctx context.Context, chatID int64) (*entities.QuizSession, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, entities.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session entities.QuizSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Save stores the session and resets its ttl.
func (s *SessionStore) Save(ctx context.Context, session *entities.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKey(session.ChatID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes the chat's session.
func (s *SessionStore) Delete(ctx context.Context, chatID int64) error {
	if err := s.rdb.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteIdle is a no-op: Redis expires idle sessions by ttl.
func (s *SessionStore) DeleteIdle(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}
