package storage

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

// SessionStorage provides in-memory storage for quiz sessions by chat ID.
// Sessions are copied on the way in and out, so callers never share state.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*entities.QuizSession
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*entities.QuizSession),
	}
}

// Get returns a copy of the chat's session.
func (s *SessionStorage) Get(_ context.Context, chatID int64) (*entities.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// Save stores a copy of the session under its chat ID.
func (s *SessionStorage) Save(_ context.Context, session *entities.QuizSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ChatID] = cloneSession(session)
	return nil
}

// Delete removes the chat's session.
func (s *SessionStorage) Delete(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
	return nil
}

// DeleteIdle removes sessions last updated before the given time.
func (s *SessionStorage) DeleteIdle(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for chatID, session := range s.sessions {
		if session.UpdatedAt.Before(before) {
			delete(s.sessions, chatID)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func cloneSession(src *entities.QuizSession) *entities.QuizSession {
	dst := *src
	if src.Questions != nil {
		dst.Questions = make([]entities.Question, len(src.Questions))
		for i, q := range src.Questions {
			q.Answers = slices.Clone(q.Answers)
			dst.Questions[i] = q
		}
	}
	return &dst
}
