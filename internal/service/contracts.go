package service

import (
	"context"
	"time"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user *entities.User) error
	UserExists(ctx context.Context, userID int64) (bool, error)
}

// QuestionSource fetches raw trivia records for one quiz.
type QuestionSource interface {
	Fetch(ctx context.Context) ([]entities.RawRecord, error)
}

// SessionStore keeps one quiz session per chat.
// Get returns entities.ErrSessionNotFound when the chat has no session.
type SessionStore interface {
	Get(ctx context.Context, chatID int64) (*entities.QuizSession, error)
	Save(ctx context.Context, s *entities.QuizSession) error
	Delete(ctx context.Context, chatID int64) error
	DeleteIdle(ctx context.Context, before time.Time) (int, error)
}

type ResultRepository interface {
	SaveResult(ctx context.Context, r *entities.QuizResult) (int64, error)
	GetStats(ctx context.Context, chatID int64) (*entities.ResultStats, error)
}

// Notifier receives the outcome of an asynchronous question acquisition.
type Notifier interface {
	QuizReady(ctx context.Context, view entities.QuizView)
	QuizFailed(ctx context.Context, chatID int64, err error)
}
