package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
	"github.com/aliskhannn/quizzical-bot/internal/storage"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) error
}

type QuizService interface {
	Start(ctx context.Context, chatID, userID int64) (entities.QuizView, error)
	SelectAnswer(ctx context.Context, chatID int64, token string, questionIndex, answerIndex int) (entities.QuizView, error)
	CheckAnswers(ctx context.Context, chatID int64) (entities.QuizView, error)
	Reset(ctx context.Context, chatID int64) error
	View(ctx context.Context, chatID int64) (entities.QuizView, error)
	Stats(ctx context.Context, chatID int64) (*entities.ResultStats, error)
}

type MessageStorage interface {
	Store(chatID int64, m storage.QuizMessages)
	Get(chatID int64) (storage.QuizMessages, bool)
	Delete(chatID int64)
}
