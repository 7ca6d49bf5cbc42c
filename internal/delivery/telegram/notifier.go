package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
	"github.com/aliskhannn/quizzical-bot/internal/infra/opentdb"
)

// QuizReady replaces the loading notice with the questions.
func (h *Handler) QuizReady(_ context.Context, v entities.QuizView) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLoading(v.ChatID)
	if err := h.renderQuiz(v.ChatID, v); err != nil {
		h.logger.Error("failed to render quiz",
			zap.Int64("chat_id", v.ChatID),
			zap.Error(err),
		)
	}
}

// QuizFailed reports a failed acquisition and goes back to the start screen.
func (h *Handler) QuizFailed(_ context.Context, chatID int64, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dropLoading(chatID)

	text := msgQuizUnavailable
	if errors.Is(err, opentdb.ErrRateLimited) {
		text = msgRateLimited
	}

	msg := newPlainMessage(chatID, text)
	msg.ReplyMarkup = buildStartKeyboard()
	_ = h.send(msg)
}

func (h *Handler) dropLoading(chatID int64) {
	m, ok := h.messages.Get(chatID)
	if !ok || len(m.Questions) > 0 {
		return
	}
	h.messages.Delete(chatID)
	if m.Control != 0 {
		h.request(tgbotapi.NewDeleteMessage(chatID, m.Control))
	}
}
