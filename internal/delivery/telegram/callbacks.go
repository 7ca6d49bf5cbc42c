package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
	"github.com/aliskhannn/quizzical-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	var (
		notice string
		err    error
	)

	switch data.Action {
	case actionAnswer:
		notice, err = h.handleAnswerCallback(ctx, cb, data)

	case actionQuiz:
		notice, err = h.handleQuizCallback(ctx, cb, data)

	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		notice = msgInternalError
	}

	// Remove the user's "clock"; notices pop up as an alert.
	h.answerCallback(cb.ID, notice)
}

func (h *Handler) handleQuizCallback(
	ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData,
) (string, error) {
	sub, token, ok := data.parseQuiz()
	if !ok {
		h.logger.Warn("invalid quiz callback data", zap.String("data", cb.Data))
		return "", nil
	}

	chatID := cb.Message.Chat.ID

	if sub == quizStart {
		if err := h.userService.EnsureUser(ctx, cb.From.ID, chatID); err != nil {
			h.logger.Error("failed to ensure user",
				zap.Int64("user_id", cb.From.ID),
				zap.Error(err),
			)
		}
		return h.startQuiz(ctx, chatID, cb.From.ID)
	}

	// Control buttons of an older quiz must not act on the current one.
	if token != "" {
		view, err := h.quizService.View(ctx, chatID)
		if err != nil {
			return "", err
		}
		if view.ShortToken() != token {
			h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, emptyKeyboard()))
			return msgQuizOver, nil
		}
	}

	switch sub {
	case quizCheck:
		return h.checkAnswers(ctx, chatID)
	case quizReset:
		return "", h.resetQuiz(ctx, chatID)
	default:
		h.logger.Warn("unknown quiz callback", zap.String("data", cb.Data))
		return "", nil
	}
}

func (h *Handler) handleAnswerCallback(
	ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData,
) (string, error) {
	p, ok := data.parseAnswer()
	if !ok {
		h.logger.Warn("invalid answer callback data", zap.String("data", cb.Data))
		return "", nil
	}

	chatID := cb.Message.Chat.ID
	view, err := h.quizService.SelectAnswer(ctx, chatID, p.Token, p.Question, p.Answer)
	switch {
	case err == nil:
		h.renderSelection(chatID, cb.Message.MessageID, view, p.Question)
		return "", nil
	case errors.Is(err, service.ErrStaleQuiz), errors.Is(err, service.ErrNoActiveQuiz):
		h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, emptyKeyboard()))
		return msgQuizOver, nil
	case errors.Is(err, entities.ErrNotInProgress):
		return msgResultsShown, nil
	case errors.Is(err, entities.ErrQuestionOutOfRange), errors.Is(err, entities.ErrUnknownAnswer):
		h.logger.Warn("answer out of range", zap.String("data", cb.Data), zap.Error(err))
		return "", nil
	default:
		return "", err
	}
}

func (h *Handler) answerCallback(id, notice string) {
	if notice == "" {
		h.request(tgbotapi.NewCallback(id, ""))
		return
	}
	h.request(tgbotapi.NewCallbackWithAlert(id, notice))
}
