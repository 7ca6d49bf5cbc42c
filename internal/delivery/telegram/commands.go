package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
	"github.com/aliskhannn/quizzical-bot/internal/service"
)

// handleStart shows the start screen.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.sendStartScreen(chatID)
	}
}

// handleHelp explains the commands.
func (h *Handler) handleHelp() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.send(newMessage(chatID, helpMessage(h.amount)))
	}
}

// handleQuiz starts a quiz, or shows the running one again.
func (h *Handler) handleQuiz(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		notice, err := h.startQuiz(ctx, chatID, userID)
		if err != nil {
			return err
		}
		if notice != "" {
			return h.send(newPlainMessage(chatID, notice))
		}
		return nil
	}
}

// handleCheck checks the answers of the running quiz.
func (h *Handler) handleCheck() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		notice, err := h.checkAnswers(ctx, chatID)
		if err != nil {
			return err
		}
		if notice != "" {
			return h.send(newPlainMessage(chatID, notice))
		}
		return nil
	}
}

// handleReset discards the quiz and shows the start screen.
func (h *Handler) handleReset() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.resetQuiz(ctx, chatID)
	}
}

// handleStats shows aggregated results of finished quizzes.
func (h *Handler) handleStats() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.quizService.Stats(ctx, chatID)
		if err != nil {
			h.logger.Error("failed to get stats",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			return h.send(newPlainMessage(chatID, msgStatsUnavailable))
		}
		return h.send(newMessage(chatID, statsText(stats)))
	}
}

// startQuiz returns a notice for the user when nothing new was started.
func (h *Handler) startQuiz(ctx context.Context, chatID, userID int64) (string, error) {
	view, err := h.quizService.Start(ctx, chatID, userID)
	if errors.Is(err, service.ErrQuizInProgress) {
		if view.Phase == entities.PhaseLoading {
			return msgLoading, nil
		}
		if err := h.send(newPlainMessage(chatID, msgQuizInProgress)); err != nil {
			return "", err
		}
		return "", h.renderQuiz(chatID, view)
	}
	if err != nil {
		return "", err
	}

	h.logger.Debug("quiz requested", zap.Int64("chat_id", chatID), zap.Int64("user_id", userID))
	return "", h.sendLoading(chatID)
}

// checkAnswers reveals the results, or returns a notice explaining why it could not.
func (h *Handler) checkAnswers(ctx context.Context, chatID int64) (string, error) {
	view, err := h.quizService.CheckAnswers(ctx, chatID)
	switch {
	case err == nil:
		return "", h.renderResults(chatID, view)
	case errors.Is(err, entities.ErrIncompleteAnswers):
		return incompleteText(view), nil
	case errors.Is(err, service.ErrNoActiveQuiz):
		return msgNoActiveQuiz, nil
	case errors.Is(err, entities.ErrNotInProgress):
		if view.Phase == entities.PhaseLoading {
			return msgLoading, nil
		}
		return msgResultsShown, nil
	default:
		return "", err
	}
}

func (h *Handler) resetQuiz(ctx context.Context, chatID int64) error {
	view, err := h.quizService.View(ctx, chatID)
	if err != nil {
		return err
	}

	if err := h.quizService.Reset(ctx, chatID); err != nil {
		return err
	}

	// Finished quizzes stay in the chat as history; unfinished ones are removed.
	if view.Phase == entities.PhaseShowingResults {
		h.disableControl(chatID)
		h.forgetQuiz(chatID, false)
	} else {
		h.forgetQuiz(chatID, true)
	}

	return h.sendStartScreen(chatID)
}
