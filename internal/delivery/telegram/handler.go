package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot         BotAPI
	logger      *zap.Logger
	quizService QuizService
	userService UserService
	messages    MessageStorage
	amount      int // questions per quiz, for help text

	mu sync.Mutex // serializes updates with acquisition notifications
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	userService UserService,
	messages MessageStorage,
	amount int,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		quizService: quizService,
		userService: userService,
		messages:    messages,
		amount:      amount,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	var userID int64
	if from := update.Message.From; from != nil {
		userID = from.ID
		if err := h.userService.EnsureUser(ctx, userID, chatID); err != nil {
			h.logger.Error("failed to ensure user",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
		}
	}

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart())(ctx, chatID)
	case "quiz":
		_ = h.withErrorHandling(h.handleQuiz(userID))(ctx, chatID)
	case "check":
		_ = h.withErrorHandling(h.handleCheck())(ctx, chatID)
	case "reset":
		_ = h.withErrorHandling(h.handleReset())(ctx, chatID)
	case "stats":
		_ = h.withErrorHandling(h.handleStats())(ctx, chatID)
	case "help":
		_ = h.withErrorHandling(h.handleHelp())(ctx, chatID)
	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	_, err := h.sendMessage(c)
	return err
}

// sendMessage delivers c and returns the sent message's ID.
func (h *Handler) sendMessage(c tgbotapi.Chattable) (int, error) {
	msg, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
		return 0, err
	}
	return msg.MessageID, nil
}

// request performs calls whose result is not a message, such as edits of markup,
// deletions and callback answers.
func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Debug("telegram request failed", zap.Error(err))
	}
}
