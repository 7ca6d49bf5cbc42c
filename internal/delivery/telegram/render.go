package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
	"github.com/aliskhannn/quizzical-bot/internal/storage"
)

// renderQuiz sends the questions and the control message as new messages
// and remembers their IDs for later edits.
func (h *Handler) renderQuiz(chatID int64, v entities.QuizView) error {
	h.forgetQuiz(chatID, true)

	token := v.ShortToken()
	sent := storage.QuizMessages{Questions: make([]int, 0, len(v.Questions))}

	for _, q := range v.Questions {
		msg := newMessage(chatID, questionText(q, v.Total, v.Phase))
		if v.Phase == entities.PhaseInProgress {
			msg.ReplyMarkup = buildAnswerKeyboard(q, token)
		}

		id, err := h.sendMessage(msg)
		if err != nil {
			h.messages.Store(chatID, sent)
			return err
		}
		sent.Questions = append(sent.Questions, id)
	}

	control := newMessage(chatID, controlText(v))
	control.ReplyMarkup = buildControlKeyboard(v.Phase, v.ShortToken())
	id, err := h.sendMessage(control)
	if err != nil {
		h.messages.Store(chatID, sent)
		return err
	}
	sent.Control = id

	h.messages.Store(chatID, sent)
	return nil
}

// renderResults edits the quiz messages in place to reveal marks and the score.
// Inputs are disabled by removing the answer keyboards.
func (h *Handler) renderResults(chatID int64, v entities.QuizView) error {
	m, ok := h.messages.Get(chatID)
	if !ok || len(m.Questions) != len(v.Questions) || m.Control == 0 {
		return h.renderQuiz(chatID, v)
	}

	for i, q := range v.Questions {
		edit := newEdit(chatID, m.Questions[i], questionText(q, v.Total, v.Phase))
		kb := emptyKeyboard()
		edit.ReplyMarkup = &kb
		h.request(edit)
	}

	edit := newEdit(chatID, m.Control, controlText(v))
	kb := buildControlKeyboard(v.Phase, v.ShortToken())
	edit.ReplyMarkup = &kb
	h.request(edit)

	return nil
}

// renderSelection refreshes the keyboard of one question message.
func (h *Handler) renderSelection(chatID int64, messageID int, v entities.QuizView, questionIndex int) {
	if questionIndex < 0 || questionIndex >= len(v.Questions) {
		return
	}

	kb := buildAnswerKeyboard(v.Questions[questionIndex], v.ShortToken())
	h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, kb))
}

// sendLoading shows the loading notice and remembers it so it can be removed later.
// A finished quiz stays in the chat without its buttons.
func (h *Handler) sendLoading(chatID int64) error {
	h.disableControl(chatID)
	h.forgetQuiz(chatID, false)

	id, err := h.sendMessage(newPlainMessage(chatID, msgLoading))
	if err != nil {
		return err
	}
	h.messages.Store(chatID, storage.QuizMessages{Control: id})
	return nil
}

func (h *Handler) sendStartScreen(chatID int64) error {
	msg := newMessage(chatID, welcomeMessage())
	msg.ReplyMarkup = buildStartKeyboard()
	return h.send(msg)
}

// forgetQuiz drops the remembered messages of a chat, deleting them from the
// chat when remove is set.
func (h *Handler) forgetQuiz(chatID int64, remove bool) {
	m, ok := h.messages.Get(chatID)
	if !ok {
		return
	}
	h.messages.Delete(chatID)

	if !remove {
		return
	}
	for _, id := range m.Questions {
		h.request(tgbotapi.NewDeleteMessage(chatID, id))
	}
	if m.Control != 0 {
		h.request(tgbotapi.NewDeleteMessage(chatID, m.Control))
	}
}

// disableControl removes the buttons of the control message, keeping the text.
func (h *Handler) disableControl(chatID int64) {
	m, ok := h.messages.Get(chatID)
	if !ok || m.Control == 0 {
		return
	}
	h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, m.Control, emptyKeyboard()))
}
