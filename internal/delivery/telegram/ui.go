package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

const selectedPrefix = "👉 "

// buildStartKeyboard builds keyboard for the start screen.
func buildStartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Start quiz", buildQuizCallback(quizStart, "")),
		),
	)
}

// buildAnswerKeyboard builds one button per answer option, marking the selection.
func buildAnswerKeyboard(q entities.QuestionView, token string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for i, o := range q.Options {
		label := o.Text
		if o.Selected {
			label = selectedPrefix + label
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(token, q.Number-1, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildControlKeyboard builds keyboard for the message under the questions.
func buildControlKeyboard(phase entities.Phase, token string) tgbotapi.InlineKeyboardMarkup {
	if phase == entities.PhaseShowingResults {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildQuizCallback(quizReset, token)),
			),
		)
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Check answers", buildQuizCallback(quizCheck, token)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Reset", buildQuizCallback(quizReset, token)),
		),
	)
}

// emptyKeyboard removes inline buttons from an edited message.
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
