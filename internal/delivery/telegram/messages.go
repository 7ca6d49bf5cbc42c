// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

const (
	msgLoading           = "Questions loading..."
	msgIncompleteAnswers = "Please answer all questions before checking."
	msgQuizOver          = "This quiz is over. Start a new one with /quiz."
	msgResultsShown      = "Results are already shown."
	msgNoActiveQuiz      = "There is no quiz running. Start one with /quiz."
	msgQuizInProgress    = "You already have a quiz running, here it is again."
	msgQuizUnavailable   = "Could not load questions. Please try again later."
	msgRateLimited       = "Too many quizzes at once. Please wait a few seconds and try again."
	msgStatsUnavailable  = "Could not load your statistics. Please try again later."
	msgInternalError     = "Something went wrong. Please try again later."
	msgUnknownCommand    = "Unknown command. Available commands:\n\n/quiz — start a quiz\n/check — check answers\n/reset — discard the current quiz\n/stats — your results\n/help — help"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeMessage is the start screen.
func welcomeMessage() string {
	var sb strings.Builder

	sb.WriteString(bold("Quizzical"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Do you have all the answers to our questions?"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Press Start quiz or send /quiz. Use /help to see all commands."))

	return sb.String()
}

func helpMessage(amount int) string {
	var sb strings.Builder

	sb.WriteString(bold("How to play"))
	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("1. Start a quiz with /quiz. You get %d trivia questions.", amount)))
	sb.WriteString("\n")
	sb.WriteString(md("2. Tap an answer under each question. You can change it until you check."))
	sb.WriteString("\n")
	sb.WriteString(md("3. Press Check answers or send /check to see your score."))
	sb.WriteString("\n")
	sb.WriteString(md("4. /reset discards the current quiz, /stats shows your results."))

	return sb.String()
}

// questionText renders one question. Once results are shown it lists every
// option with its mark, since the keyboard is removed.
func questionText(q entities.QuestionView, total int, phase entities.Phase) string {
	var sb strings.Builder

	sb.WriteString(bold(fmt.Sprintf("Question %d/%d", q.Number, total)))
	if meta := questionMeta(q); meta != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(meta))
	}
	sb.WriteString("\n\n")
	sb.WriteString(md(q.Prompt))

	if phase != entities.PhaseShowingResults {
		return sb.String()
	}

	sb.WriteString("\n")
	for _, o := range q.Options {
		sb.WriteString("\n")
		sb.WriteString(markIcon(o.Mark))
		sb.WriteString(" ")
		sb.WriteString(md(o.Text))
		if o.Selected {
			sb.WriteString(" ")
			sb.WriteString(italic("(your answer)"))
		}
	}

	return sb.String()
}

func questionMeta(q entities.QuestionView) string {
	var parts []string
	if q.Category != "" {
		parts = append(parts, q.Category)
	}
	if q.Difficulty != "" {
		parts = append(parts, q.Difficulty)
	}
	return strings.Join(parts, " · ")
}

func markIcon(m entities.AnswerMark) string {
	switch m {
	case entities.MarkCorrect:
		return "✅"
	case entities.MarkWrong:
		return "❌"
	default:
		return "▫️"
	}
}

// controlText renders the message under the questions.
func controlText(v entities.QuizView) string {
	if v.Phase == entities.PhaseShowingResults {
		return md(fmt.Sprintf("You scored %d/%d correct answers", v.Score, v.Total))
	}
	return md("Answer every question, then press Check answers.")
}

// incompleteText lists the unanswered question numbers.
func incompleteText(v entities.QuizView) string {
	var missing []string
	for _, q := range v.Questions {
		if !q.Answered {
			missing = append(missing, fmt.Sprintf("%d", q.Number))
		}
	}
	if len(missing) == 0 {
		return msgIncompleteAnswers
	}
	return fmt.Sprintf("%s\nUnanswered: %s", msgIncompleteAnswers, strings.Join(missing, ", "))
}

func statsText(s *entities.ResultStats) string {
	if s.QuizzesPlayed == 0 {
		return md("You have not finished any quiz yet. Start one with /quiz.")
	}

	lines := []string{
		bold("📊 Your results"),
		"",
		md(fmt.Sprintf("🎮 Quizzes played: %d", s.QuizzesPlayed)),
		md(fmt.Sprintf("✅ Correct answers: %d/%d", s.TotalCorrect, s.TotalQuestions)),
		md(fmt.Sprintf("🎯 Accuracy: %.1f%%", s.Accuracy())),
		md(fmt.Sprintf("🏆 Best quiz: %d/%d", s.BestScore, s.BestTotal)),
	}
	if s.LastFinishedAt != nil {
		lines = append(lines, md("🕒 Last played: "+s.LastFinishedAt.UTC().Format(time.DateTime)+" UTC"))
	}

	return strings.Join(lines, "\n")
}
