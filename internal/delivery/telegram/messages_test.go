package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

func TestAnswerCallbackRoundTrip(t *testing.T) {
	data := buildAnswerCallback("3f2a9c1e", 4, 2)
	require.Equal(t, "ans:3f2a9c1e:4:2", data)
	require.LessOrEqual(t, len(data), 64)

	p, ok := decodeCallback(data).parseAnswer()
	require.True(t, ok)
	require.Equal(t, answerParams{Token: "3f2a9c1e", Question: 4, Answer: 2}, p)
}

func TestParseAnswerRejectsMalformedData(t *testing.T) {
	for _, data := range []string{
		"quiz:start",
		"ans",
		"ans:tok:1",
		"ans:tok:x:1",
		"ans:tok:1:y",
		"ans:tok:-1:0",
		"ans:tok:1:2:3",
	} {
		_, ok := decodeCallback(data).parseAnswer()
		require.False(t, ok, data)
	}
}

func TestQuizCallback(t *testing.T) {
	sub, token, ok := decodeCallback(buildQuizCallback(quizCheck, "3f2a9c1e")).parseQuiz()
	require.True(t, ok)
	require.Equal(t, quizCheck, sub)
	require.Equal(t, "3f2a9c1e", token)

	require.Equal(t, "quiz:start", buildQuizCallback(quizStart, ""))
	sub, token, ok = decodeCallback("quiz:start").parseQuiz()
	require.True(t, ok)
	require.Equal(t, quizStart, sub)
	require.Empty(t, token)

	for _, data := range []string{"quiz", "quiz:check:tok:extra", "ans:tok:1:2"} {
		_, _, ok := decodeCallback(data).parseQuiz()
		require.False(t, ok, data)
	}
}

func sampleQuestion() entities.QuestionView {
	return entities.QuestionView{
		Number:     2,
		Prompt:     "What is the capital of France?",
		Category:   "Geography",
		Difficulty: "easy",
		Answered:   true,
		Options: []entities.OptionView{
			{Text: "Paris", Mark: entities.MarkCorrect},
			{Text: "Lyon", Selected: true, Mark: entities.MarkWrong},
			{Text: "Nice"},
		},
	}
}

func TestQuestionTextInProgressHidesOptions(t *testing.T) {
	text := questionText(sampleQuestion(), 5, entities.PhaseInProgress)

	require.Contains(t, text, "Question 2/5")
	require.Contains(t, text, "Geography · easy")
	require.Contains(t, text, "What is the capital of France?")
	require.NotContains(t, text, "Paris")
}

func TestQuestionTextWithResults(t *testing.T) {
	text := questionText(sampleQuestion(), 5, entities.PhaseShowingResults)

	require.Contains(t, text, "✅ Paris")
	require.Contains(t, text, "❌ Lyon _\\(your answer\\)_")
	require.Contains(t, text, "▫️ Nice")
}

func TestControlText(t *testing.T) {
	require.Contains(t, controlText(entities.QuizView{Phase: entities.PhaseInProgress}), "Check answers")

	text := controlText(entities.QuizView{Phase: entities.PhaseShowingResults, Score: 3, Total: 5})
	require.Equal(t, "You scored 3/5 correct answers", text)
}

func TestIncompleteTextListsUnanswered(t *testing.T) {
	v := entities.QuizView{Questions: []entities.QuestionView{
		{Number: 1, Answered: true},
		{Number: 2},
		{Number: 3, Answered: true},
		{Number: 4},
	}}

	text := incompleteText(v)
	require.True(t, strings.HasPrefix(text, msgIncompleteAnswers))
	require.Contains(t, text, "Unanswered: 2, 4")

	require.Equal(t, msgIncompleteAnswers, incompleteText(entities.QuizView{}))
}

func TestStatsText(t *testing.T) {
	require.Contains(t, statsText(&entities.ResultStats{}), "not finished any quiz")

	last := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	text := statsText(&entities.ResultStats{
		QuizzesPlayed:  2,
		TotalCorrect:   7,
		TotalQuestions: 10,
		BestScore:      4,
		BestTotal:      5,
		LastFinishedAt: &last,
	})
	require.Contains(t, text, "Quizzes played: 2")
	require.Contains(t, text, "Correct answers: 7/10")
	require.Contains(t, text, "Accuracy: 70\\.0%")
	require.Contains(t, text, "Best quiz: 4/5")
	require.Contains(t, text, "2026\\-03\\-01 12:30:00 UTC")
}

func TestAnswerKeyboardMarksSelection(t *testing.T) {
	kb := buildAnswerKeyboard(sampleQuestion(), "abcd1234")

	require.Len(t, kb.InlineKeyboard, 3)
	require.Equal(t, "Paris", kb.InlineKeyboard[0][0].Text)
	require.Equal(t, selectedPrefix+"Lyon", kb.InlineKeyboard[1][0].Text)
	require.Equal(t, "ans:abcd1234:1:1", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestControlKeyboard(t *testing.T) {
	running := buildControlKeyboard(entities.PhaseInProgress, "abcd1234")
	require.Len(t, running.InlineKeyboard, 2)
	require.Equal(t, "quiz:check:abcd1234", *running.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "quiz:reset:abcd1234", *running.InlineKeyboard[1][0].CallbackData)

	done := buildControlKeyboard(entities.PhaseShowingResults, "abcd1234")
	require.Len(t, done.InlineKeyboard, 1)
	require.Equal(t, "quiz:reset:abcd1234", *done.InlineKeyboard[0][0].CallbackData)
}
