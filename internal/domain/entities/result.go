package entities

import "time"

// QuizResult is a finished quiz as stored for statistics.
type QuizResult struct {
	ID         int64
	ChatID     int64
	UserID     int64
	Score      int
	Total      int
	FinishedAt time.Time
	Answers    []ResultAnswer
}

// ResultAnswer is one checked question of a finished quiz.
type ResultAnswer struct {
	QuestionOrder  int
	Prompt         string
	SelectedAnswer string
	CorrectAnswer  string
	IsCorrect      bool
}

// NewQuizResult snapshots a session whose results are shown.
func NewQuizResult(s *QuizSession) *QuizResult {
	r := &QuizResult{
		ChatID:     s.ChatID,
		UserID:     s.UserID,
		Score:      s.Score,
		Total:      len(s.Questions),
		FinishedAt: time.Now(),
		Answers:    make([]ResultAnswer, 0, len(s.Questions)),
	}

	for i := range s.Questions {
		q := &s.Questions[i]
		r.Answers = append(r.Answers, ResultAnswer{
			QuestionOrder:  i + 1,
			Prompt:         q.Prompt,
			SelectedAnswer: q.SelectedAnswer,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      q.IsCorrect(),
		})
	}

	return r
}

// ResultStats aggregates finished quizzes of a chat.
type ResultStats struct {
	QuizzesPlayed  int
	TotalCorrect   int
	TotalQuestions int
	BestScore      int
	BestTotal      int
	LastFinishedAt *time.Time
}

// Accuracy returns the share of correct answers in percent.
func (s ResultStats) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalQuestions) * 100
}
