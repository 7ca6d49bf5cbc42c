package entities

import (
	"errors"
	"time"
)

// Phase is the stage of a quiz session's lifecycle.
type Phase string

const (
	PhaseNotStarted     Phase = "not_started"     // no quiz, start screen
	PhaseLoading        Phase = "loading"         // questions are being fetched
	PhaseInProgress     Phase = "in_progress"     // user is answering
	PhaseShowingResults Phase = "showing_results" // answers checked, score is valid
)

var (
	ErrSessionNotFound    = errors.New("quiz session not found")
	ErrAlreadyStarted     = errors.New("quiz already started")
	ErrNotInProgress      = errors.New("quiz is not in progress")
	ErrStaleAcquisition   = errors.New("questions arrived for a quiz that no longer exists")
	ErrQuestionOutOfRange = errors.New("question index out of range")
	ErrUnknownAnswer      = errors.New("answer is not one of the options")
	ErrIncompleteAnswers  = errors.New("not all questions are answered")
)

// QuizSession is the state of one chat's quiz.
// Token identifies the acquisition started by Begin, so results of an older
// acquisition can be told apart after a reset.
type QuizSession struct {
	ChatID    int64      `json:"chat_id"`
	UserID    int64      `json:"user_id"`
	Token     string     `json:"token,omitempty"`
	Phase     Phase      `json:"phase"`
	Questions []Question `json:"questions,omitempty"`
	Score     int        `json:"score"`
	StartedAt time.Time  `json:"started_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewQuizSession creates an empty session for a chat.
func NewQuizSession(chatID, userID int64) *QuizSession {
	now := time.Now()
	return &QuizSession{
		ChatID:    chatID,
		UserID:    userID,
		Phase:     PhaseNotStarted,
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Begin moves a fresh session into Loading for the acquisition identified by token.
func (s *QuizSession) Begin(token string) error {
	if s.Phase != PhaseNotStarted {
		return ErrAlreadyStarted
	}

	s.Token = token
	s.Phase = PhaseLoading
	s.StartedAt = time.Now()
	s.UpdatedAt = s.StartedAt
	return nil
}

// Populate completes the acquisition identified by token and starts the quiz.
func (s *QuizSession) Populate(token string, questions []Question) error {
	if s.Phase != PhaseLoading || s.Token != token {
		return ErrStaleAcquisition
	}

	s.Questions = questions
	s.Phase = PhaseInProgress
	s.UpdatedAt = time.Now()
	return nil
}

// Fail abandons the acquisition identified by token and returns to the start screen.
func (s *QuizSession) Fail(token string) error {
	if s.Phase != PhaseLoading || s.Token != token {
		return ErrStaleAcquisition
	}

	s.Reset()
	return nil
}

// SelectAnswer sets the selection of the question at index.
// Selecting the same answer twice leaves the session unchanged.
func (s *QuizSession) SelectAnswer(index int, answer string) error {
	if s.Phase != PhaseInProgress {
		return ErrNotInProgress
	}
	if index < 0 || index >= len(s.Questions) {
		return ErrQuestionOutOfRange
	}

	q := &s.Questions[index]
	if !q.HasAnswer(answer) {
		return ErrUnknownAnswer
	}

	q.Select(answer)
	s.UpdatedAt = time.Now()
	return nil
}

// Unanswered returns indices of questions without a selection.
func (s *QuizSession) Unanswered() []int {
	var idx []int
	for i := range s.Questions {
		if !s.Questions[i].Answered {
			idx = append(idx, i)
		}
	}
	return idx
}

// CheckAnswers scores the quiz and shows results when every question is answered.
// The score is counted from scratch on every call.
func (s *QuizSession) CheckAnswers() (int, error) {
	if s.Phase != PhaseInProgress {
		return 0, ErrNotInProgress
	}
	if len(s.Unanswered()) > 0 {
		return 0, ErrIncompleteAnswers
	}

	score := 0
	for i := range s.Questions {
		if s.Questions[i].IsCorrect() {
			score++
		}
	}

	s.Score = score
	s.Phase = PhaseShowingResults
	s.UpdatedAt = time.Now()
	return score, nil
}

// Reset restores the initial empty state.
func (s *QuizSession) Reset() {
	s.Token = ""
	s.Phase = PhaseNotStarted
	s.Questions = nil
	s.Score = 0
	s.UpdatedAt = time.Now()
}

// Total returns the number of questions in the quiz.
func (s *QuizSession) Total() int {
	return len(s.Questions)
}
