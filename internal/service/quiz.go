package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
)

var (
	ErrQuizInProgress       = errors.New("quiz already in progress")
	ErrNoActiveQuiz         = errors.New("no active quiz")
	ErrStaleQuiz            = errors.New("answer belongs to a previous quiz")
	ErrNoQuestionsAvailable = errors.New("no questions available")
)

const defaultFetchTimeout = 10 * time.Second

// QuizService drives the quiz session of every chat.
// Questions are acquired asynchronously; the outcome goes to the Notifier.
type QuizService struct {
	source   QuestionSource
	builder  *QuizBuilder
	sessions SessionStore
	results  ResultRepository
	notifier Notifier
	logger   *zap.Logger
	timeout  time.Duration
	newToken func() string

	mu sync.Mutex // serializes load-modify-save of sessions
	wg sync.WaitGroup
}

func NewQuizService(
	source QuestionSource,
	builder *QuizBuilder,
	sessions SessionStore,
	results ResultRepository,
	logger *zap.Logger,
	fetchTimeout time.Duration,
) *QuizService {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}

	return &QuizService{
		source:   source,
		builder:  builder,
		sessions: sessions,
		results:  results,
		logger:   logger,
		timeout:  fetchTimeout,
		newToken: uuid.NewString,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *QuizService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Wait blocks until all in-flight acquisitions have finished.
func (s *QuizService) Wait() {
	s.wg.Wait()
}

// Start puts the chat's session into Loading and fetches questions in the background.
// A finished quiz is replaced; a loading or running one is left alone.
func (s *QuizService) Start(ctx context.Context, chatID, userID int64) (entities.QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.load(ctx, chatID, userID)
	if err != nil {
		return entities.QuizView{}, err
	}

	switch session.Phase {
	case entities.PhaseLoading, entities.PhaseInProgress:
		return session.View(), ErrQuizInProgress
	case entities.PhaseShowingResults:
		session.Reset()
	}

	session.UserID = userID
	token := s.newToken()
	if err := session.Begin(token); err != nil {
		return entities.QuizView{}, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return entities.QuizView{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.Debug("quiz acquisition started",
		zap.Int64("chat_id", chatID),
		zap.String("token", token),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acquire(ctx, chatID, token)
	}()

	return session.View(), nil
}

func (s *QuizService) acquire(ctx context.Context, chatID int64, token string) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	records, err := s.source.Fetch(fetchCtx)
	cancel()

	var questions []entities.Question
	if err == nil {
		questions = s.builder.Build(records)
		if len(questions) == 0 {
			err = ErrNoQuestionsAvailable
		}
	}

	view, ok := s.complete(ctx, chatID, token, questions, err)
	if !ok || s.notifier == nil {
		return
	}

	if err != nil {
		s.notifier.QuizFailed(ctx, chatID, err)
		return
	}
	s.notifier.QuizReady(ctx, view)
}

// complete applies the acquisition outcome. It reports false when the session
// was reset or restarted while the fetch was in flight.
func (s *QuizService) complete(
	ctx context.Context, chatID int64, token string, questions []entities.Question, fetchErr error,
) (entities.QuizView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx, chatID)
	if err != nil {
		if !errors.Is(err, entities.ErrSessionNotFound) {
			s.logger.Error("failed to load session after acquisition",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
		return entities.QuizView{}, false
	}

	if fetchErr != nil {
		s.logger.Warn("quiz acquisition failed",
			zap.Int64("chat_id", chatID),
			zap.Error(fetchErr),
		)
		if err := session.Fail(token); err != nil {
			return entities.QuizView{}, false
		}
		if err := s.sessions.Delete(ctx, chatID); err != nil {
			s.logger.Error("failed to drop failed session", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		return session.View(), true
	}

	if err := session.Populate(token, questions); err != nil {
		s.logger.Debug("discarding stale questions",
			zap.Int64("chat_id", chatID),
			zap.String("token", token),
		)
		return entities.QuizView{}, false
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("failed to save populated session", zap.Int64("chat_id", chatID), zap.Error(err))
		return entities.QuizView{}, false
	}

	s.logger.Info("quiz ready",
		zap.Int64("chat_id", chatID),
		zap.Int("questions", len(questions)),
	)

	return session.View(), true
}

// SelectAnswer selects option answerIndex of question questionIndex.
// A non-empty token must match the running quiz, so buttons of older quizzes are rejected.
func (s *QuizService) SelectAnswer(
	ctx context.Context, chatID int64, token string, questionIndex, answerIndex int,
) (entities.QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.active(ctx, chatID, token)
	if err != nil {
		return entities.QuizView{}, err
	}

	if questionIndex < 0 || questionIndex >= len(session.Questions) {
		return session.View(), entities.ErrQuestionOutOfRange
	}
	answers := session.Questions[questionIndex].Answers
	if answerIndex < 0 || answerIndex >= len(answers) {
		return session.View(), entities.ErrUnknownAnswer
	}

	if err := session.SelectAnswer(questionIndex, answers[answerIndex]); err != nil {
		return session.View(), err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return entities.QuizView{}, fmt.Errorf("save session: %w", err)
	}

	return session.View(), nil
}

// CheckAnswers scores the quiz. When some questions are unanswered it returns
// entities.ErrIncompleteAnswers together with the unchanged view.
func (s *QuizService) CheckAnswers(ctx context.Context, chatID int64) (entities.QuizView, error) {
	s.mu.Lock()
	session, err := s.active(ctx, chatID, "")
	if err != nil {
		s.mu.Unlock()
		return entities.QuizView{}, err
	}

	score, err := session.CheckAnswers()
	if err != nil {
		s.mu.Unlock()
		return session.View(), err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.mu.Unlock()
		return entities.QuizView{}, fmt.Errorf("save session: %w", err)
	}
	view := session.View()
	result := entities.NewQuizResult(session)
	s.mu.Unlock()

	s.logger.Info("quiz checked",
		zap.Int64("chat_id", chatID),
		zap.Int("score", score),
		zap.Int("total", result.Total),
	)

	if s.results != nil {
		if _, err := s.results.SaveResult(ctx, result); err != nil {
			s.logger.Error("failed to save quiz result",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}

	return view, nil
}

// Reset discards the chat's session. It is legal in every phase.
func (s *QuizService) Reset(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(ctx, chatID); err != nil && !errors.Is(err, entities.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// View returns the current read model of the chat's quiz.
func (s *QuizService) View(ctx context.Context, chatID int64) (entities.QuizView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx, chatID)
	if errors.Is(err, entities.ErrSessionNotFound) {
		return entities.EmptyView(chatID), nil
	}
	if err != nil {
		return entities.QuizView{}, err
	}
	return session.View(), nil
}

// Stats returns aggregated results of the chat's finished quizzes.
func (s *QuizService) Stats(ctx context.Context, chatID int64) (*entities.ResultStats, error) {
	if s.results == nil {
		return &entities.ResultStats{}, nil
	}
	return s.results.GetStats(ctx, chatID)
}

func (s *QuizService) load(ctx context.Context, chatID, userID int64) (*entities.QuizSession, error) {
	session, err := s.sessions.Get(ctx, chatID)
	if errors.Is(err, entities.ErrSessionNotFound) {
		return entities.NewQuizSession(chatID, userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *QuizService) active(ctx context.Context, chatID int64, token string) (*entities.QuizSession, error) {
	session, err := s.sessions.Get(ctx, chatID)
	if errors.Is(err, entities.ErrSessionNotFound) {
		return nil, ErrNoActiveQuiz
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if token != "" && entities.ShortToken(session.Token) != token {
		return nil, ErrStaleQuiz
	}
	return session, nil
}
