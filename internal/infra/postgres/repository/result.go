package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
	"github.com/aliskhannn/quizzical-bot/internal/infra/postgres"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
}

// ResultRepository stores finished quizzes.
type ResultRepository struct {
	db postgres.DBTX
	tx TxRunner
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(db postgres.DBTX, tx TxRunner) *ResultRepository {
	return &ResultRepository{db: db, tx: tx}
}

// SaveResult inserts the result and its answers in one transaction.
func (r *ResultRepository) SaveResult(ctx context.Context, result *entities.QuizResult) (int64, error) {
	err := r.tx.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO quiz_results (chat_id, user_id, score, total, finished_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		err := tx.QueryRow(
			ctx,
			query,
			result.ChatID,
			result.UserID,
			result.Score,
			result.Total,
			result.FinishedAt,
		).Scan(&result.ID)
		if err != nil {
			return fmt.Errorf("insert quiz result: %w", err)
		}

		if len(result.Answers) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, a := range result.Answers {
			batch.Queue(`
				INSERT INTO quiz_result_answers (
					result_id, question_order, prompt,
					selected_answer, correct_answer, is_correct
				) VALUES ($1, $2, $3, $4, $5, $6)
			`,
				result.ID,
				a.QuestionOrder,
				a.Prompt,
				a.SelectedAnswer,
				a.CorrectAnswer,
				a.IsCorrect,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert quiz result answers: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return result.ID, nil
}

// GetStats aggregates all finished quizzes of a chat.
func (r *ResultRepository) GetStats(ctx context.Context, chatID int64) (*entities.ResultStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(score), 0),
			COALESCE(SUM(total), 0),
			MAX(finished_at),
			COALESCE((
				SELECT score FROM quiz_results
				WHERE chat_id = $1
				ORDER BY score DESC, total ASC
				LIMIT 1
			), 0),
			COALESCE((
				SELECT total FROM quiz_results
				WHERE chat_id = $1
				ORDER BY score DESC, total ASC
				LIMIT 1
			), 0)
		FROM quiz_results
		WHERE chat_id = $1
	`

	var stats entities.ResultStats
	err := r.db.QueryRow(ctx, query, chatID).Scan(
		&stats.QuizzesPlayed,
		&stats.TotalCorrect,
		&stats.TotalQuestions,
		&stats.LastFinishedAt,
		&stats.BestScore,
		&stats.BestTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("get quiz stats: %w", err)
	}

	return &stats, nil
}
