package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/quizzical-bot/internal/domain/entities"
	"github.com/aliskhannn/quizzical-bot/internal/infra/postgres"
)

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database handle.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// SaveUser inserts the user or refreshes its chat on conflict.
// It sets CreatedAt from the database.
func (r *UserRepository) SaveUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, chat_id, is_active)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			chat_id = EXCLUDED.chat_id,
			is_active = EXCLUDED.is_active
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, user.ID, user.ChatID, user.IsActive).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	return nil
}

// UserExists checks if a user with the given ID exists in the database.
func (r *UserRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)"

	var exists bool
	err := r.db.QueryRow(ctx, query, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user existence: %w", err)
	}

	return exists, nil
}
