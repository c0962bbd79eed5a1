package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

// UserRepository handles database operations for registered users.
type UserRepository struct {
	pool DatabasePool
}

// NewUserRepository creates a new user repository.
func NewUserRepository(pool DatabasePool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create stores a new user and returns it with generated fields.
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, telegram_chat_id, created_at, updated_at
	`

	var user models.User
	err := r.pool.QueryRow(ctx, query, email, passwordHash).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.TelegramChatID,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetByEmail loads a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, "email = $1", email)
}

// GetByID loads a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *UserRepository) get(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, telegram_chat_id, created_at, updated_at
		FROM users
		WHERE ` + where

	var user models.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.TelegramChatID,
		&user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, utils.NewNotFoundError("user", fmt.Sprintf("%v", arg))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// SetTelegramChatID links a Telegram chat to the user for alert delivery.
func (r *UserRepository) SetTelegramChatID(ctx context.Context, userID, chatID string) error {
	query := `
		UPDATE users
		SET telegram_chat_id = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, userID, chatID)
	if err != nil {
		return fmt.Errorf("failed to set telegram chat id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NewNotFoundError("user", userID)
	}
	return nil
}
