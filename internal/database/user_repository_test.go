package database

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

func TestUserRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("sara@example.com", "hashed-pw").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "password_hash", "telegram_chat_id", "created_at", "updated_at"}).
			AddRow("u1", "sara@example.com", "hashed-pw", (*string)(nil), now, now))

	user, err := repo.Create(context.Background(), "sara@example.com", "hashed-pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "sara@example.com", user.Email)
	assert.Nil(t, user.TelegramChatID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)
	now := time.Now()
	chatID := "555"

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("sara@example.com").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "password_hash", "telegram_chat_id", "created_at", "updated_at"}).
			AddRow("u1", "sara@example.com", "hashed-pw", &chatID, now, now))

	user, err := repo.GetByEmail(context.Background(), "sara@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	require.NotNil(t, user.TelegramChatID)
	assert.Equal(t, "555", *user.TelegramChatID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "email", "password_hash", "telegram_chat_id", "created_at", "updated_at"}))

	_, err = repo.GetByID(context.Background(), "ghost")
	require.Error(t, err)
	var notFound *utils.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySetTelegramChatID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepository(mock)

	t.Run("existing user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("u1", "555").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.SetTelegramChatID(context.Background(), "u1", "555"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("ghost", "555").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.SetTelegramChatID(context.Background(), "ghost", "555")
		var notFound *utils.NotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
