package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

func TestAlertRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAlertRepository(mock)
	now := time.Now()
	target := decimal.NewFromFloat(499.99)

	mock.ExpectQuery("INSERT INTO price_alerts").
		WithArgs("u1", "p1", "RTX 4070", target, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "user_id", "product_id", "product_title", "target_price", "telegram_chat_id", "active", "created_at", "triggered_at"}).
			AddRow("a1", "u1", "p1", "RTX 4070", target, (*string)(nil), true, now, (*time.Time)(nil)))

	alert, err := repo.Create(context.Background(), "u1", "p1", "RTX 4070", target, nil)
	require.NoError(t, err)
	assert.Equal(t, "a1", alert.ID)
	assert.True(t, alert.Active)
	assert.True(t, alert.TargetPrice.Equal(target))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryListActiveForProduct(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAlertRepository(mock)
	now := time.Now()
	chatID := "12345"

	mock.ExpectQuery("SELECT (.+) FROM price_alerts").
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(
			[]string{"id", "user_id", "product_id", "product_title", "target_price", "telegram_chat_id", "active", "created_at", "triggered_at"}).
			AddRow("a1", "u1", "p1", "RTX 4070", decimal.NewFromInt(500), &chatID, true, now, (*time.Time)(nil)))

	alerts, err := repo.ListActiveForProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.NotNil(t, alerts[0].TelegramChatID)
	assert.Equal(t, "12345", *alerts[0].TelegramChatID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryMarkTriggered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAlertRepository(mock)
	at := time.Now()

	mock.ExpectExec("UPDATE price_alerts").
		WithArgs("a1", at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkTriggered(context.Background(), "a1", at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAlertRepositoryDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAlertRepository(mock)

	t.Run("deletes own alert", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM price_alerts").
			WithArgs("a1", "u1").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.Delete(context.Background(), "a1", "u1"))
	})

	t.Run("cannot delete another user's alert", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM price_alerts").
			WithArgs("a1", "intruder").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.Delete(context.Background(), "a1", "intruder")
		var notFound *utils.NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
