package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

// AlertRepository handles database operations for price alerts.
type AlertRepository struct {
	pool DatabasePool
}

// NewAlertRepository creates a new alert repository.
func NewAlertRepository(pool DatabasePool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

// Create stores a new active alert.
func (r *AlertRepository) Create(ctx context.Context, userID, productID, productTitle string, targetPrice decimal.Decimal, telegramChatID *string) (*models.PriceAlert, error) {
	query := `
		INSERT INTO price_alerts (user_id, product_id, product_title, target_price, telegram_chat_id, active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, user_id, product_id, product_title, target_price, telegram_chat_id, active, created_at, triggered_at
	`

	var alert models.PriceAlert
	err := r.pool.QueryRow(ctx, query, userID, productID, productTitle, targetPrice, telegramChatID).Scan(
		&alert.ID, &alert.UserID, &alert.ProductID, &alert.ProductTitle,
		&alert.TargetPrice, &alert.TelegramChatID, &alert.Active,
		&alert.CreatedAt, &alert.TriggeredAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return &alert, nil
}

// ListByUser returns all of a user's alerts, newest first.
func (r *AlertRepository) ListByUser(ctx context.Context, userID string) ([]models.PriceAlert, error) {
	query := `
		SELECT id, user_id, product_id, product_title, target_price, telegram_chat_id, active, created_at, triggered_at
		FROM price_alerts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

// ListActiveForProduct returns the active alerts watching one product.
func (r *AlertRepository) ListActiveForProduct(ctx context.Context, productID string) ([]models.PriceAlert, error) {
	query := `
		SELECT id, user_id, product_id, product_title, target_price, telegram_chat_id, active, created_at, triggered_at
		FROM price_alerts
		WHERE product_id = $1 AND active = true
	`
	return r.list(ctx, query, productID)
}

func (r *AlertRepository) list(ctx context.Context, query string, arg interface{}) ([]models.PriceAlert, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.PriceAlert
	for rows.Next() {
		var alert models.PriceAlert
		if err := rows.Scan(
			&alert.ID, &alert.UserID, &alert.ProductID, &alert.ProductTitle,
			&alert.TargetPrice, &alert.TelegramChatID, &alert.Active,
			&alert.CreatedAt, &alert.TriggeredAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, nil
}

// MarkTriggered deactivates an alert after delivery and stamps the trigger
// time.
func (r *AlertRepository) MarkTriggered(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE price_alerts
		SET active = false, triggered_at = $2
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to mark alert triggered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NewNotFoundError("alert", id)
	}
	return nil
}

// Delete removes a user's alert. The user scope prevents deleting someone
// else's alert by guessing IDs.
func (r *AlertRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM price_alerts WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NewNotFoundError("alert", id)
	}
	return nil
}
