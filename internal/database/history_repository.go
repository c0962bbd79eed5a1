package database

import (
	"context"
	"fmt"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// HistoryRepository handles database operations for price history.
type HistoryRepository struct {
	pool DatabasePool
}

// NewHistoryRepository creates a new price history repository.
func NewHistoryRepository(pool DatabasePool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// RecordObservation appends one price observation for a product.
func (r *HistoryRepository) RecordObservation(ctx context.Context, obs models.PriceObservation) error {
	query := `
		INSERT INTO price_history (product_id, title, price, store, link, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		obs.ProductID, obs.Title, obs.Price, obs.Store, obs.Link, obs.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to record price observation: %w", err)
	}
	return nil
}

// GetHistory returns up to limit observations for a product, oldest first,
// ready to feed the trend engine.
func (r *HistoryRepository) GetHistory(ctx context.Context, productID string, limit int) ([]models.PriceObservation, error) {
	query := `
		SELECT product_id, title, price, store, link, observed_at
		FROM (
			SELECT product_id, title, price, store, link, observed_at
			FROM price_history
			WHERE product_id = $1
			ORDER BY observed_at DESC
			LIMIT $2
		) recent
		ORDER BY observed_at ASC
	`

	rows, err := r.pool.Query(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history for %s: %w", productID, err)
	}
	defer rows.Close()

	var observations []models.PriceObservation
	for rows.Next() {
		var obs models.PriceObservation
		if err := rows.Scan(&obs.ProductID, &obs.Title, &obs.Price, &obs.Store, &obs.Link, &obs.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan price observation: %w", err)
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price history: %w", err)
	}

	return observations, nil
}

// Prune keeps only the most recent maxPoints observations per product.
func (r *HistoryRepository) Prune(ctx context.Context, productID string, maxPoints int) error {
	query := `
		DELETE FROM price_history
		WHERE product_id = $1 AND observed_at NOT IN (
			SELECT observed_at
			FROM price_history
			WHERE product_id = $1
			ORDER BY observed_at DESC
			LIMIT $2
		)
	`

	if _, err := r.pool.Exec(ctx, query, productID, maxPoints); err != nil {
		return fmt.Errorf("failed to prune price history for %s: %w", productID, err)
	}
	return nil
}
