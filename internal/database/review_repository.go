package database

import (
	"context"
	"fmt"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

// ReviewRepository handles database operations for user reviews.
type ReviewRepository struct {
	pool DatabasePool
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(pool DatabasePool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create stores a new review and returns it with its generated fields.
func (r *ReviewRepository) Create(ctx context.Context, name, text string, rating int) (*models.Review, error) {
	query := `
		INSERT INTO reviews (name, text, rating)
		VALUES ($1, $2, $3)
		RETURNING id, name, text, rating, helpful, created_at
	`

	var review models.Review
	err := r.pool.QueryRow(ctx, query, name, text, rating).Scan(
		&review.ID, &review.Name, &review.Text, &review.Rating, &review.Helpful, &review.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// List returns the most recent reviews, newest first.
func (r *ReviewRepository) List(ctx context.Context, limit int) ([]models.Review, error) {
	query := `
		SELECT id, name, text, rating, helpful, created_at
		FROM reviews
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.Name, &review.Text, &review.Rating, &review.Helpful, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// MarkHelpful increments a review's helpful counter and returns the new count.
func (r *ReviewRepository) MarkHelpful(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE reviews
		SET helpful = helpful + 1
		WHERE id = $1
		RETURNING helpful
	`

	var helpful int
	err := r.pool.QueryRow(ctx, query, id).Scan(&helpful)
	if err != nil {
		return 0, utils.NewNotFoundError("review", id)
	}
	return helpful, nil
}
