package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// QuotaRepository handles database operations for per-user search quota.
type QuotaRepository struct {
	pool DatabasePool
}

// NewQuotaRepository creates a new quota repository.
func NewQuotaRepository(pool DatabasePool) *QuotaRepository {
	return &QuotaRepository{pool: pool}
}

// GetEnergy loads a user's quota record. An unknown user gets a fresh zero
// record rather than an error.
func (r *QuotaRepository) GetEnergy(ctx context.Context, uid string) (*models.Energy, error) {
	query := `
		SELECT uid, searches_used, has_free_pass, was_pro, pro_expires_at
		FROM user_energy
		WHERE uid = $1
	`

	var energy models.Energy
	err := r.pool.QueryRow(ctx, query, uid).Scan(
		&energy.UID,
		&energy.SearchesUsed,
		&energy.HasFreePass,
		&energy.WasPro,
		&energy.ProExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return &models.Energy{UID: uid}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load energy for %s: %w", uid, err)
	}

	return &energy, nil
}

// IncrementUsage records one consumed search, creating the row on first use.
func (r *QuotaRepository) IncrementUsage(ctx context.Context, uid string) error {
	query := `
		INSERT INTO user_energy (uid, searches_used, updated_at)
		VALUES ($1, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (uid)
		DO UPDATE SET
			searches_used = user_energy.searches_used + 1,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.pool.Exec(ctx, query, uid); err != nil {
		return fmt.Errorf("failed to increment usage for %s: %w", uid, err)
	}
	return nil
}

// GrantPro activates a pro pass until the given time.
func (r *QuotaRepository) GrantPro(ctx context.Context, uid string, expiresAt time.Time) error {
	query := `
		INSERT INTO user_energy (uid, searches_used, was_pro, pro_expires_at, updated_at)
		VALUES ($1, 0, true, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (uid)
		DO UPDATE SET
			was_pro = true,
			pro_expires_at = EXCLUDED.pro_expires_at,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.pool.Exec(ctx, query, uid, expiresAt); err != nil {
		return fmt.Errorf("failed to grant pro for %s: %w", uid, err)
	}
	return nil
}

// GrantFreePass marks a one-time free pass, used after a pro pass lapses.
func (r *QuotaRepository) GrantFreePass(ctx context.Context, uid string) error {
	query := `
		INSERT INTO user_energy (uid, searches_used, has_free_pass, updated_at)
		VALUES ($1, 0, true, CURRENT_TIMESTAMP)
		ON CONFLICT (uid)
		DO UPDATE SET
			has_free_pass = true,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.pool.Exec(ctx, query, uid); err != nil {
		return fmt.Errorf("failed to grant free pass for %s: %w", uid, err)
	}
	return nil
}

// ResetStaleUsage zeroes counters that have not been touched within the reset
// interval. Called by the periodic sweep.
func (r *QuotaRepository) ResetStaleUsage(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		UPDATE user_energy
		SET searches_used = 0, updated_at = CURRENT_TIMESTAMP
		WHERE searches_used > 0 AND updated_at < $1
	`

	tag, err := r.pool.Exec(ctx, query, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("failed to reset stale usage: %w", err)
	}
	return tag.RowsAffected(), nil
}
