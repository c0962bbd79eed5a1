// Package services holds the application services that sit between the HTTP
// handlers and the storage layer.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

// ErrProExpired signals that a lapsed pro user hit the paywall. The client
// shows the renewal prompt instead of the generic out-of-searches message;
// the one-time free pass granted alongside keeps them searching meanwhile.
var ErrProExpired = errors.New("pro subscription expired")

// QuotaStore is the persistence surface the quota service needs.
type QuotaStore interface {
	GetEnergy(ctx context.Context, uid string) (*models.Energy, error)
	IncrementUsage(ctx context.Context, uid string) error
	GrantPro(ctx context.Context, uid string, expiresAt time.Time) error
	GrantFreePass(ctx context.Context, uid string) error
	ResetStaleUsage(ctx context.Context, olderThan time.Duration) (int64, error)
}

// QuotaService enforces the free-tier search allowance and the pro pass.
type QuotaService struct {
	store         QuotaStore
	freeLimit     int
	resetInterval time.Duration
	logger        *logrus.Logger
}

func NewQuotaService(store QuotaStore, freeLimit int, resetInterval time.Duration, logger *logrus.Logger) *QuotaService {
	if freeLimit <= 0 {
		freeLimit = 3
	}
	if resetInterval <= 0 {
		resetInterval = 24 * time.Hour
	}
	return &QuotaService{
		store:         store,
		freeLimit:     freeLimit,
		resetInterval: resetInterval,
		logger:        logger,
	}
}

// Consume spends one search for the user and returns the remaining quota.
// Pro users with a live pass are unlimited. A lapsed pro gets a one-time
// free pass plus ErrProExpired so the client can show the renewal prompt.
// Exhausted free users get a QuotaExceededError.
func (s *QuotaService) Consume(ctx context.Context, uid string) (*models.EnergyStatus, error) {
	energy, err := s.store.GetEnergy(ctx, uid)
	if err != nil {
		return nil, err
	}

	if s.proActive(energy) {
		return &models.EnergyStatus{Unlimited: true, Limit: s.freeLimit}, nil
	}

	if energy.WasPro && !energy.HasFreePass {
		if err := s.store.GrantFreePass(ctx, uid); err != nil {
			return nil, err
		}
		if s.logger != nil {
			s.logger.WithField("uid", uid).Info("pro pass lapsed, free pass granted")
		}
		return nil, ErrProExpired
	}

	if energy.SearchesUsed >= s.freeLimit {
		return nil, utils.NewQuotaExceededError(s.freeLimit)
	}

	if err := s.store.IncrementUsage(ctx, uid); err != nil {
		return nil, err
	}

	return &models.EnergyStatus{
		Left:  s.freeLimit - energy.SearchesUsed - 1,
		Limit: s.freeLimit,
	}, nil
}

// Status reports the user's quota without spending a search.
func (s *QuotaService) Status(ctx context.Context, uid string) (*models.EnergyStatus, error) {
	energy, err := s.store.GetEnergy(ctx, uid)
	if err != nil {
		return nil, err
	}

	if s.proActive(energy) {
		return &models.EnergyStatus{Unlimited: true, Limit: s.freeLimit}, nil
	}

	left := s.freeLimit - energy.SearchesUsed
	if left < 0 {
		left = 0
	}
	return &models.EnergyStatus{Left: left, Limit: s.freeLimit}, nil
}

// ActivatePro grants a pro pass for the given duration, called from the
// payment webhook.
func (s *QuotaService) ActivatePro(ctx context.Context, uid string, duration time.Duration) error {
	expires := time.Now().Add(duration)
	if err := s.store.GrantPro(ctx, uid, expires); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"uid":     uid,
			"expires": expires,
		}).Info("pro pass activated")
	}
	return nil
}

// RunResetSweep periodically zeroes stale usage counters until the context
// is cancelled.
func (s *QuotaService) RunResetSweep(ctx context.Context) {
	ticker := time.NewTicker(s.resetInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			affected, err := s.store.ResetStaleUsage(ctx, s.resetInterval)
			if err != nil {
				if s.logger != nil {
					s.logger.WithError(err).Error("quota reset sweep failed")
				}
				continue
			}
			if s.logger != nil && affected > 0 {
				s.logger.WithField("users", affected).Info("quota counters reset")
			}
		}
	}
}

func (s *QuotaService) proActive(energy *models.Energy) bool {
	return energy.ProExpiresAt != nil && energy.ProExpiresAt.After(time.Now())
}
