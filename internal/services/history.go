package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// HistoryStore is the persistence surface the history service needs.
type HistoryStore interface {
	RecordObservation(ctx context.Context, obs models.PriceObservation) error
	GetHistory(ctx context.Context, productID string, limit int) ([]models.PriceObservation, error)
	Prune(ctx context.Context, productID string, maxPoints int) error
}

// HistoryService records price observations on search hits and serves the
// trend engine's input.
type HistoryService struct {
	store     HistoryStore
	maxPoints int
	logger    *logrus.Logger
}

func NewHistoryService(store HistoryStore, maxPoints int, logger *logrus.Logger) *HistoryService {
	if maxPoints <= 0 {
		maxPoints = 30
	}
	return &HistoryService{store: store, maxPoints: maxPoints, logger: logger}
}

// Record stores one observation and trims the product's history to the cap.
// Failures are logged, not propagated: a history write must never fail a
// search.
func (s *HistoryService) Record(ctx context.Context, product models.Product) {
	if product.ID == "" || product.Price <= 0 {
		return
	}

	obs := models.PriceObservation{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     decimal.NewFromFloat(product.Price),
		Store:     product.Source,
		Link:      product.Link,
		Timestamp: time.Now(),
	}

	if err := s.store.RecordObservation(ctx, obs); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("product_id", product.ID).
				Warn("failed to record price observation")
		}
		return
	}
	if err := s.store.Prune(ctx, product.ID, s.maxPoints); err != nil && s.logger != nil {
		s.logger.WithError(err).WithField("product_id", product.ID).
			Warn("failed to prune price history")
	}
}

// Points returns the product's history as trend-engine input, oldest first.
// An unknown product yields an empty slice.
func (s *HistoryService) Points(ctx context.Context, productID string) []models.PricePoint {
	if productID == "" {
		return nil
	}
	observations, err := s.store.GetHistory(ctx, productID, s.maxPoints)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("product_id", productID).
				Warn("failed to load price history")
		}
		return nil
	}

	points := make([]models.PricePoint, 0, len(observations))
	for _, obs := range observations {
		points = append(points, obs.Point())
	}
	return points
}
