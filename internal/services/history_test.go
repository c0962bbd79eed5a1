package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

type fakeHistoryStore struct {
	observations map[string][]models.PriceObservation
	pruned       map[string]int
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{
		observations: make(map[string][]models.PriceObservation),
		pruned:       make(map[string]int),
	}
}

func (f *fakeHistoryStore) RecordObservation(_ context.Context, obs models.PriceObservation) error {
	f.observations[obs.ProductID] = append(f.observations[obs.ProductID], obs)
	return nil
}

func (f *fakeHistoryStore) GetHistory(_ context.Context, productID string, limit int) ([]models.PriceObservation, error) {
	obs := f.observations[productID]
	if len(obs) > limit {
		obs = obs[len(obs)-limit:]
	}
	return obs, nil
}

func (f *fakeHistoryStore) Prune(_ context.Context, productID string, maxPoints int) error {
	f.pruned[productID] = maxPoints
	return nil
}

func TestHistoryServiceRecord(t *testing.T) {
	store := newFakeHistoryStore()
	svc := NewHistoryService(store, 30, nil)
	ctx := context.Background()

	svc.Record(ctx, models.Product{ID: "p1", Title: "RTX 4070", Price: 549, Source: "Newegg"})

	require.Len(t, store.observations["p1"], 1)
	assert.Equal(t, "RTX 4070", store.observations["p1"][0].Title)
	// every record is followed by a prune to the cap
	assert.Equal(t, 30, store.pruned["p1"])
}

func TestHistoryServiceRecordSkipsInvalid(t *testing.T) {
	store := newFakeHistoryStore()
	svc := NewHistoryService(store, 30, nil)
	ctx := context.Background()

	svc.Record(ctx, models.Product{ID: "", Price: 100})
	svc.Record(ctx, models.Product{ID: "p1", Price: 0})

	assert.Empty(t, store.observations)
}

func TestHistoryServicePoints(t *testing.T) {
	store := newFakeHistoryStore()
	svc := NewHistoryService(store, 30, nil)
	ctx := context.Background()

	for _, price := range []float64{100, 98, 96} {
		svc.Record(ctx, models.Product{ID: "p1", Price: price})
	}

	points := svc.Points(ctx, "p1")
	require.Len(t, points, 3)
	assert.Equal(t, 100.0, points[0].Price)
	assert.Equal(t, 96.0, points[2].Price)

	assert.Nil(t, svc.Points(ctx, ""))
	assert.Empty(t, svc.Points(ctx, "unknown"))
}
