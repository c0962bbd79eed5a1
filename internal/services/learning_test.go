package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/database"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

func newTestLearningService(t *testing.T) *LearningService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	return NewLearningService(client, nil)
}

func TestLearningServiceRecordAndAccuracy(t *testing.T) {
	svc := newTestLearningService(t)
	ctx := context.Background()

	require.NoError(t, svc.RecordOutcome(ctx, "u1", models.DecisionBuy, true))
	require.NoError(t, svc.RecordOutcome(ctx, "u1", models.DecisionBuy, true))
	require.NoError(t, svc.RecordOutcome(ctx, "u1", models.DecisionBuy, false))
	require.NoError(t, svc.RecordOutcome(ctx, "u1", models.DecisionAvoid, true))

	accuracy, err := svc.Accuracy(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, accuracy, 2)

	byDecision := make(map[string]DecisionAccuracy)
	for _, a := range accuracy {
		byDecision[a.Decision] = a
	}

	buy := byDecision[models.DecisionBuy]
	assert.Equal(t, 3, buy.Total)
	assert.Equal(t, 2, buy.Accurate)
	assert.Equal(t, 66, buy.Percent)

	avoid := byDecision[models.DecisionAvoid]
	assert.Equal(t, 1, avoid.Total)
	assert.Equal(t, 100, avoid.Percent)
}

func TestLearningServiceRejectsInvalidFeedback(t *testing.T) {
	svc := newTestLearningService(t)
	ctx := context.Background()

	assert.Error(t, svc.RecordOutcome(ctx, "", models.DecisionBuy, true))
	assert.Error(t, svc.RecordOutcome(ctx, "u1", "MAYBE", true))
	assert.Error(t, svc.RecordOutcome(ctx, "u1", models.DecisionInsufficientData, true))
}

func TestLearningServiceIsolatesUsers(t *testing.T) {
	svc := newTestLearningService(t)
	ctx := context.Background()

	require.NoError(t, svc.RecordOutcome(ctx, "u1", models.DecisionBuy, true))

	accuracy, err := svc.Accuracy(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, accuracy)
}
