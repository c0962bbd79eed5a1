package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/database"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// outcomeTTL keeps feedback counters for a rolling window; stale users age
// out instead of accumulating forever.
const outcomeTTL = 30 * 24 * time.Hour

// trackedDecisions are the verdict labels feedback is recorded against.
var trackedDecisions = []string{
	models.DecisionAvoid,
	models.DecisionCaution,
	models.DecisionStrongBuy,
	models.DecisionBuyNow,
	models.DecisionBuy,
	models.DecisionSmartWait,
	models.DecisionWait,
	models.DecisionConsider,
}

// DecisionAccuracy summarizes how often a verdict label proved right for
// one user.
type DecisionAccuracy struct {
	Decision string `json:"decision"`
	Total    int    `json:"total"`
	Accurate int    `json:"accurate"`
	Percent  int    `json:"percent"`
}

// LearningService keeps per-user verdict outcome counters in Redis.
type LearningService struct {
	redis  *database.RedisClient
	logger *logrus.Logger
}

func NewLearningService(redis *database.RedisClient, logger *logrus.Logger) *LearningService {
	return &LearningService{redis: redis, logger: logger}
}

// RecordOutcome counts one piece of user feedback on a past verdict.
func (s *LearningService) RecordOutcome(ctx context.Context, uid, decision string, accurate bool) error {
	if uid == "" || !isTrackedDecision(decision) {
		return fmt.Errorf("invalid feedback: uid=%q decision=%q", uid, decision)
	}

	totalKey := outcomeKey(uid, decision, "total")
	if _, err := s.redis.Incr(ctx, totalKey); err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	_ = s.redis.Expire(ctx, totalKey, outcomeTTL)

	if accurate {
		hitKey := outcomeKey(uid, decision, "accurate")
		if _, err := s.redis.Incr(ctx, hitKey); err != nil {
			return fmt.Errorf("failed to record outcome: %w", err)
		}
		_ = s.redis.Expire(ctx, hitKey, outcomeTTL)
	}
	return nil
}

// Accuracy reports the user's per-decision feedback counters. Decisions with
// no feedback are omitted.
func (s *LearningService) Accuracy(ctx context.Context, uid string) ([]DecisionAccuracy, error) {
	var out []DecisionAccuracy
	for _, decision := range trackedDecisions {
		total := s.counter(ctx, outcomeKey(uid, decision, "total"))
		if total == 0 {
			continue
		}
		accurate := s.counter(ctx, outcomeKey(uid, decision, "accurate"))
		out = append(out, DecisionAccuracy{
			Decision: decision,
			Total:    total,
			Accurate: accurate,
			Percent:  accurate * 100 / total,
		})
	}
	return out, nil
}

func (s *LearningService) counter(ctx context.Context, key string) int {
	raw, err := s.redis.Get(ctx, key)
	if err != nil {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		if s.logger != nil && err != nil {
			s.logger.WithField("key", key).Warn("corrupt feedback counter")
		}
		return 0
	}
	return value
}

func outcomeKey(uid, decision, suffix string) string {
	return fmt.Sprintf("learning:%s:%s:%s", uid, decision, suffix)
}

func isTrackedDecision(decision string) bool {
	for _, d := range trackedDecisions {
		if d == decision {
			return true
		}
	}
	return false
}
