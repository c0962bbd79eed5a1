package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/middleware"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/services"
)

// OutcomeRecorder tracks how verdicts worked out for the user.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, uid, decision string, accurate bool) error
	Accuracy(ctx context.Context, uid string) ([]services.DecisionAccuracy, error)
}

// FeedbackHandler serves verdict feedback endpoints.
type FeedbackHandler struct {
	learning OutcomeRecorder
}

func NewFeedbackHandler(learning OutcomeRecorder) *FeedbackHandler {
	return &FeedbackHandler{learning: learning}
}

type FeedbackRequest struct {
	Decision string `json:"decision" binding:"required"`
	Accurate *bool  `json:"accurate" binding:"required"`
}

// RecordFeedback counts whether a past verdict proved accurate.
func (h *FeedbackHandler) RecordFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision and accurate are required"})
		return
	}

	uid := c.GetString(middleware.ContextUserID)
	if err := h.learning.RecordOutcome(c.Request.Context(), uid, req.Decision, *req.Accurate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown decision label"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// Accuracy reports the user's per-decision feedback counters.
func (h *FeedbackHandler) Accuracy(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)

	accuracy, err := h.learning.Accuracy(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load accuracy"})
		return
	}
	if accuracy == nil {
		accuracy = []services.DecisionAccuracy{}
	}

	c.JSON(http.StatusOK, gin.H{"accuracy": accuracy})
}
