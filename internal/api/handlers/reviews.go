package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/utils"
)

const (
	defaultReviewLimit = 50
	maxReviewLimit     = 100
)

// ReviewStore is the persistence surface the review endpoints need.
type ReviewStore interface {
	Create(ctx context.Context, name, text string, rating int) (*models.Review, error)
	List(ctx context.Context, limit int) ([]models.Review, error)
	MarkHelpful(ctx context.Context, id string) (int, error)
}

// ReviewHandler serves the review endpoints.
type ReviewHandler struct {
	store ReviewStore
}

func NewReviewHandler(store ReviewStore) *ReviewHandler {
	return &ReviewHandler{store: store}
}

type CreateReviewRequest struct {
	Name   string `json:"name" binding:"required"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required"`
}

// CreateReview stores a new review. Ratings outside 1..5 are rejected.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, text and rating are required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	review, err := h.store.Create(c.Request.Context(), req.Name, req.Text, req.Rating)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ListReviews returns the most recent reviews.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	limit := defaultReviewLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(parsed, maxReviewLimit)
	}

	reviews, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// MarkHelpful increments a review's helpful counter.
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	id := c.Param("id")

	helpful, err := h.store.MarkHelpful(c.Request.Context(), id)
	if err != nil {
		var notFound *utils.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"helpful": helpful})
}
