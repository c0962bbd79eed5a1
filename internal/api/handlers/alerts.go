package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/middleware"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// AlertManager is the alert surface the HTTP endpoints need.
type AlertManager interface {
	Create(ctx context.Context, userID, productID, productTitle string, targetPrice decimal.Decimal, telegramChatID *string) (*models.PriceAlert, error)
	List(ctx context.Context, userID string) ([]models.PriceAlert, error)
	Delete(ctx context.Context, id, userID string) error
}

// AlertHandler serves the price alert endpoints.
type AlertHandler struct {
	alerts AlertManager
}

func NewAlertHandler(alerts AlertManager) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

type CreateAlertRequest struct {
	ProductID      string  `json:"product_id" binding:"required"`
	ProductTitle   string  `json:"product_title" binding:"required"`
	TargetPrice    float64 `json:"target_price" binding:"required,gt=0"`
	TelegramChatID *string `json:"telegram_chat_id"`
}

// CreateAlert registers a price target for the calling user.
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id, product_title and a positive target_price are required"})
		return
	}

	uid := c.GetString(middleware.ContextUserID)
	alert, err := h.alerts.Create(c.Request.Context(), uid, req.ProductID, req.ProductTitle,
		decimal.NewFromFloat(req.TargetPrice), req.TelegramChatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create alert"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"alert": alert})
}

// ListAlerts returns the calling user's alerts, triggered ones included.
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)

	alerts, err := h.alerts.List(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list alerts"})
		return
	}
	if alerts == nil {
		alerts = []models.PriceAlert{}
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// DeleteAlert removes one of the calling user's alerts. Alerts belonging to
// other users are indistinguishable from missing ones.
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)

	if err := h.alerts.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete alert"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
