package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/middleware"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/services"
)

// signatureHeader carries the provider's HMAC over the raw webhook body.
const signatureHeader = "x-nowpayments-sig"

// PaymentProvider is the payment surface the HTTP endpoints need.
type PaymentProvider interface {
	CreateInvoice(ctx context.Context, uid string) (*services.Invoice, error)
	VerifySignature(body []byte, signature string) bool
	HandleWebhook(ctx context.Context, event services.WebhookEvent) error
}

// PaymentsHandler serves the pro upgrade endpoints.
type PaymentsHandler struct {
	payments PaymentProvider
	logger   *logrus.Logger
}

func NewPaymentsHandler(payments PaymentProvider, logger *logrus.Logger) *PaymentsHandler {
	return &PaymentsHandler{payments: payments, logger: logger}
}

// CreateInvoice opens a payment invoice for the calling user's pro upgrade.
func (h *PaymentsHandler) CreateInvoice(c *gin.Context) {
	uid := c.GetString(middleware.ContextUserID)

	invoice, err := h.payments.CreateInvoice(c.Request.Context(), uid)
	if err != nil {
		if h.logger != nil {
			h.logger.WithError(err).WithField("uid", uid).Error("invoice creation failed")
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"invoice": invoice})
}

// Webhook processes payment status callbacks. The signature is checked over
// the raw body before any parsing.
func (h *PaymentsHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	if !h.payments.VerifySignature(body, c.GetHeader(signatureHeader)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid signature"})
		return
	}

	var event services.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed webhook payload"})
		return
	}

	if err := h.payments.HandleWebhook(c.Request.Context(), event); err != nil {
		if h.logger != nil {
			h.logger.WithError(err).WithField("order_id", event.OrderID).Error("webhook processing failed")
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook rejected"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
