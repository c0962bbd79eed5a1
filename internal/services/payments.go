package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/config"
)

// Invoice is a created payment invoice the client redirects to.
type Invoice struct {
	ID         string  `json:"id"`
	InvoiceURL string  `json:"invoice_url"`
	PriceUSD   float64 `json:"price_usd"`
	OrderID    string  `json:"order_id"`
}

// WebhookEvent is the payment provider's IPN payload, reduced to the fields
// the upgrade flow needs.
type WebhookEvent struct {
	PaymentStatus string `json:"payment_status"`
	OrderID       string `json:"order_id"`
}

type invoiceRequest struct {
	PriceAmount   float64 `json:"price_amount"`
	PriceCurrency string  `json:"price_currency"`
	OrderID       string  `json:"order_id"`
	OrderDesc     string  `json:"order_description"`
}

type invoiceResponse struct {
	ID         string `json:"id"`
	InvoiceURL string `json:"invoice_url"`
}

// ProUpgrader grants a pro pass; implemented by the quota service.
type ProUpgrader interface {
	ActivatePro(ctx context.Context, uid string, duration time.Duration) error
}

// PaymentsService creates crypto invoices and processes payment webhooks
// that unlock the pro pass.
type PaymentsService struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	ipnSecret   string
	priceUSD    float64
	proDuration time.Duration
	upgrader    ProUpgrader
	logger      *logrus.Logger
}

func NewPaymentsService(cfg *config.PaymentsConfig, upgrader ProUpgrader, logger *logrus.Logger) *PaymentsService {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	duration := time.Duration(cfg.ProDurationDays) * 24 * time.Hour
	if duration <= 0 {
		duration = 30 * 24 * time.Hour
	}
	return &PaymentsService{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		ipnSecret:   cfg.IPNSecret,
		priceUSD:    cfg.ProPriceUSD,
		proDuration: duration,
		upgrader:    upgrader,
		logger:      logger,
	}
}

// CreateInvoice opens a pro-subscription invoice for the user. The user ID
// travels in the order ID so the webhook can route the upgrade.
func (s *PaymentsService) CreateInvoice(ctx context.Context, uid string) (*Invoice, error) {
	orderID := fmt.Sprintf("pro_%s_%s", uid, uuid.New().String()[:8])
	payload, err := json.Marshal(invoiceRequest{
		PriceAmount:   s.priceUSD,
		PriceCurrency: "usd",
		OrderID:       orderID,
		OrderDesc:     "Findly Pro — unlimited searches",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode invoice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/invoice", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment provider: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoice response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("payment provider error (%d): %s", resp.StatusCode, string(respBody))
	}

	var created invoiceResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("failed to decode invoice response: %w", err)
	}

	return &Invoice{
		ID:         created.ID,
		InvoiceURL: created.InvoiceURL,
		PriceUSD:   s.priceUSD,
		OrderID:    orderID,
	}, nil
}

// VerifySignature checks the provider's HMAC-SHA512 signature over the raw
// webhook body.
func (s *PaymentsService) VerifySignature(body []byte, signature string) bool {
	if s.ipnSecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(s.ipnSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleWebhook processes a verified payment event. A finished payment
// grants the pro pass to the user encoded in the order ID.
func (s *PaymentsService) HandleWebhook(ctx context.Context, event WebhookEvent) error {
	if event.PaymentStatus != "finished" && event.PaymentStatus != "confirmed" {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"status":   event.PaymentStatus,
				"order_id": event.OrderID,
			}).Debug("ignoring non-final payment event")
		}
		return nil
	}

	uid, err := userIDFromOrder(event.OrderID)
	if err != nil {
		return err
	}

	if err := s.upgrader.ActivatePro(ctx, uid, s.proDuration); err != nil {
		return fmt.Errorf("failed to activate pro for %s: %w", uid, err)
	}
	return nil
}

// userIDFromOrder extracts the user ID from a "pro_<uid>_<nonce>" order ID.
// The UID itself may contain underscores; the nonce never does.
func userIDFromOrder(orderID string) (string, error) {
	if !strings.HasPrefix(orderID, "pro_") {
		return "", fmt.Errorf("unrecognized order id %q", orderID)
	}
	rest := orderID[len("pro_"):]
	idx := strings.LastIndex(rest, "_")
	if idx <= 0 {
		return "", fmt.Errorf("unrecognized order id %q", orderID)
	}
	return rest[:idx], nil
}
