package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/models"
)

// AlertStore is the persistence surface the alert service needs.
type AlertStore interface {
	Create(ctx context.Context, userID, productID, productTitle string, targetPrice decimal.Decimal, telegramChatID *string) (*models.PriceAlert, error)
	ListByUser(ctx context.Context, userID string) ([]models.PriceAlert, error)
	ListActiveForProduct(ctx context.Context, productID string) ([]models.PriceAlert, error)
	MarkTriggered(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id, userID string) error
}

// Notifier delivers one alert message to a chat. Satisfied by the Telegram
// bot in production and by a fake in tests.
type Notifier interface {
	Send(ctx context.Context, chatID, message string) error
}

// TelegramNotifier sends alert messages through the Telegram Bot API.
type TelegramNotifier struct {
	bot *bot.Bot
}

// NewTelegramNotifier builds a notifier from a bot token. An empty token
// returns nil; alert checks then skip delivery.
func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	if token == "" {
		return nil, nil
	}
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: b}, nil
}

func (n *TelegramNotifier) Send(ctx context.Context, chatID, message string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   message,
	})
	return err
}

// AlertService manages price alert rules and fires notifications when a
// scored price crosses a target.
type AlertService struct {
	store    AlertStore
	notifier Notifier
	logger   *logrus.Logger
}

func NewAlertService(store AlertStore, notifier Notifier, logger *logrus.Logger) *AlertService {
	return &AlertService{store: store, notifier: notifier, logger: logger}
}

// Create registers a new alert for the user.
func (s *AlertService) Create(ctx context.Context, userID, productID, productTitle string, targetPrice decimal.Decimal, telegramChatID *string) (*models.PriceAlert, error) {
	return s.store.Create(ctx, userID, productID, productTitle, targetPrice, telegramChatID)
}

// List returns the user's alerts.
func (s *AlertService) List(ctx context.Context, userID string) ([]models.PriceAlert, error) {
	return s.store.ListByUser(ctx, userID)
}

// Delete removes the user's alert.
func (s *AlertService) Delete(ctx context.Context, id, userID string) error {
	return s.store.Delete(ctx, id, userID)
}

// CheckPrice fires every active alert whose target the observed price meets.
// Called on each fresh search hit; failures never fail the search. Returns
// how many alerts fired.
func (s *AlertService) CheckPrice(ctx context.Context, product models.Product) int {
	if product.ID == "" || product.Price <= 0 {
		return 0
	}

	alerts, err := s.store.ListActiveForProduct(ctx, product.ID)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("product_id", product.ID).
				Warn("failed to load alerts for product")
		}
		return 0
	}

	price := decimal.NewFromFloat(product.Price)
	fired := 0
	for _, alert := range alerts {
		if price.GreaterThan(alert.TargetPrice) {
			continue
		}

		if s.notifier != nil && alert.TelegramChatID != nil {
			message := fmt.Sprintf("🎯 %s dropped to %.2f (target %s)\n%s",
				alert.ProductTitle, product.Price, alert.TargetPrice.StringFixed(2), product.Link)
			if err := s.notifier.Send(ctx, *alert.TelegramChatID, message); err != nil {
				if s.logger != nil {
					s.logger.WithError(err).WithField("alert_id", alert.ID).
						Warn("failed to deliver alert")
				}
				continue
			}
		}

		if err := s.store.MarkTriggered(ctx, alert.ID, time.Now()); err != nil {
			if s.logger != nil {
				s.logger.WithError(err).WithField("alert_id", alert.ID).
					Warn("failed to mark alert triggered")
			}
			continue
		}
		fired++
	}

	if fired > 0 && s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"product_id": product.ID,
			"fired":      fired,
		}).Info("price alerts delivered")
	}
	return fired
}
