package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceAlert is a user's request to be notified when a product drops to or
// below a target price.
type PriceAlert struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	ProductID      string          `json:"product_id"`
	ProductTitle   string          `json:"product_title"`
	TargetPrice    decimal.Decimal `json:"target_price"`
	TelegramChatID *string         `json:"telegram_chat_id,omitempty"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	TriggeredAt    *time.Time      `json:"triggered_at,omitempty"`
}
