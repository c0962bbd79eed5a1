package models

import "time"

// User is a registered account. Guests never reach this table; they get the
// shared guest identity with the default free quota.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	TelegramChatID *string   `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Energy tracks a user's free-tier search quota and pro pass.
type Energy struct {
	UID          string     `json:"uid"`
	SearchesUsed int        `json:"searches_used"`
	HasFreePass  bool       `json:"has_free_pass"`
	WasPro       bool       `json:"was_pro"`
	ProExpiresAt *time.Time `json:"pro_expires_at,omitempty"`
}

// EnergyStatus is the quota summary attached to search responses.
type EnergyStatus struct {
	Left      int  `json:"left"`
	Limit     int  `json:"limit"`
	Unlimited bool `json:"unlimited"`
}
