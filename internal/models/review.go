package models

import "time"

// Review is a user-submitted product or service review.
type Review struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	Helpful   int       `json:"helpful"`
	CreatedAt time.Time `json:"created_at"`
}
