package models

import "time"

// ScribblePad is a user's single freeform notes pad, one row per user.
type ScribblePad struct {
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
