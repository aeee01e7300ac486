// Package models holds the client-side view of the API's wire records.
package models

import "time"

type Stack struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	UserID     string    `json:"user_id"`
	OwnerName  string    `json:"owner_name,omitempty"`
	IsPublic   bool      `json:"is_public"`
	CardAmount int       `json:"card_amount"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Card struct {
	ID         string    `json:"id"`
	StackID    string    `json:"stack_id"`
	Front      string    `json:"front"`
	Back       string    `json:"back"`
	Box        int       `json:"box"`
	DueAt      time.Time `json:"due_at"`
	FrontImage string    `json:"front_image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ScribblePad struct {
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
