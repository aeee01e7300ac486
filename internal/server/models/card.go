package models

import "time"

// Box bounds for the Leitner levels. Box 1 is least mastered, MaxBox most.
const (
	MinBox = 1
	MaxBox = 5
)

// Card is a front/back pair with its mastery box and due timestamp.
// FrontImageKey is the object-storage key of the optional front image;
// FrontImage carries a presigned GET URL on API reads and is never stored.
type Card struct {
	ID            string    `json:"id"`
	StackID       string    `json:"stack_id"`
	Front         string    `json:"front"`
	Back          string    `json:"back"`
	Box           int       `json:"box"`
	DueAt         time.Time `json:"due_at"`
	FrontImageKey string    `json:"-"`
	FrontImage    string    `json:"front_image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
