package models

import (
	"time"

	"github.com/cardcore/cardcore/internal/common"
)

// Rating is the user's self-assessment after seeing a card's back.
// Only the four listed values are valid on the wire.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// ParseRating validates a wire string against the closed set of ratings.
func ParseRating(s string) (Rating, error) {
	switch r := Rating(s); r {
	case RatingAgain, RatingHard, RatingGood, RatingEasy:
		return r, nil
	default:
		return "", common.ErrorInvalidRating
	}
}

// Review is one rating event, kept as an append-only log that feeds the
// statistics endpoints.
type Review struct {
	ID         string    `json:"id"`
	CardID     string    `json:"card_id"`
	StackID    string    `json:"stack_id"`
	UserID     string    `json:"user_id"`
	Rating     Rating    `json:"rating"`
	BoxBefore  int       `json:"box_before"`
	BoxAfter   int       `json:"box_after"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
