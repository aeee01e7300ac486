// Package study drives the review session: a completion-driven state machine
// over the API plus the progress aggregation shown after each rating.
package study

import "fmt"

// Rating is the closed set of self-assessments a user can give a card.
type Rating int

const (
	Again Rating = iota
	Hard
	Good
	Easy
)

var ratingNames = [...]string{"again", "hard", "good", "easy"}

// String returns the wire form of the rating.
func (r Rating) String() string {
	if r < Again || r > Easy {
		return fmt.Sprintf("Rating(%d)", int(r))
	}
	return ratingNames[r]
}

// ParseRating converts a wire string into a Rating.
func ParseRating(s string) (Rating, error) {
	for i, name := range ratingNames {
		if name == s {
			return Rating(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rating %q", s)
}
