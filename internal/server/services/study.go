package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cardcore/cardcore/internal/common"
	"github.com/cardcore/cardcore/internal/dbx"
	"github.com/cardcore/cardcore/internal/server/models"
	"github.com/cardcore/cardcore/internal/server/repositories/repomanager"
)

// boxIntervals maps a box level to the delay before the card comes due
// again. Index 0 is unused; boxes run 1..5.
var boxIntervals = [models.MaxBox + 1]time.Duration{
	0,
	10 * time.Minute,
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
}

// NextBox applies a rating to a card's current box:
// again resets to box 1, hard keeps the box, good moves up one,
// easy moves up two. The result never leaves [MinBox, MaxBox].
func NextBox(box int, rating models.Rating) int {
	switch rating {
	case models.RatingAgain:
		return models.MinBox
	case models.RatingHard:
		// stays put
	case models.RatingGood:
		box++
	case models.RatingEasy:
		box += 2
	}
	if box > models.MaxBox {
		box = models.MaxBox
	}
	if box < models.MinBox {
		box = models.MinBox
	}
	return box
}

// NextDueAt computes the new due timestamp for a card that just moved to
// box after a rating. "again" makes the card due immediately so it comes
// back within the same session; "hard" halves the box interval.
func NextDueAt(now time.Time, box int, rating models.Rating) time.Time {
	switch rating {
	case models.RatingAgain:
		return now
	case models.RatingHard:
		return now.Add(boxIntervals[box] / 2)
	default:
		return now.Add(boxIntervals[box])
	}
}

// StudyService serves the review loop: picking the next due card of a stack
// and applying a rating to it.
type StudyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewStudyService(db *sql.DB, m repomanager.RepositoryManager) *StudyService {
	return &StudyService{db: db, repomanager: m, now: time.Now}
}

// NextCard returns the due card with the oldest due date, or nil when the
// stack has nothing due. Any user who can see the stack may ask.
func (s *StudyService) NextCard(ctx context.Context, userID, stackID string) (*models.Card, error) {
	access, err := s.repomanager.Stacks(s.db).GetAccess(ctx, stackID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead() {
		return nil, common.ErrorForbidden
	}

	card, err := s.repomanager.Cards(s.db).NextDue(ctx, stackID, s.now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return card, nil
}

// SubmitReview applies a rating to a card: the card moves to its new box and
// due date, and the rating is appended to the review log, atomically.
// Only the stack owner may review; mastery state belongs to the owner.
func (s *StudyService) SubmitReview(ctx context.Context, userID, stackID, cardID string, rating models.Rating) (*models.Card, error) {
	access, err := s.repomanager.Stacks(s.db).GetAccess(ctx, stackID, userID)
	if err != nil {
		return nil, err
	}
	if !access.IsOwner {
		return nil, common.ErrorForbidden
	}

	card, err := s.repomanager.Cards(s.db).GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.StackID != stackID {
		return nil, common.ErrorNotFound
	}

	now := s.now()
	box := NextBox(card.Box, rating)
	dueAt := NextDueAt(now, box, rating)

	var updated *models.Card
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		updated, txErr = s.repomanager.Cards(tx).AdvanceBox(ctx, cardID, box, dueAt)
		if txErr != nil {
			return txErr
		}

		_, txErr = s.repomanager.Reviews(tx).Create(ctx, &models.Review{
			CardID:    cardID,
			StackID:   stackID,
			UserID:    userID,
			Rating:    rating,
			BoxBefore: card.Box,
			BoxAfter:  box,
		})
		return txErr
	}); err != nil {
		return nil, err
	}

	return updated, nil
}
