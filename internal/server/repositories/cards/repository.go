package cards

import (
	"context"
	"time"

	"github.com/cardcore/cardcore/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	GetByID(ctx context.Context, id string) (*models.Card, error)
	ListByStack(ctx context.Context, stackID string) ([]*models.Card, error)
	Update(ctx context.Context, id string, front, back *string) (*models.Card, error)
	Delete(ctx context.Context, id string) error

	// NextDue returns the due card with the oldest due_at, or
	// common.ErrorNotFound when nothing is due.
	NextDue(ctx context.Context, stackID string, now time.Time) (*models.Card, error)

	// AdvanceBox moves a card to a new box and due date after a review.
	AdvanceBox(ctx context.Context, id string, box int, dueAt time.Time) (*models.Card, error)

	SetImageKey(ctx context.Context, id string, key string) error
}
