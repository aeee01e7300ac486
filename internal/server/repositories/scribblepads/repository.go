package scribblepads

import (
	"context"

	"github.com/cardcore/cardcore/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, userID string) (*models.ScribblePad, error)
	Upsert(ctx context.Context, userID, content string) (*models.ScribblePad, error)
}
