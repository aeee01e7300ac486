package reviews

import (
	"context"
	"time"

	"github.com/cardcore/cardcore/internal/server/models"
)

// Repository is the append-only review log plus the aggregation queries
// behind the statistics endpoints.
type Repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)

	CountsByStack(ctx context.Context, stackID string) (models.RatingCounts, error)
	BoxDistributionByStack(ctx context.Context, stackID string) ([]models.BoxCount, error)
	TopCardsByStack(ctx context.Context, stackID string, hardestFirst bool, limit int) ([]models.CardStats, error)
	ActivityByStack(ctx context.Context, stackID string, since time.Time) ([]models.DayActivity, error)

	CountsByUser(ctx context.Context, userID string) (models.RatingCounts, error)
	BoxDistributionByUser(ctx context.Context, userID string) ([]models.BoxCount, error)
	ActivityByUser(ctx context.Context, userID string, since time.Time) ([]models.DayActivity, error)
	StudyDatesByUser(ctx context.Context, userID string) ([]time.Time, error)
}
