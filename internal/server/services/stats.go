package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/cardcore/cardcore/internal/common"
	"github.com/cardcore/cardcore/internal/server/models"
	"github.com/cardcore/cardcore/internal/server/repositories/repomanager"
)

const (
	activityWindow  = 30 * 24 * time.Hour
	topCardsLimit   = 5
	statsDateLayout = "2006-01-02"
)

// StatsService assembles the aggregate views behind the statistics
// endpoints, per stack and across a whole account.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewStatsService(db *sql.DB, m repomanager.RepositoryManager) *StatsService {
	return &StatsService{db: db, repomanager: m, now: time.Now}
}

// boxSummary folds a box distribution into its card total and average box.
func boxSummary(distribution []models.BoxCount) (int, float64) {
	var total, weighted int
	for _, b := range distribution {
		total += b.Count
		weighted += b.Box * b.Count
	}
	if total == 0 {
		return 0, 0
	}
	return total, float64(weighted) / float64(total)
}

// ComputeStreak derives current and longest consecutive-day runs from the
// distinct study dates of a user, newest first. The current streak counts
// only when the last study day is today or yesterday.
func ComputeStreak(dates []time.Time, today time.Time) *models.StudyStreak {
	if len(dates) == 0 {
		return &models.StudyStreak{}
	}

	streak := &models.StudyStreak{
		LastStudyDate: dates[0].Format(statsDateLayout),
	}

	run := 1
	longest := 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].Sub(dates[i]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	streak.LongestStreak = longest

	day := today.Truncate(24 * time.Hour)
	gap := day.Sub(dates[0].Truncate(24 * time.Hour))
	if gap <= 24*time.Hour {
		current := 1
		for i := 1; i < len(dates); i++ {
			if dates[i-1].Sub(dates[i]) != 24*time.Hour {
				break
			}
			current++
		}
		streak.CurrentStreak = current
	}

	return streak
}

// StackStatistics builds the per-stack aggregate view. Any reader of the
// stack may ask.
func (s *StatsService) StackStatistics(ctx context.Context, userID, stackID string) (*models.StackStatistics, error) {
	access, err := s.repomanager.Stacks(s.db).GetAccess(ctx, stackID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead() {
		return nil, common.ErrorForbidden
	}

	repo := s.repomanager.Reviews(s.db)

	counts, err := repo.CountsByStack(ctx, stackID)
	if err != nil {
		return nil, err
	}

	distribution, err := repo.BoxDistributionByStack(ctx, stackID)
	if err != nil {
		return nil, err
	}

	mostReviewed, err := repo.TopCardsByStack(ctx, stackID, false, topCardsLimit)
	if err != nil {
		return nil, err
	}

	hardest, err := repo.TopCardsByStack(ctx, stackID, true, topCardsLimit)
	if err != nil {
		return nil, err
	}

	activity, err := repo.ActivityByStack(ctx, stackID, s.now().Add(-activityWindow))
	if err != nil {
		return nil, err
	}

	total, average := boxSummary(distribution)

	return &models.StackStatistics{
		TotalCards:      total,
		AverageBox:      average,
		RatingCounts:    counts,
		BoxDistribution: distribution,
		MostReviewed:    mostReviewed,
		HardestCards:    hardest,
		RecentActivity:  activity,
	}, nil
}

// UserStatistics builds the cross-stack aggregate view for the calling user.
func (s *StatsService) UserStatistics(ctx context.Context, userID string) (*models.UserStatistics, error) {
	repo := s.repomanager.Reviews(s.db)

	counts, err := repo.CountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	distribution, err := repo.BoxDistributionByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	activity, err := repo.ActivityByUser(ctx, userID, s.now().Add(-activityWindow))
	if err != nil {
		return nil, err
	}

	dates, err := repo.StudyDatesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalStacks, err := s.repomanager.Stacks(s.db).CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalCards, average := boxSummary(distribution)

	return &models.UserStatistics{
		TotalStacks:     totalStacks,
		TotalCards:      totalCards,
		AverageBox:      average,
		RatingCounts:    counts,
		BoxDistribution: distribution,
		StudyStreak:     ComputeStreak(dates, s.now()),
		RecentActivity:  activity,
	}, nil
}
