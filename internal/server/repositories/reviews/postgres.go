// Package reviews provides the PostgreSQL-backed review log and the
// aggregation queries feeding stack and user statistics.
package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/cardcore/cardcore/internal/dbx"
	"github.com/cardcore/cardcore/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	query :=
		`INSERT INTO reviews (card_id, stack_id, user_id, rating, box_before, box_after)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, reviewed_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		review.CardID, review.StackID, review.UserID, string(review.Rating),
		review.BoxBefore, review.BoxAfter).Scan(&review.ID, &review.ReviewedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return review, nil
}

const ratingCountsSelect = `
	COUNT(*),
	COUNT(*) FILTER (WHERE rating = 'again'),
	COUNT(*) FILTER (WHERE rating = 'hard'),
	COUNT(*) FILTER (WHERE rating = 'good'),
	COUNT(*) FILTER (WHERE rating = 'easy')`

func (r *PostgresRepository) CountsByStack(ctx context.Context, stackID string) (models.RatingCounts, error) {
	query := `SELECT` + ratingCountsSelect + ` FROM reviews WHERE stack_id = $1`
	return r.scanCounts(ctx, query, stackID)
}

func (r *PostgresRepository) CountsByUser(ctx context.Context, userID string) (models.RatingCounts, error) {
	query := `SELECT` + ratingCountsSelect + ` FROM reviews WHERE user_id = $1`
	return r.scanCounts(ctx, query, userID)
}

func (r *PostgresRepository) scanCounts(ctx context.Context, query string, arg string) (models.RatingCounts, error) {
	var c models.RatingCounts
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&c.TotalReviews, &c.TotalAgain, &c.TotalHard, &c.TotalGood, &c.TotalEasy)
	if err != nil {
		return models.RatingCounts{}, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) BoxDistributionByStack(ctx context.Context, stackID string) ([]models.BoxCount, error) {
	query :=
		`SELECT box, COUNT(*) FROM cards
		 WHERE stack_id = $1
		 GROUP BY box ORDER BY box
		 `
	return r.scanBoxCounts(ctx, query, stackID)
}

func (r *PostgresRepository) BoxDistributionByUser(ctx context.Context, userID string) ([]models.BoxCount, error) {
	query :=
		`SELECT c.box, COUNT(*) FROM cards c
		 JOIN stacks s ON s.id = c.stack_id
		 WHERE s.user_id = $1
		 GROUP BY c.box ORDER BY c.box
		 `
	return r.scanBoxCounts(ctx, query, userID)
}

func (r *PostgresRepository) scanBoxCounts(ctx context.Context, query string, arg string) ([]models.BoxCount, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.BoxCount
	for rows.Next() {
		var item models.BoxCount
		if err := rows.Scan(&item.Box, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// TopCardsByStack lists cards by review volume. With hardestFirst, cards with
// the most again/hard ratings come first, which is what the "hardest cards"
// panel shows.
func (r *PostgresRepository) TopCardsByStack(ctx context.Context, stackID string, hardestFirst bool, limit int) ([]models.CardStats, error) {
	order := `COUNT(rv.id) DESC`
	if hardestFirst {
		order = `COUNT(rv.id) FILTER (WHERE rv.rating IN ('again', 'hard')) DESC`
	}

	query :=
		`SELECT c.id, c.front, c.back, c.box,
		        COUNT(rv.id),
		        COUNT(rv.id) FILTER (WHERE rv.rating IN ('again', 'hard')),
		        COUNT(rv.id) FILTER (WHERE rv.rating = 'easy')
		 FROM cards c
		 LEFT JOIN reviews rv ON rv.card_id = c.id
		 WHERE c.stack_id = $1
		 GROUP BY c.id, c.front, c.back, c.box
		 ORDER BY ` + order + `
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, stackID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.CardStats
	for rows.Next() {
		var item models.CardStats
		if err := rows.Scan(&item.ID, &item.Front, &item.Back, &item.Box,
			&item.ReviewCount, &item.HardCount, &item.EasyCount); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

const activitySelect = `
	to_char(reviewed_at::date, 'YYYY-MM-DD'),
	COUNT(*),
	COUNT(*) FILTER (WHERE rating = 'again'),
	COUNT(*) FILTER (WHERE rating = 'hard'),
	COUNT(*) FILTER (WHERE rating = 'good'),
	COUNT(*) FILTER (WHERE rating = 'easy')`

func (r *PostgresRepository) ActivityByStack(ctx context.Context, stackID string, since time.Time) ([]models.DayActivity, error) {
	query := `SELECT` + activitySelect + `
		 FROM reviews
		 WHERE stack_id = $1 AND reviewed_at >= $2
		 GROUP BY reviewed_at::date
		 ORDER BY reviewed_at::date`
	return r.scanActivity(ctx, query, stackID, since)
}

func (r *PostgresRepository) ActivityByUser(ctx context.Context, userID string, since time.Time) ([]models.DayActivity, error) {
	query := `SELECT` + activitySelect + `
		 FROM reviews
		 WHERE user_id = $1 AND reviewed_at >= $2
		 GROUP BY reviewed_at::date
		 ORDER BY reviewed_at::date`
	return r.scanActivity(ctx, query, userID, since)
}

func (r *PostgresRepository) scanActivity(ctx context.Context, query string, arg string, since time.Time) ([]models.DayActivity, error) {
	rows, err := r.db.QueryContext(ctx, query, arg, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.DayActivity
	for rows.Next() {
		var item models.DayActivity
		if err := rows.Scan(&item.Date, &item.ReviewCount,
			&item.AgainCount, &item.HardCount, &item.GoodCount, &item.EasyCount); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// StudyDatesByUser returns the distinct calendar days on which the user
// submitted at least one review, newest first. Input for streak computation.
func (r *PostgresRepository) StudyDatesByUser(ctx context.Context, userID string) ([]time.Time, error) {
	query :=
		`SELECT DISTINCT reviewed_at::date FROM reviews
		 WHERE user_id = $1
		 ORDER BY reviewed_at::date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
