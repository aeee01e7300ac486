// Package cards provides the PostgreSQL-backed repository for flashcards,
// including the due-card selection query used by the study loop.
package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cardcore/cardcore/internal/common"
	"github.com/cardcore/cardcore/internal/dbx"
	"github.com/cardcore/cardcore/internal/server/models"
)

const cardColumns = `id, stack_id, front, back, box, due_at, COALESCE(front_image_key, ''), created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanCard(row interface{ Scan(...any) error }, card *models.Card) error {
	return row.Scan(
		&card.ID, &card.StackID, &card.Front, &card.Back, &card.Box,
		&card.DueAt, &card.FrontImageKey, &card.CreatedAt, &card.UpdatedAt)
}

func (r *PostgresRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	query :=
		`INSERT INTO cards (stack_id, front, back)
		 VALUES ($1, $2, $3)
		 RETURNING ` + cardColumns

	if err := scanCard(r.db.QueryRowContext(ctx, query, card.StackID, card.Front, card.Back), card); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`

	card := &models.Card{}
	if err := scanCard(r.db.QueryRowContext(ctx, query, id), card); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

func (r *PostgresRepository) ListByStack(ctx context.Context, stackID string) ([]*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE stack_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, stackID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Card
	for rows.Next() {
		var item models.Card
		if err := scanCard(rows, &item); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, front, back *string) (*models.Card, error) {
	query :=
		`UPDATE cards
		 SET front = COALESCE($2, front),
		     back = COALESCE($3, back),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING ` + cardColumns

	card := &models.Card{}
	if err := scanCard(r.db.QueryRowContext(ctx, query, id, front, back), card); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// NextDue picks the most overdue card: oldest due_at first, creation order as
// the tie-breaker so freshly added cards surface in a stable order.
func (r *PostgresRepository) NextDue(ctx context.Context, stackID string, now time.Time) (*models.Card, error) {
	query := `SELECT ` + cardColumns + `
		 FROM cards
		 WHERE stack_id = $1 AND due_at <= $2
		 ORDER BY due_at, created_at
		 LIMIT 1`

	card := &models.Card{}
	if err := scanCard(r.db.QueryRowContext(ctx, query, stackID, now), card); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

func (r *PostgresRepository) AdvanceBox(ctx context.Context, id string, box int, dueAt time.Time) (*models.Card, error) {
	query :=
		`UPDATE cards
		 SET box = $2, due_at = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + cardColumns

	card := &models.Card{}
	if err := scanCard(r.db.QueryRowContext(ctx, query, id, box, dueAt), card); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return card, nil
}

func (r *PostgresRepository) SetImageKey(ctx context.Context, id string, key string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cards SET front_image_key = $2, updated_at = now() WHERE id = $1`, id, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
