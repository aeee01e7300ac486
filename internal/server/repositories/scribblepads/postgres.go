// Package scribblepads provides the PostgreSQL-backed repository for the
// per-user freeform notes pad.
package scribblepads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cardcore/cardcore/internal/common"
	"github.com/cardcore/cardcore/internal/dbx"
	"github.com/cardcore/cardcore/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.ScribblePad, error) {
	query := `SELECT user_id, content, updated_at FROM scribblepads WHERE user_id = $1`

	pad := &models.ScribblePad{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&pad.UserID, &pad.Content, &pad.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return pad, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, userID, content string) (*models.ScribblePad, error) {
	query :=
		`INSERT INTO scribblepads (user_id, content, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET content = EXCLUDED.content, updated_at = now()
		 RETURNING user_id, content, updated_at
		 `

	pad := &models.ScribblePad{}
	err := r.db.QueryRowContext(ctx, query, userID, content).Scan(&pad.UserID, &pad.Content, &pad.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return pad, nil
}
