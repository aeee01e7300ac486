// Package stacks provides the PostgreSQL-backed repository for stacks,
// their collaborator lists and per-user access resolution.
package stacks

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

func (r *PostgresRepository) Create(ctx context.Context, stack *models.Stack) (*models.Stack, error) {
	query :=
		`INSERT INTO stacks (name, user_id, is_public)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		stack.Name, stack.UserID, stack.IsPublic).Scan(&stack.ID, &stack.CreatedAt, &stack.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stack, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Stack, error) {
	query :=
		`SELECT s.id, s.name, s.user_id, u.name, s.is_public,
		        (SELECT COUNT(*) FROM cards c WHERE c.stack_id = s.id),
		        s.created_at, s.updated_at
		 FROM stacks s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.id = $1
		 `

	stack := &models.Stack{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&stack.ID, &stack.Name, &stack.UserID, &stack.OwnerName, &stack.IsPublic,
		&stack.CardAmount, &stack.CreatedAt, &stack.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stack, nil
}

func (r *PostgresRepository) CountByOwner(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM stacks WHERE user_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return count, nil
}

// ListForUser returns the stacks visible to a user: own stacks, stacks shared
// with them, and public stacks, most recently updated first.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*models.Stack, error) {
	query :=
		`SELECT s.id, s.name, s.user_id, u.name, s.is_public,
		        (SELECT COUNT(*) FROM cards c WHERE c.stack_id = s.id),
		        s.created_at, s.updated_at
		 FROM stacks s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.user_id = $1
		    OR s.is_public
		    OR EXISTS (SELECT 1 FROM stack_collaborators sc
		               WHERE sc.stack_id = s.id AND sc.user_id = $1)
		 ORDER BY s.updated_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Stack
	for rows.Next() {
		var item models.Stack
		if err := rows.Scan(
			&item.ID, &item.Name, &item.UserID, &item.OwnerName, &item.IsPublic,
			&item.CardAmount, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, name *string, isPublic *bool) (*models.Stack, error) {
	query :=
		`UPDATE stacks
		 SET name = COALESCE($2, name),
		     is_public = COALESCE($3, is_public),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING id, name, user_id, is_public, created_at, updated_at
		 `

	stack := &models.Stack{}
	err := r.db.QueryRowContext(ctx, query, id, name, isPublic).Scan(
		&stack.ID, &stack.Name, &stack.UserID, &stack.IsPublic, &stack.CreatedAt, &stack.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return stack, nil
}

// Delete removes the stack; cards, collaborators and reviews cascade in the
// schema.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stacks WHERE id = $1`, id)
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

func (r *PostgresRepository) GetAccess(ctx context.Context, stackID, userID string) (Access, error) {
	query :=
		`SELECT s.user_id = $2, s.is_public, sc.user_id IS NOT NULL, COALESCE(sc.can_edit, false)
		 FROM stacks s
		 LEFT JOIN stack_collaborators sc ON sc.stack_id = s.id AND sc.user_id = $2
		 WHERE s.id = $1
		 `

	var a Access
	err := r.db.QueryRowContext(ctx, query, stackID, userID).Scan(
		&a.IsOwner, &a.IsPublic, &a.IsCollaborator, &a.CanEdit)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Access{}, common.ErrorNotFound
		}
		return Access{}, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) Collaborators(ctx context.Context, stackID string) ([]models.Collaborator, error) {
	query :=
		`SELECT sc.id, sc.stack_id, sc.user_id, u.name, sc.can_edit
		 FROM stack_collaborators sc
		 JOIN users u ON u.id = sc.user_id
		 WHERE sc.stack_id = $1
		 ORDER BY u.name
		 `

	rows, err := r.db.QueryContext(ctx, query, stackID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Collaborator
	for rows.Next() {
		var item models.Collaborator
		if err := rows.Scan(&item.ID, &item.StackID, &item.UserID, &item.UserName, &item.CanEdit); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) AddCollaborator(ctx context.Context, stackID, userID string, canEdit bool) (*models.Collaborator, error) {
	query :=
		`INSERT INTO stack_collaborators (stack_id, user_id, can_edit)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (stack_id, user_id) DO UPDATE SET can_edit = EXCLUDED.can_edit
		 RETURNING id
		 `

	c := &models.Collaborator{StackID: stackID, UserID: userID, CanEdit: canEdit}
	if err := r.db.QueryRowContext(ctx, query, stackID, userID, canEdit).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) RemoveCollaborator(ctx context.Context, collaboratorID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stack_collaborators WHERE id = $1`, collaboratorID)
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
