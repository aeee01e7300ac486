package stacks

import (
	"context"

	"github.com/cardcore/cardcore/internal/server/models"
)

// Access describes what a given user may do with a stack.
type Access struct {
	IsOwner        bool
	IsCollaborator bool
	CanEdit        bool
	IsPublic       bool
}

// CanRead reports whether the stack is visible to the user.
func (a Access) CanRead() bool {
	return a.IsOwner || a.IsCollaborator || a.IsPublic
}

// CanWrite reports whether the user may mutate the stack's content.
func (a Access) CanWrite() bool {
	return a.IsOwner || (a.IsCollaborator && a.CanEdit)
}

type Repository interface {
	Create(ctx context.Context, stack *models.Stack) (*models.Stack, error)
	GetByID(ctx context.Context, id string) (*models.Stack, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Stack, error)
	Update(ctx context.Context, id string, name *string, isPublic *bool) (*models.Stack, error)
	Delete(ctx context.Context, id string) error

	CountByOwner(ctx context.Context, userID string) (int, error)

	GetAccess(ctx context.Context, stackID, userID string) (Access, error)
	Collaborators(ctx context.Context, stackID string) ([]models.Collaborator, error)
	AddCollaborator(ctx context.Context, stackID, userID string, canEdit bool) (*models.Collaborator, error)
	RemoveCollaborator(ctx context.Context, collaboratorID string) error
}
