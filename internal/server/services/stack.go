package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cardcore/cardcore/internal/common"
	"github.com/cardcore/cardcore/internal/server/models"
	"github.com/cardcore/cardcore/internal/server/repositories/repomanager"
)

// StackService covers stack CRUD and collaborator management. Read access is
// owner/collaborator/public; content writes also allow editing collaborators;
// stack settings and the collaborator list are owner-only.
type StackService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStackService(db *sql.DB, m repomanager.RepositoryManager) *StackService {
	return &StackService{db: db, repomanager: m}
}

func (s *StackService) List(ctx context.Context, userID string) ([]*models.Stack, error) {
	return s.repomanager.Stacks(s.db).ListForUser(ctx, userID)
}

// Get returns one stack with its collaborator list. The collaborator list is
// only attached for the owner; other readers see the bare stack.
func (s *StackService) Get(ctx context.Context, userID, stackID string) (*models.Stack, error) {
	repo := s.repomanager.Stacks(s.db)

	access, err := repo.GetAccess(ctx, stackID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanRead() {
		return nil, common.ErrorForbidden
	}

	stack, err := repo.GetByID(ctx, stackID)
	if err != nil {
		return nil, err
	}

	if access.IsOwner {
		collaborators, err := repo.Collaborators(ctx, stackID)
		if err != nil {
			return nil, err
		}
		stack.Collaborators = collaborators
	}

	return stack, nil
}

func (s *StackService) Create(ctx context.Context, userID, name string, isPublic bool) (*models.Stack, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrorValidation
	}

	stack := &models.Stack{Name: name, UserID: userID, IsPublic: isPublic}
	return s.repomanager.Stacks(s.db).Create(ctx, stack)
}

func (s *StackService) Update(ctx context.Context, userID, stackID string, name *string, isPublic *bool) (*models.Stack, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Stacks(s.db)

	access, err := repo.GetAccess(ctx, stackID, userID)
	if err != nil {
		return nil, err
	}
	if !access.IsOwner {
		return nil, common.ErrorForbidden
	}

	return repo.Update(ctx, stackID, name, isPublic)
}

func (s *StackService) Delete(ctx context.Context, userID, stackID string) error {
	repo := s.repomanager.Stacks(s.db)

	access, err := repo.GetAccess(ctx, stackID, userID)
	if err != nil {
		return err
	}
	if !access.IsOwner {
		return common.ErrorForbidden
	}

	return repo.Delete(ctx, stackID)
}

// ListCollaborators returns who the stack is shared with. Owner-only.
func (s *StackService) ListCollaborators(ctx context.Context, userID, stackID string) ([]models.Collaborator, error) {
	repo := s.repomanager.Stacks(s.db)

	access, err := repo.GetAccess(ctx, stackID, userID)
	if err != nil {
		return nil, err
	}
	if !access.IsOwner {
		return nil, common.ErrorForbidden
	}

	return repo.Collaborators(ctx, stackID)
}

// AddCollaborator shares the stack with another user by username.
// Owner-only; the owner cannot be added as their own collaborator.
func (s *StackService) AddCollaborator(ctx context.Context, userID, stackID, collaboratorName string, canEdit bool) (*models.Collaborator, error) {
	repo := s.repomanager.Stacks(s.db)

	access, err := repo.GetAccess(ctx, stackID, userID)
	if err != nil {
		return nil, err
	}
	if !access.IsOwner {
		return nil, common.ErrorForbidden
	}

	user, err := s.repomanager.Users(s.db).GetByName(ctx, collaboratorName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	if user.ID == userID {
		return nil, common.ErrorValidation
	}

	collaborator, err := repo.AddCollaborator(ctx, stackID, user.ID, canEdit)
	if err != nil {
		return nil, err
	}
	collaborator.UserName = user.Name
	return collaborator, nil
}

func (s *StackService) RemoveCollaborator(ctx context.Context, userID, stackID, collaboratorID string) error {
	repo := s.repomanager.Stacks(s.db)

	access, err := repo.GetAccess(ctx, stackID, userID)
	if err != nil {
		return err
	}
	if !access.IsOwner {
		return common.ErrorForbidden
	}

	return repo.RemoveCollaborator(ctx, collaboratorID)
}
