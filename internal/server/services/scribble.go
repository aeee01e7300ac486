package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cardcore/cardcore/internal/common"
	"github.com/cardcore/cardcore/internal/server/models"
	"github.com/cardcore/cardcore/internal/server/repositories/repomanager"
)

// ScribbleService serves the per-user freeform notes pad.
type ScribbleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewScribbleService(db *sql.DB, m repomanager.RepositoryManager) *ScribbleService {
	return &ScribbleService{db: db, repomanager: m}
}

// Get returns the user's pad, or an empty one if they never saved.
func (s *ScribbleService) Get(ctx context.Context, userID string) (*models.ScribblePad, error) {
	pad, err := s.repomanager.ScribblePads(s.db).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &models.ScribblePad{UserID: userID}, nil
		}
		return nil, err
	}
	return pad, nil
}

func (s *ScribbleService) Save(ctx context.Context, userID, content string) (*models.ScribblePad, error) {
	return s.repomanager.ScribblePads(s.db).Upsert(ctx, userID, content)
}
