package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cardcore/cardcore/internal/common"
	"github.com/cardcore/cardcore/internal/dbx"
	"github.com/cardcore/cardcore/internal/server/models"
	"github.com/cardcore/cardcore/internal/server/repositories/cards"
	"github.com/cardcore/cardcore/internal/server/repositories/repomanager"
	reviewsrepo "github.com/cardcore/cardcore/internal/server/repositories/reviews"
	"github.com/cardcore/cardcore/internal/server/repositories/scribblepads"
	stacksrepo "github.com/cardcore/cardcore/internal/server/repositories/stacks"
	usersrepo "github.com/cardcore/cardcore/internal/server/repositories/users"
)

// -------- test fakes --------

type fakeUsersRepo struct {
	usersrepo.Repository
	byName map[string]*models.User
	getErr error

	created *models.User
}

func (f *fakeUsersRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	u.ID = "u-new"
	f.created = u
	return u, nil
}

type fakeStacksRepo struct {
	stacksrepo.Repository
	access    stacksrepo.Access
	accessErr error

	collaborators []models.Collaborator
	ownerCount    int
}

func (f *fakeStacksRepo) GetAccess(ctx context.Context, stackID, userID string) (stacksrepo.Access, error) {
	return f.access, f.accessErr
}

func (f *fakeStacksRepo) Collaborators(ctx context.Context, stackID string) ([]models.Collaborator, error) {
	return f.collaborators, nil
}

func (f *fakeStacksRepo) CountByOwner(ctx context.Context, userID string) (int, error) {
	return f.ownerCount, nil
}

type fakeCardsRepo struct {
	cards.Repository
	card    *models.Card
	getErr  error
	nextErr error

	advanced    *models.Card
	advancedBox int
	advancedDue time.Time
	imageKey    string
}

func (f *fakeCardsRepo) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	card.ID = "c-new"
	card.Box = models.MinBox
	f.card = card
	return card, nil
}

func (f *fakeCardsRepo) SetImageKey(ctx context.Context, id string, key string) error {
	f.imageKey = key
	return nil
}

func (f *fakeCardsRepo) GetByID(ctx context.Context, id string) (*models.Card, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.card, nil
}

func (f *fakeCardsRepo) NextDue(ctx context.Context, stackID string, now time.Time) (*models.Card, error) {
	if f.nextErr != nil {
		return nil, f.nextErr
	}
	return f.card, nil
}

func (f *fakeCardsRepo) AdvanceBox(ctx context.Context, id string, box int, dueAt time.Time) (*models.Card, error) {
	f.advancedBox = box
	f.advancedDue = dueAt
	updated := *f.card
	updated.Box = box
	updated.DueAt = dueAt
	f.advanced = &updated
	return f.advanced, nil
}

type fakeReviewsRepo struct {
	reviewsrepo.Repository
	created   *models.Review
	createErr error

	userCounts   models.RatingCounts
	userBoxes    []models.BoxCount
	userActivity []models.DayActivity
	studyDates   []time.Time
}

func (f *fakeReviewsRepo) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = r
	return r, nil
}

func (f *fakeReviewsRepo) CountsByUser(ctx context.Context, userID string) (models.RatingCounts, error) {
	return f.userCounts, nil
}

func (f *fakeReviewsRepo) BoxDistributionByUser(ctx context.Context, userID string) ([]models.BoxCount, error) {
	return f.userBoxes, nil
}

func (f *fakeReviewsRepo) ActivityByUser(ctx context.Context, userID string, since time.Time) ([]models.DayActivity, error) {
	return f.userActivity, nil
}

func (f *fakeReviewsRepo) StudyDatesByUser(ctx context.Context, userID string) ([]time.Time, error) {
	return f.studyDates, nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	u  *fakeUsersRepo
	s  *fakeStacksRepo
	c  *fakeCardsRepo
	r  *fakeReviewsRepo
	sp scribblepads.Repository
}

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository          { return m.u }
func (m *fakeRepoManager) Stacks(db dbx.DBTX) stacksrepo.Repository       { return m.s }
func (m *fakeRepoManager) Cards(db dbx.DBTX) cards.Repository             { return m.c }
func (m *fakeRepoManager) Reviews(db dbx.DBTX) reviewsrepo.Repository     { return m.r }
func (m *fakeRepoManager) ScribblePads(db dbx.DBTX) scribblepads.Repository { return m.sp }

// -------- helpers --------

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}
