package repomanager

import (
	"context"
	"database/sql"

	"github.com/cardcore/cardcore/internal/dbx"
	"github.com/cardcore/cardcore/internal/server/repositories/cards"
	"github.com/cardcore/cardcore/internal/server/repositories/reviews"
	"github.com/cardcore/cardcore/internal/server/repositories/scribblepads"
	"github.com/cardcore/cardcore/internal/server/repositories/stacks"
	"github.com/cardcore/cardcore/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// the same repository code against the pool or an open transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Stacks(db dbx.DBTX) stacks.Repository
	Cards(db dbx.DBTX) cards.Repository
	Reviews(db dbx.DBTX) reviews.Repository
	ScribblePads(db dbx.DBTX) scribblepads.Repository

	RunMigrations(ctx context.Context, db *sql.DB) error
}
