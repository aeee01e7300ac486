package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/cardcore/cardcore/internal/logging"
	"github.com/cardcore/cardcore/internal/server/config"
	"github.com/cardcore/cardcore/internal/server/models"
)

// The server depends on narrow service interfaces so handler tests can
// inject fakes.

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

type StackService interface {
	List(ctx context.Context, userID string) ([]*models.Stack, error)
	Get(ctx context.Context, userID, stackID string) (*models.Stack, error)
	Create(ctx context.Context, userID, name string, isPublic bool) (*models.Stack, error)
	Update(ctx context.Context, userID, stackID string, name *string, isPublic *bool) (*models.Stack, error)
	Delete(ctx context.Context, userID, stackID string) error
	ListCollaborators(ctx context.Context, userID, stackID string) ([]models.Collaborator, error)
	AddCollaborator(ctx context.Context, userID, stackID, collaboratorName string, canEdit bool) (*models.Collaborator, error)
	RemoveCollaborator(ctx context.Context, userID, stackID, collaboratorID string) error
}

type CardService interface {
	Create(ctx context.Context, userID, stackID, front, back string) (*models.Card, error)
	List(ctx context.Context, userID, stackID string) ([]*models.Card, error)
	Update(ctx context.Context, userID, cardID string, front, back *string) (*models.Card, error)
	Delete(ctx context.Context, userID, cardID string) error
	RequestImageUpload(ctx context.Context, userID, cardID string) (string, string, error)
}

type StudyService interface {
	NextCard(ctx context.Context, userID, stackID string) (*models.Card, error)
	SubmitReview(ctx context.Context, userID, stackID, cardID string, rating models.Rating) (*models.Card, error)
}

type StatsService interface {
	StackStatistics(ctx context.Context, userID, stackID string) (*models.StackStatistics, error)
	UserStatistics(ctx context.Context, userID string) (*models.UserStatistics, error)
}

type ScribbleService interface {
	Get(ctx context.Context, userID string) (*models.ScribblePad, error)
	Save(ctx context.Context, userID, content string) (*models.ScribblePad, error)
}

// Server is the HTTP front of the application.
type Server struct {
	config   *config.Config
	logger   logging.Logger
	users    UserService
	stacks   StackService
	cards    CardService
	study    StudyService
	stats    StatsService
	scribble ScribbleService
}

func NewServer(cfg *config.Config, logger logging.Logger,
	users UserService, stacks StackService, cards CardService,
	study StudyService, stats StatsService, scribble ScribbleService) *Server {
	return &Server{
		config:   cfg,
		logger:   logger,
		users:    users,
		stacks:   stacks,
		cards:    cards,
		study:    study,
		stats:    stats,
		scribble: scribble,
	}
}

// Handler builds the route table. Identity-bearing routes are wrapped with
// the bearer-token middleware; the whole mux sits behind the API-key check,
// the maintenance gate and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)

	mux.HandleFunc("GET /stacks", s.authed(s.handleListStacks))
	mux.HandleFunc("POST /stacks", s.authed(s.handleCreateStack))
	mux.HandleFunc("GET /stacks/{id}", s.authed(s.handleGetStack))
	mux.HandleFunc("PATCH /stacks/{id}", s.authed(s.handleUpdateStack))
	mux.HandleFunc("DELETE /stacks/{id}", s.authed(s.handleDeleteStack))

	mux.HandleFunc("GET /stacks/{id}/collaborators", s.authed(s.handleListCollaborators))
	mux.HandleFunc("POST /stacks/{id}/collaborators", s.authed(s.handleAddCollaborator))
	mux.HandleFunc("DELETE /stacks/{id}/collaborators/{collabId}", s.authed(s.handleRemoveCollaborator))

	mux.HandleFunc("GET /cards", s.authed(s.handleListCards))
	mux.HandleFunc("POST /cards", s.authed(s.handleCreateCard))
	mux.HandleFunc("PATCH /cards/{id}", s.authed(s.handleUpdateCard))
	mux.HandleFunc("DELETE /cards/{id}", s.authed(s.handleDeleteCard))
	mux.HandleFunc("POST /cards/{id}/image", s.authed(s.handleCardImage))

	mux.HandleFunc("GET /stacks/{stackId}/study/next", s.authed(s.handleNextCard))
	mux.HandleFunc("POST /stacks/{stackId}/cards/{cardId}/review", s.authed(s.handleSubmitReview))

	mux.HandleFunc("GET /stacks/{id}/statistics", s.authed(s.handleStackStatistics))
	mux.HandleFunc("GET /me/statistics", s.authed(s.handleUserStatistics))

	mux.HandleFunc("GET /scribblepad", s.authed(s.handleGetScribblePad))
	mux.HandleFunc("PUT /scribblepad", s.authed(s.handleSaveScribblePad))

	return s.withLogging(s.withAPIKey(s.withMaintenance(mux)))
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.EndpointAddr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "addr", s.config.EndpointAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info(shutdownCtx, "http server stopping")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
