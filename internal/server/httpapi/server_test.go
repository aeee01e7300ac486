package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cardcore/cardcore/internal/common"
	"github.com/cardcore/cardcore/internal/logging"
	"github.com/cardcore/cardcore/internal/server/auth"
	"github.com/cardcore/cardcore/internal/server/config"
	"github.com/cardcore/cardcore/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeUsers struct {
	UserService
	registered *models.User
	regErr     error
	token      string
	loginErr   error
}

func (f *fakeUsers) Register(ctx context.Context, username, password string) (*models.User, error) {
	return f.registered, f.regErr
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	return f.registered, f.token, f.loginErr
}

type fakeStacks struct {
	StackService
	stack *models.Stack
	err   error
}

func (f *fakeStacks) Get(ctx context.Context, userID, stackID string) (*models.Stack, error) {
	return f.stack, f.err
}

func (f *fakeStacks) List(ctx context.Context, userID string) ([]*models.Stack, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Stack{f.stack}, nil
}

type fakeStudy struct {
	StudyService
	card      *models.Card
	nextErr   error
	reviewed  models.Rating
	reviewErr error
}

func (f *fakeStudy) NextCard(ctx context.Context, userID, stackID string) (*models.Card, error) {
	return f.card, f.nextErr
}

func (f *fakeStudy) SubmitReview(ctx context.Context, userID, stackID, cardID string, rating models.Rating) (*models.Card, error) {
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	f.reviewed = rating
	return f.card, nil
}

// -------- helpers --------

const testAPIKey = "test-api-key"
const testSecret = "test-secret"

func newTestServer(t *testing.T, opts ...func(*Server)) *Server {
	t.Helper()
	cfg := &config.Config{
		APIKey:                testAPIKey,
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := NewServer(cfg, logger,
		&fakeUsers{}, &fakeStacks{}, nil, &fakeStudy{}, nil, nil)
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("u1", "alice", models.RoleUser, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, srv *Server, method, path, body string, authorize bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-API-Key", testAPIKey)
	if authorize {
		req.Header.Set("Authorization", "Bearer "+bearerToken(t))
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// -------- tests --------

func TestAPIKeyRequired(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMaintenanceGate(t *testing.T) {
	srv := newTestServer(t, func(s *Server) { s.config.MaintenanceMode = true })

	rec := doRequest(t, srv, http.MethodGet, "/stacks", "", true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"maintenance":true}`, rec.Body.String())

	// health stays reachable
	rec = doRequest(t, srv, http.MethodGet, "/health", "", false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/stacks", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNextCard(t *testing.T) {
	t.Run("card due", func(t *testing.T) {
		card := &models.Card{ID: "c1", StackID: "s1", Front: "f", Back: "b", Box: 2}
		srv := newTestServer(t, func(s *Server) { s.study = &fakeStudy{card: card} })

		rec := doRequest(t, srv, http.MethodGet, "/stacks/s1/study/next", "", true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"c1"`)
	})

	t.Run("exhausted stack is JSON null", func(t *testing.T) {
		srv := newTestServer(t, func(s *Server) { s.study = &fakeStudy{} })

		rec := doRequest(t, srv, http.MethodGet, "/stacks/s1/study/next", "", true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("forbidden", func(t *testing.T) {
		srv := newTestServer(t, func(s *Server) {
			s.study = &fakeStudy{nextErr: common.ErrorForbidden}
		})

		rec := doRequest(t, srv, http.MethodGet, "/stacks/s1/study/next", "", true)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestSubmitReview(t *testing.T) {
	t.Run("valid rating", func(t *testing.T) {
		study := &fakeStudy{card: &models.Card{ID: "c1", Box: 3}}
		srv := newTestServer(t, func(s *Server) { s.study = study })

		rec := doRequest(t, srv, http.MethodPost, "/stacks/s1/cards/c1/review",
			`{"rating":"good"}`, true)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.RatingGood, study.reviewed)
	})

	t.Run("unknown rating", func(t *testing.T) {
		srv := newTestServer(t)

		rec := doRequest(t, srv, http.MethodPost, "/stacks/s1/cards/c1/review",
			`{"rating":"meh"}`, true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		srv := newTestServer(t, func(s *Server) {
			s.study = &fakeStudy{reviewErr: common.ErrorForbidden}
		})

		rec := doRequest(t, srv, http.MethodPost, "/stacks/s1/cards/c1/review",
			`{"rating":"good"}`, true)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRegisterConflict(t *testing.T) {
	srv := newTestServer(t, func(s *Server) {
		s.users = &fakeUsers{regErr: common.ErrorNameTaken}
	})

	rec := doRequest(t, srv, http.MethodPost, "/register",
		`{"username":"alice","password":"pw"}`, false)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, func(s *Server) {
		s.users = &fakeUsers{registered: &models.User{ID: "u1"}, token: "tok"}
	})

	rec := doRequest(t, srv, http.MethodPost, "/login",
		`{"username":"alice","password":"pw"}`, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"tok"}`, rec.Body.String())
}

func TestGetStack(t *testing.T) {
	stack := &models.Stack{ID: "s1", Name: "Spanish", CardAmount: 3}
	srv := newTestServer(t, func(s *Server) { s.stacks = &fakeStacks{stack: stack} })

	rec := doRequest(t, srv, http.MethodGet, "/stacks/s1", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Spanish"`)
}
