package study

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cardcore/cardcore/internal/client/auth"
	"github.com/cardcore/cardcore/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeIdentity struct {
	id string
}

func (f *fakeIdentity) Identity() auth.Identity { return auth.Identity{ID: f.id, Username: "u"} }
func (f *fakeIdentity) LoggedIn() bool          { return f.id != "" }

type fakeClient struct {
	mu sync.Mutex

	stack *models.Stack
	cards []*models.Card
	next  []*models.Card // consumed front to back; nil entry = exhausted

	listErr   error
	nextErr   error
	reviewErr error

	reviews int

	// when set, SubmitReview blocks until the channel is closed
	reviewGate chan struct{}
}

func (f *fakeClient) GetStack(ctx context.Context, stackID string) (*models.Stack, error) {
	return f.stack, nil
}

func (f *fakeClient) ListCards(ctx context.Context, stackID string) ([]*models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		err := f.listErr
		f.listErr = nil
		return nil, err
	}
	return f.cards, nil
}

func (f *fakeClient) NextCard(ctx context.Context, stackID string) (*models.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nextErr != nil {
		err := f.nextErr
		f.nextErr = nil
		return nil, err
	}
	if len(f.next) == 0 {
		return nil, nil
	}
	card := f.next[0]
	f.next = f.next[1:]
	return card, nil
}

func (f *fakeClient) SubmitReview(ctx context.Context, stackID, cardID, rating string) (*models.Card, error) {
	if f.reviewGate != nil {
		<-f.reviewGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reviewErr != nil {
		return nil, f.reviewErr
	}
	f.reviews++
	return &models.Card{ID: cardID}, nil
}

func card(id string, box int) *models.Card {
	return &models.Card{ID: id, StackID: "s1", Front: "f", Back: "b", Box: box}
}

func ownedStack() *models.Stack {
	return &models.Stack{ID: "s1", Name: "Spanish", UserID: "u1"}
}

func startedController(t *testing.T, client *fakeClient, userID string) *Controller {
	t.Helper()
	c := NewController(client, &fakeIdentity{id: userID}, "s1")
	require.NoError(t, c.Start(context.Background()))
	return c
}

// -------- tests --------

func TestStart(t *testing.T) {
	t.Run("due card waiting", func(t *testing.T) {
		client := &fakeClient{
			stack: ownedStack(),
			cards: []*models.Card{card("c1", 1), card("c2", 3)},
			next:  []*models.Card{card("c1", 1)},
		}
		c := startedController(t, client, "u1")

		assert.Equal(t, StateAwaitingFlip, c.State())
		assert.Equal(t, "c1", c.Card().ID)
		assert.Equal(t, 25, c.Progress())
	})

	t.Run("nothing due", func(t *testing.T) {
		client := &fakeClient{stack: ownedStack(), cards: []*models.Card{card("c1", 5)}}
		c := startedController(t, client, "u1")

		assert.Equal(t, StateExhausted, c.State())
		assert.Nil(t, c.Card())
	})
}

func TestFlipGate(t *testing.T) {
	client := &fakeClient{
		stack: ownedStack(),
		cards: []*models.Card{card("c1", 1)},
		next:  []*models.Card{card("c1", 1)},
	}
	c := startedController(t, client, "u1")

	// rating before the flip is rejected and nothing hits the network
	err := c.Rate(context.Background(), Good)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Equal(t, 0, client.reviews)
	assert.Equal(t, StateAwaitingFlip, c.State())

	c.Flip()
	assert.Equal(t, StateAwaitingRating, c.State())

	// a second flip changes nothing
	c.Flip()
	assert.Equal(t, StateAwaitingRating, c.State())
}

func TestOwnerGate(t *testing.T) {
	client := &fakeClient{
		stack: ownedStack(), // owned by u1
		cards: []*models.Card{card("c1", 1)},
		next:  []*models.Card{card("c1", 1)},
	}
	c := startedController(t, client, "u2")
	c.Flip()

	err := c.Rate(context.Background(), Good)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, 0, client.reviews)
	assert.False(t, c.IsOwner())
}

func TestRateAdvances(t *testing.T) {
	client := &fakeClient{
		stack: ownedStack(),
		cards: []*models.Card{card("c1", 1), card("c2", 1)},
		next:  []*models.Card{card("c1", 1), card("c2", 1)},
	}
	c := startedController(t, client, "u1")
	c.Flip()

	require.NoError(t, c.Rate(context.Background(), Good))

	assert.Equal(t, 1, client.reviews)
	assert.Equal(t, StateAwaitingFlip, c.State())
	assert.Equal(t, "c2", c.Card().ID)
}

func TestRateUsesTokenIdentity(t *testing.T) {
	client := &fakeClient{
		stack: ownedStack(),
		cards: []*models.Card{card("c1", 1), card("c2", 3), card("c3", 5)},
		next:  []*models.Card{card("c1", 1)},
	}

	provider := auth.NewProvider()
	var notified []bool
	provider.Subscribe(func(loggedIn bool) { notified = append(notified, loggedIn) })

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "u1",
		"username": "alice",
		"role":     "user",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	require.NoError(t, provider.SetToken(signed))
	assert.Equal(t, []bool{true}, notified)

	c := NewController(client, provider, "s1")
	require.NoError(t, c.Start(context.Background()))
	assert.True(t, c.IsOwner())
	assert.Equal(t, 50, c.Progress())

	c.Flip()
	client.mu.Lock()
	client.cards = []*models.Card{card("c1", 2), card("c2", 3), card("c3", 5)}
	client.mu.Unlock()

	require.NoError(t, c.Rate(context.Background(), Easy))

	assert.Equal(t, 1, client.reviews)
	assert.Equal(t, 58, c.Progress())
	assert.Equal(t, StateExhausted, c.State())
}

func TestAgainKeepsSameCard(t *testing.T) {
	client := &fakeClient{
		stack: ownedStack(),
		cards: []*models.Card{card("c1", 1), card("c2", 1)},
		next:  []*models.Card{card("c1", 1), card("c2", 1)},
	}
	c := startedController(t, client, "u1")
	c.Flip()

	require.NoError(t, c.Rate(context.Background(), Again))

	assert.Equal(t, 1, client.reviews)
	assert.Equal(t, StateAwaitingFlip, c.State())
	assert.Equal(t, "c1", c.Card().ID)
}

func TestExhaustionIsTerminal(t *testing.T) {
	client := &fakeClient{
		stack: ownedStack(),
		cards: []*models.Card{card("c1", 4)},
		next:  []*models.Card{card("c1", 4)},
	}
	c := startedController(t, client, "u1")
	c.Flip()

	require.NoError(t, c.Rate(context.Background(), Good))
	assert.Equal(t, StateExhausted, c.State())

	// nothing moves the machine out of exhaustion
	c.Flip()
	assert.Equal(t, StateExhausted, c.State())
	assert.ErrorIs(t, c.Rate(context.Background(), Good), ErrNotReady)
	assert.ErrorIs(t, c.Retry(context.Background()), ErrNotReady)
	assert.Equal(t, 1, client.reviews)
}

func TestTransitioningGuard(t *testing.T) {
	client := &fakeClient{
		stack:      ownedStack(),
		cards:      []*models.Card{card("c1", 1), card("c2", 1)},
		next:       []*models.Card{card("c1", 1), card("c2", 1)},
		reviewGate: make(chan struct{}),
	}
	c := startedController(t, client, "u1")
	c.Flip()

	firstDone := make(chan error, 1)
	go func() { firstDone <- c.Rate(context.Background(), Good) }()

	// wait until the first rating is in flight
	for c.State() != StateTransitioning {
		time.Sleep(time.Millisecond)
	}

	// the double-tap is rejected without reaching the network
	assert.ErrorIs(t, c.Rate(context.Background(), Good), ErrNotReady)

	close(client.reviewGate)
	require.NoError(t, <-firstDone)

	assert.Equal(t, 1, client.reviews)
	assert.Equal(t, StateAwaitingFlip, c.State())
}

func TestFailureAndRetry(t *testing.T) {
	t.Run("review post fails then succeeds", func(t *testing.T) {
		client := &fakeClient{
			stack:     ownedStack(),
			cards:     []*models.Card{card("c1", 1), card("c2", 1)},
			next:      []*models.Card{card("c1", 1), card("c2", 1)},
			reviewErr: errors.New("connection reset"),
		}
		c := startedController(t, client, "u1")
		c.Flip()

		err := c.Rate(context.Background(), Good)
		require.Error(t, err)
		assert.Equal(t, StateFailed, c.State())
		assert.Error(t, c.Err())

		// a rating in the failed state stays rejected
		assert.ErrorIs(t, c.Rate(context.Background(), Good), ErrNotReady)

		client.reviewErr = nil
		require.NoError(t, c.Retry(context.Background()))
		assert.Equal(t, 1, client.reviews)
		assert.Equal(t, StateAwaitingFlip, c.State())
		assert.Equal(t, "c2", c.Card().ID)
	})

	t.Run("refresh fails after successful post, retry does not re-post", func(t *testing.T) {
		client := &fakeClient{
			stack:   ownedStack(),
			cards:   []*models.Card{card("c1", 1), card("c2", 1)},
			next:    []*models.Card{card("c1", 1), card("c2", 1)},
			listErr: nil,
		}
		c := startedController(t, client, "u1")
		c.Flip()

		client.listErr = errors.New("timeout")
		require.Error(t, c.Rate(context.Background(), Good))
		assert.Equal(t, StateFailed, c.State())
		assert.Equal(t, 1, client.reviews)

		require.NoError(t, c.Retry(context.Background()))
		assert.Equal(t, 1, client.reviews)
		assert.Equal(t, StateAwaitingFlip, c.State())
	})
}
