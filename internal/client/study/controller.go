package study

import (
	"context"
	"errors"
	"sync"

	"github.com/cardcore/cardcore/internal/client/auth"
	"github.com/cardcore/cardcore/internal/client/models"
)

// State is the controller's position in the review loop.
type State int

const (
	StateLoading State = iota
	StateAwaitingFlip
	StateAwaitingRating
	StateTransitioning
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAwaitingFlip:
		return "awaiting-flip"
	case StateAwaitingRating:
		return "awaiting-rating"
	case StateTransitioning:
		return "transitioning"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrNotReady means the call does not fit the current state, e.g. a
	// rating before the flip or while a previous rating is still in flight.
	ErrNotReady = errors.New("not ready for this action")

	// ErrNotOwner means the viewer may browse the stack but not rate its
	// cards; mastery state belongs to the stack owner.
	ErrNotOwner = errors.New("only the stack owner can rate cards")
)

// Client is the slice of the API gateway the controller needs.
type Client interface {
	GetStack(ctx context.Context, stackID string) (*models.Stack, error)
	ListCards(ctx context.Context, stackID string) ([]*models.Card, error)
	NextCard(ctx context.Context, stackID string) (*models.Card, error)
	SubmitReview(ctx context.Context, stackID, cardID, rating string) (*models.Card, error)
}

// IdentityProvider is the slice of the auth provider the controller needs.
type IdentityProvider interface {
	Identity() auth.Identity
	LoggedIn() bool
}

// Controller runs one study session over one stack. Transitions are driven
// by call completion, never by timers. All methods are safe for concurrent
// use; at most one network write is in flight at a time.
type Controller struct {
	client   Client
	identity IdentityProvider
	stackID  string

	mu      sync.Mutex
	state   State
	stack   *models.Stack
	cards   []*models.Card
	current *models.Card
	lastErr error
	pending func(ctx context.Context) error
}

func NewController(client Client, identity IdentityProvider, stackID string) *Controller {
	return &Controller{
		client:   client,
		identity: identity,
		stackID:  stackID,
		state:    StateLoading,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Card returns the card currently shown, or nil when exhausted or loading.
func (c *Controller) Card() *models.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) Stack() *models.Stack {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stack
}

// Err returns the error that moved the controller into StateFailed.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Progress recomputes the mastery percentage from the last fetched card list.
func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Percent(c.cards)
}

// IsOwner reports whether the logged-in user owns the studied stack.
func (c *Controller) IsOwner() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOwnerLocked()
}

func (c *Controller) isOwnerLocked() bool {
	return c.stack != nil && c.identity.Identity().ID == c.stack.UserID
}

// Start loads the stack, its card list and the first due card.
func (c *Controller) Start(ctx context.Context) error {
	return c.run(ctx, c.load)
}

func (c *Controller) load(ctx context.Context) error {
	stack, err := c.client.GetStack(ctx, c.stackID)
	if err != nil {
		return err
	}
	cards, err := c.client.ListCards(ctx, c.stackID)
	if err != nil {
		return err
	}
	next, err := c.client.NextCard(ctx, c.stackID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.stack = stack
	c.cards = cards
	c.current = next
	if next == nil {
		c.state = StateExhausted
	} else {
		c.state = StateAwaitingFlip
	}
	c.mu.Unlock()
	return nil
}

// Flip reveals the card's back. Outside StateAwaitingFlip it does nothing.
func (c *Controller) Flip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateAwaitingFlip && c.current != nil {
		c.state = StateAwaitingRating
	}
}

// Rate submits the rating for the current card. Only valid in
// StateAwaitingRating and only for the stack owner; while the submission is
// in flight, the controller is transitioning and further calls are rejected,
// so rapid repeated ratings produce exactly one review.
//
// "again" keeps the same card and returns to the flip; any other rating
// advances to the next due card, or to StateExhausted when none is left.
func (c *Controller) Rate(ctx context.Context, rating Rating) error {
	c.mu.Lock()
	if c.state != StateAwaitingRating || c.current == nil {
		c.mu.Unlock()
		return ErrNotReady
	}
	if !c.isOwnerLocked() {
		c.mu.Unlock()
		return ErrNotOwner
	}
	card := c.current
	c.state = StateTransitioning
	c.mu.Unlock()

	return c.submit(ctx, card, rating)
}

// submit posts the review, then refreshes the card list and advances.
// The caller must have already moved the controller into StateTransitioning.
// On failure the failed step, and only that step, becomes the Retry target:
// a refresh that failed after a successful post is never re-posted.
func (c *Controller) submit(ctx context.Context, card *models.Card, rating Rating) error {
	if _, err := c.client.SubmitReview(ctx, c.stackID, card.ID, rating.String()); err != nil {
		c.fail(err, func(ctx context.Context) error { return c.submit(ctx, card, rating) })
		return err
	}
	return c.advance(ctx, card, rating)
}

// advance refreshes the card list and picks what to show next. Split from
// submit so a Retry after a failed refresh does not re-post the review.
func (c *Controller) advance(ctx context.Context, card *models.Card, rating Rating) error {
	cards, err := c.client.ListCards(ctx, c.stackID)
	if err != nil {
		c.fail(err, func(ctx context.Context) error { return c.advance(ctx, card, rating) })
		return err
	}

	if rating == Again {
		c.mu.Lock()
		c.cards = cards
		c.state = StateAwaitingFlip
		c.mu.Unlock()
		return nil
	}

	next, err := c.client.NextCard(ctx, c.stackID)
	if err != nil {
		c.fail(err, func(ctx context.Context) error { return c.advance(ctx, card, rating) })
		return err
	}

	c.mu.Lock()
	c.cards = cards
	c.current = next
	if next == nil {
		c.state = StateExhausted
	} else {
		c.state = StateAwaitingFlip
	}
	c.mu.Unlock()
	return nil
}

// Retry re-runs the step that failed. Only valid in StateFailed.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateFailed || c.pending == nil {
		c.mu.Unlock()
		return ErrNotReady
	}
	step := c.pending
	c.pending = nil
	c.lastErr = nil
	c.state = StateTransitioning
	c.mu.Unlock()

	return step(ctx)
}

// run executes a loading step under the transitioning guard; on failure the
// same step becomes the Retry target.
func (c *Controller) run(ctx context.Context, step func(ctx context.Context) error) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	if err := step(ctx); err != nil {
		c.fail(err, step)
		return err
	}
	return nil
}

// fail records the error and parks the controller in StateFailed with the
// given step queued for Retry. Overwrites any earlier pending step: fail is
// only reached from a state where exactly one step is in flight.
func (c *Controller) fail(err error, retryStep func(ctx context.Context) error) {
	c.mu.Lock()
	c.state = StateFailed
	c.lastErr = err
	c.pending = retryStep
	c.mu.Unlock()
}
