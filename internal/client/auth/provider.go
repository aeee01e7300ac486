// Package auth keeps the client's login state: the bearer token and the
// identity decoded from it. The JWT payload is decoded without verification;
// the server is the only party that checks signatures.
package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the token says about the logged-in user.
type Identity struct {
	ID        string
	Username  string
	Role      string
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Provider holds the current token and notifies subscribers when the login
// state flips. Safe for concurrent use.
type Provider struct {
	mu       sync.Mutex
	token    string
	identity Identity
	subs     []func(bool)
	now      func() time.Time
}

func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// SetToken accepts a freshly issued token, decodes its payload and notifies
// subscribers. The signature is not checked client-side.
func (p *Provider) SetToken(token string) error {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("decoding token: %w", err)
	}

	identity := Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	p.mu.Lock()
	p.token = token
	p.identity = identity
	subs := append([]func(bool){}, p.subs...)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(true)
	}
	return nil
}

// Clear drops the token, logging the user out.
func (p *Provider) Clear() {
	p.mu.Lock()
	p.token = ""
	p.identity = Identity{}
	subs := append([]func(bool){}, p.subs...)
	p.mu.Unlock()

	for _, fn := range subs {
		fn(false)
	}
}

// Token returns the raw bearer token, or "" when logged out.
func (p *Provider) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

func (p *Provider) Identity() Identity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.identity
}

// LoggedIn reports whether a token is present and not yet expired.
func (p *Provider) LoggedIn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token == "" {
		return false
	}
	if p.identity.ExpiresAt.IsZero() {
		return true
	}
	return p.now().Before(p.identity.ExpiresAt)
}

// Subscribe registers a callback invoked with the new login state on every
// SetToken and Clear.
func (p *Provider) Subscribe(fn func(bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}
