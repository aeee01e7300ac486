// Package api is the typed HTTP gateway to the CardCore server. It is pure
// transport: no retries, no caching, no policy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cardcore/cardcore/internal/client/models"
)

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

type Client struct {
	baseURL string
	apiKey  string
	token   TokenSource
	http    *http.Client
}

func NewClient(baseURL, apiKey string, token TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// do runs one request. A non-nil out is filled from the response body;
// "null" bodies leave out untouched.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusServiceUnavailable:
		return ErrMaintenance
	case resp.StatusCode >= 400:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = resp.Status
		}
		return fmt.Errorf("server error: %s", e.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	in := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/register", in, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	in := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) ListStacks(ctx context.Context) ([]*models.Stack, error) {
	var out []*models.Stack
	if err := c.do(ctx, http.MethodGet, "/stacks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetStack(ctx context.Context, stackID string) (*models.Stack, error) {
	out := &models.Stack{}
	if err := c.do(ctx, http.MethodGet, "/stacks/"+url.PathEscape(stackID), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListCards(ctx context.Context, stackID string) ([]*models.Card, error) {
	var out []*models.Card
	path := "/cards?stackId=" + url.QueryEscape(stackID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NextCard returns the next due card of a stack, or (nil, nil) when the
// server answers JSON null, meaning nothing is due.
func (c *Client) NextCard(ctx context.Context, stackID string) (*models.Card, error) {
	var out *models.Card
	path := "/stacks/" + url.PathEscape(stackID) + "/study/next"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitReview(ctx context.Context, stackID, cardID, rating string) (*models.Card, error) {
	in := map[string]string{"rating": rating}
	out := &models.Card{}
	path := "/stacks/" + url.PathEscape(stackID) + "/cards/" + url.PathEscape(cardID) + "/review"
	if err := c.do(ctx, http.MethodPost, path, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetScribblePad(ctx context.Context) (*models.ScribblePad, error) {
	out := &models.ScribblePad{}
	if err := c.do(ctx, http.MethodGet, "/scribblepad", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveScribblePad(ctx context.Context, content string) (*models.ScribblePad, error) {
	in := map[string]string{"content": content}
	out := &models.ScribblePad{}
	if err := c.do(ctx, http.MethodPut, "/scribblepad", in, out); err != nil {
		return nil, err
	}
	return out, nil
}
