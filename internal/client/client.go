// Package client is the terminal-side REST client for the POS backend.
// It implements session.Authenticator and currency.StationFetcher, which
// is all the terminal services need from the network.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fuelware/petrol-station-pos/internal/model"
	"github.com/fuelware/petrol-station-pos/internal/session"
)

// Client talks to one backend. The embedded http.Client carries a hard
// timeout so a hung backend cannot wedge a till; per-call contexts may
// shorten it further. A successful Login stores the access token, which
// is attached to later requests when present.
type Client struct {
	baseURL string
	http    *http.Client

	mu     sync.RWMutex
	access string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout replaces the default 10s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient substitutes the underlying http.Client entirely.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New returns a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("client: empty baseURL passed to New")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User   session.Session `json:"user"`
	Access struct {
		Token string `json:"token"`
	} `json:"access"`
}

// Login posts credentials to /api/auth/login and returns the session
// identity from the response. Every failure mode, from a refused
// connection to a 401, wraps session.ErrAuthentication so the caller has
// one error to match.
func (c *Client) Login(ctx context.Context, username, password string) (session.Session, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return session.Session{}, fmt.Errorf("%w: encode request: %v", session.ErrAuthentication, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return session.Session{}, fmt.Errorf("%w: build request: %v", session.ErrAuthentication, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return session.Session{}, fmt.Errorf("%w: %v", session.ErrAuthentication, err)
	}
	defer drainClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return session.Session{}, fmt.Errorf("%w: backend returned %s", session.ErrAuthentication, resp.Status)
	}
	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return session.Session{}, fmt.Errorf("%w: decode response: %v", session.ErrAuthentication, err)
	}
	if lr.User.ID == 0 || lr.User.Username == "" {
		return session.Session{}, fmt.Errorf("%w: response missing user", session.ErrAuthentication)
	}
	c.mu.Lock()
	c.access = lr.Access.Token
	c.mu.Unlock()
	return lr.User, nil
}

// FetchStation gets /api/stations/{id}. The route needs no token, so a
// terminal that rehydrated a persisted session can resolve its currency
// before any fresh login; when a login already happened the bearer is
// attached anyway. Unlike Login the error is plain: the currency service
// treats any failure as "fall back to the default currency" and never
// shows it to the operator.
func (c *Client) FetchStation(ctx context.Context, stationID uint64) (model.Station, error) {
	url := fmt.Sprintf("%s/api/stations/%d", c.baseURL, stationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Station{}, fmt.Errorf("build request: %w", err)
	}
	c.mu.RLock()
	if c.access != "" {
		req.Header.Set("Authorization", "Bearer "+c.access)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Station{}, fmt.Errorf("fetch station %d: %w", stationID, err)
	}
	defer drainClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return model.Station{}, fmt.Errorf("fetch station %d: backend returned %s", stationID, resp.Status)
	}
	var st model.Station
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return model.Station{}, fmt.Errorf("decode station %d: %w", stationID, err)
	}
	return st, nil
}

// drainClose empties and closes a response body so the connection can be
// reused by the pool.
func drainClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 1<<20))
	_ = rc.Close()
}
