package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelware/petrol-station-pos/internal/currency"
	"github.com/fuelware/petrol-station-pos/internal/session"
)

// backend fakes the two endpoints the terminal uses. Login accepts
// admin/admin123; the station route is open like the real one and
// records the Authorization header it saw.
type backend struct {
	srv *httptest.Server

	mu       sync.Mutex
	lastAuth string
}

func (b *backend) authHeader() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastAuth
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Username != "admin" || req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id": 1, "username": "admin", "full_name": "Site Admin",
				"role": "admin", "station_id": 7,
			},
			"access": map[string]any{"token": "test-access-token"},
		})
	})
	mux.HandleFunc("GET /api/stations/7", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.lastAuth = r.Header.Get("Authorization")
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 7, "name": "Shalimar Filling Station",
			"address": "GT Road, Lahore", "default_currency": "PKR", "is_active": true,
		})
	})
	mux.HandleFunc("GET /api/stations/9", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 9, "name": "Harbour View Filling Station",
			"address": "Marine Drive, Karachi", "default_currency": "EUR", "is_active": true,
		})
	})
	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func TestLoginSuccess(t *testing.T) {
	b := newBackend(t)
	c := New(b.srv.URL)

	sess, err := c.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), sess.ID)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, "Site Admin", sess.FullName)
	assert.Equal(t, uint64(7), sess.StationID)
}

func TestLoginRejectedCredentials(t *testing.T) {
	b := newBackend(t)
	c := New(b.srv.URL)

	_, err := c.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrAuthentication)
}

func TestLoginUnreachableBackend(t *testing.T) {
	c := New("http://127.0.0.1:1") // nothing listens here

	_, err := c.Login(context.Background(), "admin", "admin123")
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrAuthentication,
		"network failures report the same error class as rejected credentials")
}

func TestFetchStationBeforeLogin(t *testing.T) {
	b := newBackend(t)
	c := New(b.srv.URL)

	// no login happened: a rehydrated terminal starts exactly like this
	st, err := c.FetchStation(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), st.ID)
	assert.Equal(t, "PKR", st.DefaultCurrency)
	assert.Empty(t, b.authHeader(), "no token to attach before login")
}

func TestFetchStationSendsTokenAfterLogin(t *testing.T) {
	b := newBackend(t)
	c := New(b.srv.URL)
	_, err := c.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	st, err := c.FetchStation(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Shalimar Filling Station", st.Name)
	assert.Equal(t, "Bearer test-access-token", b.authHeader())
}

// A till restart rehydrates the session from disk but never re-runs
// Login, so the station's currency must resolve over a fresh client
// with no token at all.
func TestRestartedTerminalResolvesStationCurrency(t *testing.T) {
	b := newBackend(t)
	c := New(b.srv.URL) // fresh client, no Login

	currencies := currency.NewService(c)
	currencies.UpdateStation(context.Background(), 9)

	assert.Equal(t, currency.EUR, currencies.ActiveCurrency(),
		"rehydrated terminal must adopt the station currency, not the default")
}

func TestFetchStationNotFound(t *testing.T) {
	b := newBackend(t)
	c := New(b.srv.URL)

	_, err := c.FetchStation(context.Background(), 404)
	assert.Error(t, err)
}

func TestNewPanicsOnEmptyBaseURL(t *testing.T) {
	assert.Panics(t, func() { New("") })
}
