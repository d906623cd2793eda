package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store; corrupt simulates an undecodable
// persisted payload.
type memStore struct {
	mu      sync.Mutex
	saved   *Session
	corrupt bool
}

func (m *memStore) Load(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.corrupt {
		return nil, errors.New("decode session: unexpected end of JSON input")
	}
	if m.saved == nil {
		return nil, nil
	}
	cp := *m.saved
	return &cp, nil
}

func (m *memStore) Save(ctx context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := s
	m.saved = &cp
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = nil
	return nil
}

// fakeAuth accepts a single credential pair.
type fakeAuth struct {
	user, pass string
	session    Session
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (Session, error) {
	if username == f.user && password == f.pass {
		return f.session, nil
	}
	return Session{}, errors.New("backend returned 401 Unauthorized")
}

func adminAuth() *fakeAuth {
	return &fakeAuth{
		user: "admin",
		pass: "admin123",
		session: Session{
			ID:        1,
			Username:  "admin",
			FullName:  "Site Admin",
			Role:      "admin",
			StationID: 7,
		},
	}
}

func TestLoginSuccess(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, adminAuth())

	require.False(t, svc.IsAuthenticated())
	require.NoError(t, svc.Login(context.Background(), "admin", "admin123"))

	assert.True(t, svc.IsAuthenticated())
	cur := svc.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "admin", cur.Username)
	assert.Equal(t, uint64(7), cur.StationID)
	assert.NotNil(t, store.saved, "successful login must persist the session")
}

func TestLoginSurvivesRestart(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, adminAuth())
	require.NoError(t, svc.Login(context.Background(), "admin", "admin123"))

	// simulated process restart: a fresh service over the same store
	restarted := NewService(store, adminAuth())
	restarted.Init(context.Background())

	assert.True(t, restarted.IsAuthenticated())
	cur := restarted.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "admin", cur.Username)
	assert.Equal(t, "Site Admin", cur.FullName)
}

func TestLoginFailureWrapsErrAuthentication(t *testing.T) {
	svc := NewService(&memStore{}, adminAuth())

	err := svc.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.False(t, svc.IsAuthenticated())
}

func TestFailedLoginKeepsPriorSession(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, adminAuth())
	require.NoError(t, svc.Login(context.Background(), "admin", "admin123"))

	err := svc.Login(context.Background(), "admin", "typo")
	require.Error(t, err)

	// the earlier session stays live, in memory and in the store
	assert.True(t, svc.IsAuthenticated())
	require.NotNil(t, svc.Current())
	assert.Equal(t, "admin", svc.Current().Username)
	assert.NotNil(t, store.saved)
}

func TestLogoutClearsEverything(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, adminAuth())
	require.NoError(t, svc.Login(context.Background(), "admin", "admin123"))

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, svc.IsAuthenticated())
	assert.Nil(t, svc.Current())
	assert.Nil(t, store.saved)

	// restart after logout yields no session
	restarted := NewService(store, adminAuth())
	restarted.Init(context.Background())
	assert.False(t, restarted.IsAuthenticated())
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc := NewService(&memStore{}, adminAuth())
	require.NoError(t, svc.Logout(context.Background()))
	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, svc.IsAuthenticated())
}

func TestInitDiscardsCorruptSession(t *testing.T) {
	svc := NewService(&memStore{corrupt: true}, adminAuth())
	svc.Init(context.Background())
	assert.False(t, svc.IsAuthenticated(), "corrupt persisted data must read as no session")
}

func TestSubscribeSeesChanges(t *testing.T) {
	svc := NewService(&memStore{}, adminAuth())

	var mu sync.Mutex
	var seen []*Session
	unsubscribe := svc.Subscribe(func(s *Session) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	require.NoError(t, svc.Login(context.Background(), "admin", "admin123"))
	require.NoError(t, svc.Logout(context.Background()))

	mu.Lock()
	require.Len(t, seen, 2)
	assert.Equal(t, "admin", seen[0].Username)
	assert.Nil(t, seen[1], "logout notifies with a nil session")
	mu.Unlock()

	unsubscribe()
	require.NoError(t, svc.Login(context.Background(), "admin", "admin123"))
	mu.Lock()
	assert.Len(t, seen, 2, "unsubscribed function must not fire")
	mu.Unlock()
}

func TestStaleUnsubscribeCannotDetachLaterSubscriber(t *testing.T) {
	svc := NewService(&memStore{}, adminAuth())

	stale := svc.Subscribe(func(*Session) {})
	svc.Dispose()

	var fired int
	svc.Subscribe(func(*Session) { fired++ })
	stale() // belongs to the disposed subscription, must be a no-op

	require.NoError(t, svc.Login(context.Background(), "admin", "admin123"))
	assert.Equal(t, 1, fired, "later subscriber was detached by a stale unsubscribe")
}

func TestCurrentReturnsCopy(t *testing.T) {
	svc := NewService(&memStore{}, adminAuth())
	require.NoError(t, svc.Login(context.Background(), "admin", "admin123"))

	cur := svc.Current()
	cur.Username = "mutated"
	assert.Equal(t, "admin", svc.Current().Username)
}

func TestNewServicePanicsOnNilDeps(t *testing.T) {
	assert.Panics(t, func() { NewService(nil, adminAuth()) })
	assert.Panics(t, func() { NewService(&memStore{}, nil) })
}
