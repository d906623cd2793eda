package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Authenticator exchanges credentials for a session. Implemented by the
// REST client; tests use an in-memory fake.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (Session, error)
}

// Service is the single source of truth for "who is logged in" on this
// terminal. Exactly one session is active at a time. Consumers read
// Current/IsAuthenticated; Subscribe delivers every change (login,
// logout, startup rehydration) synchronously, which is how the currency
// service learns about station changes.
type Service struct {
	mu      sync.RWMutex
	store   Store
	auth    Authenticator
	timeout time.Duration
	current *Session
	subs    map[uint64]func(*Session)
	nextSub uint64
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLoginTimeout bounds each login call (default 5s).
func WithLoginTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService wires a Service from its store and authenticator. Nil
// dependencies are wiring defects and panic immediately.
func NewService(store Store, auth Authenticator, opts ...ServiceOption) *Service {
	if store == nil {
		panic("session: nil Store passed to NewService")
	}
	if auth == nil {
		panic("session: nil Authenticator passed to NewService")
	}
	s := &Service{store: store, auth: auth, timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init rehydrates the session persisted by a previous run. Absent or
// corrupt persisted data leaves the terminal unauthenticated; corruption
// is logged but never fatal. Subscribers are notified only when a
// session was actually restored.
func (s *Service) Init(ctx context.Context) {
	restored, err := s.store.Load(ctx)
	if err != nil {
		log.Printf("session: discarding persisted session: %v", err)
		return
	}
	if restored == nil {
		return
	}
	s.mu.Lock()
	s.current = restored
	s.mu.Unlock()
	s.notify()
}

// Login authenticates and installs the returned identity as the current
// session, persisting it for the next process start. On failure the
// previous session state is left untouched, so a failed re-login attempt
// does not log the terminal out.
func (s *Service) Login(ctx context.Context, username, password string) error {
	actx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sess, err := s.auth.Login(actx, username, password)
	if err != nil {
		if !errors.Is(err, ErrAuthentication) {
			err = fmt.Errorf("%w: %v", ErrAuthentication, err)
		}
		return err
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	// Persisting is best effort: the in-memory session is already live,
	// and the worst outcome of a failed write is a login prompt after
	// the next restart.
	if err := s.store.Save(ctx, sess); err != nil {
		log.Printf("session: persist failed: %v", err)
	}
	s.notify()
	return nil
}

// Logout clears the session from memory and from the persisted store.
// Calling it with no active session is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	hadSession := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	if hadSession {
		s.notify()
	}
	return nil
}

// Current returns a copy of the active session, or nil when logged out.
func (s *Service) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// IsAuthenticated reports whether a session is active.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Subscribe registers fn to run synchronously on every session change,
// receiving the new session (nil on logout). The returned function
// removes the subscription. Subscriptions are keyed by an id that is
// never reused, so an unsubscribe held across a Dispose cannot detach a
// subscriber registered later.
func (s *Service) Subscribe(fn func(*Session)) func() {
	if fn == nil {
		panic("session: nil subscriber passed to Subscribe")
	}
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[uint64]func(*Session))
	}
	s.nextSub++
	id := s.nextSub
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Dispose drops all subscribers. The session itself stays persisted; a
// later Init picks it back up.
func (s *Service) Dispose() {
	s.mu.Lock()
	s.subs = nil
	s.mu.Unlock()
}

func (s *Service) notify() {
	s.mu.RLock()
	subs := make([]func(*Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	cur := s.current
	var cp *Session
	if cur != nil {
		c := *cur
		cp = &c
	}
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(cp)
	}
}
