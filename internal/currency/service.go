package currency

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fuelware/petrol-station-pos/internal/model"
)

// StationFetcher resolves a station record; the Service only reads its
// DefaultCurrency. Implemented by the REST client on terminals and by a
// repository adapter in tests.
type StationFetcher interface {
	FetchStation(ctx context.Context, stationID uint64) (model.Station, error)
}

// ErrUnknownCurrency is returned by SetCurrency for codes outside the
// closed set.
var ErrUnknownCurrency = errors.New("unknown currency code")

// Service tracks the active display currency of one terminal session.
// The active code follows the session's station: UpdateStation fetches
// the station record and adopts its default currency, falling back to
// the default code when the station cannot be resolved. A manual
// SetCurrency overrides the station currency for this process only;
// nothing is written back to the station record.
//
// Construct with NewService, drive it from session changes, read it from
// any goroutine.
type Service struct {
	mu       sync.RWMutex
	stations StationFetcher
	timeout  time.Duration
	active   Code
	loading  bool
	gen      uint64 // update generation; stale fetch results are discarded
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithFetchTimeout bounds each station fetch (default 5s).
func WithFetchTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService returns a Service resolving currencies through stations.
// A nil fetcher is a wiring defect and panics immediately.
func NewService(stations StationFetcher, opts ...ServiceOption) *Service {
	if stations == nil {
		panic("currency: nil StationFetcher passed to NewService")
	}
	s := &Service{
		stations: stations,
		timeout:  5 * time.Second,
		active:   DefaultCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateStation re-resolves the active currency for stationID. A zero
// stationID (session without a station, or logout) resets to the default
// currency without a fetch. Fetch failures and unknown codes also fall
// back to the default. Callers wanting the UI thread free run this in a
// goroutine; if a newer update starts before this one finishes, the
// stale result is discarded.
func (s *Service) UpdateStation(ctx context.Context, stationID uint64) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if stationID == 0 {
		s.active = DefaultCode
		s.loading = false
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	fctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	code := DefaultCode
	if st, err := s.stations.FetchStation(fctx, stationID); err == nil {
		if c, ok := ParseCode(st.DefaultCurrency); ok {
			code = c
		}
	}
	s.apply(gen, code)
}

// apply installs a resolved code unless a newer update superseded gen.
func (s *Service) apply(gen uint64, code Code) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.active = code
	s.loading = false
}

// SetCurrency overrides the active currency locally. The override also
// invalidates any in-flight station fetch so it cannot clobber the
// cashier's explicit choice.
func (s *Service) SetCurrency(code Code) error {
	if !IsValidCurrency(code) {
		return ErrUnknownCurrency
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.active = code
	s.loading = false
	return nil
}

// ActiveCurrency returns the code all Format calls currently use.
func (s *Service) ActiveCurrency() Code {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// IsLoading reports whether a station fetch is outstanding.
func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Symbol returns the active currency's display symbol.
func (s *Service) Symbol() string {
	return GetCurrencySymbol(s.ActiveCurrency())
}

// Format renders amount in the active currency.
func (s *Service) Format(amount any, opts ...FormatOption) string {
	return FormatAmount(amount, s.ActiveCurrency(), opts...)
}

// FormatCompact renders amount in the active currency's compact form.
func (s *Service) FormatCompact(amount any) string {
	return FormatAmountCompact(amount, s.ActiveCurrency())
}
