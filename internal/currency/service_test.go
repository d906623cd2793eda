package currency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuelware/petrol-station-pos/internal/model"
)

// fakeFetcher returns a fixed currency per station id and counts calls.
type fakeFetcher struct {
	mu       sync.Mutex
	calls    int
	byID     map[uint64]string
	failWith error
}

func (f *fakeFetcher) FetchStation(ctx context.Context, stationID uint64) (model.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failWith != nil {
		return model.Station{}, f.failWith
	}
	return model.Station{ID: stationID, DefaultCurrency: f.byID[stationID]}, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestServiceDefaultsToPKR(t *testing.T) {
	s := NewService(&fakeFetcher{})
	assert.Equal(t, PKR, s.ActiveCurrency())
	assert.False(t, s.IsLoading())
}

func TestUpdateStationAdoptsStationCurrency(t *testing.T) {
	f := &fakeFetcher{byID: map[uint64]string{7: "EUR"}}
	s := NewService(f)

	s.UpdateStation(context.Background(), 7)

	assert.Equal(t, EUR, s.ActiveCurrency())
	assert.False(t, s.IsLoading())
	assert.Equal(t, 1, f.callCount(), "one station change must issue exactly one fetch")
}

func TestUpdateStationZeroResetsWithoutFetch(t *testing.T) {
	f := &fakeFetcher{byID: map[uint64]string{7: "EUR"}}
	s := NewService(f)
	s.UpdateStation(context.Background(), 7)
	require.Equal(t, EUR, s.ActiveCurrency())

	// logout: no station, no fetch
	s.UpdateStation(context.Background(), 0)
	assert.Equal(t, PKR, s.ActiveCurrency())
	assert.Equal(t, 1, f.callCount())
}

func TestUpdateStationFallsBackOnFetchError(t *testing.T) {
	f := &fakeFetcher{failWith: errors.New("backend down")}
	s := NewService(f)
	require.NoError(t, s.SetCurrency(USD))

	s.UpdateStation(context.Background(), 7)

	assert.Equal(t, PKR, s.ActiveCurrency(), "fetch failure reverts to the default currency")
	assert.False(t, s.IsLoading())
}

func TestUpdateStationFallsBackOnUnknownCode(t *testing.T) {
	f := &fakeFetcher{byID: map[uint64]string{7: "DOGE"}}
	s := NewService(f)

	s.UpdateStation(context.Background(), 7)

	assert.Equal(t, PKR, s.ActiveCurrency())
}

func TestSetCurrency(t *testing.T) {
	s := NewService(&fakeFetcher{})
	require.NoError(t, s.SetCurrency(GBP))
	assert.Equal(t, GBP, s.ActiveCurrency())
	assert.Equal(t, "£", s.Symbol())

	err := s.SetCurrency(Code("DOGE"))
	assert.ErrorIs(t, err, ErrUnknownCurrency)
	assert.Equal(t, GBP, s.ActiveCurrency(), "invalid code must not change the active currency")
}

func TestServiceFormatUsesActiveCurrency(t *testing.T) {
	s := NewService(&fakeFetcher{})
	require.NoError(t, s.SetCurrency(USD))
	assert.Equal(t, "$1,234.56", s.Format(1234.56))
	assert.Equal(t, "$1.2K", s.FormatCompact(1200))
}

// blockingFetcher stalls its first call until released, so a test can
// interleave a second, faster update.
type blockingFetcher struct {
	release chan struct{}
	calls   int32
}

func (f *blockingFetcher) FetchStation(ctx context.Context, stationID uint64) (model.Station, error) {
	if atomic.AddInt32(&f.calls, 1) == 1 {
		<-f.release
		return model.Station{ID: stationID, DefaultCurrency: "EUR"}, nil
	}
	return model.Station{ID: stationID, DefaultCurrency: "USD"}, nil
}

func TestStaleFetchResultIsDiscarded(t *testing.T) {
	f := &blockingFetcher{release: make(chan struct{})}
	s := NewService(f, WithFetchTimeout(5*time.Second))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.UpdateStation(context.Background(), 1) // blocks inside the fetcher
	}()

	// wait until the slow fetch is in flight
	for atomic.LoadInt32(&f.calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	// a newer station change completes first
	s.UpdateStation(context.Background(), 2)
	require.Equal(t, USD, s.ActiveCurrency())

	// the stale result arrives afterwards and must be dropped
	close(f.release)
	wg.Wait()
	assert.Equal(t, USD, s.ActiveCurrency(), "stale fetch result overwrote a newer update")
	assert.False(t, s.IsLoading())
}

func TestSetCurrencyInvalidatesInFlightFetch(t *testing.T) {
	f := &blockingFetcher{release: make(chan struct{})}
	s := NewService(f)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.UpdateStation(context.Background(), 1)
	}()
	for atomic.LoadInt32(&f.calls) == 0 {
		time.Sleep(time.Millisecond)
	}

	require.NoError(t, s.SetCurrency(CNY))
	close(f.release)
	wg.Wait()

	assert.Equal(t, CNY, s.ActiveCurrency(), "manual override lost to an in-flight station fetch")
}

func TestNewServicePanicsOnNilFetcher(t *testing.T) {
	assert.Panics(t, func() { NewService(nil) })
}
