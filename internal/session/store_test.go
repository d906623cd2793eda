package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos-session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	// nothing persisted yet
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := Session{ID: 3, Username: "cashier1", FullName: "Till One", Role: "cashier", StationID: 2}
	require.NoError(t, store.Save(ctx, want))

	got, err = store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestFileStoreSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "pos", "session.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), Session{ID: 1, Username: "a"}))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.Username)
}

func TestFileStoreCorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos-session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err, "corrupt payloads must surface as errors for the service to discard")
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos-session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{ID: 9, Username: "x"}))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	// clearing an already-clear store is a no-op
	require.NoError(t, store.Clear(ctx))
}
