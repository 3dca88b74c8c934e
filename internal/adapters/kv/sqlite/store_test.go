package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTripAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sessions.db")

	store, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "jetlink_sessions_alice", `[{"id":"a"}]`))
	require.NoError(t, store.Set(context.Background(), "jetlink_sessions_alice", `[{"id":"b"}]`))
	require.NoError(t, store.Close())

	reopened, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(context.Background(), "jetlink_sessions_alice")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"b"}]`, got)
}

func TestStoreGetMissingKey(t *testing.T) {
	t.Parallel()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.Error(t, store.Set(context.Background(), "", "v"))
}
