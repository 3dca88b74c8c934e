package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "store key is empty"},
		{name: "whitespace", key: "   ", wantErr: "store key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid store key"},
		{name: "traversal", key: "../escape", wantErr: "invalid store key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Set(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStoreSetGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	key := "jetlink_sessions_test_user"
	want := `[{"id":"s-1","title":"Yeni sohbet","createdAt":1,"updatedAt":1,"messages":[]}]`

	require.NoError(t, store.Set(context.Background(), key, want))

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(root, key+blobExt))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(blobFileMode), info.Mode().Perm())
}

func TestStoreGetMissingKey(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "jetlink_sessions_nobody")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}
