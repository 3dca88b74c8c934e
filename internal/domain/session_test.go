package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTitleTruncatesToThirtyCharacters(t *testing.T) {
	msg := "Merhaba dünya, bugün hava çok güzel ve uzun bir mesaj"

	title := DeriveTitle(msg)

	assert.Equal(t, string([]rune(msg)[:30]), title)
	assert.Equal(t, "Merhaba dünya, bugün hava çok ", title)
}

func TestDeriveTitleKeepsShortText(t *testing.T) {
	assert.Equal(t, "selam", DeriveTitle("  selam  "))
}

func TestAppendDoesNotShareBackingArray(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	session := NewSession("s-1", created)

	first := session.Append(UserMessage("one"), created.Add(time.Second))
	second := first.Append(AssistantMessage("two"), created.Add(2*time.Second))

	require.Len(t, first.Messages, 1)
	require.Len(t, second.Messages, 2)
	assert.Empty(t, session.Messages)
	assert.Equal(t, created.Add(2*time.Second), second.UpdatedAt)
}

func TestAppendNeverMovesUpdatedAtBackwards(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	session := NewSession("s-1", created)

	got := session.Append(UserMessage("late clock"), created.Add(-time.Hour))

	assert.Equal(t, created, got.UpdatedAt)
}

func TestCollectionRenameUpdatesTitleAndTimestamp(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	collection := SessionCollection{NewSession("a", created), NewSession("b", created)}

	renamed, err := collection.Rename("b", "Tatil planı", created.Add(time.Minute))
	require.NoError(t, err)

	got, ok := renamed.Find("b")
	require.True(t, ok)
	assert.Equal(t, "Tatil planı", got.Title)
	assert.Equal(t, created.Add(time.Minute), got.UpdatedAt)

	original, _ := collection.Find("b")
	assert.Equal(t, DefaultSessionTitle, original.Title)
}

func TestCollectionRenameUnknownSession(t *testing.T) {
	_, err := SessionCollection{}.Rename("missing", "x", time.Now())
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCollectionDeleteAndDefaultSelection(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	collection := SessionCollection{NewSession("a", now), NewSession("b", now)}

	id, ok := collection.DefaultSelection()
	require.True(t, ok)
	assert.Equal(t, SessionID("a"), id)

	remaining := collection.Delete("a")
	require.Len(t, remaining, 1)
	assert.Equal(t, SessionID("b"), remaining[0].ID)
	assert.Len(t, collection, 2)

	_, ok = remaining.Delete("b").DefaultSelection()
	assert.False(t, ok)
}

func TestParseScope(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Scope
		wantErr bool
	}{
		{name: "local", raw: "local", want: ScopeLocal},
		{name: "global upper", raw: " GLOBAL ", want: ScopeGlobal},
		{name: "unrestricted", raw: "", want: ScopeAny},
		{name: "unknown", raw: "ltm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScope(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidScope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
