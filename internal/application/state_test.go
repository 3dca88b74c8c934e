package application

import (
	"testing"
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionFactory(now time.Time, ids ...domain.SessionID) func() domain.ChatSession {
	next := 0
	return func() domain.ChatSession {
		id := ids[next]
		next++
		return domain.NewSession(id, now)
	}
}

func TestNewStateFallsBackToFirstSession(t *testing.T) {
	t.Parallel()

	now := time.Now()
	sessions := domain.SessionCollection{domain.NewSession("a", now), domain.NewSession("b", now)}

	assert.Equal(t, domain.SessionID("b"), NewState("u", sessions, "b").ActiveID)
	assert.Equal(t, domain.SessionID("a"), NewState("u", sessions, "gone").ActiveID)
	assert.Equal(t, domain.SessionID(""), NewState("u", nil, "gone").ActiveID)
}

func TestStateBeginSendRejectsWhitespace(t *testing.T) {
	t.Parallel()

	now := time.Now()
	state := NewState("u", domain.SessionCollection{domain.NewSession("a", now)}, "a")

	for _, text := range []string{"", "   ", "\n\t "} {
		next, _, err := state.BeginSend(text, now, sessionFactory(now, "new"))
		require.ErrorIs(t, err, domain.ErrEmptyMessage)
		assert.Equal(t, state, next)
	}
}

func TestStateBeginSendCreatesSessionWhenNoneSelected(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	state := NewState("u", nil, "")

	next, turn, err := state.BeginSend("hello there", now, sessionFactory(now, "fresh"))
	require.NoError(t, err)

	assert.Equal(t, Turn{Identity: "u", SessionID: "fresh", Text: "hello there"}, turn)
	assert.Equal(t, domain.SessionID("fresh"), next.ActiveID)
	assert.True(t, next.Busy)
	require.Len(t, next.Sessions, 1)
	assert.Equal(t, "hello there", next.Sessions[0].Title)
	assert.Equal(t, []domain.ChatMessage{domain.UserMessage("hello there")}, next.Sessions[0].Messages)
	assert.Empty(t, state.Sessions)
}

func TestStateBeginSendWhileBusy(t *testing.T) {
	t.Parallel()

	now := time.Now()
	state := NewState("u", domain.SessionCollection{domain.NewSession("a", now)}, "a")
	state.Busy = true

	_, _, err := state.BeginSend("second", now, nil)
	require.ErrorIs(t, err, domain.ErrSendInProgress)
}

func TestStateBeginSendKeepsCustomTitle(t *testing.T) {
	t.Parallel()

	now := time.Now()
	session := domain.NewSession("a", now)
	session.Title = "Trip planning"
	state := NewState("u", domain.SessionCollection{session}, "a")

	next, _, err := state.BeginSend("where should we go first?", now, nil)
	require.NoError(t, err)
	assert.Equal(t, "Trip planning", next.Sessions[0].Title)
}

func TestStateCompleteSendAppendsReplyAndSources(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	state := NewState("u", domain.SessionCollection{domain.NewSession("a", now)}, "a")
	state.Sources = []domain.SourceRef{{Scope: domain.ScopeGlobal, ID: 99}}

	sending, turn, err := state.BeginSend("question", now, nil)
	require.NoError(t, err)

	sources := []domain.SourceRef{{Scope: domain.ScopeLocal, ID: 1, Snippet: "s"}}
	done := sending.CompleteSend(turn, domain.ChatTurnResult{Reply: "answer", Sources: sources}, now.Add(time.Second))

	assert.False(t, done.Busy)
	assert.Empty(t, done.Error)
	assert.Equal(t, sources, done.Sources)
	assert.Equal(t, []domain.ChatMessage{
		domain.UserMessage("question"),
		domain.AssistantMessage("answer"),
	}, done.Sessions[0].Messages)
	assert.Equal(t, now.Add(time.Second), done.Sessions[0].UpdatedAt)

	empty := sending.CompleteSend(turn, domain.ChatTurnResult{Reply: "answer"}, now)
	assert.NotNil(t, empty.Sources)
	assert.Empty(t, empty.Sources)
}

func TestStateFailSendKeepsUserMessage(t *testing.T) {
	t.Parallel()

	now := time.Now()
	state := NewState("u", domain.SessionCollection{domain.NewSession("a", now)}, "a")

	sending, turn, err := state.BeginSend("question", now, nil)
	require.NoError(t, err)

	failed := sending.FailSend(turn, ChatFailedMessage)
	assert.False(t, failed.Busy)
	assert.Equal(t, ChatFailedMessage, failed.Error)
	assert.Equal(t, []domain.ChatMessage{domain.UserMessage("question")}, failed.Sessions[0].Messages)
}

func TestStateCompleteSendIgnoresOtherIdentity(t *testing.T) {
	t.Parallel()

	now := time.Now()
	state := NewState("alice", domain.SessionCollection{domain.NewSession("a", now)}, "a")
	sending, turn, err := state.BeginSend("question", now, nil)
	require.NoError(t, err)

	switched := NewState("bob", domain.SessionCollection{domain.NewSession("a", now)}, "a")
	switched.Busy = sending.Busy

	done := switched.CompleteSend(turn, domain.ChatTurnResult{Reply: "answer"}, now)
	assert.False(t, done.Busy)
	assert.Empty(t, done.Sessions[0].Messages)
}

func TestStateDeleteSessionSelectionFallback(t *testing.T) {
	t.Parallel()

	now := time.Now()
	sessions := domain.SessionCollection{
		domain.NewSession("a", now),
		domain.NewSession("b", now),
		domain.NewSession("c", now),
	}

	t.Run("active falls back to first remaining", func(t *testing.T) {
		t.Parallel()

		next, err := NewState("u", sessions, "b").DeleteSession("b")
		require.NoError(t, err)
		assert.Equal(t, domain.SessionID("a"), next.ActiveID)
		assert.Len(t, next.Sessions, 2)
	})

	t.Run("non-active keeps selection", func(t *testing.T) {
		t.Parallel()

		next, err := NewState("u", sessions, "c").DeleteSession("a")
		require.NoError(t, err)
		assert.Equal(t, domain.SessionID("c"), next.ActiveID)
	})

	t.Run("last session leaves nothing selected", func(t *testing.T) {
		t.Parallel()

		single := domain.SessionCollection{domain.NewSession("only", now)}
		next, err := NewState("u", single, "only").DeleteSession("only")
		require.NoError(t, err)
		assert.Empty(t, next.ActiveID)
		assert.Empty(t, next.Sessions)
		_, ok := next.Active()
		assert.False(t, ok)
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()

		_, err := NewState("u", sessions, "a").DeleteSession("zzz")
		require.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}

func TestStateSelectAndNewSession(t *testing.T) {
	t.Parallel()

	now := time.Now()
	state := NewState("u", domain.SessionCollection{domain.NewSession("a", now)}, "a")
	state.Sources = []domain.SourceRef{{ID: 1}}

	created := state.WithNewSession(domain.NewSession("b", now))
	assert.Equal(t, domain.SessionID("b"), created.ActiveID)
	assert.Equal(t, domain.SessionID("b"), created.Sessions[0].ID)
	assert.Nil(t, created.Sources)

	selected, err := created.Select("a")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID("a"), selected.ActiveID)

	_, err = created.Select("missing")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}
