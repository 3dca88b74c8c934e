package application

import (
	"context"
	"errors"
	"testing"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeta(t *testing.T) {
	t.Parallel()

	meta, err := ParseMeta("")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{}, meta)

	meta, err = ParseMeta(`{"tag":"travel","priority":2}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"tag": "travel", "priority": float64(2)}, meta)

	for _, raw := range []string{"{bad", "[1,2]", "null", `"text"`} {
		_, err := ParseMeta(raw)
		require.ErrorIs(t, err, domain.ErrInvalidMeta, raw)
	}
}

func TestMemoryServiceAdd(t *testing.T) {
	t.Parallel()

	gateway := mocks.NewMockBackendGateway(t)
	service := NewMemoryService(gateway)

	gateway.EXPECT().AddMemory(mockAnyContext(), domain.MemoryWriteRequest{
		Scope:     domain.ScopeGlobal,
		UserID:    "test_user",
		SessionID: "s-1",
		Text:      "I prefer window seats",
		Meta:      map[string]any{},
	}).Return(domain.MemoryRecord{ID: 12, Scope: domain.ScopeGlobal, Text: "I prefer window seats"}, nil).Once()

	record, err := service.Add(context.Background(), domain.MemoryWriteRequest{
		Scope:     domain.ScopeGlobal,
		UserID:    "test_user",
		SessionID: "s-1",
		Text:      "  I prefer window seats \n",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), record.ID)
}

func TestMemoryServiceAddValidation(t *testing.T) {
	t.Parallel()

	service := NewMemoryService(mocks.NewMockBackendGateway(t))

	_, err := service.Add(context.Background(), domain.MemoryWriteRequest{Scope: domain.ScopeSTM, Text: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidScope)

	_, err = service.Add(context.Background(), domain.MemoryWriteRequest{Scope: domain.ScopeLocal, Text: "   "})
	require.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestMemoryServiceAddWrapsBackendError(t *testing.T) {
	t.Parallel()

	gateway := mocks.NewMockBackendGateway(t)
	service := NewMemoryService(gateway)
	backendErr := errors.New("503")
	gateway.EXPECT().AddMemory(mockAnyContext(), mockAnyContext()).Return(domain.MemoryRecord{}, backendErr).Once()

	_, err := service.Add(context.Background(), domain.MemoryWriteRequest{Scope: domain.ScopeLocal, Text: "note"})
	require.ErrorIs(t, err, backendErr)
	assert.Contains(t, err.Error(), "add local memory")
}

func TestMemoryServiceSearch(t *testing.T) {
	t.Parallel()

	t.Run("unrestricted keeps session and defaults topk", func(t *testing.T) {
		t.Parallel()

		gateway := mocks.NewMockBackendGateway(t)
		service := NewMemoryService(gateway)
		gateway.EXPECT().SearchMemory(mockAnyContext(), domain.SearchQuery{
			UserID:    "u",
			Query:     "paris",
			SessionID: "s-1",
			TopK:      DefaultSearchTopK,
		}).Return(domain.MemoryPage{Total: 1, Items: []domain.MemoryRecord{{ID: 1}}}, nil).Once()

		page, err := service.Search(context.Background(), domain.SearchQuery{UserID: "u", Query: " paris ", SessionID: "s-1"})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Total)
	})

	t.Run("global drops session", func(t *testing.T) {
		t.Parallel()

		gateway := mocks.NewMockBackendGateway(t)
		service := NewMemoryService(gateway)
		gateway.EXPECT().SearchMemory(mockAnyContext(), domain.SearchQuery{
			UserID: "u",
			Query:  "paris",
			Scope:  domain.ScopeGlobal,
			TopK:   3,
		}).Return(domain.MemoryPage{}, nil).Once()

		_, err := service.Search(context.Background(), domain.SearchQuery{UserID: "u", Query: "paris", Scope: domain.ScopeGlobal, SessionID: "s-1", TopK: 3})
		require.NoError(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		service := NewMemoryService(mocks.NewMockBackendGateway(t))

		_, err := service.Search(context.Background(), domain.SearchQuery{Query: "  "})
		require.ErrorIs(t, err, domain.ErrEmptyQuery)

		_, err = service.Search(context.Background(), domain.SearchQuery{Query: "x", Scope: domain.ScopeLocal})
		require.ErrorIs(t, err, domain.ErrSessionRequired)

		_, err = service.Search(context.Background(), domain.SearchQuery{Query: "x", Scope: domain.ScopeSTM})
		require.ErrorIs(t, err, domain.ErrInvalidScope)
	})
}

func TestMemoryServiceListDeleteClear(t *testing.T) {
	t.Parallel()

	gateway := mocks.NewMockBackendGateway(t)
	service := NewMemoryService(gateway)

	gateway.EXPECT().ListMemories(mockAnyContext(), domain.ListQuery{
		Scope:    domain.ScopeLocal,
		UserID:   "u",
		Page:     1,
		PageSize: DefaultPageSize,
	}).Return(domain.MemoryPage{Page: 1, PageSize: DefaultPageSize}, nil).Once()
	gateway.EXPECT().DeleteMemory(mockAnyContext(), domain.ScopeGlobal, int64(42)).Return(1, nil).Once()
	gateway.EXPECT().ClearMemory(mockAnyContext(), domain.ClearQuery{Scope: domain.ScopeLocal, UserID: "u", SessionID: "s"}).Return(5, nil).Once()

	page, err := service.List(context.Background(), domain.ListQuery{Scope: domain.ScopeLocal, UserID: "u"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)

	deleted, err := service.Delete(context.Background(), domain.ScopeGlobal, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	cleared, err := service.Clear(context.Background(), domain.ClearQuery{Scope: domain.ScopeLocal, UserID: "u", SessionID: "s"})
	require.NoError(t, err)
	assert.Equal(t, 5, cleared)

	_, err = service.List(context.Background(), domain.ListQuery{Scope: domain.ScopeAny})
	require.ErrorIs(t, err, domain.ErrInvalidScope)
	_, err = service.Delete(context.Background(), domain.ScopeSTM, 1)
	require.ErrorIs(t, err, domain.ErrInvalidScope)
	_, err = service.Clear(context.Background(), domain.ClearQuery{})
	require.ErrorIs(t, err, domain.ErrInvalidScope)
}
