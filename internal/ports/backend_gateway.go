package ports

import (
	"context"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
)

type BackendGateway interface {
	Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatTurnResult, error)
	AddMemory(ctx context.Context, req domain.MemoryWriteRequest) (domain.MemoryRecord, error)
	SearchMemory(ctx context.Context, query domain.SearchQuery) (domain.MemoryPage, error)
	ListMemories(ctx context.Context, query domain.ListQuery) (domain.MemoryPage, error)
	DeleteMemory(ctx context.Context, scope domain.Scope, id int64) (int, error)
	ClearMemory(ctx context.Context, query domain.ClearQuery) (int, error)
}
