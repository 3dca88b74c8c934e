package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
)

const (
	DefaultSearchTopK = 10
	DefaultPageSize   = 20
)

// MemoryService covers manually authored memory entries and browsing of
// stored records.
type MemoryService struct {
	gateway ports.BackendGateway
}

func NewMemoryService(gateway ports.BackendGateway) *MemoryService {
	return &MemoryService{gateway: gateway}
}

// ParseMeta decodes an optional JSON object. Empty input yields an empty map.
func ParseMeta(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}

	var meta map[string]any
	if err := json.Unmarshal([]byte(raw), &meta); err != nil || meta == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMeta, raw)
	}

	return meta, nil
}

func (s *MemoryService) Add(ctx context.Context, req domain.MemoryWriteRequest) (domain.MemoryRecord, error) {
	if !req.Scope.Persistent() {
		return domain.MemoryRecord{}, fmt.Errorf("%w: %q", domain.ErrInvalidScope, req.Scope)
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return domain.MemoryRecord{}, domain.ErrEmptyMessage
	}
	if req.Meta == nil {
		req.Meta = map[string]any{}
	}

	record, err := s.gateway.AddMemory(ctx, req)
	if err != nil {
		return domain.MemoryRecord{}, fmt.Errorf("add %s memory: %w", req.Scope, err)
	}

	return record, nil
}

// Search queries stored memories. A local search needs the session it is
// restricted to.
func (s *MemoryService) Search(ctx context.Context, query domain.SearchQuery) (domain.MemoryPage, error) {
	query.Query = strings.TrimSpace(query.Query)
	if query.Query == "" {
		return domain.MemoryPage{}, domain.ErrEmptyQuery
	}

	switch query.Scope {
	case domain.ScopeAny, domain.ScopeGlobal:
	case domain.ScopeLocal:
		if query.SessionID == "" {
			return domain.MemoryPage{}, domain.ErrSessionRequired
		}
	default:
		return domain.MemoryPage{}, fmt.Errorf("%w: %q", domain.ErrInvalidScope, query.Scope)
	}
	if query.Scope == domain.ScopeGlobal {
		query.SessionID = ""
	}
	if query.TopK <= 0 {
		query.TopK = DefaultSearchTopK
	}

	page, err := s.gateway.SearchMemory(ctx, query)
	if err != nil {
		return domain.MemoryPage{}, fmt.Errorf("search memory: %w", err)
	}

	return page, nil
}

func (s *MemoryService) List(ctx context.Context, query domain.ListQuery) (domain.MemoryPage, error) {
	if !query.Scope.Persistent() {
		return domain.MemoryPage{}, fmt.Errorf("%w: %q", domain.ErrInvalidScope, query.Scope)
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = DefaultPageSize
	}

	page, err := s.gateway.ListMemories(ctx, query)
	if err != nil {
		return domain.MemoryPage{}, fmt.Errorf("list %s memories: %w", query.Scope, err)
	}

	return page, nil
}

func (s *MemoryService) Delete(ctx context.Context, scope domain.Scope, id int64) (int, error) {
	if !scope.Persistent() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidScope, scope)
	}

	deleted, err := s.gateway.DeleteMemory(ctx, scope, id)
	if err != nil {
		return 0, fmt.Errorf("delete %s memory %d: %w", scope, id, err)
	}

	return deleted, nil
}

func (s *MemoryService) Clear(ctx context.Context, query domain.ClearQuery) (int, error) {
	if !query.Scope.Persistent() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidScope, query.Scope)
	}

	deleted, err := s.gateway.ClearMemory(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("clear %s memories: %w", query.Scope, err)
	}

	return deleted, nil
}
