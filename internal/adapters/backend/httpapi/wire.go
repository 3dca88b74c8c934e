package httpapi

import (
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
)

type chatRequest struct {
	UserID        string `json:"user_id"`
	SessionID     string `json:"session_id"`
	Message       string `json:"message"`
	TopKLocal     int    `json:"topk_local"`
	TopKGlobal    int    `json:"topk_global"`
	STMMaxTurns   int    `json:"stm_max_turns"`
	ReturnSources bool   `json:"return_sources"`
}

type sourceItem struct {
	Scope     string         `json:"scope"`
	ID        int64          `json:"id"`
	SessionID string         `json:"session_id"`
	Score     float64        `json:"score"`
	Snippet   string         `json:"snippet"`
	Meta      map[string]any `json:"meta"`
}

type chatResponse struct {
	Reply        string       `json:"reply"`
	UsedSTMTurns int          `json:"used_stm_turns"`
	Sources      []sourceItem `json:"sources"`
}

type memoryWriteRequest struct {
	Scope     string         `json:"scope"`
	UserID    string         `json:"user_id"`
	SessionID string         `json:"session_id,omitempty"`
	Text      string         `json:"text"`
	Meta      map[string]any `json:"meta,omitempty"`
}

type memoryItem struct {
	ID         int64          `json:"id"`
	Scope      string         `json:"scope"`
	UserID     string         `json:"user_id"`
	SessionID  string         `json:"session_id"`
	Text       string         `json:"text"`
	Meta       map[string]any `json:"meta"`
	EmbVersion string         `json:"emb_version"`
	Model      string         `json:"model"`
	Dim        int            `json:"dim"`
	CreatedAt  int64          `json:"created_at"`
	UpdatedAt  int64          `json:"updated_at"`
}

type searchRequest struct {
	UserID    string `json:"user_id"`
	Q         string `json:"q"`
	Scope     string `json:"scope,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	TopK      int    `json:"topk"`
}

type listResponse struct {
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Total    int          `json:"total"`
	Items    []memoryItem `json:"items"`
}

type deleteResponse struct {
	Deleted int `json:"deleted"`
}

func toChatRequest(req domain.ChatRequest) chatRequest {
	return chatRequest{
		UserID:        req.UserID,
		SessionID:     string(req.SessionID),
		Message:       req.Message,
		TopKLocal:     req.TopKLocal,
		TopKGlobal:    req.TopKGlobal,
		STMMaxTurns:   req.STMMaxTurns,
		ReturnSources: req.ReturnSources,
	}
}

func (r chatResponse) toDomain() domain.ChatTurnResult {
	sources := make([]domain.SourceRef, 0, len(r.Sources))
	for _, source := range r.Sources {
		sources = append(sources, domain.SourceRef{
			Scope:     domain.Scope(source.Scope),
			ID:        source.ID,
			SessionID: domain.SessionID(source.SessionID),
			Score:     source.Score,
			Snippet:   source.Snippet,
			Meta:      source.Meta,
		})
	}

	return domain.ChatTurnResult{
		Reply:        r.Reply,
		UsedSTMTurns: r.UsedSTMTurns,
		Sources:      sources,
	}
}

func toMemoryWriteRequest(req domain.MemoryWriteRequest) memoryWriteRequest {
	return memoryWriteRequest{
		Scope:     string(req.Scope),
		UserID:    req.UserID,
		SessionID: string(req.SessionID),
		Text:      req.Text,
		Meta:      req.Meta,
	}
}

func (m memoryItem) toDomain() domain.MemoryRecord {
	return domain.MemoryRecord{
		ID:         m.ID,
		Scope:      domain.Scope(m.Scope),
		UserID:     m.UserID,
		SessionID:  domain.SessionID(m.SessionID),
		Text:       m.Text,
		Meta:       m.Meta,
		EmbVersion: m.EmbVersion,
		Model:      m.Model,
		Dim:        m.Dim,
		CreatedAt:  fromEpochSeconds(m.CreatedAt),
		UpdatedAt:  fromEpochSeconds(m.UpdatedAt),
	}
}

func (r listResponse) toDomain() domain.MemoryPage {
	items := make([]domain.MemoryRecord, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.toDomain())
	}

	return domain.MemoryPage{
		Page:     r.Page,
		PageSize: r.PageSize,
		Total:    r.Total,
		Items:    items,
	}
}

func fromEpochSeconds(seconds int64) time.Time {
	if seconds <= 0 {
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}
