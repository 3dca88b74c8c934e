package application

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
)

// The persisted blob is a JSON array of sessions with epoch-millisecond
// timestamps. It carries no schema version.
type sessionSchema struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	CreatedAt int64           `json:"createdAt"`
	UpdatedAt int64           `json:"updatedAt"`
	Messages  []messageSchema `json:"messages"`
}

type messageSchema struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func encodeSessions(collection domain.SessionCollection) (string, error) {
	entries := make([]sessionSchema, 0, len(collection))
	for _, session := range collection {
		entries = append(entries, toSessionSchema(session))
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode sessions: %w", err)
	}

	return string(data), nil
}

func decodeSessions(raw string) (domain.SessionCollection, error) {
	var entries []sessionSchema
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}

	collection := make(domain.SessionCollection, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("decode sessions: entry %d has no id", i)
		}
		if _, ok := seen[entry.ID]; ok {
			return nil, fmt.Errorf("decode sessions: duplicate id %q", entry.ID)
		}
		seen[entry.ID] = struct{}{}

		session, err := fromSessionSchema(entry)
		if err != nil {
			return nil, err
		}
		collection = append(collection, session)
	}

	return collection, nil
}

func toSessionSchema(session domain.ChatSession) sessionSchema {
	messages := make([]messageSchema, 0, len(session.Messages))
	for _, msg := range session.Messages {
		messages = append(messages, messageSchema{Role: string(msg.Role), Content: msg.Content})
	}

	return sessionSchema{
		ID:        string(session.ID),
		Title:     session.Title,
		CreatedAt: toEpochMillis(session.CreatedAt),
		UpdatedAt: toEpochMillis(session.UpdatedAt),
		Messages:  messages,
	}
}

func fromSessionSchema(entry sessionSchema) (domain.ChatSession, error) {
	messages := make([]domain.ChatMessage, 0, len(entry.Messages))
	for _, msg := range entry.Messages {
		role := domain.Role(msg.Role)
		if !role.Valid() {
			return domain.ChatSession{}, fmt.Errorf("decode sessions: session %q has message with role %q", entry.ID, msg.Role)
		}
		messages = append(messages, domain.ChatMessage{Role: role, Content: msg.Content})
	}

	return domain.ChatSession{
		ID:        domain.SessionID(entry.ID),
		Title:     entry.Title,
		CreatedAt: fromEpochMillis(entry.CreatedAt),
		UpdatedAt: fromEpochMillis(entry.UpdatedAt),
		Messages:  messages,
	}, nil
}

func toEpochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromEpochMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
