package domain

import (
	"fmt"
	"strings"
	"time"
)

type Scope string

const (
	ScopeAny    Scope = ""
	ScopeSTM    Scope = "stm"
	ScopeLocal  Scope = "local"
	ScopeGlobal Scope = "global"
)

func ParseScope(raw string) (Scope, error) {
	switch scope := Scope(strings.ToLower(strings.TrimSpace(raw))); scope {
	case ScopeAny, ScopeSTM, ScopeLocal, ScopeGlobal:
		return scope, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, raw)
	}
}

// Persistent reports whether records of this scope live in a long-term store.
func (s Scope) Persistent() bool {
	return s == ScopeLocal || s == ScopeGlobal
}

// MemoryWriteRequest asks the backend to store text in one long-term scope.
// It is built per write and never persisted client-side.
type MemoryWriteRequest struct {
	Scope     Scope
	UserID    string
	SessionID SessionID
	Text      string
	Meta      map[string]any
}

type MemoryRecord struct {
	ID         int64
	Scope      Scope
	UserID     string
	SessionID  SessionID
	Text       string
	Meta       map[string]any
	EmbVersion string
	Model      string
	Dim        int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type SearchQuery struct {
	UserID    string
	Query     string
	Scope     Scope
	SessionID SessionID
	TopK      int
}

type ListQuery struct {
	Scope     Scope
	UserID    string
	SessionID SessionID
	Query     string
	Page      int
	PageSize  int
}

type MemoryPage struct {
	Page     int
	PageSize int
	Total    int
	Items    []MemoryRecord
}

type ClearQuery struct {
	Scope     Scope
	UserID    string
	SessionID SessionID
}
