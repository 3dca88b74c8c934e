package domain

type ChatRequest struct {
	UserID        string
	SessionID     SessionID
	Message       string
	TopKLocal     int
	TopKGlobal    int
	STMMaxTurns   int
	ReturnSources bool
}

// SourceRef is a retrieved snippet the backend used for a reply. ID is zero
// for short-term memory sources.
type SourceRef struct {
	Scope     Scope
	ID        int64
	SessionID SessionID
	Score     float64
	Snippet   string
	Meta      map[string]any
}

type ChatTurnResult struct {
	Reply        string
	UsedSTMTurns int
	Sources      []SourceRef
}
