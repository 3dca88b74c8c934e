package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc"
)

const (
	// WritebackMinChars is the whitespace-free length a turn must exceed
	// before it is worth storing.
	WritebackMinChars = 20

	WritebackSource      = "chat"
	WritebackCreatedFrom = "ui-auto"
)

var writebackScopes = []domain.Scope{domain.ScopeLocal, domain.ScopeGlobal}

// MemoryWriteback stores completed turns in the local and global memory
// scopes. Writes run detached from the caller; their outcome only reaches the
// logger.
type MemoryWriteback struct {
	gateway ports.BackendGateway
	logger  *log.Logger
	tasks   conc.WaitGroup
}

func NewMemoryWriteback(gateway ports.BackendGateway, logger *log.Logger) *MemoryWriteback {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &MemoryWriteback{gateway: gateway, logger: logger}
}

func ComposeTurnText(userText, reply string) string {
	return strings.TrimSpace("User: " + userText + "\n" + "Assistant: " + reply)
}

func compactLength(text string) int {
	n := 0
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// ShouldWriteback reports whether a composed turn passes the density gate.
func ShouldWriteback(turnText string) bool {
	return compactLength(turnText) > WritebackMinChars
}

// Requests builds one write per scope for a completed turn, or nil when the
// turn is too short to keep. Each request gets its own meta map.
func Requests(identity string, session domain.ChatSession, userText, reply string) []domain.MemoryWriteRequest {
	text := ComposeTurnText(userText, reply)
	if !ShouldWriteback(text) {
		return nil
	}

	requests := make([]domain.MemoryWriteRequest, 0, len(writebackScopes))
	for _, scope := range writebackScopes {
		requests = append(requests, domain.MemoryWriteRequest{
			Scope:     scope,
			UserID:    identity,
			SessionID: session.ID,
			Text:      text,
			Meta: map[string]any{
				"source":        WritebackSource,
				"session_id":    string(session.ID),
				"session_title": session.Title,
				"created_from":  WritebackCreatedFrom,
			},
		})
	}

	return requests
}

// FanOut starts one detached write per scope and returns how many were
// started. It never waits for them and never reports their errors.
func (w *MemoryWriteback) FanOut(ctx context.Context, identity string, session domain.ChatSession, userText, reply string) int {
	requests := Requests(identity, session, userText, reply)
	if len(requests) == 0 {
		w.logger.Debug("skipping writeback for short turn", "session", session.ID)
		return 0
	}

	detached := context.WithoutCancel(ctx)
	for _, req := range requests {
		w.tasks.Go(func() {
			w.write(detached, req)
		})
	}

	return len(requests)
}

func (w *MemoryWriteback) write(ctx context.Context, req domain.MemoryWriteRequest) {
	record, err := w.gateway.AddMemory(ctx, req)
	if err != nil {
		w.logger.Warn("memory writeback failed", "scope", req.Scope, "session", req.SessionID, "err", err)
		return
	}

	w.logger.Debug("memory writeback stored", "scope", record.Scope, "id", record.ID, "session", req.SessionID)
}

// Drain waits for in-flight writes until ctx is done. Only process shutdown
// calls it; the orchestrator never does.
func (w *MemoryWriteback) Drain(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		var err error
		if recovered := w.tasks.WaitAndRecover(); recovered != nil {
			err = fmt.Errorf("memory writeback panicked: %s", recovered.String())
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("drain memory writeback: %w", ctx.Err())
	}
}
