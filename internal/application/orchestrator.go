package application

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
	"github.com/charmbracelet/log"
)

// ChatFailedMessage is what the user sees when a chat round trip fails.
const ChatFailedMessage = "Mesaj gönderilirken bir hata oluştu."

type ChatOptions struct {
	TopKLocal     int
	TopKGlobal    int
	STMMaxTurns   int
	ReturnSources bool
}

func DefaultChatOptions() ChatOptions {
	return ChatOptions{
		TopKLocal:     5,
		TopKGlobal:    5,
		STMMaxTurns:   8,
		ReturnSources: true,
	}
}

type writebackDispatcher interface {
	FanOut(ctx context.Context, identity string, session domain.ChatSession, userText, reply string) int
}

// ChatOrchestrator drives send transactions against the current State. The
// lock covers state transitions and persistence, never the chat round trip.
type ChatOrchestrator struct {
	mu        sync.Mutex
	state     State
	sessions  *SessionStore
	gateway   ports.BackendGateway
	writeback writebackDispatcher
	clock     ports.Clock
	options   ChatOptions
	logger    *log.Logger
}

func NewChatOrchestrator(
	sessions *SessionStore,
	gateway ports.BackendGateway,
	writeback writebackDispatcher,
	clock ports.Clock,
	options ChatOptions,
	logger *log.Logger,
) *ChatOrchestrator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &ChatOrchestrator{
		sessions:  sessions,
		gateway:   gateway,
		writeback: writeback,
		clock:     clock,
		options:   options,
		logger:    logger,
	}
}

// SwitchIdentity loads the collection of identity and restores its last
// selection. An in-flight send keeps the busy flag set until it resolves.
func (o *ChatOrchestrator) SwitchIdentity(ctx context.Context, identity string) State {
	collection := o.sessions.Load(ctx, identity)
	active := o.sessions.LoadActive(ctx, identity)

	o.mu.Lock()
	defer o.mu.Unlock()

	busy := o.state.Busy
	o.state = NewState(identity, collection, active)
	o.state.Busy = busy
	return o.state
}

func (o *ChatOrchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

func (o *ChatOrchestrator) NewSession(ctx context.Context) domain.ChatSession {
	o.mu.Lock()
	defer o.mu.Unlock()

	session := o.sessions.Create()
	o.state = o.state.WithNewSession(session)
	o.persistLocked(ctx)
	return session
}

func (o *ChatOrchestrator) SelectSession(ctx context.Context, id domain.SessionID) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.state.Select(id)
	if err != nil {
		return fmt.Errorf("select session: %w", err)
	}

	o.state = next
	o.persistActiveLocked(ctx)
	return nil
}

func (o *ChatOrchestrator) RenameSession(ctx context.Context, id domain.SessionID, title string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.state.RenameSession(id, title, o.clock.Now())
	if err != nil {
		return fmt.Errorf("rename session: %w", err)
	}

	o.state = next
	o.persistLocked(ctx)
	return nil
}

func (o *ChatOrchestrator) DeleteSession(ctx context.Context, id domain.SessionID) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.state.DeleteSession(id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	o.state = next
	o.persistLocked(ctx)
	return nil
}

// SendMessage runs one transaction. Whitespace-only text returns
// ErrEmptyMessage without touching state; a failed round trip returns an
// error wrapping ErrChatFailed and keeps the user message.
func (o *ChatOrchestrator) SendMessage(ctx context.Context, text string) (domain.ChatTurnResult, error) {
	o.mu.Lock()
	next, turn, err := o.state.BeginSend(text, o.clock.Now(), o.sessions.Create)
	if err != nil {
		o.mu.Unlock()
		return domain.ChatTurnResult{}, err
	}
	o.state = next
	o.persistLocked(ctx)
	o.mu.Unlock()

	result, err := o.gateway.Chat(ctx, domain.ChatRequest{
		UserID:        turn.Identity,
		SessionID:     turn.SessionID,
		Message:       turn.Text,
		TopKLocal:     o.options.TopKLocal,
		TopKGlobal:    o.options.TopKGlobal,
		STMMaxTurns:   o.options.STMMaxTurns,
		ReturnSources: o.options.ReturnSources,
	})

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.logger.Error("chat request failed", "session", turn.SessionID, "err", err)
		o.state = o.state.FailSend(turn, ChatFailedMessage)
		return domain.ChatTurnResult{}, fmt.Errorf("%w: %w", domain.ErrChatFailed, err)
	}

	o.state = o.state.CompleteSend(turn, result, o.clock.Now())
	if turn.Identity != o.state.Identity {
		return result, nil
	}
	o.persistLocked(ctx)

	if session, ok := o.state.Sessions.Find(turn.SessionID); ok && o.writeback != nil {
		o.writeback.FanOut(ctx, turn.Identity, session, turn.Text, result.Reply)
	}

	return result, nil
}

func (o *ChatOrchestrator) persistLocked(ctx context.Context) {
	if err := o.sessions.Save(ctx, o.state.Identity, o.state.Sessions); err != nil {
		o.logger.Error("persist sessions failed", "identity", o.state.Identity, "err", err)
	}
	o.persistActiveLocked(ctx)
}

func (o *ChatOrchestrator) persistActiveLocked(ctx context.Context) {
	if err := o.sessions.SaveActive(ctx, o.state.Identity, o.state.ActiveID); err != nil {
		o.logger.Error("persist active session failed", "identity", o.state.Identity, "err", err)
	}
}
