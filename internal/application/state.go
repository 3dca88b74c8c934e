package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
)

// State is the chat screen's view of one identity: its sessions, the active
// selection, the sources of the last reply and the in-flight flag. Every
// transition returns a new State and leaves the receiver untouched.
type State struct {
	Identity string
	Sessions domain.SessionCollection
	ActiveID domain.SessionID
	Sources  []domain.SourceRef
	Busy     bool
	Error    string
}

// Turn identifies one send transaction between BeginSend and its outcome.
type Turn struct {
	Identity  string
	SessionID domain.SessionID
	Text      string
}

func NewState(identity string, sessions domain.SessionCollection, active domain.SessionID) State {
	if sessions == nil {
		sessions = domain.SessionCollection{}
	}
	if sessions.Index(active) < 0 {
		active, _ = sessions.DefaultSelection()
	}

	return State{
		Identity: identity,
		Sessions: sessions,
		ActiveID: active,
	}
}

func (s State) Active() (domain.ChatSession, bool) {
	if s.ActiveID == "" {
		return domain.ChatSession{}, false
	}
	return s.Sessions.Find(s.ActiveID)
}

func (s State) WithNewSession(session domain.ChatSession) State {
	s.Sessions = s.Sessions.Prepend(session)
	s.ActiveID = session.ID
	s.Sources = nil
	s.Error = ""
	return s
}

func (s State) Select(id domain.SessionID) (State, error) {
	if s.Sessions.Index(id) < 0 {
		return s, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}

	s.ActiveID = id
	s.Sources = nil
	s.Error = ""
	return s, nil
}

// DeleteSession removes id. When it was the active session the selection
// falls back to the first remaining one, or none.
func (s State) DeleteSession(id domain.SessionID) (State, error) {
	if s.Sessions.Index(id) < 0 {
		return s, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}

	s.Sessions = s.Sessions.Delete(id)
	if s.ActiveID == id {
		s.ActiveID, _ = s.Sessions.DefaultSelection()
		s.Sources = nil
	}
	return s, nil
}

func (s State) RenameSession(id domain.SessionID, title string, now time.Time) (State, error) {
	sessions, err := s.Sessions.Rename(id, title, now)
	if err != nil {
		return s, err
	}

	s.Sessions = sessions
	return s, nil
}

// BeginSend enters Sending. The user message is appended to the active
// session, creating one with create when nothing is selected, and the
// session takes its title from text when this is its first message.
func (s State) BeginSend(text string, now time.Time, create func() domain.ChatSession) (State, Turn, error) {
	if strings.TrimSpace(text) == "" {
		return s, Turn{}, domain.ErrEmptyMessage
	}
	if s.Busy {
		return s, Turn{}, domain.ErrSendInProgress
	}

	next := s
	session, ok := next.Active()
	if !ok {
		next = next.WithNewSession(create())
		session, _ = next.Active()
	}

	if len(session.Messages) == 0 && session.HasDefaultTitle() {
		session.Title = domain.DeriveTitle(text)
	}
	session = session.Append(domain.UserMessage(text), now)

	sessions, err := next.Sessions.Replace(session)
	if err != nil {
		return s, Turn{}, err
	}

	next.Sessions = sessions
	next.Busy = true
	next.Error = ""

	return next, Turn{Identity: s.Identity, SessionID: session.ID, Text: text}, nil
}

// CompleteSend enters Succeeded. A turn whose identity no longer matches, or
// whose session was deleted meanwhile, only clears the busy flag.
func (s State) CompleteSend(turn Turn, result domain.ChatTurnResult, now time.Time) State {
	s.Busy = false
	if turn.Identity != s.Identity {
		return s
	}

	session, ok := s.Sessions.Find(turn.SessionID)
	if !ok {
		return s
	}

	session = session.Append(domain.AssistantMessage(result.Reply), now)
	sessions, err := s.Sessions.Replace(session)
	if err != nil {
		return s
	}

	s.Sessions = sessions
	s.Sources = make([]domain.SourceRef, len(result.Sources))
	copy(s.Sources, result.Sources)
	s.Error = ""
	return s
}

// FailSend enters Failed. The optimistic user message stays in place.
func (s State) FailSend(turn Turn, message string) State {
	s.Busy = false
	if turn.Identity != s.Identity {
		return s
	}

	s.Error = message
	return s
}
