package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type SessionID string

const (
	DefaultSessionTitle = "Yeni sohbet"
	titleMaxRunes       = 30
)

type ChatSession struct {
	ID        SessionID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []ChatMessage
}

func NewSession(id SessionID, now time.Time) ChatSession {
	now = Timestamp(now)

	return ChatSession{
		ID:        id,
		Title:     DefaultSessionTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []ChatMessage{},
	}
}

// Timestamp normalizes a wall-clock reading to the precision the persisted
// blob can represent.
func Timestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	return t.UTC().Truncate(time.Millisecond)
}

func (s ChatSession) HasDefaultTitle() bool {
	return s.Title == DefaultSessionTitle
}

// Append returns a copy of s with msg added at the end. The backing array is
// never shared with s, so earlier snapshots keep their transcript.
func (s ChatSession) Append(msg ChatMessage, now time.Time) ChatSession {
	messages := make([]ChatMessage, 0, len(s.Messages)+1)
	messages = append(messages, s.Messages...)
	messages = append(messages, msg)

	s.Messages = messages
	s.touch(now)
	return s
}

func (s *ChatSession) touch(now time.Time) {
	now = Timestamp(now)
	if now.After(s.UpdatedAt) {
		s.UpdatedAt = now
	}
}

// DeriveTitle truncates text to the auto-title prefix length, counted in
// characters rather than bytes.
func DeriveTitle(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= titleMaxRunes {
		return text
	}

	return string([]rune(text)[:titleMaxRunes])
}

// SessionCollection is the ordered list of sessions owned by one identity.
// The most recently created session is conventionally first.
type SessionCollection []ChatSession

func (c SessionCollection) Index(id SessionID) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

func (c SessionCollection) Find(id SessionID) (ChatSession, bool) {
	i := c.Index(id)
	if i < 0 {
		return ChatSession{}, false
	}
	return c[i], true
}

func (c SessionCollection) Prepend(session ChatSession) SessionCollection {
	next := make(SessionCollection, 0, len(c)+1)
	next = append(next, session)
	return append(next, c...)
}

// Replace swaps the stored session that has the same id as session.
func (c SessionCollection) Replace(session ChatSession) (SessionCollection, error) {
	i := c.Index(session.ID)
	if i < 0 {
		return c, fmt.Errorf("%w: %s", ErrSessionNotFound, session.ID)
	}

	next := c.clone()
	next[i] = session
	return next, nil
}

func (c SessionCollection) Rename(id SessionID, title string, now time.Time) (SessionCollection, error) {
	session, ok := c.Find(id)
	if !ok {
		return c, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	session.Title = title
	session.touch(now)
	return c.Replace(session)
}

func (c SessionCollection) Delete(id SessionID) SessionCollection {
	next := make(SessionCollection, 0, len(c))
	for _, session := range c {
		if session.ID == id {
			continue
		}
		next = append(next, session)
	}
	return next
}

// DefaultSelection is the session selected right after a collection is
// loaded: the first one, if any.
func (c SessionCollection) DefaultSelection() (SessionID, bool) {
	if len(c) == 0 {
		return "", false
	}
	return c[0].ID, true
}

func (c SessionCollection) clone() SessionCollection {
	next := make(SessionCollection, len(c))
	copy(next, c)
	return next
}
