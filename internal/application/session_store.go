package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	sessionsKeyPrefix = "jetlink_sessions_"
	activeKeyPrefix   = "jetlink_active_"
)

// SessionStore owns the persisted session collection of each identity.
// There is a single writer per identity; concurrent writers race and the
// last Save wins.
type SessionStore struct {
	kv     ports.KeyValueStore
	clock  ports.Clock
	newID  func() domain.SessionID
	logger *log.Logger
}

func NewSessionStore(kv ports.KeyValueStore, clock ports.Clock, logger *log.Logger) *SessionStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &SessionStore{
		kv:    kv,
		clock: clock,
		newID: func() domain.SessionID {
			return domain.SessionID(uuid.NewString())
		},
		logger: logger,
	}
}

func SessionsKey(identity string) string {
	return sessionsKeyPrefix + strings.TrimSpace(identity)
}

func activeKey(identity string) string {
	return activeKeyPrefix + strings.TrimSpace(identity)
}

// Load returns the persisted collection for identity. A missing, unreadable
// or malformed blob yields an empty collection; Load never fails.
func (s *SessionStore) Load(ctx context.Context, identity string) domain.SessionCollection {
	raw, err := s.kv.Get(ctx, SessionsKey(identity))
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Warn("load sessions failed, starting empty", "identity", identity, "err", err)
		}
		return domain.SessionCollection{}
	}

	collection, err := decodeSessions(raw)
	if err != nil {
		s.logger.Warn("discarding malformed sessions", "identity", identity, "err", err)
		return domain.SessionCollection{}
	}

	return collection
}

// Save overwrites the whole persisted collection.
func (s *SessionStore) Save(ctx context.Context, identity string, collection domain.SessionCollection) error {
	raw, err := encodeSessions(collection)
	if err != nil {
		return err
	}

	if err := s.kv.Set(ctx, SessionsKey(identity), raw); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}

	return nil
}

func (s *SessionStore) Create() domain.ChatSession {
	return domain.NewSession(s.newID(), s.clock.Now())
}

func (s *SessionStore) Rename(collection domain.SessionCollection, id domain.SessionID, title string) (domain.SessionCollection, error) {
	return collection.Rename(id, title, s.clock.Now())
}

func (s *SessionStore) Delete(collection domain.SessionCollection, id domain.SessionID) domain.SessionCollection {
	return collection.Delete(id)
}

func SelectDefaultAfterLoad(collection domain.SessionCollection) (domain.SessionID, bool) {
	return collection.DefaultSelection()
}

// LoadActive returns the remembered selection for identity, or "" when none
// was saved.
func (s *SessionStore) LoadActive(ctx context.Context, identity string) domain.SessionID {
	raw, err := s.kv.Get(ctx, activeKey(identity))
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Warn("load active session failed", "identity", identity, "err", err)
		}
		return ""
	}

	return domain.SessionID(strings.TrimSpace(raw))
}

func (s *SessionStore) SaveActive(ctx context.Context, identity string, id domain.SessionID) error {
	if err := s.kv.Set(ctx, activeKey(identity), string(id)); err != nil {
		return fmt.Errorf("save active session: %w", err)
	}
	return nil
}
