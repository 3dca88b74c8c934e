package application

import (
	"context"
	"sync"
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/stretchr/testify/mock"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func mockAnyContext() interface{} {
	return mock.Anything
}

// failingKV fails every call with err.
type failingKV struct {
	err error
}

func (f failingKV) Get(context.Context, string) (string, error) {
	return "", f.err
}

func (f failingKV) Set(context.Context, string, string) error {
	return f.err
}

// recordingWriteback captures FanOut calls instead of dispatching them.
type recordingWriteback struct {
	mu    sync.Mutex
	calls []writebackCall
}

type writebackCall struct {
	identity string
	session  domain.ChatSession
	userText string
	reply    string
}

func (r *recordingWriteback) FanOut(_ context.Context, identity string, session domain.ChatSession, userText, reply string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, writebackCall{identity: identity, session: session, userText: userText, reply: reply})
	return len(Requests(identity, session, userText, reply))
}

func (r *recordingWriteback) Calls() []writebackCall {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]writebackCall, len(r.calls))
	copy(out, r.calls)
	return out
}
