package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu         sync.Mutex
	chats      []map[string]any
	writes     []map[string]any
	searches   []map[string]any
	lastAPIKey string
	chatStatus int
	reply      string
	chatDelay  time.Duration
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()

	backend := &fakeBackend{chatStatus: http.StatusOK, reply: "Paris is the capital of France."}
	server := httptest.NewServer(http.HandlerFunc(backend.serve))
	t.Cleanup(server.Close)

	t.Setenv("JETLINK_BACKEND_URL", server.URL)
	t.Setenv("JETLINK_RENDER_STYLE", "notty")
	return backend, server
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.lastAPIKey = r.Header.Get("X-API-Key")
	b.mu.Unlock()

	var body map[string]any
	if r.Body != nil && r.ContentLength != 0 {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/chat":
		b.mu.Lock()
		b.chats = append(b.chats, body)
		status, reply, delay := b.chatStatus, b.reply, b.chatDelay
		b.mu.Unlock()

		time.Sleep(delay)
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = fmt.Fprint(w, `{"detail":"llm unavailable"}`)
			return
		}
		_, _ = fmt.Fprintf(w, `{"reply":%q,"used_stm_turns":0,"sources":[{"scope":"global","id":3,"session_id":"","score":0.91,"snippet":"Paris facts","meta":{}}]}`, reply)
	case r.Method == http.MethodPost && r.URL.Path == "/api/memory/search":
		b.mu.Lock()
		b.searches = append(b.searches, body)
		b.mu.Unlock()
		_, _ = fmt.Fprint(w, `{"page":1,"page_size":10,"total":1,"items":[{"id":3,"scope":"global","user_id":"test_user","session_id":"","text":"User: capital?\nAssistant: Paris","meta":{},"emb_version":"v1","model":"m","dim":3,"created_at":1700000000,"updated_at":1700000000}]}`)
	case r.Method == http.MethodPost && (r.URL.Path == "/api/memory/local" || r.URL.Path == "/api/memory/global"):
		b.mu.Lock()
		b.writes = append(b.writes, body)
		id := len(b.writes)
		b.mu.Unlock()
		_, _ = fmt.Fprintf(w, `{"id":%d,"scope":%q,"user_id":%q,"session_id":"","text":%q,"meta":{},"emb_version":"v1","model":"m","dim":3,"created_at":1700000000,"updated_at":1700000000}`,
			id, body["scope"], body["user_id"], body["text"])
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/memory/"):
		_, _ = fmt.Fprint(w, `{"page":1,"page_size":20,"total":0,"items":[]}`)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/memory/"):
		_, _ = fmt.Fprint(w, `{"deleted":1}`)
	case r.Method == http.MethodPost && r.URL.Path == "/api/memory/clear":
		_, _ = fmt.Fprint(w, `{"deleted":4}`)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) Writes() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.writes...)
}

func (b *fakeBackend) Chats() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.chats...)
}

type sessionJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Active   bool   `json:"active"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func listSessions(t *testing.T, home string, args ...string) []sessionJSON {
	t.Helper()

	stdout, _, err := executeCLI(t, home, append([]string{"session", "list", "--json"}, args...)...)
	require.NoError(t, err)

	var sessions []sessionJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &sessions))
	return sessions
}

func showSession(t *testing.T, home string) sessionJSON {
	t.Helper()

	stdout, _, err := executeCLI(t, home, "session", "show", "--json")
	require.NoError(t, err)

	var session sessionJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &session))
	return session
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestSessionNewAndList(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "session", "new")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created session ")

	stdout, _, err = executeCLI(t, home, "session", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 1")
	assert.Contains(t, stdout, "* Yeni sohbet")

	sessions := listSessions(t, home)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Active)
	assert.Equal(t, "Yeni sohbet", sessions[0].Title)

	_, err = os.Stat(filepath.Join(home, ".jetlink", "sessions.toml"))
	require.NoError(t, err)
}

func TestChatSendPersistsTurnAndWritesBack(t *testing.T) {
	backend, _ := newFakeBackend(t)
	t.Setenv("JETLINK_API_KEY", "secret-key")
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "chat", "send", "--json", "what is the capital of France?")
	require.NoError(t, err)

	var out chatSendOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "Paris is the capital of France.", out.Reply)
	require.Len(t, out.Sources, 1)
	assert.Equal(t, "global", out.Sources[0].Scope)
	assert.NotEmpty(t, out.SessionID)

	chats := backend.Chats()
	require.Len(t, chats, 1)
	assert.Equal(t, "test_user", chats[0]["user_id"])
	assert.Equal(t, out.SessionID, chats[0]["session_id"])
	assert.Equal(t, float64(5), chats[0]["topk_local"])
	assert.Equal(t, float64(5), chats[0]["topk_global"])
	assert.Equal(t, float64(8), chats[0]["stm_max_turns"])
	assert.Equal(t, true, chats[0]["return_sources"])

	writes := backend.Writes()
	require.Len(t, writes, 2)
	scopes := []any{writes[0]["scope"], writes[1]["scope"]}
	assert.ElementsMatch(t, []any{"local", "global"}, scopes)
	for _, write := range writes {
		assert.Equal(t, out.SessionID, write["session_id"])
		assert.Equal(t, "User: what is the capital of France?\nAssistant: Paris is the capital of France.", write["text"])
		meta, ok := write["meta"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "chat", meta["source"])
		assert.Equal(t, "ui-auto", meta["created_from"])
		assert.Equal(t, "what is the capital of France?", meta["session_title"])
	}

	backend.mu.Lock()
	assert.Equal(t, "secret-key", backend.lastAPIKey)
	backend.mu.Unlock()

	session := showSession(t, home)
	assert.Equal(t, out.SessionID, session.ID)
	assert.Equal(t, "what is the capital of France?", session.Title)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "user", session.Messages[0].Role)
	assert.Equal(t, "assistant", session.Messages[1].Role)
}

func TestChatSendShortTurnSkipsWriteback(t *testing.T) {
	backend, _ := newFakeBackend(t)
	backend.reply = "hi"
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "chat", "send", "--json", "hi")
	require.NoError(t, err)

	assert.Len(t, backend.Chats(), 1)
	assert.Empty(t, backend.Writes())
}

func TestChatSendFailureKeepsUserMessage(t *testing.T) {
	backend, _ := newFakeBackend(t)
	backend.chatStatus = http.StatusBadGateway
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "chat", "send", "--json", "what is the capital of France?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mesaj gönderilirken bir hata oluştu.")
	assert.Contains(t, err.Error(), "llm unavailable")

	session := showSession(t, home)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "user", session.Messages[0].Role)
	assert.Empty(t, backend.Writes())
}

func TestChatSendRejectsBlankMessage(t *testing.T) {
	backend, _ := newFakeBackend(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "chat", "send", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message is empty")

	assert.Empty(t, listSessions(t, home))
	assert.Empty(t, backend.Chats())
}

func TestChatSendShowsSpinnerAndRendersReply(t *testing.T) {
	backend, _ := newFakeBackend(t)
	backend.chatDelay = 200 * time.Millisecond
	home := t.TempDir()

	stdout, stderr, err := executeCLI(t, home, "chat", "send", "what", "is", "the", "capital?")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Waiting for reply")
	assert.Contains(t, stdout, "Paris is the capital of France.")
	assert.Contains(t, stdout, "[global#3]")

	assert.Equal(t, "what is the capital?", backend.Chats()[0]["message"])
}

func TestUserFlagIsolatesSessions(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "--user", "alice", "chat", "send", "--json", "a message from alice")
	require.NoError(t, err)

	assert.Len(t, listSessions(t, home, "--user", "alice"), 1)
	assert.Empty(t, listSessions(t, home, "--user", "bob"))
	assert.Empty(t, listSessions(t, home))
}

func TestSessionDeleteActiveFallsBack(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "session", "new")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "session", "new")
	require.NoError(t, err)

	sessions := listSessions(t, home)
	require.Len(t, sessions, 2)
	newest, older := sessions[0], sessions[1]
	require.True(t, newest.Active)

	stdout, _, err := executeCLI(t, home, "session", "delete", newest.ID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Active session: "+older.ID)

	stdout, _, err = executeCLI(t, home, "session", "delete", older.ID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Active session: none")

	_, _, err = executeCLI(t, home, "session", "delete", older.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestSessionRenameAndSelect(t *testing.T) {
	newFakeBackend(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "session", "new")
	require.NoError(t, err)
	first := listSessions(t, home)[0]
	_, _, err = executeCLI(t, home, "session", "new")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "session", "rename", first.ID, "Trip", "plans")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, "session", "select", first.ID)
	require.NoError(t, err)

	session := showSession(t, home)
	assert.Equal(t, first.ID, session.ID)
	assert.Equal(t, "Trip plans", session.Title)
}

func TestSessionStoreDrivers(t *testing.T) {
	for _, driver := range []string{"sqlite", "file"} {
		t.Run(driver, func(t *testing.T) {
			newFakeBackend(t)
			t.Setenv("JETLINK_STORE_DRIVER", driver)
			home := t.TempDir()

			_, _, err := executeCLI(t, home, "chat", "send", "--json", "stored through "+driver)
			require.NoError(t, err)

			session := showSession(t, home)
			assert.Equal(t, "stored through "+driver, session.Title)
			assert.Len(t, session.Messages, 2)
		})
	}
}

func TestUnknownStoreDriver(t *testing.T) {
	t.Setenv("JETLINK_STORE_DRIVER", "redis")

	_, _, err := executeCLI(t, t.TempDir(), "session", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown store driver "redis"`)
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	backend, server := newFakeBackend(t)
	t.Setenv("JETLINK_BACKEND_URL", "")
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".jetlink"), 0o700))
	config := fmt.Sprintf("[user]\nid = \"from_config\"\n\n[backend]\nurl = %q\n\n[chat]\ntopk_local = 2\n", server.URL)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".jetlink", "config.toml"), []byte(config), 0o600))

	_, _, err := executeCLI(t, home, "chat", "send", "--json", "hi")
	require.NoError(t, err)

	chats := backend.Chats()
	require.Len(t, chats, 1)
	assert.Equal(t, "from_config", chats[0]["user_id"])
	assert.Equal(t, float64(2), chats[0]["topk_local"])
}

func TestMemoryCommands(t *testing.T) {
	backend, _ := newFakeBackend(t)
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "memory", "add", "--scope", "stm", "--text", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid memory scope")

	_, _, err = executeCLI(t, home, "memory", "add", "--scope", "global", "--text", "x", "--meta", "{oops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meta must be a JSON object")

	stdout, _, err := executeCLI(t, home, "memory", "add", "--scope", "global", "--text", "prefers window seats", "--meta", `{"tag":"travel"}`)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stored global memory 1")
	writes := backend.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, map[string]any{"tag": "travel"}, writes[0]["meta"])

	stdout, _, err = executeCLI(t, home, "memory", "search", "--q", "capital", "--scope", "global")
	require.NoError(t, err)
	assert.Contains(t, stdout, "total: 1")
	assert.Contains(t, stdout, "[global#3]")

	stdout, _, err = executeCLI(t, home, "memory", "list", "--scope", "local")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No memories found.")

	stdout, _, err = executeCLI(t, home, "memory", "delete", "global", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted 1 global memory entries")

	stdout, _, err = executeCLI(t, home, "memory", "clear", "--scope", "local")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cleared 4 local memory entries")

	_, _, err = executeCLI(t, home, "memory", "delete", "global", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse memory id")
}

func TestMemorySearchRequiresQuery(t *testing.T) {
	newFakeBackend(t)

	_, _, err := executeCLI(t, t.TempDir(), "memory", "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "q" not set`)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
