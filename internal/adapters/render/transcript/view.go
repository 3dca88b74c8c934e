package transcript

import (
	"fmt"
	"strings"
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultStyle = "dark"
	DefaultWidth = 80

	snippetMaxRunes = 120
)

type RenderOptions struct {
	// Style is a glamour standard style name such as "dark", "light" or
	// "notty".
	Style string
	Width int
	Now   time.Time
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	return o
}

// TranscriptView renders the messages of session followed by the sources of
// the last reply. errText, when set, is shown as a failure banner.
func TranscriptView(session domain.ChatSession, sources []domain.SourceRef, errText string, opts RenderOptions) string {
	return renderTranscript(session, sources, errText, opts.withDefaults(), newStyles())
}

func renderTranscript(session domain.ChatSession, sources []domain.SourceRef, errText string, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(session.Title),
		s.header.Render(fmt.Sprintf("session: %s  messages: %d", session.ID, len(session.Messages))),
	}

	if len(session.Messages) == 0 {
		lines = append(lines, s.empty.Render("No messages yet."))
	}

	markdown := newMarkdownRenderer(opts)
	for _, msg := range session.Messages {
		lines = append(lines, s.section.Render(renderMessage(msg, markdown, s)))
	}

	if len(sources) > 0 {
		lines = append(lines, s.section.Render(renderSources(sources, s)))
	}

	if errText != "" {
		lines = append(lines, s.section.Render(s.warning.Render(errText)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderMessage(msg domain.ChatMessage, markdown func(string) string, s styles) string {
	if msg.Role == domain.RoleAssistant {
		return lipgloss.JoinVertical(lipgloss.Left, s.assistant.Render("Assistant"), markdown(msg.Content))
	}

	return lipgloss.JoinVertical(lipgloss.Left, s.user.Render("You"), s.body.Render(msg.Content))
}

// ReplyView renders one chat result: the reply as markdown and its sources.
func ReplyView(result domain.ChatTurnResult, opts RenderOptions) string {
	opts = opts.withDefaults()
	s := newStyles()

	lines := []string{newMarkdownRenderer(opts)(result.Reply)}
	if len(result.Sources) > 0 {
		lines = append(lines, s.section.Render(renderSources(result.Sources, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSources(sources []domain.SourceRef, s styles) string {
	lines := []string{s.header.Render(fmt.Sprintf("sources: %d", len(sources)))}
	for _, src := range sources {
		lines = append(lines, sourceLine(src, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sourceLine(src domain.SourceRef, s styles) string {
	label := string(src.Scope)
	if src.ID != 0 {
		label = fmt.Sprintf("%s#%d", src.Scope, src.ID)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.scope.Render(fmt.Sprintf("[%s]", label)),
		" ",
		s.score.Render(fmt.Sprintf("%.2f", src.Score)),
		" ",
		s.snippet.Render(truncate(oneLine(src.Snippet), snippetMaxRunes)),
	)
}

// SessionsView lists sessions with the active one marked.
func SessionsView(sessions domain.SessionCollection, active domain.SessionID, opts RenderOptions) string {
	opts = opts.withDefaults()
	s := newStyles()

	lines := []string{
		s.title.Render("Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}
	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No sessions yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, session := range sessions {
		marker := "  "
		title := s.body.Render(session.Title)
		if session.ID == active {
			marker = "* "
			title = s.active.Render(session.Title)
		}

		meta := fmt.Sprintf("%s  %d messages  %s", session.ID, len(session.Messages), formatRelative(session.UpdatedAt, opts.Now))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, marker, title, "  ", s.detail.Render(meta)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// MemoriesView renders a page of stored memory records.
func MemoriesView(page domain.MemoryPage, opts RenderOptions) string {
	opts = opts.withDefaults()
	s := newStyles()

	lines := []string{
		s.title.Render("Memories"),
		s.header.Render(fmt.Sprintf("page: %d  page size: %d  total: %d", page.Page, page.PageSize, page.Total)),
	}
	if len(page.Items) == 0 {
		lines = append(lines, s.empty.Render("No memories found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range page.Items {
		head := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.scope.Render(fmt.Sprintf("[%s#%d]", record.Scope, record.ID)),
			" ",
			s.detail.Render(formatRelative(record.CreatedAt, opts.Now)),
		)
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, head, s.body.Render(record.Text))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func newMarkdownRenderer(opts RenderOptions) func(string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(opts.Style),
		glamour.WithWordWrap(opts.Width),
	)
	if err != nil {
		return func(text string) string { return text }
	}

	return func(text string) string {
		out, err := renderer.Render(text)
		if err != nil {
			return text
		}
		return strings.Trim(out, "\n")
	}
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}

func formatRelative(at, now time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	if now.IsZero() {
		return at.Local().Format("2006-01-02 15:04")
	}

	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
