package chat

import (
	"context"
	"strings"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/render/transcript"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/application"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Orchestrator is the part of the chat core the screen drives.
type Orchestrator interface {
	State() application.State
	SendMessage(ctx context.Context, text string) (domain.ChatTurnResult, error)
	NewSession(ctx context.Context) domain.ChatSession
}

type sendDoneMsg struct {
	err error
}

const footerHeight = 2

type Model struct {
	ctx          context.Context
	orchestrator Orchestrator
	render       transcript.RenderOptions

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	status   lipgloss.Style

	sending bool
	ready   bool
}

func New(ctx context.Context, orchestrator Orchestrator, render transcript.RenderOptions) Model {
	input := textinput.New()
	input.Placeholder = "Mesajınızı yazın..."
	input.Prompt = "> "
	input.CharLimit = 4000
	input.Focus()

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model{
		ctx:          ctx,
		orchestrator: orchestrator,
		render:       render,
		input:        input,
		viewport:     viewport.New(transcript.DefaultWidth, 20),
		spinner:      s,
		status:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-footerHeight, 1)
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 1)
		m.render.Width = msg.Width
		m.ready = true
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	case sendDoneMsg:
		m.sending = false
		m.input.Focus()
		m.refresh()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyCtrlN:
		if m.sending {
			return m, nil
		}
		m.orchestrator.NewSession(m.ctx)
		m.refresh()
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyEnter:
		if m.sending {
			return m, nil
		}
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return m, nil
		}

		m.sending = true
		m.input.Reset()
		m.input.Blur()
		return m, tea.Batch(m.spinner.Tick, m.send(text))
	}

	if m.sending {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) send(text string) tea.Cmd {
	ctx := m.ctx
	orchestrator := m.orchestrator
	return func() tea.Msg {
		_, err := orchestrator.SendMessage(ctx, text)
		return sendDoneMsg{err: err}
	}
}

func (m *Model) refresh() {
	state := m.orchestrator.State()
	session, ok := state.Active()
	if !ok {
		m.viewport.SetContent(m.status.Render("No session selected. Type a message to start one."))
		return
	}

	m.viewport.SetContent(transcript.TranscriptView(session, state.Sources, state.Error, m.render))
	m.viewport.GotoBottom()
}

// Sending reports whether a message is in flight and input is disabled.
func (m Model) Sending() bool {
	return m.sending
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	footer := m.input.View()
	if m.sending {
		footer = m.spinner.View() + " " + m.status.Render("Yanıt bekleniyor...")
	}

	help := m.status.Render("enter: send  ctrl+n: new session  esc: quit")
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer, help)
}

// Run starts the interactive chat screen and blocks until the user quits.
func Run(ctx context.Context, orchestrator Orchestrator, render transcript.RenderOptions) error {
	p := tea.NewProgram(
		New(ctx, orchestrator, render),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
