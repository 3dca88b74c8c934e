package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sendDoneMsg struct {
	err error
}

type sendSpinnerModel struct {
	spinner spinner.Model
	label   string
	send    tea.Cmd
	err     error
	done    bool
}

func newSendSpinnerModel(label string, send tea.Cmd) sendSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return sendSpinnerModel{
		spinner: s,
		label:   label,
		send:    send,
	}
}

func (m sendSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.send)
}

func (m sendSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sendDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m sendSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runSendSpinner shows a spinner on output while send runs. It returns
// send's error.
func runSendSpinner(ctx context.Context, output io.Writer, send func(context.Context) error) error {
	sendCmd := func() tea.Msg {
		return sendDoneMsg{err: send(ctx)}
	}

	p := tea.NewProgram(
		newSendSpinnerModel("Waiting for reply...", sendCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(sendSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
