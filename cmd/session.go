package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/render/transcript"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage chat sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionNewCmd(app),
		newSessionShowCmd(app),
		newSessionSelectCmd(app),
		newSessionRenameCmd(app),
		newSessionDeleteCmd(app),
	)

	return cmd
}

type sessionOutput struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Messages  []messageOutput `json:"messages,omitempty"`
}

type messageOutput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func toSessionOutput(session domain.ChatSession, active domain.SessionID, withMessages bool) sessionOutput {
	out := sessionOutput{
		ID:        string(session.ID),
		Title:     session.Title,
		Active:    session.ID == active,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
	if withMessages {
		out.Messages = make([]messageOutput, 0, len(session.Messages))
		for _, msg := range session.Messages {
			out.Messages = append(out.Messages, messageOutput{Role: string(msg.Role), Content: msg.Content})
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSessionListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := app.chatState(cmd)

			if asJSON {
				out := make([]sessionOutput, 0, len(state.Sessions))
				for _, session := range state.Sessions {
					out = append(out, toSessionOutput(session, state.ActiveID, false))
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			rendered, err := transcript.Render(func() string {
				opts := app.render
				opts.Now = app.now()
				return transcript.SessionsView(state.Sessions, state.ActiveID, opts)
			})
			if err != nil {
				return fmt.Errorf("render sessions: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")
	return cmd
}

func newSessionNewCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a session and make it active",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.chatState(cmd)
			session := app.orchestrator.NewSession(cmd.Context())

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created session %s\n", session.ID)
			return nil
		},
	}
}

func newSessionShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show the transcript of a session (default: active)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := app.chatState(cmd)

			id := state.ActiveID
			if len(args) == 1 {
				id = domain.SessionID(strings.TrimSpace(args[0]))
			}
			if id == "" {
				return errors.New("show session: no active session")
			}

			session, ok := state.Sessions.Find(id)
			if !ok {
				return fmt.Errorf("show session: %w: %s", domain.ErrSessionNotFound, id)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), toSessionOutput(session, state.ActiveID, true))
			}

			rendered, err := transcript.Render(func() string {
				return transcript.TranscriptView(session, nil, "", app.render)
			})
			if err != nil {
				return fmt.Errorf("render session: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")
	return cmd
}

func newSessionSelectCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Make a session active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.chatState(cmd)
			id := domain.SessionID(strings.TrimSpace(args[0]))
			if err := app.orchestrator.SelectSession(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Selected session %s\n", id)
			return nil
		},
	}
}

func newSessionRenameCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title...>",
		Short: "Rename a session",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.chatState(cmd)
			id := domain.SessionID(strings.TrimSpace(args[0]))
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			if title == "" {
				return errors.New("rename session: title is empty")
			}

			if err := app.orchestrator.RenameSession(cmd.Context(), id, title); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed session %s to %q\n", id, title)
			return nil
		},
	}
}

func newSessionDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.chatState(cmd)
			id := domain.SessionID(strings.TrimSpace(args[0]))
			if err := app.orchestrator.DeleteSession(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", id)
			if active := app.orchestrator.State().ActiveID; active != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Active session: %s\n", active)
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Active session: none")
			}
			return nil
		},
	}
}
