package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/render/transcript"
	chattui "github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/tui/chat"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/application"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/spf13/cobra"
)

func newChatCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the interactive chat screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.chatState(cmd)
			return chattui.Run(cmd.Context(), app.orchestrator, app.render)
		},
	}

	cmd.AddCommand(newChatSendCmd(app))
	return cmd
}

type chatSendOutput struct {
	SessionID    string         `json:"session_id"`
	Reply        string         `json:"reply"`
	UsedSTMTurns int            `json:"used_stm_turns"`
	Sources      []sourceOutput `json:"sources"`
}

type sourceOutput struct {
	Scope     string         `json:"scope"`
	ID        int64          `json:"id,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Score     float64        `json:"score"`
	Snippet   string         `json:"snippet"`
	Meta      map[string]any `json:"meta,omitempty"`
}

func newChatSendCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "send <message...>",
		Short: "Send one message in the active session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.chatState(cmd)
			text := strings.Join(args, " ")

			var result domain.ChatTurnResult
			send := func(ctx context.Context) error {
				var err error
				result, err = app.orchestrator.SendMessage(ctx, text)
				return err
			}

			var err error
			if asJSON {
				err = send(cmd.Context())
			} else {
				err = runSendSpinner(cmd.Context(), cmd.ErrOrStderr(), send)
			}
			if err != nil {
				if errors.Is(err, domain.ErrEmptyMessage) {
					return fmt.Errorf("send message: %w", err)
				}
				if errors.Is(err, domain.ErrChatFailed) {
					return fmt.Errorf("%s: %w", application.ChatFailedMessage, err)
				}
				return err
			}

			state := app.orchestrator.State()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), toChatSendOutput(state.ActiveID, result))
			}

			rendered, err := transcript.Render(func() string {
				return transcript.ReplyView(result, app.render)
			})
			if err != nil {
				return fmt.Errorf("render reply: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")
	return cmd
}

func toChatSendOutput(sessionID domain.SessionID, result domain.ChatTurnResult) chatSendOutput {
	sources := make([]sourceOutput, 0, len(result.Sources))
	for _, src := range result.Sources {
		sources = append(sources, sourceOutput{
			Scope:     string(src.Scope),
			ID:        src.ID,
			SessionID: string(src.SessionID),
			Score:     src.Score,
			Snippet:   src.Snippet,
			Meta:      src.Meta,
		})
	}

	return chatSendOutput{
		SessionID:    string(sessionID),
		Reply:        result.Reply,
		UsedSTMTurns: result.UsedSTMTurns,
		Sources:      sources,
	}
}
