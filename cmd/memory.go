package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/adapters/render/transcript"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/application"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/spf13/cobra"
)

func newMemoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Manage long-term memory entries",
	}

	cmd.AddCommand(
		newMemoryAddCmd(app),
		newMemorySearchCmd(app),
		newMemoryListCmd(app),
		newMemoryDeleteCmd(app),
		newMemoryClearCmd(app),
	)

	return cmd
}

type memoryRecordOutput struct {
	ID        int64          `json:"id"`
	Scope     string         `json:"scope"`
	UserID    string         `json:"user_id"`
	SessionID string         `json:"session_id,omitempty"`
	Text      string         `json:"text"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type memoryPageOutput struct {
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Total    int                  `json:"total"`
	Items    []memoryRecordOutput `json:"items"`
}

func toMemoryRecordOutput(record domain.MemoryRecord) memoryRecordOutput {
	return memoryRecordOutput{
		ID:        record.ID,
		Scope:     string(record.Scope),
		UserID:    record.UserID,
		SessionID: string(record.SessionID),
		Text:      record.Text,
		Meta:      record.Meta,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func toMemoryPageOutput(page domain.MemoryPage) memoryPageOutput {
	items := make([]memoryRecordOutput, 0, len(page.Items))
	for _, record := range page.Items {
		items = append(items, toMemoryRecordOutput(record))
	}

	return memoryPageOutput{Page: page.Page, PageSize: page.PageSize, Total: page.Total, Items: items}
}

func writeMemoryPage(cmd *cobra.Command, app *app, page domain.MemoryPage, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), toMemoryPageOutput(page))
	}

	rendered, err := transcript.Render(func() string {
		opts := app.render
		opts.Now = app.now()
		return transcript.MemoriesView(page, opts)
	})
	if err != nil {
		return fmt.Errorf("render memories: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func parsePersistentScope(raw string) (domain.Scope, error) {
	scope, err := domain.ParseScope(raw)
	if err != nil {
		return "", err
	}
	if !scope.Persistent() {
		return "", fmt.Errorf("%w: %q (want local or global)", domain.ErrInvalidScope, raw)
	}
	return scope, nil
}

func newMemoryAddCmd(app *app) *cobra.Command {
	var scopeRaw string
	var text string
	var metaRaw string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a memory entry in the local or global scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := parsePersistentScope(scopeRaw)
			if err != nil {
				return err
			}

			meta, err := application.ParseMeta(metaRaw)
			if err != nil {
				return err
			}

			state := app.chatState(cmd)
			record, err := app.memory.Add(cmd.Context(), domain.MemoryWriteRequest{
				Scope:     scope,
				UserID:    state.Identity,
				SessionID: state.ActiveID,
				Text:      text,
				Meta:      meta,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), toMemoryRecordOutput(record))
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored %s memory %d\n", record.Scope, record.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeRaw, "scope", "", "memory scope: local or global")
	cmd.Flags().StringVar(&text, "text", "", "memory text")
	cmd.Flags().StringVar(&metaRaw, "meta", "", "optional JSON object stored with the entry")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")
	_ = cmd.MarkFlagRequired("scope")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newMemorySearchCmd(app *app) *cobra.Command {
	var query string
	var scopeRaw string
	var topK int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search stored memories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := domain.ParseScope(scopeRaw)
			if err != nil {
				return err
			}

			state := app.chatState(cmd)
			page, err := app.memory.Search(cmd.Context(), domain.SearchQuery{
				UserID:    state.Identity,
				Query:     query,
				Scope:     scope,
				SessionID: state.ActiveID,
				TopK:      topK,
			})
			if err != nil {
				return err
			}

			return writeMemoryPage(cmd, app, page, asJSON)
		},
	}

	cmd.Flags().StringVar(&query, "q", "", "search query")
	cmd.Flags().StringVar(&scopeRaw, "scope", "", "restrict to local or global (default: both)")
	cmd.Flags().IntVar(&topK, "topk", application.DefaultSearchTopK, "maximum number of results")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")
	_ = cmd.MarkFlagRequired("q")

	return cmd
}

func newMemoryListCmd(app *app) *cobra.Command {
	var scopeRaw string
	var query string
	var page int
	var pageSize int
	var sessionOnly bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored memories of one scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := parsePersistentScope(scopeRaw)
			if err != nil {
				return err
			}

			state := app.chatState(cmd)
			listQuery := domain.ListQuery{
				Scope:    scope,
				UserID:   state.Identity,
				Query:    strings.TrimSpace(query),
				Page:     page,
				PageSize: pageSize,
			}
			if sessionOnly {
				listQuery.SessionID = state.ActiveID
			}

			result, err := app.memory.List(cmd.Context(), listQuery)
			if err != nil {
				return err
			}

			return writeMemoryPage(cmd, app, result, asJSON)
		},
	}

	cmd.Flags().StringVar(&scopeRaw, "scope", "", "memory scope: local or global")
	cmd.Flags().StringVar(&query, "q", "", "optional text filter")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", application.DefaultPageSize, "entries per page")
	cmd.Flags().BoolVar(&sessionOnly, "session", false, "only entries of the active session")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}

func newMemoryDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <scope> <id>",
		Short: "Delete one memory entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := parsePersistentScope(args[0])
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(strings.TrimSpace(args[1]), 10, 64)
			if err != nil {
				return fmt.Errorf("parse memory id %q: %w", args[1], err)
			}

			deleted, err := app.memory.Delete(cmd.Context(), scope, id)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d %s memory entries\n", deleted, scope)
			return nil
		},
	}
}

func newMemoryClearCmd(app *app) *cobra.Command {
	var scopeRaw string
	var sessionOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all memory entries of a scope",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := parsePersistentScope(scopeRaw)
			if err != nil {
				return err
			}

			state := app.chatState(cmd)
			query := domain.ClearQuery{Scope: scope, UserID: state.Identity}
			if sessionOnly {
				query.SessionID = state.ActiveID
			}

			deleted, err := app.memory.Clear(cmd.Context(), query)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d %s memory entries\n", deleted, scope)
			return nil
		},
	}

	cmd.Flags().StringVar(&scopeRaw, "scope", "", "memory scope: local or global")
	cmd.Flags().BoolVar(&sessionOnly, "session", false, "only entries of the active session")
	_ = cmd.MarkFlagRequired("scope")

	return cmd
}
