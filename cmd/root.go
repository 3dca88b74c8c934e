package cmd

import (
	"strings"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/application"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jetlink",
		Short:         "Jetlink: a memory-augmented chat client",
		Long:          "jetlink keeps chat sessions on disk, talks to a retrieval-augmented chat backend, and stores completed turns in local and global long-term memory.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	var userID string
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "user identity (overrides user.id)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		app.logger.SetOutput(cmd.ErrOrStderr())
		if trimmed := strings.TrimSpace(userID); trimmed != "" {
			app.identity = trimmed
		}
		return nil
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		return app.shutdown(cmd.Context())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSessionCmd(app),
		newChatCmd(app),
		newMemoryCmd(app),
	)

	return rootCmd
}

// chatState loads the current identity's sessions into the orchestrator.
func (a *app) chatState(cmd *cobra.Command) application.State {
	return a.orchestrator.SwitchIdentity(cmd.Context(), a.identity)
}
