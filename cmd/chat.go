package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bookworm-labs/librarian/internal/config"
	"github.com/bookworm-labs/librarian/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the librarian in the terminal",
	Long: `Start an interactive terminal chat session.

Each message is matched against the vector index, candidate books are handed
to the language model, and the recommendation comes back with the full
summary fetched through a tool call. Conversation history lives only for the
duration of the session.

Required environment variables:
  OPENAI_API_KEY - OpenAI API key for embeddings and chat

Run 'librarian index' first to build the vector index.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	orch, closeStore, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	p := tea.NewProgram(tui.New(orch), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat session failed: %w", err)
	}
	return nil
}
