package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/bookworm-labs/librarian/internal/config"
	"github.com/bookworm-labs/librarian/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser chat interface",
	Long: `Start the web chat interface.

The page shows the conversation transcript and a message box. Each message
runs the same retrieval and tool pipeline as the terminal chat. A JSON API
is available at POST /api/chat for programmatic use.

Required environment variables:
  OPENAI_API_KEY - OpenAI API key for embeddings and chat

Examples:
  librarian serve
  librarian serve --addr :3000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from HTTP_ADDR, falls back to :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	orch, closeStore, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := server.New(orch)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	log.Printf("[Server] Listening on %s (%s)", addr, cfg.Summary())
	return srv.ListenAndServe(addr)
}
