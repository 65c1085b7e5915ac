package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "librarian",
	Short: "Smart Librarian - AI book recommendations over a local library index",
	Long: `Smart Librarian recommends books from a curated library using
retrieval-augmented generation.

Book summaries are embedded into a local SQLite vector index. At chat time
the user's interests are matched against the index, the language model picks
one title from the candidates, and a tool call fetches the full summary so
the recommendation always quotes real library data.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
