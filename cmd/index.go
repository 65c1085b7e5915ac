package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bookworm-labs/librarian/internal/config"
	"github.com/bookworm-labs/librarian/internal/library"
	"github.com/bookworm-labs/librarian/internal/rag"
)

var (
	datasetFile string
	batchSize   int
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the vector index from book summaries",
	Long: `Embed every book summary and write the vector index to local SQLite.

By default the curated dataset shipped with the binary is indexed. Pass
--dataset to index your own file instead (YAML, or plain text with
"## Title:" headers).

The index is rebuilt from scratch on every run. An embedding failure aborts
the build and leaves the previous index untouched.

Required environment variables:
  OPENAI_API_KEY - OpenAI API key for embeddings

Examples:
  librarian index
  librarian index --dataset my_books.yaml
  librarian index --batch-size 8`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVar(&datasetFile, "dataset", "", "Path to a custom dataset file (default: built-in library)")
	indexCmd.Flags().IntVar(&batchSize, "batch-size", 16, "Number of summaries to embed per API call")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var lib *library.Library
	if datasetFile != "" {
		lib, err = library.LoadFile(datasetFile)
	} else {
		lib, err = library.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	embedder, err := rag.NewOpenAIEmbedder(cfg.APIKey, cfg.EmbedModel)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := rag.NewSQLiteStore(cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("failed to open index at %s: %w", cfg.IndexPath, err)
	}
	defer store.Close()

	opts := rag.IndexOptions{BatchSize: batchSize}
	if err := rag.BuildIndex(ctx, lib, embedder, store, opts); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Indexed %d books into %s", lib.Len(), cfg.IndexPath)))
	return nil
}
