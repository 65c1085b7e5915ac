package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bookworm-labs/librarian/internal/config"
	"github.com/bookworm-labs/librarian/internal/rag"
)

var (
	inspectQuery string
	inspectTopK  int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show index contents and run test retrievals",
	Long: `Show what is stored in the vector index: entry count, embedding model,
dimension, and the indexed titles.

With --query the query text is embedded and matched against the index, and
the ranked candidates are printed with their cosine distances. A query needs
OPENAI_API_KEY; a plain inspect works offline.

Examples:
  librarian inspect
  librarian inspect --query "friendship and magic"
  librarian inspect --query "war stories" --topk 8`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectQuery, "query", "", "Embed this text and show the ranked matches")
	inspectCmd.Flags().IntVar(&inspectTopK, "topk", 4, "Number of matches to show for --query")
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	indexPath := os.Getenv("INDEX_PATH")
	if indexPath == "" {
		indexPath = "storage/library.db"
	}

	store, err := rag.NewSQLiteStore(indexPath)
	if err != nil {
		return fmt.Errorf("failed to open index at %s: %w", indexPath, err)
	}
	defer store.Close()

	var (
		headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)
		valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E9E9F4"))
		mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
		numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))
	)

	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}
	if count == 0 {
		fmt.Println(mutedStyle.Render("Index is empty. Run 'librarian index' first."))
		return nil
	}

	meta, err := store.Meta(ctx)
	if err != nil {
		return fmt.Errorf("failed to read index metadata: %w", err)
	}

	fmt.Println(headerStyle.Render("Index:") + " " + valueStyle.Render(indexPath))
	fmt.Println(headerStyle.Render("Entries:") + " " + numberStyle.Render(fmt.Sprintf("%d", count)))
	fmt.Println(headerStyle.Render("Embed model:") + " " + valueStyle.Render(meta.EmbedModel))
	fmt.Println(headerStyle.Render("Dimension:") + " " + numberStyle.Render(fmt.Sprintf("%d", meta.Dimension)))

	titles, err := store.Titles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list titles: %w", err)
	}
	fmt.Println()
	fmt.Println(headerStyle.Render("Titles:"))
	for _, title := range titles {
		fmt.Println("  " + valueStyle.Render(title))
	}

	if inspectQuery == "" {
		return nil
	}

	// Query mode embeds text, so it needs full settings including the key.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	embedder, err := rag.NewOpenAIEmbedder(cfg.APIKey, cfg.EmbedModel)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	retriever, err := rag.NewRetriever(embedder, store, inspectTopK, 2.0)
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}

	hits, err := retriever.Retrieve(ctx, inspectQuery)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Matches for:") + " " + mutedStyle.Render(inspectQuery))
	for i, h := range hits {
		gate := ""
		if float64(h.Distance) > cfg.MaxDistance {
			gate = mutedStyle.Render("  (beyond MAX_DISTANCE, would be dropped in chat)")
		}
		line := fmt.Sprintf("%d) %-40s distance=%.3f", i+1, h.Title, h.Distance)
		fmt.Println("  " + valueStyle.Render(line) + gate)
	}
	if len(hits) == 0 {
		fmt.Println(mutedStyle.Render(strings.Repeat(" ", 2) + "No matches."))
	}
	return nil
}
