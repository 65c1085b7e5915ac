package rag

import (
	"context"
	"fmt"
	"log"

	"github.com/bookworm-labs/librarian/internal/library"
)

// IndexOptions provides configuration for index builds
type IndexOptions struct {
	// BatchSize determines how many summaries to embed per API call
	BatchSize int
}

// DefaultIndexOptions returns sensible defaults for indexing
func DefaultIndexOptions() IndexOptions {
	return IndexOptions{
		BatchSize: 16,
	}
}

// BuildIndex embeds every book summary and replaces the vector store
// contents with the result. There is no incremental path: any rebuild
// starts from the full dataset, and any embedding failure aborts the build
// with the store untouched.
func BuildIndex(
	ctx context.Context,
	lib *library.Library,
	embedder Embedder,
	store VectorStore,
	opts IndexOptions,
) error {
	if lib == nil || lib.Len() == 0 {
		return fmt.Errorf("library cannot be empty")
	}
	if embedder == nil {
		return fmt.Errorf("embedder cannot be nil")
	}
	if store == nil {
		return fmt.Errorf("vector store cannot be nil")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultIndexOptions().BatchSize
	}

	books := lib.Books()
	entries := make([]Entry, 0, len(books))

	for batchStart := 0; batchStart < len(books); batchStart += opts.BatchSize {
		batchEnd := batchStart + opts.BatchSize
		if batchEnd > len(books) {
			batchEnd = len(books)
		}
		batch := books[batchStart:batchEnd]

		texts := make([]string, len(batch))
		for i, b := range batch {
			texts[i] = b.Summary
		}

		records, err := embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch starting at %d: %w", batchStart, err)
		}

		for i, b := range batch {
			entries = append(entries, Entry{
				ID:        fmt.Sprintf("book-%03d", batchStart+i),
				Title:     b.Title,
				Summary:   b.Summary,
				Embedding: records[i].Embedding,
			})
		}
	}

	meta := IndexMeta{EmbedModel: embedder.Model()}
	if len(entries) > 0 {
		meta.Dimension = len(entries[0].Embedding)
	}

	if err := store.Replace(ctx, entries, meta); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	log.Printf("[Indexer] Indexed %d books with model %s", len(entries), meta.EmbedModel)
	return nil
}
