package rag

import (
	"context"
	"fmt"
)

// Retriever provides semantic retrieval over the indexed book summaries.
// Hits beyond the configured cosine-distance cutoff are discarded rather
// than returned as low-confidence matches.
type Retriever struct {
	embedder    Embedder
	store       VectorStore
	topK        int
	maxDistance float64
}

// NewRetriever creates a Retriever. maxDistance is the cosine-distance
// cutoff; topK bounds how many candidates are considered.
func NewRetriever(embedder Embedder, store VectorStore, topK int, maxDistance float64) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("vector store cannot be nil")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}
	if maxDistance <= 0 || maxDistance > 2 {
		return nil, fmt.Errorf("maxDistance must be in (0, 2], got %f", maxDistance)
	}

	return &Retriever{
		embedder:    embedder,
		store:       store,
		topK:        topK,
		maxDistance: maxDistance,
	}, nil
}

// Retrieve embeds the query and returns the top-K hits that pass the
// distance gate, best first. An empty result is not an error; it signals
// that nothing in the library is a confident match.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]Hit, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	// Refuse to search an index built in a different embedding space.
	meta, err := r.store.Meta(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read index metadata: %w", err)
	}
	if meta.EmbedModel != "" && meta.EmbedModel != r.embedder.Model() {
		return nil, fmt.Errorf("%w: index=%s, embedder=%s", ErrModelMismatch, meta.EmbedModel, r.embedder.Model())
	}

	records, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no embedding generated for query")
	}

	hits, err := r.store.Search(ctx, records[0].Embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	gated := make([]Hit, 0, len(hits))
	for _, h := range hits {
		if float64(h.Distance) <= r.maxDistance {
			gated = append(gated, h)
		}
	}
	return gated, nil
}
