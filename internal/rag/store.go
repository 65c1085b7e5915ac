package rag

import "context"

// Entry is a persisted (title, embedding, summary) triple.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Embedding []float32 `json:"embedding"`
}

// Hit represents a retrieved entry with similarity information.
// Score is cosine similarity; Distance is 1 - Score, which is what the
// retrieval threshold is expressed in.
type Hit struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Summary  string  `json:"summary"`
	Score    float32 `json:"score"`
	Distance float32 `json:"distance"`
}

// IndexMeta describes how an index was built. Retrieval checks the embed
// model against its own before trusting similarity scores.
type IndexMeta struct {
	EmbedModel string `json:"embed_model"`
	Dimension  int    `json:"dimension"`
}

// VectorStore defines the interface for vector storage and similarity search
type VectorStore interface {
	// Replace atomically replaces all stored entries and index metadata.
	// Full rebuild is the only write path.
	Replace(ctx context.Context, entries []Entry, meta IndexMeta) error

	// Search performs top-K cosine similarity search
	Search(ctx context.Context, queryVector []float32, topK int) ([]Hit, error)

	// Meta returns the metadata recorded at build time
	Meta(ctx context.Context) (IndexMeta, error)

	// Count returns the number of stored entries
	Count(ctx context.Context) (int, error)

	// Titles returns all stored titles in insertion order
	Titles(ctx context.Context) ([]string, error)

	// Close releases resources and closes connections
	Close() error
}
