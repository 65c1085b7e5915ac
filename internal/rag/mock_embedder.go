package rag

import (
	"context"
	"strings"
)

// MockEmbedder is a deterministic Embedder implementation for testing.
// It maps known texts to fixed vectors and falls back to a cheap
// bag-of-letters vector so unrelated texts land far apart.
type MockEmbedder struct {
	// Vectors maps exact input text to a fixed embedding.
	Vectors map[string][]float32

	// Error, if set, is returned by Embed instead of a result.
	Error error

	// ModelName reported by Model. Defaults to "mock-embedder".
	ModelName string

	// LastTexts stores the most recent inputs passed to Embed.
	LastTexts []string
}

// NewMockEmbedder creates a mock embedder with fixed vectors per text.
func NewMockEmbedder(vectors map[string][]float32) *MockEmbedder {
	return &MockEmbedder{Vectors: vectors}
}

// Model returns the configured model name.
func (m *MockEmbedder) Model() string {
	if m.ModelName != "" {
		return m.ModelName
	}
	return "mock-embedder"
}

// Embed returns fixed or derived vectors for the given texts.
func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([]EmbeddingRecord, error) {
	m.LastTexts = texts

	if m.Error != nil {
		return nil, m.Error
	}
	if len(texts) == 0 {
		return nil, ErrEmptyTexts
	}

	records := make([]EmbeddingRecord, len(texts))
	for i, text := range texts {
		vec, ok := m.Vectors[text]
		if !ok {
			vec = letterVector(text)
		}
		records[i] = EmbeddingRecord{
			Text:      text,
			Embedding: vec,
			Model:     m.Model(),
		}
	}
	return records, nil
}

// letterVector builds a 26-dimensional letter-frequency vector. Texts that
// share vocabulary score high on cosine similarity, which is enough shape
// for retrieval tests.
func letterVector(text string) []float32 {
	vec := make([]float32, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
	}
	return vec
}
