package rag

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testEntries() []Entry {
	return []Entry{
		{ID: "book-000", Title: "Alpha", Summary: "about alpha", Embedding: []float32{1, 0, 0}},
		{ID: "book-001", Title: "Beta", Summary: "about beta", Embedding: []float32{0, 1, 0}},
		{ID: "book-002", Title: "Gamma", Summary: "about gamma", Embedding: []float32{0.9, 0.1, 0}},
	}
}

func TestSQLiteStore_ReplaceAndSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	meta := IndexMeta{EmbedModel: "test-model", Dimension: 3}
	if err := store.Replace(ctx, testEntries(), meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hits, err := store.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Title != "Alpha" {
		t.Errorf("expected Alpha first, got %s", hits[0].Title)
	}
	if hits[1].Title != "Gamma" {
		t.Errorf("expected Gamma second, got %s", hits[1].Title)
	}
	if hits[0].Score < hits[1].Score {
		t.Error("hits are not sorted by score descending")
	}
	if hits[0].Score < 0.999 {
		t.Errorf("expected near-perfect score for Alpha, got %f", hits[0].Score)
	}
	if hits[0].Distance > 0.001 {
		t.Errorf("expected near-zero distance for Alpha, got %f", hits[0].Distance)
	}
}

func TestSQLiteStore_ReplaceOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Replace(ctx, testEntries(), IndexMeta{EmbedModel: "m1"}); err != nil {
		t.Fatalf("first replace: %v", err)
	}

	replacement := []Entry{
		{ID: "book-000", Title: "Delta", Summary: "about delta", Embedding: []float32{0, 0, 1}},
	}
	if err := store.Replace(ctx, replacement, IndexMeta{EmbedModel: "m2"}); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 entry after replace, got %d", n)
	}

	titles, err := store.Titles(ctx)
	if err != nil {
		t.Fatalf("titles: %v", err)
	}
	if len(titles) != 1 || titles[0] != "Delta" {
		t.Errorf("unexpected titles after replace: %v", titles)
	}

	meta, err := store.Meta(ctx)
	if err != nil {
		t.Fatalf("meta: %v", err)
	}
	if meta.EmbedModel != "m2" {
		t.Errorf("expected meta model m2, got %s", meta.EmbedModel)
	}
}

func TestSQLiteStore_Meta(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Replace(ctx, testEntries(), IndexMeta{EmbedModel: "test-model", Dimension: 3}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	meta, err := store.Meta(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.EmbedModel != "test-model" {
		t.Errorf("expected test-model, got %s", meta.EmbedModel)
	}
	if meta.Dimension != 3 {
		t.Errorf("expected dimension 3, got %d", meta.Dimension)
	}
}

func TestSQLiteStore_SearchEmptyIndex(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Search(context.Background(), []float32{1, 0, 0}, 3)
	if !errors.Is(err, ErrEmptyIndex) {
		t.Errorf("expected ErrEmptyIndex, got %v", err)
	}
}

func TestSQLiteStore_ReplaceValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Replace(ctx, nil, IndexMeta{}); !errors.Is(err, ErrEmptyEntries) {
		t.Errorf("expected ErrEmptyEntries, got %v", err)
	}

	missing := []Entry{{ID: "", Title: "No ID", Embedding: []float32{1}}}
	if err := store.Replace(ctx, missing, IndexMeta{}); err == nil {
		t.Error("expected error for entry without id")
	}

	noVec := []Entry{{ID: "x", Title: "No Vector"}}
	if err := store.Replace(ctx, noVec, IndexMeta{}); err == nil {
		t.Error("expected error for entry without embedding")
	}
}

func TestSQLiteStore_SearchValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Search(ctx, nil, 3); !errors.Is(err, ErrEmptyQueryVec) {
		t.Errorf("expected ErrEmptyQueryVec, got %v", err)
	}
	if _, err := store.Search(ctx, []float32{1}, 0); err == nil {
		t.Error("expected error for non-positive topK")
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Replace(ctx, testEntries(), IndexMeta{EmbedModel: "test-model", Dimension: 3}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	store.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	n, err := reopened.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 entries after reopen, got %d", n)
	}

	hits, err := reopened.Search(ctx, []float32{0, 1, 0}, 1)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if hits[0].Title != "Beta" {
		t.Errorf("expected Beta, got %s", hits[0].Title)
	}
}
