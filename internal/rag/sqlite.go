package rag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"
)

// Common errors for vector store operations
var (
	ErrEmptyEntries  = errors.New("no entries provided for insertion")
	ErrStoreFailed   = errors.New("vector store operation failed")
	ErrEmptyIndex    = errors.New("vector index is empty; run the index command first")
	ErrModelMismatch = errors.New("index was built with a different embedding model")
	ErrEmptyQueryVec = errors.New("query vector is empty")
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
    id        TEXT PRIMARY KEY,
    title     TEXT NOT NULL,
    summary   TEXT NOT NULL,
    embedding BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS index_meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLiteStore implements VectorStore on a single local SQLite file.
// Similarity search is a brute-force cosine scan, which is plenty for a
// library of a few dozen summaries and keeps the store embeddable.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the index database at path and
// ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty index path", ErrStoreFailed)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating index directory: %v", ErrStoreFailed, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrStoreFailed, path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrStoreFailed, err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Replace atomically swaps the index contents for the given entries.
func (s *SQLiteStore) Replace(ctx context.Context, entries []Entry, meta IndexMeta) error {
	if len(entries) == 0 {
		return ErrEmptyEntries
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStoreFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("%w: clearing books: %v", ErrStoreFailed, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM index_meta`); err != nil {
		return fmt.Errorf("%w: clearing meta: %v", ErrStoreFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO books(id, title, summary, embedding) VALUES(?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare: %v", ErrStoreFailed, err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.ID == "" || e.Title == "" {
			return fmt.Errorf("%w: entry missing id or title", ErrStoreFailed)
		}
		if len(e.Embedding) == 0 {
			return fmt.Errorf("%w: entry %q has no embedding", ErrStoreFailed, e.Title)
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.Title, e.Summary, EncodeEmbedding(e.Embedding)); err != nil {
			return fmt.Errorf("%w: inserting %q: %v", ErrStoreFailed, e.Title, err)
		}
	}

	metaStmt, err := tx.PrepareContext(ctx, `INSERT INTO index_meta(key, value) VALUES(?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare meta: %v", ErrStoreFailed, err)
	}
	defer metaStmt.Close()

	if _, err := metaStmt.ExecContext(ctx, "embed_model", meta.EmbedModel); err != nil {
		return fmt.Errorf("%w: writing meta: %v", ErrStoreFailed, err)
	}
	if _, err := metaStmt.ExecContext(ctx, "dimension", fmt.Sprintf("%d", meta.Dimension)); err != nil {
		return fmt.Errorf("%w: writing meta: %v", ErrStoreFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStoreFailed, err)
	}
	return nil
}

// Search scans all stored embeddings and returns the topK closest by
// cosine similarity, best first.
func (s *SQLiteStore) Search(ctx context.Context, queryVector []float32, topK int) ([]Hit, error) {
	if len(queryVector) == 0 {
		return nil, ErrEmptyQueryVec
	}
	if topK <= 0 {
		return nil, fmt.Errorf("%w: topK must be positive, got %d", ErrStoreFailed, topK)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, title, summary, embedding FROM books ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrStoreFailed, err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			hit  Hit
			blob []byte
		)
		if err := rows.Scan(&hit.ID, &hit.Title, &hit.Summary, &blob); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrStoreFailed, err)
		}
		embedding, err := DecodeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding embedding for %q: %v", ErrStoreFailed, hit.Title, err)
		}
		sim, err := CosineSimilarity(queryVector, embedding)
		if err != nil {
			return nil, fmt.Errorf("%w: scoring %q: %v", ErrStoreFailed, hit.Title, err)
		}
		hit.Score = float32(sim)
		hit.Distance = float32(1 - sim)
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrStoreFailed, err)
	}
	if len(hits) == 0 {
		return nil, ErrEmptyIndex
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, nil
}

// Meta returns the metadata recorded when the index was built.
func (s *SQLiteStore) Meta(ctx context.Context) (IndexMeta, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM index_meta`)
	if err != nil {
		return IndexMeta{}, fmt.Errorf("%w: reading meta: %v", ErrStoreFailed, err)
	}
	defer rows.Close()

	var meta IndexMeta
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return IndexMeta{}, fmt.Errorf("%w: scan meta: %v", ErrStoreFailed, err)
		}
		switch key {
		case "embed_model":
			meta.EmbedModel = value
		case "dimension":
			fmt.Sscanf(value, "%d", &meta.Dimension)
		}
	}
	return meta, rows.Err()
}

// Count returns the number of indexed entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrStoreFailed, err)
	}
	return n, nil
}

// Titles returns all indexed titles in insertion order.
func (s *SQLiteStore) Titles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title FROM books ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("%w: titles: %v", ErrStoreFailed, err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: scan title: %v", ErrStoreFailed, err)
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
