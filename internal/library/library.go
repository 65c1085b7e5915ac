// Package library loads the curated dataset of book summaries that the
// chatbot recommends from. A default dataset ships embedded in the binary;
// external datasets can be loaded from YAML or from the plain-text
// "## Title:" format.
package library

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyDataset   = errors.New("dataset contains no book records")
	ErrDuplicateTitle = errors.New("duplicate book title in dataset")
)

//go:embed data/book_summaries.yaml
var embeddedDataset []byte

// Book is a single record in the library dataset.
type Book struct {
	Title   string   `yaml:"title" json:"title"`
	Summary string   `yaml:"summary" json:"summary"`
	Themes  []string `yaml:"themes,omitempty" json:"themes,omitempty"`
}

// Library is the immutable in-memory dataset, indexed by normalized title.
type Library struct {
	books  []Book
	byName map[string]*Book
}

// Load returns the embedded default dataset.
func Load() (*Library, error) {
	return parseYAML(embeddedDataset)
}

// LoadFile loads a dataset from disk. YAML files (.yaml/.yml) use the same
// schema as the embedded dataset; anything else is parsed as the plain-text
// "## Title:" format.
func LoadFile(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseText(string(data))
	}
}

// Books returns all records in dataset order.
func (l *Library) Books() []Book {
	return l.books
}

// Len returns the number of records.
func (l *Library) Len() int {
	return len(l.books)
}

// Lookup returns the record whose title matches after normalization
// (trimmed, lower-cased).
func (l *Library) Lookup(title string) (*Book, bool) {
	b, ok := l.byName[NormalizeTitle(title)]
	return b, ok
}

// Titles returns every title in dataset order.
func (l *Library) Titles() []string {
	titles := make([]string, len(l.books))
	for i, b := range l.books {
		titles[i] = b.Title
	}
	return titles
}

// NormalizeTitle is the canonical key used for title lookups. Retrieval
// metadata and the summary tool must agree on this key.
func NormalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// New builds a Library from explicit records, validating titles and
// summaries.
func New(books []Book) (*Library, error) {
	if len(books) == 0 {
		return nil, ErrEmptyDataset
	}

	byName := make(map[string]*Book, len(books))
	for i := range books {
		key := NormalizeTitle(books[i].Title)
		if key == "" {
			return nil, fmt.Errorf("book %d has an empty title", i)
		}
		if _, exists := byName[key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTitle, books[i].Title)
		}
		if strings.TrimSpace(books[i].Summary) == "" {
			return nil, fmt.Errorf("book %q has an empty summary", books[i].Title)
		}
		byName[key] = &books[i]
	}

	return &Library{books: books, byName: byName}, nil
}

func parseYAML(data []byte) (*Library, error) {
	var doc struct {
		Books []Book `yaml:"books"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset YAML: %w", err)
	}
	return New(doc.Books)
}

var titleHeaderRe = regexp.MustCompile(`(?m)^## Title:\s*`)

// parseText parses the legacy dataset format: records separated by
// "## Title: <name>" header lines, with the summary on the following lines.
func parseText(text string) (*Library, error) {
	chunks := titleHeaderRe.Split(text, -1)

	var books []Book
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		lines := strings.SplitN(chunk, "\n", 2)
		title := strings.TrimSpace(lines[0])
		var summary string
		if len(lines) > 1 {
			var kept []string
			for _, line := range strings.Split(lines[1], "\n") {
				if line = strings.TrimSpace(line); line != "" {
					kept = append(kept, line)
				}
			}
			summary = strings.Join(kept, "\n")
		}

		if title == "" || summary == "" {
			continue
		}
		books = append(books, Book{Title: title, Summary: summary})
	}

	return New(books)
}
