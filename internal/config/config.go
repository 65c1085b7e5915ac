// Package config loads application settings from environment variables.
// The OpenAI API key is the only required value; everything else has a
// default matching the shipped library index.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

var (
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
	ErrInvalidValue  = errors.New("invalid configuration value")
)

// Settings holds the complete runtime configuration.
type Settings struct {
	// APIKey authenticates against the OpenAI API (embeddings and chat)
	APIKey string

	// EmbedModel is the embedding model used for indexing and queries
	EmbedModel string

	// ChatModel is the chat completion model
	ChatModel string

	// IndexPath is the SQLite file holding the vector index
	IndexPath string

	// TopK is the number of candidates retrieved per query
	TopK int

	// Temperature for chat completions
	Temperature float64

	// MaxDistance is the cosine-distance cutoff for retrieval hits.
	// Hits further away than this are discarded.
	MaxDistance float64

	// HTTPAddr is the listen address for the web UI
	HTTPAddr string
}

// Load reads settings from the environment. It fails fast when the API key
// is missing so no network client is ever constructed without credentials.
func Load() (*Settings, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	topK, err := getInt("TOP_K", 4)
	if err != nil {
		return nil, err
	}
	temperature, err := getFloat("TEMPERATURE", 0.4)
	if err != nil {
		return nil, err
	}
	maxDistance, err := getFloat("MAX_DISTANCE", 0.65)
	if err != nil {
		return nil, err
	}

	return &Settings{
		APIKey:      apiKey,
		EmbedModel:  getString("EMBED_MODEL", "text-embedding-3-small"),
		ChatModel:   getString("CHAT_MODEL", "gpt-4o-mini"),
		IndexPath:   getString("INDEX_PATH", "storage/library.db"),
		TopK:        topK,
		Temperature: temperature,
		MaxDistance: maxDistance,
		HTTPAddr:    getString("HTTP_ADDR", ":8080"),
	}, nil
}

// Summary returns a human-readable dump of the settings, with the API key
// omitted.
func (s *Settings) Summary() string {
	return fmt.Sprintf(
		"EMBED_MODEL=%s CHAT_MODEL=%s INDEX_PATH=%s TOP_K=%d TEMPERATURE=%.2f MAX_DISTANCE=%.2f",
		s.EmbedModel, s.ChatModel, s.IndexPath, s.TopK, s.Temperature, s.MaxDistance,
	)
}

func getString(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func getInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidValue, name, raw)
	}
	return v, nil
}

func getFloat(name string, fallback float64) (float64, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidValue, name, raw)
	}
	return v, nil
}
