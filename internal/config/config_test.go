package config

import (
	"errors"
	"testing"
)

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when API key is missing")
	}
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("EMBED_MODEL", "")
	t.Setenv("TOP_K", "")
	t.Setenv("MAX_DISTANCE", "")

	s, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.EmbedModel != "text-embedding-3-small" {
		t.Errorf("Expected text-embedding-3-small, got %s", s.EmbedModel)
	}
	if s.ChatModel != "gpt-4o-mini" {
		t.Errorf("Expected gpt-4o-mini, got %s", s.ChatModel)
	}
	if s.TopK != 4 {
		t.Errorf("Expected TopK=4, got %d", s.TopK)
	}
	if s.MaxDistance != 0.65 {
		t.Errorf("Expected MaxDistance=0.65, got %f", s.MaxDistance)
	}
	if s.IndexPath != "storage/library.db" {
		t.Errorf("unexpected IndexPath: %s", s.IndexPath)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("EMBED_MODEL", "text-embedding-3-large")
	t.Setenv("TOP_K", "2")
	t.Setenv("MAX_DISTANCE", "0.5")
	t.Setenv("TEMPERATURE", "0")

	s, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.EmbedModel != "text-embedding-3-large" {
		t.Errorf("Expected text-embedding-3-large, got %s", s.EmbedModel)
	}
	if s.TopK != 2 {
		t.Errorf("Expected TopK=2, got %d", s.TopK)
	}
	if s.MaxDistance != 0.5 {
		t.Errorf("Expected MaxDistance=0.5, got %f", s.MaxDistance)
	}
	if s.Temperature != 0 {
		t.Errorf("Expected Temperature=0, got %f", s.Temperature)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric top k", "TOP_K", "four"},
		{"non-numeric distance", "MAX_DISTANCE", "close"},
		{"non-numeric temperature", "TEMPERATURE", "warm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.value)
			}
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("expected ErrInvalidValue, got %v", err)
			}
		})
	}
}
