package rag

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1.0},
		{"orthogonal", []float32{1, 0, 0}, []float32{0, 1, 0}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"scaled", []float32{1, 2, 3}, []float32{2, 4, 6}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestCosineSimilarity_Errors(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
	}{
		{"dimension mismatch", []float32{1, 2}, []float32{1, 2, 3}},
		{"empty vectors", []float32{}, []float32{}},
		{"zero magnitude", []float32{0, 0}, []float32{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CosineSimilarity(tt.a, tt.b); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEncodeDecodeEmbedding(t *testing.T) {
	vec := []float32{0.5, -1.25, 3.75, 0, 42}

	blob := EncodeEmbedding(vec)
	if len(blob) != len(vec)*4 {
		t.Fatalf("expected %d bytes, got %d", len(vec)*4, len(blob))
	}

	decoded, err := DecodeEmbedding(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != len(vec) {
		t.Fatalf("expected %d values, got %d", len(vec), len(decoded))
	}
	for i := range vec {
		if decoded[i] != vec[i] {
			t.Errorf("index %d: expected %f, got %f", i, vec[i], decoded[i])
		}
	}
}

func TestDecodeEmbedding_InvalidLength(t *testing.T) {
	if _, err := DecodeEmbedding([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for non-multiple-of-4 blob")
	}
}

func TestEncodeEmbedding_Empty(t *testing.T) {
	if blob := EncodeEmbedding(nil); blob != nil {
		t.Errorf("expected nil blob for empty vector, got %v", blob)
	}
}
