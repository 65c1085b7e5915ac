package chat

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bookworm-labs/librarian/internal/library"
	"github.com/bookworm-labs/librarian/internal/rag"
)

// TestRecommendationPipeline runs the full flow against real components:
// index a small library into SQLite, retrieve with the distance gate, then
// drive a scripted tool round trip through the orchestrator.
func TestRecommendationPipeline(t *testing.T) {
	lib, err := library.New([]library.Book{
		{Title: "The Hobbit", Summary: "Bilbo outwits a dragon and finds a magic ring.", Themes: []string{"fantasy", "dragons"}},
		{Title: "Dune", Summary: "Paul Atreides rises to power on the desert planet Arrakis.", Themes: []string{"science fiction"}},
		{Title: "The Martian", Summary: "Mark Watney survives alone on Mars.", Themes: []string{"survival"}},
	})
	if err != nil {
		t.Fatalf("failed to build library: %v", err)
	}

	const query = "a story about dragons and magic"

	// Fixed vectors put the query close to The Hobbit and beyond the
	// distance gate for everything else.
	embedder := rag.NewMockEmbedder(map[string][]float32{
		"Bilbo outwits a dragon and finds a magic ring.":               {1, 0, 0},
		"Paul Atreides rises to power on the desert planet Arrakis.":   {0, 1, 0},
		"Mark Watney survives alone on Mars.":                          {0, 0, 1},
		query: {0.95, 0.2, 0},
	})

	store, err := rag.NewSQLiteStore(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := rag.BuildIndex(ctx, lib, embedder, store, rag.DefaultIndexOptions()); err != nil {
		t.Fatalf("failed to build index: %v", err)
	}

	retriever, err := rag.NewRetriever(embedder, store, 4, 0.65)
	if err != nil {
		t.Fatalf("failed to build retriever: %v", err)
	}
	tool, err := NewSummaryTool(lib)
	if err != nil {
		t.Fatalf("failed to build tool: %v", err)
	}

	llm := &MockLLM{Responses: []*Message{
		{
			Role: RoleAssistant,
			ToolCalls: []ToolCall{{
				ID:        "call-1",
				Name:      ToolGetSummaryByTitle,
				Arguments: `{"title": "The Hobbit"}`,
			}},
		},
		{
			Role:    RoleAssistant,
			Content: "You should read **The Hobbit**. It has a dragon, a magic ring, and an unlikely hero.",
		},
	}}

	o, err := NewOrchestrator(retriever, llm, tool)
	if err != nil {
		t.Fatalf("failed to build orchestrator: %v", err)
	}

	reply, err := o.Answer(ctx, query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(reply.Text, "The Hobbit") {
		t.Errorf("unexpected recommendation: %q", reply.Text)
	}
	if !reply.ToolUsed {
		t.Error("expected the tool round trip to run")
	}

	// Only The Hobbit survives the distance gate.
	if len(reply.Hits) != 1 {
		t.Fatalf("Expected 1 hit, got %d: %+v", len(reply.Hits), reply.Hits)
	}
	if reply.Hits[0].Title != "The Hobbit" {
		t.Errorf("Expected The Hobbit, got %s", reply.Hits[0].Title)
	}
	if reply.Hits[0].Distance > 0.1 {
		t.Errorf("query should land near The Hobbit, distance=%.3f", reply.Hits[0].Distance)
	}

	if llm.Calls != 2 {
		t.Fatalf("Expected 2 model calls, got %d", llm.Calls)
	}

	// The second completion must have seen the real summary from the tool.
	sawSummary := false
	for _, msg := range llm.LastMessages {
		if msg.Role == RoleTool && strings.Contains(msg.Content, "Bilbo outwits a dragon") {
			sawSummary = true
		}
	}
	if !sawSummary {
		t.Error("tool result with the book summary never reached the model")
	}
}
