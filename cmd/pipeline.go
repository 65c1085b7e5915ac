package cmd

import (
	"fmt"

	"github.com/bookworm-labs/librarian/internal/chat"
	"github.com/bookworm-labs/librarian/internal/config"
	"github.com/bookworm-labs/librarian/internal/library"
	"github.com/bookworm-labs/librarian/internal/rag"
)

// newOrchestrator wires the full chat pipeline from settings: embedder,
// vector store, retriever, summary tool and LLM. The returned close function
// releases the store.
func newOrchestrator(cfg *config.Settings) (*chat.Orchestrator, func() error, error) {
	lib, err := library.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load library: %w", err)
	}

	embedder, err := rag.NewOpenAIEmbedder(cfg.APIKey, cfg.EmbedModel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	store, err := rag.NewSQLiteStore(cfg.IndexPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open index at %s: %w", cfg.IndexPath, err)
	}

	retriever, err := rag.NewRetriever(embedder, store, cfg.TopK, cfg.MaxDistance)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create retriever: %w", err)
	}

	llm, err := chat.NewOpenAILLM(chat.LLMConfig{
		Model:       cfg.ChatModel,
		Temperature: cfg.Temperature,
		APIKey:      cfg.APIKey,
	})
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	tool, err := chat.NewSummaryTool(lib)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create summary tool: %w", err)
	}

	orch, err := chat.NewOrchestrator(retriever, llm, tool)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	return orch, store.Close, nil
}
