package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bookworm-labs/librarian/internal/rag"
)

// Fallback texts emitted without a model call.
const (
	FallbackNoMatch = "I couldn't find a good match in the library. Try different keywords."
	FallbackNoReply = "I had trouble generating a recommendation. Try rephrasing your interests."
)

// Retriever is the retrieval dependency of the orchestrator.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]rag.Hit, error)
}

// Reply is the outcome of one user turn.
type Reply struct {
	// Text is the final assistant message shown to the user
	Text string `json:"text"`

	// Hits are the retrieval candidates that grounded the answer
	Hits []rag.Hit `json:"hits,omitempty"`

	// ToolUsed reports whether the model invoked the summary tool
	ToolUsed bool `json:"tool_used"`
}

// Orchestrator drives a single chat turn: retrieve, ground, complete, and
// run at most one tool round trip. Hosted-service failures surface as
// errors; empty retrieval is answered with a fallback message and no model
// call.
type Orchestrator struct {
	retriever Retriever
	llm       LLM
	tool      *SummaryTool
}

// NewOrchestrator wires a retriever, a chat model and the summary tool.
func NewOrchestrator(retriever Retriever, llm LLM, tool *SummaryTool) (*Orchestrator, error) {
	if retriever == nil {
		return nil, fmt.Errorf("retriever cannot be nil")
	}
	if llm == nil {
		return nil, fmt.Errorf("llm cannot be nil")
	}
	if tool == nil {
		return nil, fmt.Errorf("summary tool cannot be nil")
	}
	return &Orchestrator{retriever: retriever, llm: llm, tool: tool}, nil
}

// Answer runs one turn for the given user query.
func (o *Orchestrator) Answer(ctx context.Context, query string) (*Reply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	hits, err := o.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	if len(hits) == 0 {
		log.Printf("[Orchestrator] No confident match for query %q", query)
		return &Reply{Text: FallbackNoMatch}, nil
	}

	messages := []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: query},
		{Role: RoleSystem, Content: BuildCandidateBlock(hits)},
	}

	first, err := o.llm.Complete(ctx, messages, []ToolDefinition{o.tool.Definition()})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	// Direct answer without touching the tool.
	if len(first.ToolCalls) == 0 {
		text := strings.TrimSpace(first.Content)
		if text == "" {
			return &Reply{Text: FallbackNoReply, Hits: hits}, nil
		}
		return &Reply{Text: text, Hits: hits}, nil
	}

	// Tool round trip: execute locally, feed results back, ask for the
	// final answer. One trip only; tools are not offered again.
	messages = append(messages, *first)
	for _, call := range first.ToolCalls {
		log.Printf("[Orchestrator] Tool call %s(%s)", call.Name, call.Arguments)
		messages = append(messages, Message{
			Role:       RoleTool,
			Content:    o.tool.Dispatch(call),
			ToolCallID: call.ID,
		})
	}

	final, err := o.llm.Complete(ctx, messages, nil)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	text := strings.TrimSpace(final.Content)
	if text == "" {
		text = FallbackNoReply
	}
	return &Reply{Text: text, Hits: hits, ToolUsed: true}, nil
}
