// Package chat implements the conversational side of the librarian: the
// provider-agnostic chat model interface, the summary lookup tool exposed to
// the model, prompt assembly, and the per-turn orchestrator that ties
// retrieval and generation together.
package chat

import (
	"context"
	"errors"
)

var (
	ErrChatFailed    = errors.New("chat completion request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is a single turn in the model conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// ToolCalls carries function invocations requested by the assistant.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID links a tool-result message back to the call it answers.
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// ToolCall is a model-requested function invocation.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDefinition describes a callable function to the model.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// LLM defines the interface for chat completion providers.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Complete sends the conversation to the model and returns its next
	// message, which may carry tool calls instead of (or alongside) text.
	Complete(ctx context.Context, messages []Message, tools []ToolDefinition) (*Message, error)
}

// LLMConfig holds common configuration options for chat providers.
type LLMConfig struct {
	// Model specifies the model identifier (e.g., "gpt-4o-mini")
	Model string

	// Temperature controls randomness (0.0 = deterministic)
	Temperature float64

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string
}

// DefaultLLMConfig returns sensible defaults for recommendations.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       "gpt-4o-mini",
		Temperature: 0.4,
		MaxTokens:   0,
	}
}
