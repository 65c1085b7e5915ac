package chat

import "context"

// MockLLM is a scripted LLM implementation for testing. Each call to
// Complete pops the next message from Responses, so tool round trips can be
// scripted as [tool-call message, final answer].
type MockLLM struct {
	// Responses are returned in order by successive Complete calls.
	// The last response is repeated once the script runs out.
	Responses []*Message

	// Error, if set, is returned by Complete instead of a response.
	Error error

	// Calls counts Complete invocations.
	Calls int

	// LastMessages stores the conversation from the most recent call.
	LastMessages []Message

	// LastTools stores the tool definitions from the most recent call.
	LastTools []ToolDefinition
}

// NewMockLLM creates a mock that always answers with the given text.
func NewMockLLM(text string) *MockLLM {
	return &MockLLM{Responses: []*Message{{Role: RoleAssistant, Content: text}}}
}

// NewMockLLMWithError creates a mock that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Complete returns the next scripted response.
func (m *MockLLM) Complete(ctx context.Context, messages []Message, tools []ToolDefinition) (*Message, error) {
	m.Calls++
	m.LastMessages = messages
	m.LastTools = tools

	if m.Error != nil {
		return nil, m.Error
	}
	if len(m.Responses) == 0 {
		return &Message{Role: RoleAssistant}, nil
	}

	idx := m.Calls - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}
