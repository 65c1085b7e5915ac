package chat

import (
	"encoding/json"
	"fmt"

	"github.com/bookworm-labs/librarian/internal/library"
)

// ToolGetSummaryByTitle is the function name the model calls to fetch a
// full book summary.
const ToolGetSummaryByTitle = "get_summary_by_title"

// SummaryTool resolves exact (normalized) titles to their stored summary.
// It is invoked only through the model's function-calling mechanism.
type SummaryTool struct {
	lib *library.Library
}

// NewSummaryTool creates a summary tool over the given library.
func NewSummaryTool(lib *library.Library) (*SummaryTool, error) {
	if lib == nil {
		return nil, fmt.Errorf("library cannot be nil")
	}
	return &SummaryTool{lib: lib}, nil
}

// Definition describes the tool to the chat model.
func (t *SummaryTool) Definition() ToolDefinition {
	return ToolDefinition{
		Name: ToolGetSummaryByTitle,
		Description: "Return the full summary for a single book title from the library. " +
			"Use the EXACT title text from the provided candidate list.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{
					"type":        "string",
					"description": "Exact book title to retrieve the full summary for.",
				},
			},
			"required":             []string{"title"},
			"additionalProperties": false,
		},
	}
}

// Lookup returns the stored summary for title, or a not-found sentinel the
// model can relay to the user. Matching is exact after normalization.
func (t *SummaryTool) Lookup(title string) string {
	book, ok := t.lib.Lookup(title)
	if !ok {
		return NotFoundMessage(title)
	}
	return book.Summary
}

// Dispatch executes a model-requested tool call and returns the text to
// feed back as the tool result. Unknown tools and malformed arguments
// produce error text rather than Go errors; the model decides what to do
// with them.
func (t *SummaryTool) Dispatch(call ToolCall) string {
	if call.Name != ToolGetSummaryByTitle {
		return fmt.Sprintf("Unknown tool: %s", call.Name)
	}

	var args struct {
		Title string `json:"title"`
	}
	raw := call.Arguments
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return "Invalid JSON for tool arguments."
	}

	return t.Lookup(args.Title)
}

// NotFoundMessage is the sentinel returned when no book matches a title.
func NotFoundMessage(title string) string {
	return fmt.Sprintf(
		"Sorry, I couldn't find a summary for the book titled %q. Please check the title and try again.",
		title,
	)
}
