package chat

import (
	"fmt"
	"strings"

	"github.com/bookworm-labs/librarian/internal/rag"
)

const systemPrompt = `You are a friendly librarian assistant. Use only the candidate list.
Steps:
1) Pick ONE title (prefer the lowest distance).
2) Call tool ` + "`" + ToolGetSummaryByTitle + "`" + ` with that exact title.
3) After the tool output, send ONE message:
   - Start with the title in **bold** and a short friendly recommendation.
   - Add 2-3 brief reasons why it fits.
   - End with: 'Here is a quick summary:' followed by the full summary.

Rules:
- Do NOT invent titles that are not in the candidate list.
- If the user asks about a title and it is in the candidates, pick it.
  The title must match exactly.
- If the request is not about books or no candidate matches, say so plainly.
- Never explain tool mechanics.
- Keep the tone natural, friendly and conversational.`

// BuildCandidateBlock formats retrieval hits into the ranked candidate list
// handed to the model as grounding context.
func BuildCandidateBlock(hits []rag.Hit) string {
	var b strings.Builder
	b.WriteString("Candidate books (ranked by similarity):\n")
	for i, h := range hits {
		b.WriteString(fmt.Sprintf("%d) %s - %s (distance=%.3f)\n", i+1, h.Title, snippet(h.Summary), h.Distance))
	}
	return strings.TrimRight(b.String(), "\n")
}

// snippet reduces a summary to its first line, clipped to keep the prompt
// compact; the model fetches the full text through the tool.
func snippet(text string) string {
	const maxLen = 160

	line := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		line = text[:idx]
	}
	line = strings.TrimSpace(line)
	if len(line) > maxLen {
		line = line[:maxLen-3] + "..."
	}
	return line
}
