// Package tui provides a terminal chat interface for the librarian.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bookworm-labs/librarian/internal/chat"
)

// Answerer is the TUI-facing subset of the chat orchestrator.
type Answerer interface {
	Answer(ctx context.Context, query string) (*chat.Reply, error)
}

// turn is one rendered line of the conversation.
type turn struct {
	role    string
	content string
	hits    []string
}

// replyMsg carries a finished orchestrator turn back into Update.
type replyMsg struct {
	reply *chat.Reply
	err   error
}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	answerer Answerer
	input    textinput.Model
	viewport viewport.Model
	turns    []turn
	status   string
	ready    bool
	thinking bool
}

// New creates a chat model with a greeting already in the transcript.
func New(answerer Answerer) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What kind of book are you in the mood for?"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		answerer: answerer,
		input:    ti,
		viewport: vp,
		turns: []turn{{
			role:    "assistant",
			content: "Hi! Tell me what you feel like reading and I'll pick a book for you.",
		}},
		status: "Ready. Type and press Enter.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + ih + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case replyMsg:
		m.thinking = false
		m.input.Focus()
		if msg.err != nil {
			m.turns = append(m.turns, turn{
				role:    "assistant",
				content: "Sorry, something went wrong answering that. Please try again.",
			})
			m.status = "Error: " + msg.err.Error()
		} else {
			t := turn{role: "assistant", content: msg.reply.Text}
			for _, h := range msg.reply.Hits {
				t.hits = append(t.hits, fmt.Sprintf("%s (distance %.3f)", h.Title, h.Distance))
			}
			m.turns = append(m.turns, t)
			if msg.reply.ToolUsed {
				m.status = "Answered with a summary lookup."
			} else {
				m.status = "Answered."
			}
		}
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.thinking {
				return m, nil
			}
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.turns = append(m.turns, turn{role: "user", content: q})
			m.input.SetValue("")
			m.input.Blur()
			m.thinking = true
			m.status = "Thinking..."
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, askCmd(m.answerer, q)
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// askCmd runs one orchestrator turn off the UI loop.
func askCmd(answerer Answerer, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		reply, err := answerer.Answer(ctx, query)
		return replyMsg{reply: reply, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Smart Librarian")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for i, t := range m.turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch t.role {
		case "user":
			b.WriteString(userStyle.Render("You: ") + t.content)
		default:
			b.WriteString(assistantStyle.Render("Librarian: ") + t.content)
			if len(t.hits) > 0 {
				b.WriteString("\n" + hitStyle.Render("matches: "+strings.Join(t.hits, ", ")))
			}
		}
	}
	return b.String()
}

var (
	headerStyle        = lipgloss.NewStyle().Bold(true)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	hitStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
