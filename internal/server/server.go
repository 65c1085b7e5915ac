// Package server exposes the chat orchestrator over a small local web UI:
// a single page with a transcript and an input form, plus a JSON endpoint
// for programmatic access. State is one in-memory transcript per server,
// discarded on shutdown.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/bookworm-labs/librarian/internal/chat"
)

const greeting = "Hello! Tell me what kind of book you're looking for - " +
	"e.g. friendship and magic, quiet sci-fi, or adventure stories."

// Answerer is the orchestrator dependency of the server.
type Answerer interface {
	Answer(ctx context.Context, query string) (*chat.Reply, error)
}

// Turn is one entry in the rendered transcript.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Server handles the web chat UI.
type Server struct {
	answerer Answerer
	mux      *http.ServeMux

	mu         sync.Mutex
	transcript []Turn
}

// New creates a Server around the given orchestrator.
func New(answerer Answerer) (*Server, error) {
	if answerer == nil {
		return nil, fmt.Errorf("answerer cannot be nil")
	}

	s := &Server{
		answerer:   answerer,
		transcript: []Turn{{Role: "assistant", Content: greeting}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/chat", s.handleChat)
	s.mux = mux

	return s, nil
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe blocks serving the UI on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[Server] Listening on %s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleIndex renders the transcript page; form POSTs run one chat turn
// before re-rendering.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		// fall through to render
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if message := strings.TrimSpace(r.FormValue("message")); message != "" {
			s.runTurn(r.Context(), message)
		}
		// Redirect so a refresh does not resubmit the form.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	turns := make([]Turn, len(s.transcript))
	copy(turns, s.transcript)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, map[string]any{"Turns": turns}); err != nil {
		log.Printf("[Server] template error: %v", err)
	}
}

// handleChat is the JSON API: {"message": "..."} in, the chat reply out.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply := s.runTurn(r.Context(), req.Message)
	writeJSON(w, http.StatusOK, reply)
}

// runTurn executes one orchestrator turn and appends both sides to the
// transcript. Service failures become assistant-visible error turns rather
// than dropped requests.
func (s *Server) runTurn(ctx context.Context, message string) *chat.Reply {
	reply, err := s.answerer.Answer(ctx, message)
	if err != nil {
		log.Printf("[Server] turn failed: %v", err)
		reply = &chat.Reply{Text: "Sorry, something went wrong while generating a response. Please try again."}
	}

	s.mu.Lock()
	s.transcript = append(s.transcript,
		Turn{Role: "user", Content: message},
		Turn{Role: "assistant", Content: reply.Text},
	)
	s.mu.Unlock()

	return reply
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Librarian</title>
<style>
  body { font-family: sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; }
  .turn { margin: 0.75rem 0; padding: 0.75rem 1rem; border-radius: 0.5rem; white-space: pre-wrap; }
  .user { background: #e8f0fe; }
  .assistant { background: #f1f3f4; }
  .role { font-size: 0.75rem; color: #5f6368; text-transform: uppercase; }
  form { display: flex; gap: 0.5rem; margin-top: 1.5rem; }
  input[type=text] { flex: 1; padding: 0.5rem; }
</style>
</head>
<body>
<h1>Librarian</h1>
<p>Type what you enjoy (themes, genres, moods). I'll search the library and recommend one book.</p>
{{range .Turns}}<div class="turn {{.Role}}"><div class="role">{{.Role}}</div>{{.Content}}</div>
{{end}}
<form method="post" action="/">
  <input type="text" name="message" placeholder="What kind of book should I find for you?" autofocus>
  <button type="submit">Send</button>
</form>
</body>
</html>
`))
