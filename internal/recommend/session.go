package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/avstrong/hostelscout/internal/hostel"
	"github.com/avstrong/hostelscout/internal/logger"
)

// Fixed user-facing strings. The chat never shows a raw error: any failure
// mode collapses into fallbackFailure, an empty completion into fallbackEmpty.
const (
	fallbackEmpty   = "I'm sorry, I couldn't process that."
	fallbackFailure = "Oops, my circuits are a bit jammed!"
)

const promptTemplate = `You are "HostelScout AI", a helpful assistant for university students. Based on the following available hostels, suggest the best options for the user's request.
Available Hostels:
%s
User Query: "%s"
Instructions: 1. Recommend 1-3 hostels. 2. Explain WHY. 3. Keep it friendly.`

type completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

type Config struct {
	L         *logger.Logger
	Completer completer
	Catalog   []hostel.Hostel
	Model     string
	// Timeout bounds each request so a hung service cannot pin the typing
	// indicator forever; expiry counts as a failure.
	Timeout time.Duration
}

// Session owns the chat transcript for one run of the app. Append-only,
// never persisted, one outstanding query at a time.
type Session struct {
	mu        sync.Mutex
	l         *logger.Logger
	completer completer
	catalog   []hostel.Hostel
	model     string
	timeout   time.Duration

	turns  []Turn
	typing bool
}

func New(conf Config) *Session {
	return &Session{
		l:         conf.L,
		completer: conf.Completer,
		catalog:   conf.Catalog,
		model:     conf.Model,
		timeout:   conf.Timeout,
		turns:     []Turn{},
		typing:    false,
	}
}

// Ask forwards the query plus the full catalog to the recommendation service
// and appends both sides of the exchange to the transcript. Service failures
// never propagate: the assistant turn becomes a fixed fallback instead. The
// only errors Ask returns are the local preconditions (busy, empty query).
func (s *Session) Ask(ctx context.Context, query string) (Turn, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Turn{}, ErrEmptyQuery
	}

	s.mu.Lock()

	if s.typing {
		s.mu.Unlock()

		return Turn{}, ErrBusy
	}

	s.typing = true
	s.turns = append(s.turns, Turn{Role: RoleUser, Text: query})
	s.mu.Unlock()

	text, err := s.complete(ctx, query)

	reply := Turn{Role: RoleAssistant, Text: text}

	switch {
	case err != nil:
		s.l.LogErrorf("Recommendation request failed: %v", err.Error())

		reply.Text = fallbackFailure
	case text == "":
		reply.Text = fallbackEmpty
	}

	s.mu.Lock()
	s.turns = append(s.turns, reply)
	s.typing = false
	s.mu.Unlock()

	return reply, nil
}

func (s *Session) complete(ctx context.Context, query string) (string, error) {
	catalogJSON, err := json.MarshalIndent(s.catalog, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize catalog: %w", err)
	}

	prompt := fmt.Sprintf(promptTemplate, catalogJSON, query)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.completer.Complete(ctx, s.model, prompt)
	if err != nil {
		return "", fmt.Errorf("complete prompt: %w", err)
	}

	return text, nil
}

// Typing reports whether a request is outstanding.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.typing
}

// Transcript returns a copy of the turns so far.
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)

	return out
}
