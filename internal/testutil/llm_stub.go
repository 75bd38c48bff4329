package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/alexanderramin/timetabler/internal/llm"
)

// StubLLMClient is a scripted llm.LLMClient. Replies are keyed by a
// substring of the user prompt so concurrent calls get deterministic
// answers. Keys should not overlap. Default is used when nothing matches.
type StubLLMClient struct {
	mu        sync.Mutex
	Responses map[string]StubReply
	Default   StubReply
	Down      bool
	Name      string
	prompts   []string
}

// StubReply is either response text or an error.
type StubReply struct {
	Text string
	Err  error
}

func NewStubLLMClient(defaultText string) *StubLLMClient {
	return &StubLLMClient{
		Responses: make(map[string]StubReply),
		Default:   StubReply{Text: defaultText},
		Name:      "stub",
	}
}

// On scripts the reply for prompts containing substr.
func (s *StubLLMClient) On(substr string, reply StubReply) *StubLLMClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Responses[substr] = reply
	return s
}

func (s *StubLLMClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.prompts = append(s.prompts, req.UserPrompt)
	reply := s.Default
	for substr, r := range s.Responses {
		if strings.Contains(req.UserPrompt, substr) {
			reply = r
			break
		}
	}
	s.mu.Unlock()

	if reply.Err != nil {
		return nil, reply.Err
	}
	return &llm.GenerateResponse{Text: reply.Text, Model: "stub-model", LatencyMs: 1}, nil
}

func (s *StubLLMClient) Available(context.Context) bool { return !s.Down }

func (s *StubLLMClient) Provider() string { return s.Name }

// Calls returns how many Generate calls were made.
func (s *StubLLMClient) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

// Prompts returns a copy of every user prompt received, in arrival order.
func (s *StubLLMClient) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
