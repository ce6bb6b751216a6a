package llmclient

import (
	"context"
	"fmt"
	"sync"
)

// MockClient cycles through a fixed list of canned responses, one per
// call, holding the last response once the list is exhausted. It exists
// so planner/evaluator/agent-loop tests never touch the network.
type MockClient struct {
	mu        sync.Mutex
	responses []string
	calls     int
}

// NewMockClient builds a MockClient. Calling Generate/GenerateWithImage
// more times than len(responses) repeats the final response.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{responses: responses}
}

func (m *MockClient) Generate(ctx context.Context, system, user string) (string, error) {
	return m.next()
}

func (m *MockClient) GenerateWithImage(ctx context.Context, system, user, imageBase64, mimeType string) (string, error) {
	return m.next()
}

func (m *MockClient) next() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.responses) == 0 {
		return "", fmt.Errorf("llmclient: mock has no canned responses")
	}

	idx := m.calls
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	m.calls++
	return m.responses[idx], nil
}

// CallCount reports how many times Generate/GenerateWithImage were
// called, for tests that assert on LLM call counts.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
