package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply for a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves canned responses in order and records every request in
// Calls. Grading tests use it to pin down exactly what reaches the model.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	next  int
	Calls []Request
}

// NewMockProvider creates a MockProvider preloaded with responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// AddResponse queues one more canned response.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount reports how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Generate records the request and serves the next canned response. An
// exhausted queue acts like an unreachable provider.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.next >= len(m.queue) {
		return nil, &ErrProviderUnavailable{}
	}
	canned := m.queue[m.next]
	m.next++

	if canned.Err != nil {
		return nil, canned.Err
	}
	return &Response{
		Content:    canned.Content,
		Usage:      canned.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }
