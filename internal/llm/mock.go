package llm

import (
	"context"
	"sync"
	"sync/atomic"
)

// MockClient is a scriptable Client for tests. Responses are consumed in
// order; when the script runs out the last response repeats.
type MockClient struct {
	mu        sync.Mutex
	responses []*Response
	next      int

	// Err, when set, is returned by Complete and emitted as an error
	// event by Stream.
	Err error

	// LastRequest records the most recent request so tests can assert
	// request shaping.
	LastRequest Request

	completeCalls atomic.Int64
	streamCalls   atomic.Int64
}

// NewMockClient creates a mock that replays the given responses in order.
func NewMockClient(responses ...*Response) *MockClient {
	return &MockClient{responses: responses}
}

// Name returns the provider name.
func (m *MockClient) Name() string { return "mock" }

// CompleteCalls returns how many times Complete was invoked.
func (m *MockClient) CompleteCalls() int64 { return m.completeCalls.Load() }

// StreamCalls returns how many times Stream was invoked.
func (m *MockClient) StreamCalls() int64 { return m.streamCalls.Load() }

// Calls returns the total invocation count across Complete and Stream.
func (m *MockClient) Calls() int64 { return m.completeCalls.Load() + m.streamCalls.Load() }

func (m *MockClient) take(req Request) *Response {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRequest = req
	if len(m.responses) == 0 {
		return &Response{Content: "mock response", StopReason: "stop"}
	}
	resp := m.responses[m.next]
	if m.next < len(m.responses)-1 {
		m.next++
	}
	return resp
}

// Complete returns the next scripted response.
func (m *MockClient) Complete(ctx context.Context, req Request) (*Response, error) {
	m.completeCalls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.take(req), nil
}

// Stream replays the next scripted response as a stream: one delta event
// for the content, one tool_call event per tool call, then done.
func (m *MockClient) Stream(ctx context.Context, req Request) (<-chan StreamEvent, error) {
	m.streamCalls.Add(1)

	eventChan := make(chan StreamEvent)
	go func() {
		defer close(eventChan)

		if m.Err != nil {
			eventChan <- StreamEvent{Type: EventError, Error: m.Err.Error()}
			return
		}

		resp := m.take(req)
		if resp.Content != "" {
			eventChan <- StreamEvent{Type: EventDelta, Content: resp.Content}
		}
		for i := range resp.ToolCalls {
			eventChan <- StreamEvent{Type: EventToolCall, ToolCall: &resp.ToolCalls[i]}
		}
		eventChan <- StreamEvent{Type: EventDone, Response: resp}
	}()
	return eventChan, nil
}
