// Package llm defines the hosted-model client interface and pluggable
// provider system. Providers are direct HTTP API clients (OpenAI chat
// completions, Anthropic messages) with native tool-calling and SSE
// streaming support.
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Role constants for messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Part type constants.
const (
	PartText       = "text"
	PartFile       = "file"
	PartToolCall   = "tool-call"
	PartToolResult = "tool-result"
)

// Part is one element of a message's ordered content sequence.
type Part struct {
	Type string `json:"type"`

	// Text content (type="text")
	Text string `json:"text,omitempty"`

	// File attachment (type="file")
	Data      string `json:"data,omitempty"` // base64-encoded bytes
	MediaType string `json:"mediaType,omitempty"`
	Filename  string `json:"filename,omitempty"`

	// Tool invocation and result (type="tool-call" / "tool-result")
	ToolCallID string          `json:"toolCallId,omitempty"`
	ToolName   string          `json:"toolName,omitempty"`
	Input      json.RawMessage `json:"input,omitempty"`
	Output     json.RawMessage `json:"output,omitempty"`
}

// Message is a single turn in a conversation. Content carries plain text;
// Parts carries structured content (text, file attachments, tool calls and
// results). Either may be set; Parts wins when both are present.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
	Parts   []Part `json:"parts,omitempty"`
}

// NewTextMessage builds a plain text message.
func NewTextMessage(role, text string) Message {
	return Message{Role: role, Content: text}
}

// Text returns the message's textual content: Content when set, otherwise
// the concatenation of all text parts.
func (m Message) Text() string {
	if len(m.Parts) == 0 {
		return m.Content
	}
	var b strings.Builder
	for _, p := range m.Parts {
		if p.Type == PartText {
			b.WriteString(p.Text)
		}
	}
	if b.Len() == 0 {
		return m.Content
	}
	return b.String()
}

// ToolDefinition describes a tool the model can invoke.
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema string `json:"inputSchema"` // JSON Schema string
}

// Request is the input to a Complete or Stream call.
type Request struct {
	Model       string           `json:"model,omitempty"`
	System      string           `json:"system,omitempty"`
	Messages    []Message        `json:"messages"`
	Tools       []ToolDefinition `json:"tools,omitempty"`
	MaxTokens   int              `json:"maxTokens,omitempty"`
	Temperature *float64         `json:"temperature,omitempty"`
	Stream      bool             `json:"stream,omitempty"`
}

// ToolCall is a model request to invoke a tool.
type ToolCall struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// Response is the result of a completion step.
type Response struct {
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"toolCalls,omitempty"`
	StopReason string     `json:"stopReason,omitempty"`
	Usage      Usage      `json:"usage"`
	Model      string     `json:"model,omitempty"`
}

// Stream event types.
const (
	EventDelta    = "delta"
	EventToolCall = "tool_call"
	EventDone     = "done"
	EventError    = "error"
)

// StreamEvent is a chunk from a streaming completion.
type StreamEvent struct {
	Type     string    `json:"type"`
	Content  string    `json:"content,omitempty"`  // text delta (type="delta")
	ToolCall *ToolCall `json:"toolCall,omitempty"` // type="tool_call"
	Error    string    `json:"error,omitempty"`    // type="error"
	Response *Response `json:"response,omitempty"` // type="done"
}

// Client is the interface all model providers implement.
type Client interface {
	// Complete sends a request and returns the full response.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Stream sends a request and returns a channel of streaming events.
	// The channel is closed after a "done" or "error" event.
	Stream(ctx context.Context, req Request) (<-chan StreamEvent, error)

	// Name returns the provider name (e.g., "openai", "anthropic").
	Name() string
}
