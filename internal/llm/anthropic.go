package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com/v1"
	anthropicAPIVersion     = "2023-06-01"

	// anthropicDefaultMaxTokens is used when the request does not set a
	// limit; the messages API requires max_tokens.
	anthropicDefaultMaxTokens = 4096
)

// AnthropicClient is a direct HTTP client for the Anthropic messages API.
type AnthropicClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAnthropicClient creates a new Anthropic API client.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{
		apiKey:  apiKey,
		baseURL: anthropicDefaultBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Name returns the provider name.
func (c *AnthropicClient) Name() string { return "anthropic" }

// Complete sends a non-streaming completion request.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (*Response, error) {
	payload, err := json.Marshal(c.buildRequestBody(req, false))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: "anthropic", Code: resp.StatusCode, Message: string(respBody)}
	}

	var result anthropicResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result.toResponse(), nil
}

// Stream sends a streaming completion request.
func (c *AnthropicClient) Stream(ctx context.Context, req Request) (<-chan StreamEvent, error) {
	payload, err := json.Marshal(c.buildRequestBody(req, true))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	eventChan := make(chan StreamEvent)
	go c.streamRequest(ctx, eventChan, payload, req.Model)
	return eventChan, nil
}

func (c *AnthropicClient) newRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicAPIVersion)
	return httpReq, nil
}

func (c *AnthropicClient) buildRequestBody(req Request, stream bool) map[string]any {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	body := map[string]any{
		"model":      req.Model,
		"max_tokens": maxTokens,
		"messages":   convertMessagesToAnthropic(req.Messages),
	}

	if req.System != "" {
		body["system"] = req.System
	}
	if req.Temperature != nil {
		body["temperature"] = *req.Temperature
	}
	if stream {
		body["stream"] = true
	}

	if len(req.Tools) > 0 {
		tools := make([]map[string]any, len(req.Tools))
		for i, t := range req.Tools {
			tools[i] = map[string]any{
				"name":         t.Name,
				"description":  t.Description,
				"input_schema": parseJSONSchema(t.InputSchema),
			}
		}
		body["tools"] = tools
	}

	return body
}

// convertMessagesToAnthropic maps messages onto the messages API content
// block model. Tool results become user messages with tool_result blocks;
// assistant tool calls become tool_use blocks. File parts become base64
// document blocks.
func convertMessagesToAnthropic(messages []Message) []map[string]any {
	out := make([]map[string]any, 0, len(messages))

	for _, m := range messages {
		if len(m.Parts) == 0 {
			role := m.Role
			if role == RoleSystem {
				role = RoleUser
			}
			out = append(out, map[string]any{"role": role, "content": m.Content})
			continue
		}

		var blocks []map[string]any
		role := m.Role
		for _, p := range m.Parts {
			switch p.Type {
			case PartText:
				blocks = append(blocks, map[string]any{"type": "text", "text": p.Text})
			case PartFile:
				blocks = append(blocks, map[string]any{
					"type": "document",
					"source": map[string]any{
						"type":       "base64",
						"media_type": p.MediaType,
						"data":       p.Data,
					},
				})
			case PartToolCall:
				blocks = append(blocks, map[string]any{
					"type":  "tool_use",
					"id":    p.ToolCallID,
					"name":  p.ToolName,
					"input": parseJSONSchema(string(p.Input)),
				})
			case PartToolResult:
				// Tool results must arrive in a user turn.
				role = RoleUser
				blocks = append(blocks, map[string]any{
					"type":        "tool_result",
					"tool_use_id": p.ToolCallID,
					"content":     string(p.Output),
				})
			}
		}
		out = append(out, map[string]any{"role": role, "content": blocks})
	}

	return out
}

func (c *AnthropicClient) streamRequest(ctx context.Context, eventChan chan StreamEvent, payload []byte, model string) {
	defer close(eventChan)

	httpReq, err := c.newRequest(ctx, payload)
	if err != nil {
		eventChan <- StreamEvent{Type: EventError, Error: err.Error()}
		return
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		eventChan <- StreamEvent{Type: EventError, Error: fmt.Sprintf("request failed: %v", err)}
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		eventChan <- StreamEvent{Type: EventError, Error: fmt.Sprintf("API error (%d): %s", resp.StatusCode, string(body))}
		return
	}

	var (
		fullContent strings.Builder
		usage       Usage
		stopReason  string
		toolCalls   []ToolCall

		// Current tool_use block being accumulated.
		currentTool *ToolCall
		currentArgs strings.Builder
	)

	flushTool := func() {
		if currentTool == nil {
			return
		}
		input := currentArgs.String()
		if input == "" {
			input = "{}"
		}
		currentTool.Input = json.RawMessage(input)
		toolCalls = append(toolCalls, *currentTool)
		eventChan <- StreamEvent{Type: EventToolCall, ToolCall: &toolCalls[len(toolCalls)-1]}
		currentTool = nil
		currentArgs.Reset()
	}

	scanner := newServerSentEventScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var event anthropicStreamEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
			continue
		}

		switch event.Type {
		case "content_block_start":
			if event.ContentBlock != nil && event.ContentBlock.Type == "tool_use" {
				currentTool = &ToolCall{ID: event.ContentBlock.ID, Name: event.ContentBlock.Name}
				currentArgs.Reset()
			}

		case "content_block_delta":
			if event.Delta == nil {
				continue
			}
			switch event.Delta.Type {
			case "text_delta":
				fullContent.WriteString(event.Delta.Text)
				eventChan <- StreamEvent{Type: EventDelta, Content: event.Delta.Text}
			case "input_json_delta":
				currentArgs.WriteString(event.Delta.PartialJSON)
			}

		case "content_block_stop":
			flushTool()

		case "message_delta":
			if event.Delta != nil && event.Delta.StopReason != "" {
				stopReason = event.Delta.StopReason
			}
			if event.Usage != nil {
				usage.OutputTokens = event.Usage.OutputTokens
			}

		case "message_start":
			if event.Message != nil && event.Message.Usage != nil {
				usage.InputTokens = event.Message.Usage.InputTokens
			}

		case "error":
			msg := "stream error"
			if event.ErrorDetail != nil {
				msg = event.ErrorDetail.Message
			}
			eventChan <- StreamEvent{Type: EventError, Error: msg}
			return
		}
	}

	flushTool()

	eventChan <- StreamEvent{
		Type: EventDone,
		Response: &Response{
			Content:    fullContent.String(),
			ToolCalls:  toolCalls,
			StopReason: stopReason,
			Usage:      usage,
			Model:      model,
		},
	}
}

// API response structures

type anthropicResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type  string          `json:"type"`
		Text  string          `json:"text"`
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Input json.RawMessage `json:"input"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (r *anthropicResponse) toResponse() *Response {
	resp := &Response{Model: r.Model, StopReason: r.StopReason}
	if r.Usage != nil {
		resp.Usage = Usage{InputTokens: r.Usage.InputTokens, OutputTokens: r.Usage.OutputTokens}
	}

	var content strings.Builder
	for _, block := range r.Content {
		switch block.Type {
		case "text":
			content.WriteString(block.Text)
		case "tool_use":
			input := block.Input
			if len(input) == 0 {
				input = json.RawMessage("{}")
			}
			resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: block.ID, Name: block.Name, Input: input})
		}
	}
	resp.Content = content.String()
	return resp
}

type anthropicStreamEvent struct {
	Type         string `json:"type"`
	ContentBlock *struct {
		Type string `json:"type"`
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"content_block"`
	Delta *struct {
		Type        string `json:"type"`
		Text        string `json:"text"`
		PartialJSON string `json:"partial_json"`
		StopReason  string `json:"stop_reason"`
	} `json:"delta"`
	Message *struct {
		Usage *struct {
			InputTokens int `json:"input_tokens"`
		} `json:"usage"`
	} `json:"message"`
	Usage *struct {
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	ErrorDetail *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
