package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

const openAIDefaultBaseURL = "https://api.openai.com/v1"

// OpenAIClient is a direct HTTP client for the OpenAI chat completions API
// with native tool calling and SSE streaming.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIClient creates a new OpenAI API client.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: openAIDefaultBaseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string { return "openai" }

// Complete sends a non-streaming completion request.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (*Response, error) {
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
		return nil, &ProviderError{Provider: "openai", Code: resp.StatusCode, Message: string(respBody)}
	}

	var result openAIResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result.toResponse(), nil
}

// Stream sends a streaming completion request. Text deltas are emitted as
// they arrive; tool calls are accumulated from argument fragments and
// emitted once complete, followed by a final done event.
func (c *OpenAIClient) Stream(ctx context.Context, req Request) (<-chan StreamEvent, error) {
	payload, err := json.Marshal(c.buildRequestBody(req, true))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	eventChan := make(chan StreamEvent)
	go c.streamRequest(ctx, eventChan, payload, req.Model)
	return eventChan, nil
}

func (c *OpenAIClient) newRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	return httpReq, nil
}

func (c *OpenAIClient) buildRequestBody(req Request, stream bool) map[string]any {
	body := map[string]any{
		"model":    req.Model,
		"messages": convertMessagesToOpenAI(req),
	}

	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}
	if req.Temperature != nil {
		body["temperature"] = *req.Temperature
	}
	if stream {
		body["stream"] = true
		body["stream_options"] = map[string]any{"include_usage": true}
	}

	if len(req.Tools) > 0 {
		tools := make([]map[string]any, len(req.Tools))
		for i, t := range req.Tools {
			tools[i] = map[string]any{
				"type": "function",
				"function": map[string]any{
					"name":        t.Name,
					"description": t.Description,
					"parameters":  parseJSONSchema(t.InputSchema),
				},
			}
		}
		body["tools"] = tools
	}

	return body
}

// convertMessagesToOpenAI maps the provider-neutral message model onto the
// chat completions wire shape. Tool results become role="tool" messages,
// one per result part.
func convertMessagesToOpenAI(req Request) []map[string]any {
	out := make([]map[string]any, 0, len(req.Messages)+1)

	if req.System != "" {
		out = append(out, map[string]any{"role": "system", "content": req.System})
	}

	for _, m := range req.Messages {
		switch {
		case hasPartType(m, PartToolResult):
			for _, p := range m.Parts {
				if p.Type != PartToolResult {
					continue
				}
				out = append(out, map[string]any{
					"role":         "tool",
					"tool_call_id": p.ToolCallID,
					"content":      string(p.Output),
				})
			}

		case m.Role == RoleAssistant:
			entry := map[string]any{"role": "assistant"}
			if text := m.Text(); text != "" {
				entry["content"] = text
			}
			var calls []map[string]any
			for _, p := range m.Parts {
				if p.Type != PartToolCall {
					continue
				}
				calls = append(calls, map[string]any{
					"id":   p.ToolCallID,
					"type": "function",
					"function": map[string]any{
						"name":      p.ToolName,
						"arguments": string(p.Input),
					},
				})
			}
			if len(calls) > 0 {
				entry["tool_calls"] = calls
			}
			out = append(out, entry)

		default:
			if len(m.Parts) == 0 {
				out = append(out, map[string]any{"role": m.Role, "content": m.Content})
				continue
			}
			var content []map[string]any
			for _, p := range m.Parts {
				switch p.Type {
				case PartText:
					content = append(content, map[string]any{"type": "text", "text": p.Text})
				case PartFile:
					content = append(content, map[string]any{
						"type": "file",
						"file": map[string]any{
							"filename":  p.Filename,
							"file_data": "data:" + p.MediaType + ";base64," + p.Data,
						},
					})
				}
			}
			out = append(out, map[string]any{"role": m.Role, "content": content})
		}
	}

	return out
}

func hasPartType(m Message, partType string) bool {
	for _, p := range m.Parts {
		if p.Type == partType {
			return true
		}
	}
	return false
}

func (c *OpenAIClient) streamRequest(ctx context.Context, eventChan chan StreamEvent, payload []byte, model string) {
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
		pending     = map[int]*pendingToolCall{}
	)

	scanner := newServerSentEventScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		dataStr := strings.TrimPrefix(line, "data: ")
		if dataStr == "[DONE]" {
			break
		}

		var chunk openAIStreamChunk
		if err := json.Unmarshal([]byte(dataStr), &chunk); err != nil {
			continue
		}

		if chunk.Usage != nil {
			usage.InputTokens = chunk.Usage.PromptTokens
			usage.OutputTokens = chunk.Usage.CompletionTokens
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		choice := chunk.Choices[0]
		if choice.FinishReason != "" {
			stopReason = choice.FinishReason
		}

		if choice.Delta.Content != "" {
			fullContent.WriteString(choice.Delta.Content)
			eventChan <- StreamEvent{Type: EventDelta, Content: choice.Delta.Content}
		}

		for _, tc := range choice.Delta.ToolCalls {
			pc, ok := pending[tc.Index]
			if !ok {
				pc = &pendingToolCall{}
				pending[tc.Index] = pc
			}
			if tc.ID != "" {
				pc.id = tc.ID
			}
			if tc.Function.Name != "" {
				pc.name = tc.Function.Name
			}
			pc.args.WriteString(tc.Function.Arguments)
		}
	}

	toolCalls := collectToolCalls(pending)
	for i := range toolCalls {
		eventChan <- StreamEvent{Type: EventToolCall, ToolCall: &toolCalls[i]}
	}

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

// pendingToolCall accumulates a streamed tool call's argument fragments.
type pendingToolCall struct {
	id   string
	name string
	args strings.Builder
}

// collectToolCalls finalizes accumulated tool calls in index order.
func collectToolCalls(pending map[int]*pendingToolCall) []ToolCall {
	if len(pending) == 0 {
		return nil
	}
	indexes := make([]int, 0, len(pending))
	for i := range pending {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	calls := make([]ToolCall, 0, len(pending))
	for _, i := range indexes {
		pc := pending[i]
		input := pc.args.String()
		if input == "" {
			input = "{}"
		}
		calls = append(calls, ToolCall{
			ID:    pc.id,
			Name:  pc.name,
			Input: json.RawMessage(input),
		})
	}
	return calls
}

// API response structures

type openAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content   string           `json:"content"`
			ToolCalls []openAIToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *openAIUsage `json:"usage"`
}

type openAIToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type openAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

type openAIStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content   string `json:"content"`
			ToolCalls []struct {
				Index    int    `json:"index"`
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *openAIUsage `json:"usage"`
}

func (r *openAIResponse) toResponse() *Response {
	resp := &Response{Model: r.Model}
	if r.Usage != nil {
		resp.Usage = Usage{InputTokens: r.Usage.PromptTokens, OutputTokens: r.Usage.CompletionTokens}
	}
	if len(r.Choices) == 0 {
		return resp
	}

	choice := r.Choices[0]
	resp.Content = choice.Message.Content
	resp.StopReason = choice.FinishReason
	for _, tc := range choice.Message.ToolCalls {
		input := tc.Function.Arguments
		if input == "" {
			input = "{}"
		}
		resp.ToolCalls = append(resp.ToolCalls, ToolCall{
			ID:    tc.ID,
			Name:  tc.Function.Name,
			Input: json.RawMessage(input),
		})
	}
	return resp
}
