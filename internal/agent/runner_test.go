package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlabs/agent-workshop/internal/demo"
	"github.com/finlabs/agent-workshop/internal/llm"
	"github.com/finlabs/agent-workshop/internal/logging"
	"github.com/finlabs/agent-workshop/internal/portfolio"
	"github.com/finlabs/agent-workshop/internal/tools"
)

func newTestRunner(t *testing.T, mock *llm.MockClient) *Runner {
	t.Helper()
	providers := llm.NewRegistry(logging.Nop())
	providers.Register("mock", mock)
	providers.SetFallback("mock")

	catalog := tools.NewWorkshopRegistry(portfolio.NewStore(), "", logging.Nop())
	return NewRunner(providers, catalog, logging.Nop())
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	for ev := range events {
		out = append(out, ev)
	}
	return out
}

func eventTypes(events []Event) []string {
	types := make([]string, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestRunChatPlainResponse(t *testing.T) {
	mock := llm.NewMockClient(&llm.Response{
		Content:    "2 + 2 = 4",
		StopReason: "stop",
		Usage:      llm.Usage{InputTokens: 10, OutputTokens: 5},
	})
	runner := newTestRunner(t, mock)

	cfg, ok := demo.Get("math-basic")
	require.True(t, ok)

	events, err := runner.RunChat(context.Background(), cfg, []llm.Message{
		llm.NewTextMessage(llm.RoleUser, "What is 2+2?"),
	})
	require.NoError(t, err)

	got := collect(t, events)
	require.Equal(t, []string{EventTextDelta, EventFinish}, eventTypes(got))
	assert.Equal(t, "2 + 2 = 4", got[0].Delta)
	assert.Equal(t, "stop", got[1].FinishReason)
	require.NotNil(t, got[1].Usage)
	assert.Equal(t, 10, got[1].Usage.InputTokens)
	assert.Equal(t, int64(1), mock.StreamCalls())
}

func TestRunChatToolLoop(t *testing.T) {
	mock := llm.NewMockClient(
		&llm.Response{
			ToolCalls: []llm.ToolCall{{
				ID:    "call_1",
				Name:  "add",
				Input: json.RawMessage(`{"a": 2, "b": 3}`),
			}},
			StopReason: "tool_calls",
			Usage:      llm.Usage{InputTokens: 20, OutputTokens: 8},
		},
		&llm.Response{
			Content:    "The sum is 5.",
			StopReason: "stop",
			Usage:      llm.Usage{InputTokens: 30, OutputTokens: 6},
		},
	)
	runner := newTestRunner(t, mock)

	cfg, ok := demo.Get("math-enhanced")
	require.True(t, ok)

	events, err := runner.RunChat(context.Background(), cfg, []llm.Message{
		llm.NewTextMessage(llm.RoleUser, "Add 2 and 3"),
	})
	require.NoError(t, err)

	got := collect(t, events)
	require.Equal(t, []string{EventToolCall, EventToolResult, EventTextDelta, EventFinish}, eventTypes(got))

	assert.Equal(t, "call_1", got[0].ToolCallID)
	assert.Equal(t, "add", got[0].ToolName)

	var result map[string]any
	require.NoError(t, json.Unmarshal(got[1].Output, &result))
	assert.Equal(t, 5.0, result["result"])

	// Usage accumulates across both steps.
	assert.Equal(t, 50, got[3].Usage.InputTokens)
	assert.Equal(t, 14, got[3].Usage.OutputTokens)
	assert.Equal(t, int64(2), mock.StreamCalls())

	// The second request carries the tool exchange in the history.
	msgs := mock.LastRequest.Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, llm.RoleAssistant, msgs[1].Role)
	require.Len(t, msgs[1].Parts, 1)
	assert.Equal(t, llm.PartToolCall, msgs[1].Parts[0].Type)
	assert.Equal(t, llm.RoleTool, msgs[2].Role)
	assert.Equal(t, llm.PartToolResult, msgs[2].Parts[0].Type)
	assert.Equal(t, "call_1", msgs[2].Parts[0].ToolCallID)
}

func TestRunChatAppliesDefaults(t *testing.T) {
	mock := llm.NewMockClient()
	runner := newTestRunner(t, mock)

	cfg := demo.Config{ID: "test", SystemPrompt: "be helpful", Model: "gpt-4.1"}
	events, err := runner.RunChat(context.Background(), cfg, []llm.Message{
		llm.NewTextMessage(llm.RoleUser, "hi"),
	})
	require.NoError(t, err)
	collect(t, events)

	req := mock.LastRequest
	assert.Equal(t, 2048, req.MaxTokens)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.7, *req.Temperature)
	assert.Equal(t, "be helpful", req.System)
	assert.True(t, req.Stream)
}

func TestRunChatRespectsConfiguredSettings(t *testing.T) {
	mock := llm.NewMockClient()
	runner := newTestRunner(t, mock)

	cfg, ok := demo.Get("knowledge-enhanced")
	require.True(t, ok)

	events, err := runner.RunChat(context.Background(), cfg, []llm.Message{
		llm.NewTextMessage(llm.RoleUser, "hi"),
	})
	require.NoError(t, err)
	collect(t, events)

	req := mock.LastRequest
	assert.Equal(t, 16000, req.MaxTokens)
	assert.Len(t, req.Tools, 3)
}

func TestRunChatStepBound(t *testing.T) {
	// A script whose last response always requests another tool call.
	mock := llm.NewMockClient(&llm.Response{
		ToolCalls: []llm.ToolCall{{
			ID:    "call_loop",
			Name:  "add",
			Input: json.RawMessage(`{"a": 1, "b": 1}`),
		}},
		StopReason: "tool_calls",
	})
	runner := newTestRunner(t, mock)

	cfg := demo.Config{ID: "test", Model: "gpt-4.1", Tools: []string{"add"}, MaxSteps: 3}
	events, err := runner.RunChat(context.Background(), cfg, []llm.Message{
		llm.NewTextMessage(llm.RoleUser, "loop"),
	})
	require.NoError(t, err)

	got := collect(t, events)
	assert.Equal(t, int64(3), mock.StreamCalls())
	assert.Equal(t, EventFinish, got[len(got)-1].Type)
}

func TestRunChatUnknownProvider(t *testing.T) {
	providers := llm.NewRegistry(logging.Nop())
	catalog := tools.NewWorkshopRegistry(portfolio.NewStore(), "", logging.Nop())
	runner := NewRunner(providers, catalog, logging.Nop())

	cfg := demo.Config{ID: "test", Model: "gpt-4.1"}
	_, err := runner.RunChat(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestRunChatStreamError(t *testing.T) {
	mock := llm.NewMockClient()
	mock.Err = errors.New("rate limited")
	runner := newTestRunner(t, mock)

	cfg := demo.Config{ID: "test", Model: "gpt-4.1"}
	events, err := runner.RunChat(context.Background(), cfg, []llm.Message{
		llm.NewTextMessage(llm.RoleUser, "hi"),
	})
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 1)
	assert.Equal(t, EventError, got[0].Type)
	assert.Equal(t, "rate limited", got[0].Error)
}

func TestRunChatUnscopedToolCall(t *testing.T) {
	mock := llm.NewMockClient(
		&llm.Response{
			ToolCalls: []llm.ToolCall{{
				ID:    "call_x",
				Name:  "multiply",
				Input: json.RawMessage(`{"a": 2, "b": 3}`),
			}},
			StopReason: "tool_calls",
		},
		&llm.Response{Content: "done", StopReason: "stop"},
	)
	runner := newTestRunner(t, mock)

	// math-enhanced deliberately lacks multiply.
	cfg, ok := demo.Get("math-enhanced")
	require.True(t, ok)

	events, err := runner.RunChat(context.Background(), cfg, []llm.Message{
		llm.NewTextMessage(llm.RoleUser, "Multiply 2 by 3"),
	})
	require.NoError(t, err)

	got := collect(t, events)
	require.Equal(t, []string{EventToolCall, EventToolResult, EventTextDelta, EventFinish}, eventTypes(got))

	var result map[string]string
	require.NoError(t, json.Unmarshal(got[1].Output, &result))
	assert.Contains(t, result["error"], "multiply")
}

func TestRunChatToolInputError(t *testing.T) {
	mock := llm.NewMockClient(
		&llm.Response{
			ToolCalls: []llm.ToolCall{{
				ID:    "call_bad",
				Name:  "add",
				Input: json.RawMessage(`{"a": 2}`),
			}},
			StopReason: "tool_calls",
		},
		&llm.Response{Content: "done", StopReason: "stop"},
	)
	runner := newTestRunner(t, mock)

	cfg := demo.Config{ID: "test", Model: "gpt-4.1", Tools: []string{"add"}}
	events, err := runner.RunChat(context.Background(), cfg, []llm.Message{
		llm.NewTextMessage(llm.RoleUser, "Add"),
	})
	require.NoError(t, err)

	got := collect(t, events)
	var result map[string]string
	require.NoError(t, json.Unmarshal(got[1].Output, &result))
	assert.NotEmpty(t, result["error"])
}

func TestRunPDFSettings(t *testing.T) {
	mock := llm.NewMockClient(&llm.Response{Content: "analysis", StopReason: "stop"})
	runner := newTestRunner(t, mock)

	events, err := runner.RunPDF(context.Background(), "excel", []llm.Message{
		llm.NewTextMessage(llm.RoleUser, "Analyze this document"),
	})
	require.NoError(t, err)
	collect(t, events)

	req := mock.LastRequest
	assert.Equal(t, demo.PDFModel, req.Model)
	assert.Equal(t, demo.PDFMaxTokens, req.MaxTokens)
	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.3, *req.Temperature)
	require.Len(t, req.Tools, 1)
	assert.Equal(t, "generate-excel", req.Tools[0].Name)

	// The format instruction rides on the last user message.
	last := req.Messages[len(req.Messages)-1]
	assert.Contains(t, last.Text(), "MUST call the generate-excel tool")
}

func TestRunPDFAppendsToTextPart(t *testing.T) {
	mock := llm.NewMockClient(&llm.Response{Content: "analysis", StopReason: "stop"})
	runner := newTestRunner(t, mock)

	msg := llm.Message{Role: llm.RoleUser, Parts: []llm.Part{
		{Type: llm.PartText, Text: "Analyze this"},
		{Type: llm.PartFile, Filename: "report.pdf", MediaType: "application/pdf", Data: "JVBERi0="},
	}}
	events, err := runner.RunPDF(context.Background(), "markdown", []llm.Message{msg})
	require.NoError(t, err)
	collect(t, events)

	parts := mock.LastRequest.Messages[0].Parts
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].Text, "generate-markdown")
	assert.Equal(t, llm.PartFile, parts[1].Type)
}

func TestRunPDFUnknownFormat(t *testing.T) {
	mock := llm.NewMockClient()
	runner := newTestRunner(t, mock)

	_, err := runner.RunPDF(context.Background(), "csv", nil)
	assert.Error(t, err)
	assert.Equal(t, int64(0), mock.Calls())
}
