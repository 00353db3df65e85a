// Package agent drives multi-step conversations: it resolves the model
// provider, scopes the tool set for a demo, relays streamed output, and
// runs the tool-call loop until the model stops asking for tools.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/finlabs/agent-workshop/internal/demo"
	"github.com/finlabs/agent-workshop/internal/llm"
	"github.com/finlabs/agent-workshop/internal/logging"
	"github.com/finlabs/agent-workshop/internal/tools"
)

// Defaults applied when a demo config leaves a knob unset.
const (
	defaultMaxTokens   = 2048
	defaultTemperature = 0.7
	defaultMaxSteps    = 5
)

// Event types relayed to clients.
const (
	EventTextDelta  = "text-delta"
	EventToolCall   = "tool-call"
	EventToolResult = "tool-result"
	EventError      = "error"
	EventFinish     = "finish"
)

// Event is one unit of streamed agent output.
type Event struct {
	Type string `json:"type"`

	// Text delta (type="text-delta")
	Delta string `json:"delta,omitempty"`

	// Tool invocation and result (type="tool-call" / "tool-result")
	ToolCallID string          `json:"toolCallId,omitempty"`
	ToolName   string          `json:"toolName,omitempty"`
	Input      json.RawMessage `json:"input,omitempty"`
	Output     json.RawMessage `json:"output,omitempty"`

	// Failure detail (type="error")
	Error string `json:"error,omitempty"`

	// Completion metadata (type="finish")
	FinishReason string     `json:"finishReason,omitempty"`
	Usage        *llm.Usage `json:"usage,omitempty"`
}

// Runner executes chat and PDF analysis runs.
type Runner struct {
	providers *llm.Registry
	catalog   *tools.Registry
	log       *logging.Logger
}

// NewRunner creates a runner over the given provider registry and tool
// catalog.
func NewRunner(providers *llm.Registry, catalog *tools.Registry, log *logging.Logger) *Runner {
	return &Runner{
		providers: providers,
		catalog:   catalog,
		log:       log.Sub("agent"),
	}
}

// RunChat executes a demo conversation. The returned channel is closed
// after a finish or error event. Provider resolution failures are
// returned synchronously so callers can refuse the request before any
// output is streamed.
func (r *Runner) RunChat(ctx context.Context, cfg demo.Config, messages []llm.Message) (<-chan Event, error) {
	client, err := r.providers.Resolve(cfg.Model)
	if err != nil {
		return nil, err
	}

	scoped := r.catalog.Scope(cfg.Tools)

	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	req := llm.Request{
		Model:       cfg.Model,
		System:      cfg.SystemPrompt,
		Tools:       tools.Definitions(scoped),
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Stream:      true,
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = defaultMaxTokens
	}
	if req.Temperature == nil {
		t := defaultTemperature
		req.Temperature = &t
	}

	events := make(chan Event)
	go r.run(ctx, events, client, req, messages, scoped, maxSteps, cfg.ID)
	return events, nil
}

// RunPDF executes a document analysis run: fixed model and sampling, a
// single generator tool, and the format instruction appended to the last
// user message.
func (r *Runner) RunPDF(ctx context.Context, outputFormat string, messages []llm.Message) (<-chan Event, error) {
	instruction, ok := demo.PDFFormatInstructions[outputFormat]
	if !ok {
		return nil, fmt.Errorf("unsupported output format %q", outputFormat)
	}

	client, err := r.providers.Resolve(demo.PDFModel)
	if err != nil {
		return nil, err
	}

	scoped := r.catalog.Scope([]string{demo.PDFTool[outputFormat]})

	req := llm.Request{
		Model:       demo.PDFModel,
		System:      demo.PDFSystemPrompts[outputFormat],
		Tools:       tools.Definitions(scoped),
		MaxTokens:   demo.PDFMaxTokens,
		Temperature: demo.PDFTemperature,
		Stream:      true,
	}

	events := make(chan Event)
	go r.run(ctx, events, client, req, appendInstruction(messages, instruction), scoped, 2, "pdf-"+outputFormat)
	return events, nil
}

// appendInstruction adds text to the final user message, preferring its
// last text part.
func appendInstruction(messages []llm.Message, instruction string) []llm.Message {
	out := append([]llm.Message(nil), messages...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Role != llm.RoleUser {
			continue
		}
		m := out[i]
		if len(m.Parts) > 0 {
			parts := append([]llm.Part(nil), m.Parts...)
			appended := false
			for j := len(parts) - 1; j >= 0; j-- {
				if parts[j].Type == llm.PartText {
					parts[j].Text += instruction
					appended = true
					break
				}
			}
			if !appended {
				parts = append(parts, llm.Part{Type: llm.PartText, Text: instruction})
			}
			m.Parts = parts
		} else {
			m.Content += instruction
		}
		out[i] = m
		break
	}
	return out
}

func (r *Runner) run(ctx context.Context, events chan<- Event, client llm.Client, req llm.Request, messages []llm.Message, scoped []tools.Tool, maxSteps int, runID string) {
	defer close(events)

	log := r.log.Sub(runID)
	history := append([]llm.Message(nil), messages...)

	byName := make(map[string]tools.Tool, len(scoped))
	for _, t := range scoped {
		byName[t.Name()] = t
	}

	var totalUsage llm.Usage
	stopReason := ""

	for step := 0; step < maxSteps; step++ {
		req.Messages = history

		stream, err := client.Stream(ctx, req)
		if err != nil {
			log.Error().Err(err).Msg("stream request failed")
			events <- Event{Type: EventError, Error: err.Error()}
			return
		}

		var resp *llm.Response
		for ev := range stream {
			switch ev.Type {
			case llm.EventDelta:
				events <- Event{Type: EventTextDelta, Delta: ev.Content}
			case llm.EventToolCall:
				events <- Event{
					Type:       EventToolCall,
					ToolCallID: ev.ToolCall.ID,
					ToolName:   ev.ToolCall.Name,
					Input:      ev.ToolCall.Input,
				}
			case llm.EventError:
				log.Error().Str("error", ev.Error).Msg("model stream error")
				events <- Event{Type: EventError, Error: ev.Error}
				return
			case llm.EventDone:
				resp = ev.Response
			}
		}
		if resp == nil {
			events <- Event{Type: EventError, Error: "model stream ended without a response"}
			return
		}

		totalUsage.InputTokens += resp.Usage.InputTokens
		totalUsage.OutputTokens += resp.Usage.OutputTokens
		stopReason = resp.StopReason

		if len(resp.ToolCalls) == 0 {
			break
		}

		outputs := r.executeToolCalls(ctx, byName, resp.ToolCalls)
		for i, tc := range resp.ToolCalls {
			events <- Event{
				Type:       EventToolResult,
				ToolCallID: tc.ID,
				ToolName:   tc.Name,
				Output:     outputs[i],
			}
		}

		history = append(history, toolCallMessage(resp), toolResultMessage(resp.ToolCalls, outputs))
	}

	events <- Event{Type: EventFinish, FinishReason: stopReason, Usage: &totalUsage}
}

// executeToolCalls runs all calls from one step concurrently. Failures
// become error payloads so the model can see what went wrong.
func (r *Runner) executeToolCalls(ctx context.Context, byName map[string]tools.Tool, calls []llm.ToolCall) []json.RawMessage {
	outputs := make([]json.RawMessage, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			outputs[i] = r.executeOne(gctx, byName, call)
			return nil
		})
	}
	_ = g.Wait()
	return outputs
}

func (r *Runner) executeOne(ctx context.Context, byName map[string]tools.Tool, call llm.ToolCall) json.RawMessage {
	tool, ok := byName[call.Name]
	if !ok {
		r.log.Warn().Str("tool", call.Name).Msg("model requested unscoped tool")
		return errorPayload(fmt.Sprintf("tool %q is not available", call.Name))
	}

	result, err := tool.Execute(ctx, call.Input)
	if err != nil {
		r.log.Warn().Err(err).Str("tool", call.Name).Msg("tool execution failed")
		return errorPayload(err.Error())
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return errorPayload("tool produced unserializable output: " + err.Error())
	}
	return payload
}

func errorPayload(msg string) json.RawMessage {
	payload, _ := json.Marshal(map[string]string{"error": msg})
	return payload
}

// toolCallMessage records the assistant turn that requested the calls.
func toolCallMessage(resp *llm.Response) llm.Message {
	msg := llm.Message{Role: llm.RoleAssistant}
	if resp.Content != "" {
		msg.Parts = append(msg.Parts, llm.Part{Type: llm.PartText, Text: resp.Content})
	}
	for _, tc := range resp.ToolCalls {
		msg.Parts = append(msg.Parts, llm.Part{
			Type:       llm.PartToolCall,
			ToolCallID: tc.ID,
			ToolName:   tc.Name,
			Input:      tc.Input,
		})
	}
	return msg
}

// toolResultMessage records the tool outputs for the next model step.
func toolResultMessage(calls []llm.ToolCall, outputs []json.RawMessage) llm.Message {
	msg := llm.Message{Role: llm.RoleTool}
	for i, tc := range calls {
		msg.Parts = append(msg.Parts, llm.Part{
			Type:       llm.PartToolResult,
			ToolCallID: tc.ID,
			ToolName:   tc.Name,
			Output:     outputs[i],
		})
	}
	return msg
}
