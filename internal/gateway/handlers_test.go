package gateway

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlabs/agent-workshop/internal/agent"
	"github.com/finlabs/agent-workshop/internal/config"
	"github.com/finlabs/agent-workshop/internal/llm"
	"github.com/finlabs/agent-workshop/internal/logging"
	"github.com/finlabs/agent-workshop/internal/portfolio"
	"github.com/finlabs/agent-workshop/internal/tools"
)

func newTestServer(t *testing.T, mock *llm.MockClient) (*Server, *portfolio.Store) {
	t.Helper()

	cfg := config.Defaults()
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}

	providers := llm.NewRegistry(logging.Nop())
	providers.Register("mock", mock)
	providers.SetFallback("mock")

	store := portfolio.NewStore()
	catalog := tools.NewWorkshopRegistry(store, "", logging.Nop())
	runner := agent.NewRunner(providers, catalog, logging.Nop())

	return New(cfg, logging.Nop(), WithRunner(runner), WithPortfolio(store)), store
}

func decodeSSE(t *testing.T, body string) []agent.Event {
	t.Helper()
	var events []agent.Event
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev agent.Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		events = append(events, ev)
	}
	return events
}

func TestChatUnknownDemoMakesNoModelCall(t *testing.T) {
	mock := llm.NewMockClient()
	srv, _ := newTestServer(t, mock)

	body := `{"demoId": "math-advanced", "messages": [{"role": "user", "content": "hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Demo 'math-advanced' not found")
	assert.Equal(t, int64(0), mock.Calls())
}

func TestChatStreamsEvents(t *testing.T) {
	mock := llm.NewMockClient(&llm.Response{
		Content:    "Hello there",
		StopReason: "stop",
		Usage:      llm.Usage{InputTokens: 5, OutputTokens: 3},
	})
	srv, _ := newTestServer(t, mock)

	body := `{"demoId": "math-basic", "messages": [{"role": "user", "content": "hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, int64(1), mock.StreamCalls())

	events := decodeSSE(t, rec.Body.String())
	require.Len(t, events, 2)
	assert.Equal(t, agent.EventTextDelta, events[0].Type)
	assert.Equal(t, "Hello there", events[0].Delta)
	assert.Equal(t, agent.EventFinish, events[1].Type)
	assert.Equal(t, "stop", events[1].FinishReason)
}

func TestChatMalformedBody(t *testing.T) {
	mock := llm.NewMockClient()
	srv, _ := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int64(0), mock.Calls())
}

func TestPDFInvalidFormatMakesNoModelCall(t *testing.T) {
	mock := llm.NewMockClient()
	srv, _ := newTestServer(t, mock)

	body := `{"outputFormat": "csv", "messages": [{"role": "user", "content": "analyze"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/pdf", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid output format")
	assert.Equal(t, int64(0), mock.Calls())
}

func TestPDFStreamsToolEvents(t *testing.T) {
	mock := llm.NewMockClient(&llm.Response{
		ToolCalls: []llm.ToolCall{{
			ID:    "call_md",
			Name:  "generate-markdown",
			Input: json.RawMessage(`{"title": "Report", "content": "## Summary", "filename": "report.md"}`),
		}},
		StopReason: "tool_calls",
	}, &llm.Response{
		Content:    "Report generated.",
		StopReason: "stop",
	})
	srv, _ := newTestServer(t, mock)

	body := `{"outputFormat": "markdown", "messages": [{"role": "user", "content": "analyze"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/pdf", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	events := decodeSSE(t, rec.Body.String())

	var types []string
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []string{agent.EventToolCall, agent.EventToolResult, agent.EventTextDelta, agent.EventFinish}, types)
	assert.Equal(t, "generate-markdown", events[0].ToolName)
}

func TestPortfolioEndpoints(t *testing.T) {
	mock := llm.NewMockClient()
	srv, store := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var state portfolio.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	require.Len(t, state.Companies, 2)
	assert.Equal(t, "TechFlow AI", state.Companies[0].Name)

	store.AddUpdate(portfolio.UpdateInput{CompanyName: "NewCo"})

	req = httptest.NewRequest(http.MethodPost, "/api/portfolio/reset", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
	assert.Len(t, store.Snapshot().Companies, 2)
}

func TestHealthEndpoint(t *testing.T) {
	mock := llm.NewMockClient()
	srv, _ := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestUnknownRoute(t *testing.T) {
	mock := llm.NewMockClient()
	srv, _ := newTestServer(t, mock)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
