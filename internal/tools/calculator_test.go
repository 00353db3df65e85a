package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exec(t *testing.T, tool Tool, input string) map[string]any {
	t.Helper()
	out, err := tool.Execute(context.Background(), json.RawMessage(input))
	require.NoError(t, err)
	m, ok := out.(map[string]any)
	require.True(t, ok, "tool output should be a map")
	return m
}

func TestAddTool(t *testing.T) {
	out := exec(t, NewAddTool(), `{"a": 2, "b": 3}`)
	assert.Equal(t, "addition", out["operation"])
	assert.Equal(t, 5.0, out["result"])
}

func TestBinaryToolsRejectMissingOperands(t *testing.T) {
	for _, tool := range []Tool{NewAddTool(), NewSubtractTool(), NewMultiplyTool(), NewDivideTool()} {
		_, err := tool.Execute(context.Background(), json.RawMessage(`{"a": 1}`))
		assert.Error(t, err, tool.Name())
	}
}

func TestBinaryToolsRejectUnknownFields(t *testing.T) {
	_, err := NewAddTool().Execute(context.Background(), json.RawMessage(`{"a": 1, "b": 2, "c": 3}`))
	assert.Error(t, err)
}

func TestDivideByZeroReportedInPayload(t *testing.T) {
	out := exec(t, NewDivideTool(), `{"a": 10, "b": 0}`)
	assert.Equal(t, "Cannot divide by zero", out["error"])
	assert.NotContains(t, out, "result")
}

func TestCalculatorExpressions(t *testing.T) {
	tests := []struct {
		expression string
		want       float64
	}{
		{"2 + 3 * 4", 14},
		{"2^10", 1024},
		{"sqrt(386154294354481)", 19650809.0},
		{"48329 * 0.237", 11453.973},
		{"sin(pi/2)", 1},
		// Integer literals must widen to float64 inside function calls.
		{"pow(2, 10)", 1024},
		{"abs(0 - 5)", 5},
		{"log10(1000)", 3},
		{"floor(7.5) + ceil(2)", 9},
	}

	calc := NewCalculatorTool()
	for _, tc := range tests {
		out := exec(t, calc, `{"expression": "`+tc.expression+`"}`)
		require.NotContains(t, out, "error", tc.expression)
		assert.InDelta(t, tc.want, out["result"], 1e-6, tc.expression)
	}
}

func TestCalculatorInvalidExpression(t *testing.T) {
	out := exec(t, NewCalculatorTool(), `{"expression": "this is not math"}`)
	assert.Contains(t, out["error"], "Unable to calculate this expression")
	assert.Equal(t, "this is not math", out["expression"])
}

func TestCalculatorDivisionByZero(t *testing.T) {
	out := exec(t, NewCalculatorTool(), `{"expression": "1/0"}`)
	assert.Contains(t, out, "error")
}
