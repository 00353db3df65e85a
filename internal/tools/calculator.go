package tools

import (
	"context"
	"encoding/json"
	"math"

	"github.com/expr-lang/expr"
)

const calculatorExpressionDesc = "Mathematical expression using numbers, operators (+, -, *, /, ^), parentheses, and functions (sqrt, sin, cos, log, etc.)"

func numberSchema(aDesc, bDesc string) string {
	return objectSchema(map[string]Property{
		"a": {Type: "number", Description: aDesc},
		"b": {Type: "number", Description: bDesc},
	}, "a", "b")
}

type binaryInput struct {
	A *float64 `json:"a"`
	B *float64 `json:"b"`
}

func (in binaryInput) validate() error {
	if in.A == nil || in.B == nil {
		return errMissingOperand
	}
	return nil
}

var errMissingOperand = toolError("both a and b are required")

type toolError string

func (e toolError) Error() string { return string(e) }

// NewAddTool adds two numbers.
func NewAddTool() Tool {
	return newTool("add", "Add two numbers together",
		numberSchema("First number", "Second number"),
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in binaryInput
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if err := in.validate(); err != nil {
				return nil, err
			}
			return map[string]any{"operation": "addition", "a": *in.A, "b": *in.B, "result": *in.A + *in.B}, nil
		})
}

// NewSubtractTool subtracts b from a.
func NewSubtractTool() Tool {
	return newTool("subtract", "Subtract one number from another",
		numberSchema("First number (minuend)", "Second number (subtrahend)"),
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in binaryInput
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if err := in.validate(); err != nil {
				return nil, err
			}
			return map[string]any{"operation": "subtraction", "a": *in.A, "b": *in.B, "result": *in.A - *in.B}, nil
		})
}

// NewMultiplyTool multiplies two numbers.
func NewMultiplyTool() Tool {
	return newTool("multiply", "Multiply two numbers together",
		numberSchema("First number", "Second number"),
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in binaryInput
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if err := in.validate(); err != nil {
				return nil, err
			}
			return map[string]any{"operation": "multiplication", "a": *in.A, "b": *in.B, "result": *in.A * *in.B}, nil
		})
}

// NewDivideTool divides a by b. Division by zero is reported inside the
// payload so the model can recover.
func NewDivideTool() Tool {
	return newTool("divide", "Divide one number by another",
		numberSchema("Dividend (number to be divided)", "Divisor (number to divide by)"),
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in binaryInput
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}
			if err := in.validate(); err != nil {
				return nil, err
			}
			if *in.B == 0 {
				return map[string]any{"operation": "division", "a": *in.A, "b": *in.B, "error": "Cannot divide by zero"}, nil
			}
			return map[string]any{"operation": "division", "a": *in.A, "b": *in.B, "result": *in.A / *in.B}, nil
		})
}

// asFloat widens any numeric expression value to float64. Expression
// evaluation produces int for integer literals and arithmetic, so math
// functions must accept both.
func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, toolError("expected a number")
	}
}

func mathFn(f func(float64) float64) func(any) (any, error) {
	return func(v any) (any, error) {
		n, err := asFloat(v)
		if err != nil {
			return nil, err
		}
		return f(n), nil
	}
}

func mathFn2(f func(float64, float64) float64) func(any, any) (any, error) {
	return func(a, b any) (any, error) {
		x, err := asFloat(a)
		if err != nil {
			return nil, err
		}
		y, err := asFloat(b)
		if err != nil {
			return nil, err
		}
		return f(x, y), nil
	}
}

// calculatorEnv exposes the math functions expressions may call.
var calculatorEnv = map[string]any{
	"sqrt":  mathFn(math.Sqrt),
	"sin":   mathFn(math.Sin),
	"cos":   mathFn(math.Cos),
	"tan":   mathFn(math.Tan),
	"log":   mathFn(math.Log),
	"log10": mathFn(math.Log10),
	"exp":   mathFn(math.Exp),
	"abs":   mathFn(math.Abs),
	"floor": mathFn(math.Floor),
	"ceil":  mathFn(math.Ceil),
	"round": mathFn(math.Round),
	"pow":   mathFn2(math.Pow),
	"pi":    math.Pi,
	"e":     math.E,
}

// NewCalculatorTool evaluates free-form mathematical expressions.
func NewCalculatorTool() Tool {
	description := "Evaluate mathematical expressions, including advanced functions.\n\n" +
		"Examples:\n" +
		"- Compound interest: 10000 * (1.07^15)\n" +
		"- Square roots: sqrt(386154294354481)\n" +
		"- Percentages: 48329 * 0.237\n" +
		"- Trigonometry: sin(pi/2)\n" +
		"- Powers: 2^10"

	schema := objectSchema(map[string]Property{
		"expression": {Type: "string", Description: calculatorExpressionDesc},
	}, "expression")

	return newTool("calculator", description, schema,
		func(ctx context.Context, input json.RawMessage) (any, error) {
			var in struct {
				Expression string `json:"expression"`
			}
			if err := decodeInput(input, &in); err != nil {
				return nil, err
			}

			result, err := evaluateExpression(in.Expression)
			if err != nil {
				return map[string]any{
					"expression": in.Expression,
					"error":      "Unable to calculate this expression: " + err.Error(),
				}, nil
			}
			return map[string]any{"expression": in.Expression, "result": result}, nil
		})
}

func evaluateExpression(expression string) (float64, error) {
	out, err := expr.Eval(expression, calculatorEnv)
	if err != nil {
		return 0, err
	}

	var result float64
	switch v := out.(type) {
	case float64:
		result = v
	case int:
		result = float64(v)
	case int64:
		result = float64(v)
	default:
		return 0, toolError("expression did not produce a number")
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, toolError("invalid calculation result")
	}
	return result, nil
}
