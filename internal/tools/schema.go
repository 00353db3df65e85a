package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Schema is a minimal JSON Schema for tool inputs.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a single schema field.
type Property struct {
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	Enum        []string  `json:"enum,omitempty"`
	Default     any       `json:"default,omitempty"`
	Items       *Property `json:"items,omitempty"`
}

// objectSchema serializes an object schema with the given properties.
func objectSchema(props map[string]Property, required ...string) string {
	b, err := json.Marshal(Schema{Type: "object", Properties: props, Required: required})
	if err != nil {
		panic(fmt.Sprintf("tools: invalid schema: %v", err))
	}
	return string(b)
}

// decodeInput strictly decodes tool input into v. Unknown fields are
// rejected so mis-aimed tool calls fail loudly instead of silently
// dropping arguments.
func decodeInput(input json.RawMessage, v any) error {
	if len(input) == 0 {
		input = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid tool input: %w", err)
	}
	return nil
}
