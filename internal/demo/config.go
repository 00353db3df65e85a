// Package demo defines the workshop demo catalog: which system prompt,
// model, tool set, and sampling parameters each demo variant runs with.
package demo

import "sort"

// Config describes one demo variant.
type Config struct {
	ID           string
	SystemPrompt string
	Tools        []string
	Model        string
	MaxTokens    int
	Temperature  *float64
	MaxSteps     int

	// Suggestions are example prompts surfaced to workshop attendees.
	Suggestions []string
}

func temp(v float64) *float64 { return &v }

// Get returns the config for a demo id. Prompts that embed the current
// date are rendered at call time.
func Get(id string) (Config, bool) {
	cfg, ok := configs()[id]
	return cfg, ok
}

// IDs returns all demo ids in sorted order.
func IDs() []string {
	all := configs()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func configs() map[string]Config {
	return map[string]Config{
		"math-basic": {
			ID:           "math-basic",
			SystemPrompt: mathBasicPrompt,
			Tools:        []string{},
			Model:        "gpt-4.1",
			MaxSteps:     10,
			Suggestions:  mathSuggestions,
		},
		"math-enhanced": {
			ID:           "math-enhanced",
			SystemPrompt: mathEnhancedPrompt,
			Tools:        []string{"add", "subtract", "divide"},
			Model:        "gpt-4.1",
			MaxSteps:     10,
			Suggestions:  mathSuggestions,
		},
		"knowledge-basic": {
			ID:           "knowledge-basic",
			SystemPrompt: knowledgeBasicPrompt,
			Tools:        []string{},
			Model:        "gpt-4.1",
			Suggestions:  knowledgeSuggestions,
		},
		"knowledge-enhanced": {
			ID:           "knowledge-enhanced",
			SystemPrompt: knowledgeEnhancedPrompt(),
			Tools:        []string{"web-search", "client-lookup", "web-fetch"},
			Model:        "gpt-4.1",
			MaxTokens:    16000,
			Temperature:  temp(0.7),
			Suggestions:  knowledgeSuggestions,
		},
		"portfolio-read": {
			ID:           "portfolio-read",
			SystemPrompt: portfolioReadPrompt,
			Tools:        []string{"view-portfolio", "get-client-notes", "list-tasks"},
			Model:        "gpt-4.1",
			Suggestions:  portfolioSuggestions,
		},
		"portfolio-write": {
			ID:           "portfolio-write",
			SystemPrompt: portfolioWritePrompt,
			Tools: []string{
				"view-portfolio", "get-client-notes", "list-tasks",
				"add-portfolio-update", "add-client-note", "create-task", "complete-task",
			},
			Model:       "gpt-4.1",
			Suggestions: portfolioSuggestions,
		},
		"tools-focused": {
			ID:           "tools-focused",
			SystemPrompt: toolsFocusedPrompt,
			Tools:        []string{"get-stock-price", "convert-currency"},
			Model:        "gpt-3.5-turbo",
			Suggestions:  toolConfusionSuggestions,
		},
		"tools-overload": {
			ID:           "tools-overload",
			SystemPrompt: toolsOverloadPrompt,
			Tools: []string{
				"portfolio-risk-assessment",
				"tax-liability-calculator",
				"get-currency-rate",
				"calculate-exchange",
				"fetch-stock-data",
				"lookup-stock",
				"exchange-rate-history",
				"format-currency",
				"get-quote",
				"currency-calculator",
				"get-market-data",
				"perform-exchange",
				"check-price",
				"forex-convert",
				"analyze-stock",
			},
			Model:       "gpt-3.5-turbo",
			Suggestions: toolConfusionSuggestions,
		},
		"security-normal": {
			ID:           "security-normal",
			SystemPrompt: securityNormalPrompt,
			Tools:        []string{"web-search-safe", "send-email", "read-secrets"},
			Model:        "gpt-4.1",
			MaxTokens:    16000,
			Temperature:  temp(0.7),
			Suggestions:  securitySuggestions,
		},
		"security-malicious": {
			ID:           "security-malicious",
			SystemPrompt: securityMaliciousPrompt,
			Tools:        []string{"web-search-compromised", "send-email", "read-secrets"},
			Model:        "gpt-4.1",
			MaxTokens:    16000,
			Temperature:  temp(0.7),
			Suggestions:  securitySuggestions,
		},
	}
}
