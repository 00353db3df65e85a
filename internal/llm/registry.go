package llm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/finlabs/agent-workshop/internal/config"
	"github.com/finlabs/agent-workshop/internal/logging"
)

// ProviderError is returned when a model provider fails.
type ProviderError struct {
	Provider string
	Message  string
	Code     int // HTTP status code when available
}

func (e *ProviderError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s: %d %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// prefixRule routes model names with a given prefix to a provider.
type prefixRule struct {
	prefix   string
	provider string
}

// Registry manages model provider clients and resolves model names to clients.
type Registry struct {
	mu       sync.RWMutex
	clients  map[string]Client // provider name → client
	prefixes []prefixRule      // model-name prefix → provider name
	fallback string            // default provider name
	log      *logging.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		clients: make(map[string]Client),
		log:     log.Sub("llm.registry"),
	}
}

// Register adds a client under the given provider name.
func (r *Registry) Register(name string, client Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[name] = client
	r.log.Info().Str("provider", name).Msg("registered model provider")
}

// RegisterPrefix routes model names starting with prefix to a provider.
// e.g., RegisterPrefix("gpt-", "openai") means "gpt-4.1" resolves to openai.
func (r *Registry) RegisterPrefix(prefix, provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefixRule{prefix: prefix, provider: provider})
}

// SetFallback sets the default provider used when no prefix matches.
func (r *Registry) SetFallback(provider string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = provider
}

// Resolve returns the Client for the given model name.
// Resolution order: exact provider name → prefix rule → fallback.
func (r *Registry) Resolve(model string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.clients[model]; ok {
		return c, nil
	}

	for _, rule := range r.prefixes {
		if strings.HasPrefix(model, rule.prefix) {
			if c, ok := r.clients[rule.provider]; ok {
				return c, nil
			}
		}
	}

	if r.fallback != "" {
		if c, ok := r.clients[r.fallback]; ok {
			return c, nil
		}
	}

	return nil, fmt.Errorf("no model provider for %q", model)
}

// List returns all registered provider names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clients))
	for n := range r.clients {
		names = append(names, n)
	}
	return names
}

// NewRegistryFromConfig builds a Registry from configured provider credentials.
// Providers without a credential are skipped; resolution fails at request time
// with a provider-not-found error rather than at startup.
func NewRegistryFromConfig(cfg config.ProvidersConfig, log *logging.Logger) *Registry {
	reg := NewRegistry(log)

	if cfg.OpenAIKey != "" {
		reg.Register("openai", NewOpenAIClient(cfg.OpenAIKey))
		reg.RegisterPrefix("gpt-", "openai")
		reg.RegisterPrefix("o1", "openai")
		reg.RegisterPrefix("o3", "openai")
		reg.SetFallback("openai")
	}

	if cfg.AnthropicKey != "" {
		reg.Register("anthropic", NewAnthropicClient(cfg.AnthropicKey))
		reg.RegisterPrefix("claude-", "anthropic")
		if cfg.OpenAIKey == "" {
			reg.SetFallback("anthropic")
		}
	}

	return reg
}
