package config

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables are left unchanged.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so API keys can be stored as ${ENV_VAR}.
func expandSensitiveFields(cfg *Config) {
	cfg.Providers.OpenAIKey = expandEnvVars(cfg.Providers.OpenAIKey)
	cfg.Providers.AnthropicKey = expandEnvVars(cfg.Providers.AnthropicKey)
	cfg.Providers.BraveKey = expandEnvVars(cfg.Providers.BraveKey)
}

// applyEnvOverrides fills provider credentials from the conventional
// environment variables when the config file leaves them empty.
func applyEnvOverrides(cfg *Config) {
	if cfg.Providers.OpenAIKey == "" {
		cfg.Providers.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Providers.AnthropicKey == "" {
		cfg.Providers.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.Providers.BraveKey == "" {
		cfg.Providers.BraveKey = os.Getenv("BRAVE_API_KEY")
	}
}

// applyDefaults fills zero-valued fields after a partial config file load.
func applyDefaults(cfg *Config) {
	def := Defaults()
	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
}

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	expandSensitiveFields(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}
