// Package config holds the workshopd configuration model and loader.
package config

// Config is the root configuration for workshopd.
type Config struct {
	Server    ServerConfig    `yaml:"server,omitempty"`
	Providers ProvidersConfig `yaml:"providers,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host           string   `yaml:"host,omitempty"`
	Port           int      `yaml:"port,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// ProvidersConfig holds credentials for the hosted model and search APIs.
// Values may reference environment variables as ${VAR_NAME}.
type ProvidersConfig struct {
	OpenAIKey    string `yaml:"openaiKey,omitempty"`
	AnthropicKey string `yaml:"anthropicKey,omitempty"`
	BraveKey     string `yaml:"braveKey,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Defaults returns the baseline configuration used when no file is present.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8787,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ConfigError describes a configuration problem.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }
